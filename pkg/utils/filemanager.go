// =============================================================================
// Sales Analytics System - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the pipeline, including:
//   - Directory management
//   - Output file naming from configurable patterns
//   - Input file archival after successful processing
//
// ARCHIVAL STRATEGY:
//   - The input file is moved to the archive directory after a successful run
//   - Failed or dry runs leave the input file in place
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the pipeline.
type FileManager struct {
	// OutputDir is the directory where output files are placed.
	OutputDir string

	// ArchiveDir is the directory for archived input files.
	ArchiveDir string
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(outputDir, archiveDir string) *FileManager {
	return &FileManager{
		OutputDir:  outputDir,
		ArchiveDir: archiveDir,
	}
}

// EnsureDirectories creates the output and archive directories if they don't
// exist.
func (fm *FileManager) EnsureDirectories() error {
	for _, dir := range []string{fm.OutputDir, fm.ArchiveDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// =============================================================================
// OUTPUT NAMING
// =============================================================================

// OutputPath expands a file name pattern and joins it with the output
// directory.
//
// PARAMETERS:
//   - pattern: The file name pattern. Placeholders:
//     {uuid}      - a random UUID
//     {timestamp} - current timestamp (YYYYMMDD_HHMMSS)
//
// RETURNS:
//   - The full path of the output file.
func (fm *FileManager) OutputPath(pattern string) string {
	return filepath.Join(fm.OutputDir, ExpandNamePattern(pattern, time.Now()))
}

// ExpandNamePattern replaces the {uuid} and {timestamp} placeholders in a
// file name pattern.
func ExpandNamePattern(pattern string, now time.Time) string {
	name := pattern
	name = strings.ReplaceAll(name, "{uuid}", uuid.New().String())
	name = strings.ReplaceAll(name, "{timestamp}", now.Format("20060102_150405"))
	return name
}

// =============================================================================
// ARCHIVAL
// =============================================================================

// ArchiveInput moves a processed input file into the archive directory.
// A cross-device rename falls back to copy-and-remove.
func (fm *FileManager) ArchiveInput(inputPath string) (string, error) {
	archivePath := filepath.Join(fm.ArchiveDir, filepath.Base(inputPath))

	if err := os.Rename(inputPath, archivePath); err == nil {
		return archivePath, nil
	}

	if err := copyFile(inputPath, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive input file: %w", err)
	}
	if err := os.Remove(inputPath); err != nil {
		return "", fmt.Errorf("failed to remove archived input file: %w", err)
	}

	return archivePath, nil
}

// copyFile copies src to dst, truncating dst if it exists.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
