// =============================================================================
// Sales Analytics System - Record Parser Module
// =============================================================================
//
// This module parses raw pipe-delimited sales lines into typed Transaction
// records. Parsing is a best-effort filter, not a fail-fast parse:
//   - Lines with the wrong field count are dropped
//   - Lines whose quantity or price do not parse (after stripping thousands
//     separators) are dropped
//   - Nothing is reported for dropped lines; no error ever surfaces
//
// The output preserves input line ordering, so len(parsed) <= len(lines)
// always holds.
//
// =============================================================================

package salesparser

import (
	"strconv"
	"strings"

	"github.com/ginjaninja78/sales-analytics/internal/types"
)

// fieldCount is the exact number of pipe-delimited fields per record:
// TransactionID, Date, ProductID, ProductName, Quantity, UnitPrice,
// CustomerID, Region.
const fieldCount = 8

// ParseLines parses raw data lines (header already excluded) into Transaction
// values, silently dropping malformed lines.
//
// PARAMETERS:
//   - lines: The ordered raw lines from the line source.
//
// RETURNS:
//   - The parsed transactions in input order. Never an error: bad lines are
//     filtered, not reported.
func ParseLines(lines []string) []types.Transaction {
	transactions := make([]types.Transaction, 0, len(lines))

	for _, line := range lines {
		txn, ok := parseLine(line)
		if !ok {
			continue
		}
		transactions = append(transactions, txn)
	}

	return transactions
}

// parseLine parses a single pipe-delimited record. The second return value is
// false when the line is malformed.
func parseLine(line string) (types.Transaction, bool) {
	parts := strings.Split(line, "|")
	if len(parts) != fieldCount {
		return types.Transaction{}, false
	}

	// Commas inside the product name are legacy artifacts; normalize them to
	// spaces before trimming.
	productName := strings.TrimSpace(strings.ReplaceAll(parts[3], ",", " "))

	// Quantity and price may carry thousands separators ("1,000").
	quantity, err := strconv.Atoi(stripSeparators(parts[4]))
	if err != nil {
		return types.Transaction{}, false
	}

	unitPrice, err := strconv.ParseFloat(stripSeparators(parts[5]), 64)
	if err != nil {
		return types.Transaction{}, false
	}

	return types.Transaction{
		TransactionID: parts[0],
		Date:          parts[1],
		ProductID:     parts[2],
		ProductName:   productName,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		CustomerID:    parts[6],
		Region:        parts[7],
	}, true
}

// stripSeparators removes comma thousands separators and surrounding
// whitespace from a numeric field.
func stripSeparators(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
}
