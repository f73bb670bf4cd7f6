// =============================================================================
// Sales Analytics System - Enrichment Merger
// =============================================================================
//
// This module joins valid transactions with the externally supplied product
// catalog. The join key is derived from the ProductID by stripping the
// leading "P" and parsing the remainder as an integer; a P-less or
// non-numeric suffix simply yields an unmatched record, never an error.
//
// The merger builds new EnrichedTransaction values; the input transactions
// are copied, not mutated, and output order matches input order.
//
// =============================================================================

package enrichment

import (
	"github.com/ginjaninja78/sales-analytics/internal/types"
)

// Merge produces one EnrichedTransaction per input transaction.
//
// PARAMETERS:
//   - transactions: The valid transactions, in input order.
//   - catalog: The mapping from numeric product key to catalog entry. A nil
//     map is treated as an empty catalog.
//
// RETURNS:
//   - The enriched transactions, one per input, in input order. A found
//     catalog entry copies category, brand, and rating verbatim and sets
//     APIMatch; otherwise the API fields stay nil.
func Merge(transactions []types.Transaction, catalog map[int]types.CatalogEntry) []types.EnrichedTransaction {
	enriched := make([]types.EnrichedTransaction, 0, len(transactions))

	for _, txn := range transactions {
		e := types.EnrichedTransaction{Transaction: txn}

		if key, ok := txn.ProductKey(); ok {
			if entry, found := catalog[key]; found {
				category := entry.Category
				brand := entry.Brand
				rating := entry.Rating

				e.APICategory = &category
				e.APIBrand = &brand
				e.APIRating = &rating
				e.APIMatch = true
			}
		}

		enriched = append(enriched, e)
	}

	return enriched
}

// MatchCount returns the number of enriched transactions with a catalog
// match.
func MatchCount(enriched []types.EnrichedTransaction) int {
	count := 0
	for _, e := range enriched {
		if e.APIMatch {
			count++
		}
	}
	return count
}
