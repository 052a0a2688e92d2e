package core

import (
	"strings"

	"golang.org/x/text/cases"
)

// The view engine: pure, stateless transformations over a snapshot of the
// record list. Callers filter first, then aggregate; nothing here caches or
// reads shared state, so any number of goroutines may call in parallel on
// their own snapshots.

// Filter keeps records whose description contains nameQuery as a
// case-insensitive substring (Unicode case folding, so non-ASCII descriptions
// match correctly) and whose category equals categoryFilter exactly. An empty
// nameQuery matches every description; an empty categoryFilter matches every
// category. Input order is preserved.
func Filter(records []Expense, nameQuery, categoryFilter string) []Expense {
	folder := cases.Fold()
	query := folder.String(nameQuery)

	out := make([]Expense, 0, len(records))
	for _, e := range records {
		if query != "" && !strings.Contains(folder.String(e.Description), query) {
			continue
		}
		if categoryFilter != "" && e.Category != categoryFilter {
			continue
		}
		out = append(out, e)
	}
	return out
}

// CategoryTotals sums amounts per category. Categories outside the canonical
// set are coalesced to CategoryOther before grouping, so totals and display
// icons agree on where an unknown category lands. Categories with no records
// are absent from the result.
func CategoryTotals(records []Expense) map[string]Money {
	totals := make(map[string]Money, len(Categories()))
	for _, e := range records {
		key := NormalizeCategory(e.Category)
		totals[key] = totals[key].Add(e.Amount)
	}
	return totals
}

// MonthlyTotals sums amounts per calendar month, keyed by "YYYY-MM". Months
// with no records are absent. A record carrying a zero date cannot have passed
// write-time validation, so it is reported as corruption rather than skipped.
func MonthlyTotals(records []Expense) (map[string]Money, error) {
	totals := make(map[string]Money)
	for _, e := range records {
		if e.Date.IsZero() {
			return nil, &DataCorruptionError{ID: e.ID, Field: "date", Detail: "is not a valid calendar date"}
		}
		key := e.Date.MonthKey()
		totals[key] = totals[key].Add(e.Amount)
	}
	return totals, nil
}

// GrandTotal sums every amount. Zero for an empty list.
func GrandTotal(records []Expense) Money {
	var total Money
	for _, e := range records {
		total = total.Add(e.Amount)
	}
	return total
}
