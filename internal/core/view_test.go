package core

import (
	"errors"
	"reflect"
	"testing"
)

func sampleRecords() []Expense {
	return []Expense{
		{ID: 1, Description: "Coffee", Amount: Money{Cents: 450}, Date: NewDate(2024, 3, 2), Category: "food"},
		{ID: 2, Description: "Train", Amount: Money{Cents: 1200}, Date: NewDate(2024, 3, 15), Category: "travel"},
		{ID: 3, Description: "Coffee2", Amount: Money{Cents: 300}, Date: NewDate(2024, 4, 1), Category: "food"},
	}
}

func TestFilter(t *testing.T) {
	records := sampleRecords()

	// Identity: empty query and empty category return the input unchanged.
	if got := Filter(records, "", ""); !reflect.DeepEqual(got, records) {
		t.Fatalf("identity filter changed the list: %v", got)
	}

	// Case-insensitive substring on description, regardless of category.
	got := Filter(records, "coffee", "")
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("coffee filter = %v", got)
	}

	// Category must match exactly.
	got = Filter(records, "", "travel")
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("travel filter = %v", got)
	}

	// Both conditions together.
	if got = Filter(records, "coffee", "travel"); len(got) != 0 {
		t.Fatalf("expected empty intersection, got %v", got)
	}
}

func TestFilterUnicode(t *testing.T) {
	records := []Expense{
		{ID: 1, Description: "CAFÉ au lait", Amount: Money{Cents: 100}, Date: NewDate(2024, 1, 1), Category: "food"},
		{ID: 2, Description: "Straße essen", Amount: Money{Cents: 200}, Date: NewDate(2024, 1, 2), Category: "food"},
	}
	if got := Filter(records, "café", ""); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("accented match failed: %v", got)
	}
	// ß folds to ss under Unicode case folding.
	if got := Filter(records, "strasse", ""); len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("sharp-s folding failed: %v", got)
	}
}

func TestCategoryTotals(t *testing.T) {
	totals := CategoryTotals(sampleRecords())
	want := map[string]Money{
		"food":   {Cents: 750},
		"travel": {Cents: 1200},
	}
	if !reflect.DeepEqual(totals, want) {
		t.Fatalf("CategoryTotals = %v, want %v", totals, want)
	}
	// A category with no records must be absent, not zero.
	if _, ok := totals["shopping"]; ok {
		t.Fatalf("shopping should be absent from totals")
	}
}

func TestCategoryTotalsNormalizesUnknown(t *testing.T) {
	records := []Expense{
		{ID: 1, Description: "Vet", Amount: Money{Cents: 5000}, Date: NewDate(2024, 5, 1), Category: "pets"},
		{ID: 2, Description: "Misc", Amount: Money{Cents: 100}, Date: NewDate(2024, 5, 2), Category: "other"},
	}
	totals := CategoryTotals(records)
	if got := totals["other"]; got.Cents != 5100 {
		t.Fatalf("unknown category not coalesced to other: %v", totals)
	}
	if _, ok := totals["pets"]; ok {
		t.Fatalf("literal unknown key should not appear: %v", totals)
	}
}

func TestMonthlyTotals(t *testing.T) {
	totals, err := MonthlyTotals(sampleRecords())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]Money{
		"2024-03": {Cents: 1650},
		"2024-04": {Cents: 300},
	}
	if !reflect.DeepEqual(totals, want) {
		t.Fatalf("MonthlyTotals = %v, want %v", totals, want)
	}
}

func TestMonthlyTotalsCorruptDate(t *testing.T) {
	records := []Expense{
		{ID: 7, Description: "bad", Amount: Money{Cents: 100}},
	}
	_, err := MonthlyTotals(records)
	if err == nil {
		t.Fatalf("expected corruption error")
	}
	var cerr *DataCorruptionError
	if !errors.As(err, &cerr) || cerr.ID != 7 {
		t.Fatalf("expected *DataCorruptionError for id 7, got %v", err)
	}
}

func TestGrandTotal(t *testing.T) {
	if got := GrandTotal(sampleRecords()); got.Cents != 1950 {
		t.Fatalf("GrandTotal = %d, want 1950", got.Cents)
	}
	if got := GrandTotal(nil); got.Cents != 0 {
		t.Fatalf("GrandTotal(nil) = %d, want 0", got.Cents)
	}
}

// Partition law: the grand total equals the sum of the category totals for
// any record set, because normalization only relabels, never drops.
func TestGrandTotalMatchesCategoryPartition(t *testing.T) {
	records := append(sampleRecords(),
		Expense{ID: 9, Description: "Gadget", Amount: Money{Cents: 9999}, Date: NewDate(2024, 6, 6), Category: "electronics"},
	)
	var sum Money
	for _, m := range CategoryTotals(records) {
		sum = sum.Add(m)
	}
	if grand := GrandTotal(records); grand != sum {
		t.Fatalf("partition law broken: grand=%v sum=%v", grand, sum)
	}
}

func TestEmptyInputs(t *testing.T) {
	if got := Filter(nil, "x", "y"); len(got) != 0 {
		t.Fatalf("Filter(nil) = %v", got)
	}
	if got := CategoryTotals(nil); len(got) != 0 {
		t.Fatalf("CategoryTotals(nil) = %v", got)
	}
	got, err := MonthlyTotals(nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("MonthlyTotals(nil) = %v, %v", got, err)
	}
}
