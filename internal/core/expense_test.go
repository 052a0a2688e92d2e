package core

import (
	"errors"
	"strings"
	"testing"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in  string
		ok  bool
		out string
	}{
		{"2024-03-02", true, "2024-03-02"},
		{" 2024-12-31 ", true, "2024-12-31"},
		{"2024-02-29", true, "2024-02-29"}, // leap day
		{"2023-02-29", false, ""},
		{"2024-13-01", false, ""},
		{"2024-00-10", false, ""},
		{"2024-1-2", false, ""},
		{"02/03/2024", false, ""},
		{"", false, ""},
	}
	for i, tc := range cases {
		d, err := ParseDate(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("case %d %q: unexpected error %v", i, tc.in, err)
			}
			if d.String() != tc.out {
				t.Fatalf("case %d %q: got %s, want %s", i, tc.in, d, tc.out)
			}
		} else if err == nil {
			t.Fatalf("case %d %q: expected error", i, tc.in)
		}
	}
}

func TestDateMonthKey(t *testing.T) {
	d := NewDate(2024, 3, 2)
	if got := d.MonthKey(); got != "2024-03" {
		t.Fatalf("MonthKey = %q, want 2024-03", got)
	}
}

func TestNormalizeCategory(t *testing.T) {
	cases := map[string]string{
		"food":     "food",
		"travel":   "travel",
		"shopping": "shopping",
		"other":    "other",
		"rent":     "other",
		"":         "other",
		"Food":     "other", // categories match exactly, no case folding
	}
	for in, want := range cases {
		if got := NormalizeCategory(in); got != want {
			t.Fatalf("NormalizeCategory(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Description: "Coffee",
		Amount:      Money{Cents: 450},
		Date:        NewDate(2024, 3, 2),
		Category:    CategoryFood,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	// Zero amount is non-negative and therefore valid.
	zero := good
	zero.Amount = Money{}
	if err := zero.Validate(); err != nil {
		t.Fatalf("zero amount should validate, got %v", err)
	}
	// Unknown categories are accepted verbatim at write time.
	odd := good
	odd.Category = "subscriptions"
	if err := odd.Validate(); err != nil {
		t.Fatalf("unknown category should validate, got %v", err)
	}

	bads := []struct {
		field string
		e     Expense
	}{
		{"description", Expense{Description: "", Amount: Money{Cents: 1}, Date: NewDate(2024, 1, 1)}},
		{"description", Expense{Description: "   ", Amount: Money{Cents: 1}, Date: NewDate(2024, 1, 1)}},
		{"description", Expense{Description: strings.Repeat("x", MaxDescriptionLen+1), Amount: Money{Cents: 1}, Date: NewDate(2024, 1, 1)}},
		{"amount", Expense{Description: "a", Amount: Money{Cents: -5}, Date: NewDate(2024, 1, 1)}},
		{"date", Expense{Description: "a", Amount: Money{Cents: 1}}},
	}
	for i, tc := range bads {
		err := tc.e.Validate()
		if err == nil {
			t.Fatalf("case %d: expected error", i)
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("case %d: expected *ValidationError, got %T", i, err)
		}
		if verr.Field != tc.field {
			t.Fatalf("case %d: field = %q, want %q", i, verr.Field, tc.field)
		}
	}
}
