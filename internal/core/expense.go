package core

import (
	"fmt"
	"strings"
	"time"
)

const (
	CategoryFood     = "food"
	CategoryTravel   = "travel"
	CategoryShopping = "shopping"
	CategoryOther    = "other"
)

// MaxDescriptionLen bounds descriptions at the store boundary. The UI form
// enforces a much tighter limit; truncation is its concern, not ours.
const MaxDescriptionLen = 200

// Categories lists the canonical category set. The store accepts any string
// for forward compatibility; aggregation coalesces unknown values to
// CategoryOther via NormalizeCategory.
func Categories() []string {
	return []string{CategoryFood, CategoryTravel, CategoryShopping, CategoryOther}
}

// NormalizeCategory maps any category string onto the canonical set.
// Unrecognized values become CategoryOther.
func NormalizeCategory(category string) string {
	switch category {
	case CategoryFood, CategoryTravel, CategoryShopping, CategoryOther:
		return category
	default:
		return CategoryOther
	}
}

type (
	// Date is a calendar day without a time component.
	Date struct {
		time.Time
	}

	// Expense is the single persisted entity: one spending event.
	// ID is assigned by the store at creation time and never reused.
	Expense struct {
		ID          int64
		Description string
		Amount      Money
		Date        Date
		Category    string
	}
)

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date. Anything that does not parse
// as a real date (bad month, day out of range for the month) is rejected.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, &ValidationError{Field: "date", Reason: "must be a valid YYYY-MM-DD date"}
	}
	return Date{Time: t}, nil
}

// NewDate builds a Date from its parts.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// MonthKey returns the zero-padded "YYYY-MM" bucket for the date. The format
// sorts lexicographically in chronological order.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

// Validate checks the invariants every stored record must satisfy.
// It never mutates or coerces; a violation is reported as *ValidationError
// naming the offending field.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return &ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if len(e.Description) > MaxDescriptionLen {
		return &ValidationError{Field: "description", Reason: fmt.Sprintf("must be at most %d characters", MaxDescriptionLen)}
	}
	if e.Amount.Cents < 0 {
		return &ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	if e.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "must be a valid YYYY-MM-DD date"}
	}
	return nil
}
