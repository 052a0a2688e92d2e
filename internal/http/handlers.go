package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/TeemuStew/expense-tracker/internal/core"
)

// expenseJSON is the wire shape of an expense record. Amounts travel as
// decimal numbers, not strings.
type expenseJSON struct {
	ID          int64   `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
}

func toExpenseJSON(e core.Expense) expenseJSON {
	return expenseJSON{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount.Float64(),
		Date:        e.Date.String(),
		Category:    e.Category,
	}
}

// expenseRequest carries the mutable fields of a create/update body. Amount
// is decoded as json.Number so "4.50" survives the trip into cents exactly.
type expenseRequest struct {
	Description string      `json:"description"`
	Amount      json.Number `json:"amount"`
	Date        string      `json:"date"`
	Category    string      `json:"category"`
}

func (req *expenseRequest) toExpense() (core.Expense, error) {
	amount, err := core.ParseAmount(req.Amount.String())
	if err != nil {
		return core.Expense{}, &core.ValidationError{Field: "amount", Reason: err.Error()}
	}
	date, err := core.ParseDate(strings.TrimSpace(req.Date))
	if err != nil {
		return core.Expense{}, &core.ValidationError{Field: "date", Reason: err.Error()}
	}
	return core.Expense{
		Description: strings.TrimSpace(req.Description),
		Amount:      amount,
		Date:        date,
		Category:    strings.TrimSpace(req.Category),
	}, nil
}

func decodeExpenseRequest(r *http.Request) (core.Expense, error) {
	var req expenseRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return core.Expense{}, &core.ValidationError{Field: "body", Reason: fmt.Sprintf("malformed JSON: %v", err)}
	}
	return req.toExpense()
}

func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, &core.ValidationError{Field: "id", Reason: fmt.Sprintf("%q is not a valid id", raw)}
	}
	return id, nil
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	records = core.Filter(records, r.URL.Query().Get("name"), r.URL.Query().Get("category"))

	data := make([]expenseJSON, 0, len(records))
	for _, e := range records {
		data = append(data, toExpenseJSON(e))
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"data": data})
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	e, err := decodeExpenseRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := s.store.Create(r.Context(), e)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, map[string]any{"id": id})
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	e, err := decodeExpenseRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.store.Update(r.Context(), id, e); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"updatedID": id})
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.store.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"deletedID": id})
}

// handleSummary computes the derived views server-side so clients don't have
// to re-aggregate after every mutation. Optional name/category query params
// narrow the record set first.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	records = core.Filter(records, r.URL.Query().Get("name"), r.URL.Query().Get("category"))

	byMonth, err := core.MonthlyTotals(records)
	if err != nil {
		writeError(w, r, err)
		return
	}

	byCategory := make(map[string]float64)
	for cat, total := range core.CategoryTotals(records) {
		byCategory[cat] = total.Float64()
	}
	months := make(map[string]float64)
	for month, total := range byMonth {
		months[month] = total.Float64()
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"total":      core.GrandTotal(records).Float64(),
		"byCategory": byCategory,
		"byMonth":    months,
	})
}
