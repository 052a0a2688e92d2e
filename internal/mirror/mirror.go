// Package mirror keeps a Google Sheets copy of the expense store up to date.
// Change messages carry only the id and operation, so the worker re-reads the
// whole store and rewrites the sheet. With a single-user dataset that stays
// cheap and makes updates and deletes indistinguishable from creates.
package mirror

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/TeemuStew/expense-tracker/internal/core"
	"github.com/TeemuStew/expense-tracker/internal/events"
	"github.com/TeemuStew/expense-tracker/internal/store"
)

// SheetWriter replaces the full contents of the mirror sheet.
type SheetWriter interface {
	Replace(ctx context.Context, rows [][]any) error
}

// Worker consumes expense change messages and pushes the store to the sheet.
type Worker struct {
	store  store.Store
	writer SheetWriter
}

func NewWorker(store store.Store, writer SheetWriter) *Worker {
	return &Worker{store: store, writer: writer}
}

// HandleChange resyncs the sheet after any store mutation. The returned error
// signals the consumer to requeue the message.
func (w *Worker) HandleChange(ctx context.Context, msg *events.ExpenseChangeMessage) error {
	slog.InfoContext(ctx, "Resyncing sheet after change",
		"id", msg.ID,
		"op", msg.Op)

	records, err := w.store.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list expenses: %w", err)
	}

	if err := w.writer.Replace(ctx, Rows(records)); err != nil {
		return fmt.Errorf("replace sheet contents: %w", err)
	}

	slog.InfoContext(ctx, "Sheet resynced", "rows", len(records))
	return nil
}

var headerRow = []any{"ID", "Date", "Description", "Amount", "Category"}

// Rows converts expenses to sheet rows, header first. Amounts are written as
// decimal numbers so the sheet can sum them.
func Rows(records []core.Expense) [][]any {
	rows := make([][]any, 0, len(records)+1)
	rows = append(rows, headerRow)
	for _, e := range records {
		rows = append(rows, []any{
			e.ID,
			e.Date.String(),
			e.Description,
			e.Amount.Float64(),
			e.Category,
		})
	}
	return rows
}
