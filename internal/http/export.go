package http

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// handleExport streams the full ledger as CSV and records the export so
// the matching achievement can unlock on the next evaluation pass.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	txs := s.service.Transactions()

	filename := fmt.Sprintf("fintrack_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "kind", "category", "amount", "occurred_on", "notes", "recurring"})
	for _, t := range txs {
		_ = cw.Write([]string{
			t.ID,
			string(t.Kind),
			string(t.Category),
			strconv.FormatFloat(t.Amount.Rupees(), 'f', 2, 64),
			t.OccurredOn.Key(),
			t.Notes,
			strconv.FormatBool(t.Recurring),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		slog.ErrorContext(r.Context(), "CSV export write failed", "error", err)
		return
	}

	if _, err := s.service.MarkExported(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Failed to record export", "error", err)
	}
}
