package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/gamify"
	"fintrack/internal/ledger"
)

// transactionRequest is the wire form of a transaction. Amounts travel
// as decimal strings so clients never deal in paise.
type transactionRequest struct {
	Kind       string `json:"kind"`
	Amount     string `json:"amount"`
	Category   string `json:"category"`
	OccurredOn string `json:"occurred_on"`
	Notes      string `json:"notes"`
	Recurring  bool   `json:"recurring"`
}

func (req *transactionRequest) toTransaction(now time.Time) (core.Transaction, error) {
	paise, err := core.ParseDecimalToPaise(strings.TrimSpace(req.Amount))
	if err != nil {
		return core.Transaction{}, err
	}

	occurredOn := core.DateOf(now)
	if v := strings.TrimSpace(req.OccurredOn); v != "" {
		occurredOn, err = core.ParseDate(v)
		if err != nil {
			return core.Transaction{}, err
		}
	}

	return core.Transaction{
		Kind:       core.Kind(strings.TrimSpace(req.Kind)),
		Amount:     core.Money{Paise: paise},
		Category:   core.Category(strings.TrimSpace(req.Category)),
		OccurredOn: occurredOn,
		Notes:      strings.TrimSpace(req.Notes),
		Recurring:  req.Recurring,
	}, nil
}

type mutationResponse struct {
	Transaction *core.Transaction `json:"transaction,omitempty"`
	Result      gamify.Result     `json:"result"`
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.service.Transactions())
	case http.MethodPost:
		var req transactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		tx, err := req.toTransaction(time.Now())
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		created, res, err := s.service.AddTransaction(r.Context(), tx)
		if err != nil {
			writeValidationError(w, r, err, "Transaction create failed")
			return
		}
		writeJSON(w, http.StatusCreated, mutationResponse{Transaction: &created, Result: res})
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/transactions/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req transactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		tx, err := req.toTransaction(time.Now())
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		updated, res, err := s.service.UpdateTransaction(r.Context(), id, tx)
		if err != nil {
			writeValidationError(w, r, err, "Transaction update failed")
			return
		}
		writeJSON(w, http.StatusOK, mutationResponse{Transaction: &updated, Result: res})
	case http.MethodDelete:
		res, err := s.service.DeleteTransaction(r.Context(), id)
		if err != nil {
			writeValidationError(w, r, err, "Transaction delete failed")
			return
		}
		writeJSON(w, http.StatusOK, mutationResponse{Result: res})
	default:
		methodNotAllowed(w, "PUT, DELETE")
	}
}

func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	writeJSON(w, http.StatusOK, s.service.Budgets())
}

func (s *Server) handleBudgetByCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w, "PUT")
		return
	}

	category := core.Category(strings.TrimPrefix(r.URL.Path, "/budgets/"))
	var req struct {
		Limit string `json:"limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	paise, err := core.ParseDecimalToPaise(strings.TrimSpace(req.Limit))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	res, err := s.service.SetBudgetLimit(r.Context(), category, core.Money{Paise: paise})
	if err != nil {
		writeValidationError(w, r, err, "Budget update failed")
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{Result: res})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	writeJSON(w, http.StatusOK, s.service.Overview())
}

// gamifyResponse bundles everything the profile view needs in one call.
type gamifyResponse struct {
	Progress     core.ProgressState      `json:"progress"`
	LifetimeXP   int                     `json:"lifetime_xp"`
	NextLevelXP  int                     `json:"next_level_xp"`
	Challenges   []gamify.Challenge      `json:"challenges"`
	Unlocked     []gamify.Unlocked       `json:"unlocked"`
	Achievements []gamify.AchievementDef `json:"achievements"`
	DarkMode     bool                    `json:"dark_mode"`
}

func (s *Server) handleGamify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	progress := s.service.Progress()
	writeJSON(w, http.StatusOK, gamifyResponse{
		Progress:     progress,
		LifetimeXP:   progress.LifetimeXP(),
		NextLevelXP:  progress.NextLevelXP(),
		Challenges:   s.service.Cohort(),
		Unlocked:     s.service.UnlockedSet(),
		Achievements: s.service.Catalog(),
		DarkMode:     s.service.DarkMode(),
	})
}

func (s *Server) handleDarkMode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w, "PUT")
		return
	}

	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := s.service.SetDarkMode(r.Context(), req.Enabled)
	if err != nil {
		writeValidationError(w, r, err, "Dark mode update failed")
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{Result: res})
}

// writeValidationError maps domain errors to status codes and logs
// anything unexpected.
func writeValidationError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, ledger.ErrTransactionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidCategory),
		errors.Is(err, core.ErrInvalidKind),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrNotesTooLong):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.ErrorContext(r.Context(), msg, "error", err, "url", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
