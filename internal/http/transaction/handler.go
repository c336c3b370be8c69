package transaction

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/MrJamesThe3rd/gastos/internal/http/request"
	"github.com/MrJamesThe3rd/gastos/internal/transaction"
)

// Querier reads ledger transactions for a closed date range.
type Querier interface {
	QueryRange(ctx context.Context, start, end time.Time) ([]transaction.Transaction, error)
}

type Handler struct {
	ledger Querier
	now    func() time.Time
}

func NewHandler(ledger Querier) *Handler {
	return &Handler{ledger: ledger, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
}

type listResponse struct {
	StartDate    string                `json:"start_date"`
	EndDate      string                `json:"end_date"`
	Transactions []transactionResponse `json:"transactions"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	start, end, err := request.DateRange(r, h.now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txs, err := h.ledger.QueryRange(r.Context(), start, end)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(listResponse{
		StartDate:    start.Format(time.DateOnly),
		EndDate:      end.Format(time.DateOnly),
		Transactions: toResponseList(txs),
	}); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}
