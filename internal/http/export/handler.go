package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/MrJamesThe3rd/gastos/internal/export"
	"github.com/MrJamesThe3rd/gastos/internal/http/request"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Exporter writes a ledger range as a workbook.
type Exporter interface {
	Export(ctx context.Context, start, end time.Time, w io.Writer) (export.Report, error)
}

type Handler struct {
	svc Exporter
	now func() time.Time
}

func NewHandler(svc Exporter) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.summary)
	r.Get("/download", h.download)
}

type categoryResponse struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Expenses int64  `json:"expenses"`
	Income   int64  `json:"income"`
}

type summaryResponse struct {
	StartDate    string             `json:"start_date"`
	EndDate      string             `json:"end_date"`
	Transactions int                `json:"transactions"`
	Categories   []categoryResponse `json:"categories"`
	Text         string             `json:"text"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	start, end, err := request.DateRange(r, h.now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := h.svc.Export(r.Context(), start, end, io.Discard)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	cats := make([]categoryResponse, 0, len(report.Totals))
	for _, t := range report.Totals {
		cats = append(cats, categoryResponse{Category: t.Category, Count: t.Count, Expenses: t.Expenses, Income: t.Income})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(summaryResponse{
		StartDate:    start.Format(time.DateOnly),
		EndDate:      end.Format(time.DateOnly),
		Transactions: len(report.Transactions),
		Categories:   cats,
		Text:         report.Text(),
	}); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	start, end, err := request.DateRange(r, h.now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Buffered so a ledger failure can still become an error status.
	var buf bytes.Buffer
	if _, err := h.svc.Export(r.Context(), start, end, &buf); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"gastos_%s_%s.xlsx\"",
		start.Format("20060102"), end.Format("20060102")))

	if _, err := buf.WriteTo(w); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write workbook")
	}
}
