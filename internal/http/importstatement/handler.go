package importstatement

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/MrJamesThe3rd/gastos/internal/importer"
	"github.com/MrJamesThe3rd/gastos/internal/reconcile"
)

// Importer parses and reconciles one export file.
type Importer interface {
	ImportFile(ctx context.Context, bank importer.Bank, r io.Reader, dryRun bool) (reconcile.Result, error)
}

type Handler struct {
	svc         Importer
	maxUploadMB int64
}

func NewHandler(svc Importer, maxUploadMB int64) *Handler {
	return &Handler{svc: svc, maxUploadMB: maxUploadMB}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importStatement)
	r.Get("/banks", h.banks)
}

type resultResponse struct {
	Bank   importer.Bank `json:"bank"`
	DryRun bool          `json:"dry_run"`
	reconcile.Result
}

func (h *Handler) importStatement(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadMB << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	bank, err := importer.ParseBank(r.FormValue("bank"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	dryRun, _ := strconv.ParseBool(r.FormValue("dry_run"))

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := h.svc.ImportFile(r.Context(), bank, file, dryRun)
	if errors.Is(err, importer.ErrUnknownBank) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if result.Errors == nil {
		result.Errors = []string{}
	}

	status := http.StatusOK
	if result.Inserted > 0 && !dryRun {
		status = http.StatusCreated
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(resultResponse{Bank: bank, DryRun: dryRun, Result: result}); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

type bankResponse struct {
	ID      importer.Bank `json:"id"`
	Account string        `json:"account"`
}

func (h *Handler) banks(w http.ResponseWriter, r *http.Request) {
	banks := importer.Banks()

	resp := make([]bankResponse, 0, len(banks))
	for _, b := range banks {
		resp = append(resp, bankResponse{ID: b, Account: string(b.Account())})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}
