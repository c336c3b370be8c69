package rules

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/MrJamesThe3rd/gastos/internal/rules"
)

type Handler struct {
	engine *rules.Engine
}

func NewHandler(engine *rules.Engine) *Handler {
	return &Handler{engine: engine}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/classify", h.classify)
}

type ruleResponse struct {
	Name        string `json:"name"`
	Priority    int    `json:"priority"`
	Exact       string `json:"exact,omitempty"`
	Contains    string `json:"contains,omitempty"`
	Category    string `json:"category,omitempty"`
	Subcategory string `json:"subcategory,omitempty"`
}

func toRuleResponse(r rules.Rule) ruleResponse {
	return ruleResponse{
		Name:        r.Name,
		Priority:    r.Priority,
		Exact:       r.Exact,
		Contains:    r.Contains,
		Category:    r.Category,
		Subcategory: r.Subcategory,
	}
}

type classifyResponse struct {
	Description string        `json:"description"`
	Matched     bool          `json:"matched"`
	Category    string        `json:"category,omitempty"`
	Subcategory string        `json:"subcategory,omitempty"`
	Rule        *ruleResponse `json:"rule,omitempty"`
}

func (h *Handler) classify(w http.ResponseWriter, r *http.Request) {
	desc := r.URL.Query().Get("description")
	if desc == "" {
		http.Error(w, "description query parameter is required", http.StatusBadRequest)
		return
	}

	resp := classifyResponse{Description: desc}

	if rule, ok := h.engine.Match(desc); ok {
		rr := toRuleResponse(rule)
		resp.Rule = &rr

		if c, ok := h.engine.Classify(desc); ok {
			resp.Matched = true
			resp.Category = c.Category
			resp.Subcategory = c.Subcategory
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	all := h.engine.Rules()

	resp := make([]ruleResponse, 0, len(all))
	for _, rule := range all {
		resp = append(resp, toRuleResponse(rule))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}
