// internal/api/handlers.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	apperrors "leadops/internal/common/errors"
	"leadops/internal/common/logger"
	"leadops/internal/common/validation"
	"leadops/internal/dispatch"
	"leadops/internal/matchmaker"
	"leadops/internal/models"
	"leadops/internal/override"
	"leadops/internal/store"
	"leadops/internal/telemetry"
)

// Handler carries the wired services behind the console routes.
type Handler struct {
	contacts      *store.ContactStore
	opportunities *store.OpportunityStore
	touches       *store.TouchStore
	matcher       *matchmaker.Matchmaker
	feedCache     *matchmaker.FeedCache
	gateway       *dispatch.Gateway
	campaigns     *telemetry.Service
	console       *override.Console
	consoleToken  string
	pingers       []Pinger
	logger        logger.Logger
}

// Pinger is anything the health endpoint should verify (Postgres, Redis).
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Contacts      *store.ContactStore
	Opportunities *store.OpportunityStore
	Touches       *store.TouchStore
	Matcher       *matchmaker.Matchmaker
	FeedCache     *matchmaker.FeedCache
	Gateway       *dispatch.Gateway
	Campaigns     *telemetry.Service
	Console       *override.Console
	ConsoleToken  string
	Pingers       []Pinger
	Logger        logger.Logger
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		contacts:      d.Contacts,
		opportunities: d.Opportunities,
		touches:       d.Touches,
		matcher:       d.Matcher,
		feedCache:     d.FeedCache,
		gateway:       d.Gateway,
		campaigns:     d.Campaigns,
		console:       d.Console,
		consoleToken:  d.ConsoleToken,
		pingers:       d.Pingers,
		logger:        d.Logger.WithFields(map[string]interface{}{"component": "api"}),
	}
}

// GetBids serves the matched government-bid feed.
func (h *Handler) GetBids(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query().Get("q")
	cacheKey := "feed:bids:" + query

	var cached []models.MatchedBid
	if h.feedCache.Get(ctx, cacheKey, &cached) {
		respondJSON(w, http.StatusOK, cached)
		return
	}

	bids, err := h.opportunities.ListBids(ctx, query)
	if err != nil {
		h.respondError(w, apperrors.NewQueryExecutionFailedError("bids", err))
		return
	}
	contacts, err := h.contacts.ListWithNiche(ctx)
	if err != nil {
		h.respondError(w, apperrors.NewQueryExecutionFailedError("contacts", err))
		return
	}

	matched := h.matcher.MatchBids(bids, contacts)
	h.feedCache.Set(ctx, cacheKey, matched)
	respondJSON(w, http.StatusOK, matched)
}

// GetIntents serves the matched estate-sale feed.
func (h *Handler) GetIntents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query().Get("q")
	cacheKey := "feed:intents:" + query

	var cached []models.MatchedSale
	if h.feedCache.Get(ctx, cacheKey, &cached) {
		respondJSON(w, http.StatusOK, cached)
		return
	}

	sales, err := h.opportunities.ListEstateSales(ctx, query)
	if err != nil {
		h.respondError(w, apperrors.NewQueryExecutionFailedError("estate_sales", err))
		return
	}
	contacts, err := h.contacts.ListWithNiche(ctx)
	if err != nil {
		h.respondError(w, apperrors.NewQueryExecutionFailedError("contacts", err))
		return
	}

	matched := h.matcher.MatchIntents(sales, contacts)
	h.feedCache.Set(ctx, cacheKey, matched)
	respondJSON(w, http.StatusOK, matched)
}

var manualOverrideSchema = validation.Schema{
	Properties: map[string]validation.Property{
		"contact_identifier": {Type: "string", MinLength: intPtr(1)},
		"channel":            {Type: "string", Enum: []string{models.ChannelSMS, models.ChannelEmail}},
		"body":               {Type: "string", MinLength: intPtr(1)},
		"template_name":      {Type: "string"},
	},
	Required:             []string{"contact_identifier", "channel", "body"},
	AdditionalProperties: false,
}

// ManualOverride performs one human-initiated dispatch.
func (h *Handler) ManualOverride(w http.ResponseWriter, r *http.Request) {
	raw := map[string]interface{}{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		h.respondError(w, apperrors.NewValidationFailedError("malformed JSON body"))
		return
	}
	if result := validation.Validate(raw, manualOverrideSchema); !result.Valid {
		h.respondError(w, apperrors.NewValidationFailedError(result.ErrorSummary()))
		return
	}

	req := dispatch.Request{
		Identifier: raw["contact_identifier"].(string),
		Channel:    raw["channel"].(string),
		Body:       raw["body"].(string),
	}
	if name, ok := raw["template_name"].(string); ok && name != "" {
		req.TemplateName = &name
	}

	result, err := h.gateway.Send(r.Context(), req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// ResumeContact hands a paused contact back to the automation.
func (h *Handler) ResumeContact(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Identifier string `json:"contact_identifier"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Identifier == "" {
		h.respondError(w, apperrors.NewValidationFailedError("contact_identifier is required"))
		return
	}

	if err := h.gateway.Resume(r.Context(), req.Identifier); err != nil {
		h.respondError(w, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK,
		models.NewSuccessResponse("automation resumed", nil))
}

// GetCampaigns serves the per-template telemetry report.
func (h *Handler) GetCampaigns(w http.ResponseWriter, r *http.Request) {
	stats, err := h.campaigns.Report(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// C2Override executes one console command against the campaign state flag.
// The PIN inside the command body is syntax; the console token header is the
// access-control boundary.
func (h *Handler) C2Override(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("X-Console-Token") != h.consoleToken {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid console token"})
		return
	}

	var req struct {
		Command string `json:"command"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Command == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "command is required"})
		return
	}

	message, err := h.console.Execute(r.Context(), req.Command)
	if err != nil {
		var stdErr *apperrors.StandardError
		if errors.As(err, &stdErr) {
			if stdErr.Code == apperrors.ErrCodeCommandNotRecognized {
				respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Command not recognized."})
				return
			}
			respondJSON(w, stdErr.HTTPStatus(), map[string]string{"error": stdErr.Message})
			return
		}
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "override failed"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": message})
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var stdErr *apperrors.StandardError
	if errors.As(err, &stdErr) {
		h.logger.Warn("request failed", map[string]interface{}{
			"code":    string(stdErr.Code),
			"details": stdErr.Details,
		})
		respondJSON(w, stdErr.HTTPStatus(), map[string]string{"error": stdErr.Message})
		return
	}
	h.logger.Error("request failed", map[string]interface{}{"error": err})
	respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func respondJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

func intPtr(n int) *int { return &n }
