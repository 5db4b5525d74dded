// internal/api/monitor.go
package api

import (
	"net/http"
	"time"

	apperrors "leadops/internal/common/errors"
	"leadops/internal/models"
)

// monitorWindow is the fixed lookback for the monitor dashboard.
const monitorWindow = 24 * time.Hour

// MonitorReport is the cross-subsystem counter snapshot the dashboard polls.
type MonitorReport struct {
	WindowHours    int            `json:"window_hours"`
	CampaignMode   string         `json:"campaign_mode"`
	TouchesSent    int            `json:"touches_sent"`
	TouchesFailed  int            `json:"touches_failed"`
	TouchStatuses  map[string]int `json:"touch_statuses"`
	NewBids        int            `json:"new_bids"`
	NewEstateSales int            `json:"new_estate_sales"`
	GeneratedAt    time.Time      `json:"generated_at"`
}

// GetMonitor serves last-24h counters across subsystems.
func (h *Handler) GetMonitor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	since := time.Now().UTC().Add(-monitorWindow)

	statuses, err := h.touches.StatusCountsSince(ctx, since)
	if err != nil {
		h.respondError(w, apperrors.NewQueryExecutionFailedError("touch_counts", err))
		return
	}
	newBids, err := h.opportunities.CountBidsSince(ctx, since)
	if err != nil {
		h.respondError(w, apperrors.NewQueryExecutionFailedError("bid_counts", err))
		return
	}
	newSales, err := h.opportunities.CountEstateSalesSince(ctx, since)
	if err != nil {
		h.respondError(w, apperrors.NewQueryExecutionFailedError("sale_counts", err))
		return
	}

	// Campaign mode is best-effort on the monitor; a missing row reads as
	// the default working state rather than an error banner.
	mode := models.CampaignModeWorking
	if state, err := h.console.CurrentMode(ctx); err == nil && state != "" {
		mode = state
	}

	report := MonitorReport{
		WindowHours:    int(monitorWindow.Hours()),
		CampaignMode:   mode,
		TouchStatuses:  statuses,
		NewBids:        newBids,
		NewEstateSales: newSales,
		GeneratedAt:    time.Now().UTC(),
	}
	for status, n := range statuses {
		if status == models.StatusFailed || status == models.StatusFailedNoChannel {
			report.TouchesFailed += n
		} else {
			report.TouchesSent += n
		}
	}

	respondJSON(w, http.StatusOK, report)
}

// Healthz verifies the backing stores are reachable.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	for _, p := range h.pingers {
		if err := p.Ping(r.Context()); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
