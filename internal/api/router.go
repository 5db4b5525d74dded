// internal/api/router.go
package api

import (
	"net/http"

	"leadops/internal/common/logger"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the console routes.
func NewRouter(h *Handler, log logger.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(LoggingMiddleware(log))
	router.Use(MetricsMiddleware)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/bids", h.GetBids).Methods(http.MethodGet)
	api.HandleFunc("/intents", h.GetIntents).Methods(http.MethodGet)
	api.HandleFunc("/manual-override", h.ManualOverride).Methods(http.MethodPost)
	api.HandleFunc("/contacts/resume", h.ResumeContact).Methods(http.MethodPost)
	api.HandleFunc("/monitor", h.GetMonitor).Methods(http.MethodGet)
	api.HandleFunc("/campaigns", h.GetCampaigns).Methods(http.MethodGet)
	api.HandleFunc("/c2-override", h.C2Override).Methods(http.MethodPost)

	router.HandleFunc("/healthz", h.Healthz).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return router
}
