package cmd

import (
	"fmt"
	"net/http"
	"time"

	"cosmossdk.io/log"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewMetricsRouter routes /metrics to the prometheus handler and /health to a
// liveness probe. provd runs no ledger, so /metrics carries the default
// registry's Go runtime and process collectors only.
func NewMetricsRouter() *mux.Router {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	return router
}

// StartPrometheusServer serves NewMetricsRouter on the given port in a
// background goroutine. Errors after startup are logged, not fatal.
func StartPrometheusServer(port int, logger log.Logger) *http.Server {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           NewMetricsRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("prometheus server error", "addr", server.Addr, "err", err)
		}
	}()

	logger.Info("serving metrics", "addr", server.Addr)
	return server
}
