package main

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRoutes configures the middleware chain and all HTTP routes. The
// logging middleware sits first so every downstream handler -- including
// the other middleware -- runs inside its capture window.
func setupRoutes() *mux.Router {
	router := mux.NewRouter()

	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)
	router.Use(requestIDMiddleware)
	if rateLimiter != nil {
		router.Use(rateLimitMiddleware)
	}

	// Health check endpoints
	router.HandleFunc("/health", healthHandler).Methods("GET")
	router.HandleFunc("/ready", readyHandler).Methods("GET")

	// Request inspection (returns metadata, not echo)
	router.HandleFunc("/inspect", inspectHandler)

	// WebSocket echo
	router.HandleFunc("/ws", websocketHandler)

	// Prometheus metrics
	router.Handle("/metrics", promhttp.Handler())

	// Everything else is pure echo
	router.PathPrefix("/").HandlerFunc(echoHandler)

	return router
}
