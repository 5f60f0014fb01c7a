package main

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

func main() {
	initializeServer()

	router := setupRoutes()

	// Wrap the router with h2c to support HTTP/2 over cleartext
	handler := h2c.NewHandler(router, &http2.Server{})

	configLock.RLock()
	port := config.Port
	configLock.RUnlock()

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Info().Str("port", port).Msg("httplogd starting")
	if err := startServer(server); err != nil {
		log.Fatal().Err(err).Msg("server failed to start")
	}
}
