package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// trafficSink receives the one finished record per request. Operational
// messages go through the regular zerolog logger; traffic records get a
// dedicated logger so the two channels can be separated downstream.
// Tests swap the sink to capture records.
var trafficSink func(record string)

func setupLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	trafficLogger := log.With().Str("channel", "http.traffic").Logger()
	trafficSink = func(record string) {
		trafficLogger.Info().Msg(record)
	}
}
