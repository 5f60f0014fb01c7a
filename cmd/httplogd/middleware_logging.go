package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// loggingMiddleware records request and response traffic around the
// downstream handler: it snapshots the request (method, URL, query,
// headers, JSON body), invokes the handler exactly once, and emits a
// single record with timing once the handler has returned -- success,
// failure, or panic. A panicking handler is logged and then re-panicked
// with the original value so callers observe the failure unchanged.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		configLock.RLock()
		logResp := config.LogResponse
		maxLogBody := config.MaxLogBodySize
		configLock.RUnlock()

		// Response bodies are retained only when the global flag or the
		// white pattern set asks for this path; everything else gets a
		// status-only wrap with no buffering cost.
		captureBody := logResp || pathInWhitelist(r.URL.Path)
		capture, wrapped := newCaptureWriter(w, captureBody)

		snapshot := newRequestSnapshot(r)

		contentType := r.Header.Get("Content-Type")
		switch {
		case strings.HasPrefix(contentType, "application/json"):
			body, err := newBufferedBody(r.Body)
			if err != nil {
				log.Error().Err(err).Msg("error buffering request body")
				captureErrors.WithLabelValues("buffer").Inc()
				http.Error(w, "cannot read request body", http.StatusInternalServerError)
				return
			}
			snapshot.appendBody(truncateForLog(body.text(), maxLogBody))
			// The downstream handler reads its own independent cursor.
			r.Body = body.stream()
		case strings.HasPrefix(contentType, "multipart/form-data"):
			// Draining a multipart body here would break form parsing for
			// the real handler; record the marker only.
			snapshot.appendMarker(multipartMarker)
		}

		start := time.Now()
		defer func() {
			rec := recover()
			if rec != nil {
				log.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("panic from downstream handler")
			}
			end := time.Now()
			emitTrafficRecord(snapshot, capture, start, end, captureBody, maxLogBody)
			requestLatency.Observe(end.Sub(start).Seconds())
			requestTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(capture.status())).Inc()
			if rec != nil {
				panic(rec)
			}
		}()
		next.ServeHTTP(wrapped, r)
	})
}

// emitTrafficRecord hands exactly one finished record to the traffic
// sink. A failure while reading the captured response text is logged and
// the record is emitted without the response section; it never escapes to
// the request path.
func emitTrafficRecord(snapshot *requestSnapshot, capture *responseCapture, start, end time.Time, captureBody bool, maxLogBody int64) {
	timing := fmt.Sprintf("start time %d --> end time %d, cost: %d",
		start.UnixMilli(), end.UnixMilli(), end.Sub(start).Milliseconds())

	if !captureBody {
		trafficSink(snapshot.render() + timing + "\n")
		return
	}

	responseText, ok := safeCapturedText(capture)
	if !ok {
		trafficSink(snapshot.render() + timing + "\n")
		return
	}
	trafficSink(snapshot.render() + timing + "\nresponse info: " + truncateForLog(responseText, maxLogBody) + "\n")
}

func safeCapturedText(capture *responseCapture) (text string, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Msg("error reading captured response")
			captureErrors.WithLabelValues("response_text").Inc()
			ok = false
		}
	}()
	return capture.capturedText(), true
}

// truncateForLog bounds how much body text enters a log record. The
// delivered bytes are never truncated, only their logged copy. A limit of
// zero means unlimited.
func truncateForLog(s string, limit int64) string {
	if limit > 0 && int64(len(s)) > limit {
		return s[:limit]
	}
	return s
}
