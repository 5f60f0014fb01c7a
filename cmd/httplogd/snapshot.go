package main

import (
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

const multipartMarker = "[multipart/form-data]"

// requestSnapshot accumulates the textual description of one request:
// client address, method, URL, encoded query parameters, headers and,
// depending on content type, the body or a marker. It is built fresh per
// request, owned by the logging middleware, and discarded after the
// record is emitted.
//
// Each collect step recovers from its own failure, so one bad field
// yields a partial snapshot instead of aborting the request.
type requestSnapshot struct {
	b strings.Builder
}

func newRequestSnapshot(r *http.Request) *requestSnapshot {
	s := &requestSnapshot{}
	s.collectBaseInfo(r)
	s.collectHeaders(r)
	return s
}

func (s *requestSnapshot) collectBaseInfo(r *http.Request) {
	defer recoverCollect("base_info")
	s.b.WriteString("\nip: ")
	s.b.WriteString(r.RemoteAddr)
	s.b.WriteByte('\n')
	s.b.WriteString(r.Method)
	s.b.WriteByte(' ')
	s.b.WriteString(requestURL(r))
	s.b.WriteByte('?')
	s.collectQuery(r)
	s.b.WriteByte('\n')
}

// collectQuery renders query parameters as key=value pairs joined by "&".
// Values are percent-encoded; multiple values for one key are rendered as
// a bracketed list before encoding, so ?a=1&a=2 becomes a=%5B1%2C+2%5D.
// Keys are sorted only to make the output stable; order carries no
// meaning.
func (s *requestSnapshot) collectQuery(r *http.Request) {
	defer recoverCollect("query")
	query := r.URL.Query()
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for i, k := range keys {
		if i > 0 {
			s.b.WriteByte('&')
		}
		s.b.WriteString(k)
		s.b.WriteByte('=')
		s.b.WriteString(url.QueryEscape(renderValues(query[k])))
	}
}

// collectHeaders writes one "name: value" line per header. content-length
// is excluded: it goes stale once the body has been re-buffered and would
// only mislead whoever reads the log.
func (s *requestSnapshot) collectHeaders(r *http.Request) {
	defer recoverCollect("headers")
	names := make([]string, 0, len(r.Header))
	for name := range r.Header {
		if strings.EqualFold(name, "content-length") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s.b.WriteString(name)
		s.b.WriteString(": ")
		s.b.WriteString(strings.Join(r.Header[name], ", "))
		s.b.WriteByte('\n')
	}
	s.b.WriteByte('\n')
}

// appendBody adds the raw request body text to the snapshot.
func (s *requestSnapshot) appendBody(body string) {
	s.b.WriteString(body)
	s.b.WriteByte('\n')
}

// appendMarker adds a fixed body-type marker in place of a body.
func (s *requestSnapshot) appendMarker(marker string) {
	s.b.WriteString(marker)
	s.b.WriteByte('\n')
}

func (s *requestSnapshot) render() string {
	return s.b.String()
}

// requestURL rebuilds the full request URL without its query string.
func requestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.Path
}

func renderValues(values []string) string {
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	default:
		return "[" + strings.Join(values, ", ") + "]"
	}
}

// recoverCollect is the shared failure guard for snapshot collection:
// log the panic, count it, and let the request carry on with whatever
// was gathered so far.
func recoverCollect(stage string) {
	if rec := recover(); rec != nil {
		log.Error().Interface("panic", rec).Str("stage", stage).Msg("error collecting request info")
		captureErrors.WithLabelValues(stage).Inc()
	}
}
