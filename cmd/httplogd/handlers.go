package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"runtime"
	"sort"
	"strings"
	"time"
)

// echoHandler is the demo downstream target the logging layer fronts. It
// echoes the request body back with the request's content type; a GET
// with no body gets a plain-text description of the request instead.
func echoHandler(w http.ResponseWriter, r *http.Request) {
	configLock.RLock()
	maxBodySize := config.MaxBodySize
	configLock.RUnlock()

	var body []byte
	if r.Body != nil {
		b, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
		if err != nil {
			http.Error(w, "Error reading body: "+err.Error(), http.StatusBadRequest)
			return
		}
		body = b
	}

	if r.Method == "GET" && len(body) == 0 {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(requestInfoText(r)))
		return
	}

	if contentType := r.Header.Get("Content-Type"); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	} else {
		w.Header().Set("Content-Type", "text/plain")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// requestInfoText describes the request for bodyless GETs.
func requestInfoText(r *http.Request) string {
	var response strings.Builder
	response.WriteString(fmt.Sprintf("%s %s %s\n", r.Method, r.RequestURI, r.Proto))
	response.WriteString(fmt.Sprintf("Host: %s\n", r.Host))
	var headerNames []string
	for name := range r.Header {
		headerNames = append(headerNames, name)
	}
	sort.Strings(headerNames)
	for _, name := range headerNames {
		for _, value := range r.Header[name] {
			response.WriteString(fmt.Sprintf("%s: %s\n", name, value))
		}
	}
	response.WriteString(fmt.Sprintf("\nClient-IP: %s\n", getClientIP(r)))
	response.WriteString(fmt.Sprintf("Timestamp: %s\n", time.Now().Format(time.RFC3339)))
	return response.String()
}

// Health check handlers
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now(),
		"uptime":    time.Since(startTime).String(),
	})
}

func readyHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
}

// inspectHandler returns request metadata as JSON.
func inspectHandler(w http.ResponseWriter, r *http.Request) {
	configLock.RLock()
	maxBodySize := config.MaxBodySize
	hostname := config.Hostname
	configLock.RUnlock()

	var body []byte
	if r.Body != nil {
		body, _ = io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"timestamp":    time.Now(),
		"method":       r.Method,
		"url":          r.RequestURI,
		"path":         r.URL.Path,
		"query":        r.URL.Query(),
		"headers":      r.Header,
		"body_size":    len(body),
		"remote_addr":  getClientIP(r),
		"user_agent":   r.UserAgent(),
		"content_type": r.Header.Get("Content-Type"),
		"protocol":     r.Proto,
		"tls":          r.TLS != nil,
		"request_id":   r.Header.Get("X-Request-ID"),
		"server": map[string]interface{}{
			"hostname":   hostname,
			"go_version": runtime.Version(),
			"platform":   runtime.GOOS + "/" + runtime.GOARCH,
			"start_time": startTime,
			"uptime":     time.Since(startTime).String(),
		},
	})
}

// Helper functions
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
