package main

import (
	"os"
	"regexp"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

var (
	configLock sync.RWMutex
	config     Config
	startTime  time.Time

	// whitePatterns and rateLimiter are written here once, before the
	// server accepts traffic, and only read afterwards.
	whitePatterns []*regexp.Regexp
	rateLimiter   *rate.Limiter
)

// initializeServer performs explicit startup initialization: logging,
// configuration, the compiled white pattern set, the rate limiter, and
// metric registration. It must complete before any request is served.
func initializeServer() {
	startTime = time.Now()
	setupLogging()

	cfg := loadConfig()
	configLock.Lock()
	config = cfg
	if hostname, _ := os.Hostname(); hostname != "" {
		config.Hostname = hostname
	}
	configLock.Unlock()

	configLock.RLock()
	patterns := config.WhitePatterns
	rps := config.RateLimitRPS
	burst := config.RateLimitBurst
	configLock.RUnlock()

	whitePatterns = compileWhitePatterns(patterns)

	if rps > 0 && burst > 0 {
		rateLimiter = rate.NewLimiter(rate.Limit(rps), burst)
	}

	registerPrometheusMetrics()
}
