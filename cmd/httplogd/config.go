package main

import (
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Config holds server configuration
type Config struct {
	Port           string  `yaml:"port"`
	EnableTLS      bool    `yaml:"enableTLS"`
	CertFile       string  `yaml:"certFile"`
	KeyFile        string  `yaml:"keyFile"`
	EnableCORS     bool    `yaml:"enableCORS"`
	WhitePatterns  string  `yaml:"whitePatterns"`
	LogResponse    bool    `yaml:"logResp"`
	MaxBodySize    int64   `yaml:"maxBodySize"`
	MaxLogBodySize int64   `yaml:"maxLogBodySize"`
	RateLimitRPS   float64 `yaml:"rateLimitRPS"`
	RateLimitBurst int     `yaml:"rateLimitBurst"`
	Hostname       string  `yaml:"-"`
}

// loadConfig builds the configuration from environment variables, then
// overlays the YAML file named by HTTPLOG_CONFIG_FILE if one is set.
// Keys present in the file win over the environment.
func loadConfig() Config {
	cfg := loadConfigFromEnv()
	if path := getEnv("HTTPLOG_CONFIG_FILE", ""); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("cannot read config file")
			return cfg
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Error().Err(err).Str("file", path).Msg("cannot parse config file")
		}
	}
	return cfg
}

// loadConfigFromEnv builds a Config from environment variables.
func loadConfigFromEnv() Config {
	return Config{
		Port:           getEnv("PORT", "8080"),
		EnableTLS:      getEnv("ENABLE_TLS", "false") == "true",
		CertFile:       getEnv("CERT_FILE", "server.crt"),
		KeyFile:        getEnv("KEY_FILE", "server.key"),
		EnableCORS:     getEnv("ENABLE_CORS", "true") == "true",
		WhitePatterns:  getEnv("WHITE_PATTERNS", ""),
		LogResponse:    getEnv("LOG_RESPONSE", "false") == "true",
		MaxBodySize:    parseInt64(getEnv("MAX_BODY_SIZE", "10485760")),
		MaxLogBodySize: parseInt64(getEnv("MAX_LOG_BODY_SIZE", "0")),
		RateLimitRPS:   parseFloat64(getEnv("RATE_LIMIT_RPS", "0")),
		RateLimitBurst: int(parseInt64(getEnv("RATE_LIMIT_BURST", "0"))),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseInt64(s string) int64 {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	return 0
}

func parseFloat64(s string) float64 {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return 0
}
