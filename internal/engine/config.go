package engine

import (
	"net/http"
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	YouTubeAPIKey  string
	YouTubeAPIBase string        // empty = https://www.googleapis.com/youtube/v3
	HTTPTimeout    time.Duration // per backend call
	RequestsPerSec float64       // client-side rate limit, 0 = unlimited
	Retry          RetryConfig
	MaxVideos      int // default budget: item ceiling per tool call
	MaxPages       int // default budget: page ceiling per tool call
	MaxQuotaUnits  int // default budget: cost-unit ceiling per tool call
	HTTPClient     *http.Client
}

var cfg Config

// Cfg exposes the engine configuration for the tool layer.
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
}
