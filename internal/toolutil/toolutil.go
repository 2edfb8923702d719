// Package toolutil provides shared helpers for the YouTube MCP tools:
// client construction from engine config, per-call budgets, input aliases
// and page-to-output mapping.
package toolutil

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/anatolykoptev/go_youtube/internal/engine"
	"github.com/anatolykoptev/go_youtube/internal/engine/listing"
	"github.com/anatolykoptev/go_youtube/internal/engine/quota"
	"github.com/anatolykoptev/go_youtube/internal/engine/ytapi"
)

// ErrAPIKeyMissing is returned when YOUTUBE_API_KEY is not configured.
var ErrAPIKeyMissing = errors.New("YOUTUBE_API_KEY not configured")

// ErrAPIKeyPlaceholder is returned for keys like "${YOUTUBE_API_KEY}" that the
// MCP host passed through without interpolation.
var ErrAPIKeyPlaceholder = errors.New("YOUTUBE_API_KEY appears to be an unexpanded placeholder (e.g. '${YOUTUBE_API_KEY}'); " +
	"your MCP host likely does not interpolate env vars in its config. " +
	"Set YOUTUBE_API_KEY in the host process environment, a .env file, or paste the key directly")

// APIKey returns the configured key or explains why it is unusable.
func APIKey() (string, error) {
	key := strings.TrimSpace(engine.Cfg.YouTubeAPIKey)
	if key == "" {
		return "", ErrAPIKeyMissing
	}
	if strings.HasPrefix(key, "${") && strings.HasSuffix(key, "}") {
		return "", ErrAPIKeyPlaceholder
	}
	return key, nil
}

// NewClient builds the production Data API client from engine.Cfg, wrapped
// with credential redaction and tracing/metrics.
func NewClient() (ytapi.Client, error) {
	key, err := APIKey()
	if err != nil {
		return nil, err
	}

	cfg := engine.Cfg
	doer := cfg.HTTPClient
	if doer == nil {
		timeout := cfg.HTTPTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		doer = &http.Client{Timeout: timeout}
	}
	retry := cfg.Retry
	if retry.Multiplier <= 0 {
		retry = engine.DefaultRetryConfig
	}

	opts := []ytapi.Option{
		ytapi.WithDoer(doer),
		ytapi.WithRetry(retry),
		ytapi.WithRateLimit(cfg.RequestsPerSec),
	}
	if cfg.YouTubeAPIBase != "" {
		opts = append(opts, ytapi.WithBaseURL(cfg.YouTubeAPIBase))
	}

	hc, err := ytapi.NewHTTPClient(key, opts...)
	if err != nil {
		return nil, err
	}
	return ytapi.WithObservability(ytapi.WithRedaction(hc, key), nil), nil
}

// Budget returns the per-call budget from engine.Cfg, falling back to the
// defaults for unset values.
func Budget() quota.Budget {
	b := quota.DefaultBudget()
	if engine.Cfg.MaxVideos > 0 {
		b.MaxItems = engine.Cfg.MaxVideos
	}
	if engine.Cfg.MaxPages > 0 {
		b.MaxPages = engine.Cfg.MaxPages
	}
	if engine.Cfg.MaxQuotaUnits > 0 {
		b.MaxCostUnits = engine.Cfg.MaxQuotaUnits
	}
	return b
}

// PageToken resolves the page_token input and its next_page_token alias.
// The primary field wins when both are set.
func PageToken(pageToken, alias string) string {
	if t := strings.TrimSpace(pageToken); t != "" {
		return t
	}
	return strings.TrimSpace(alias)
}

// IntOr returns v, or def when v is zero.
func IntOr(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// BoolOr returns *v, or def when v is nil.
func BoolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// PageOutput is the uniform tool result for every listing tool.
// The continuation token is emitted under both keys and is null when the
// backend reported no further pages.
type PageOutput struct {
	Items              []ytapi.Resource  `json:"items"`
	NextPageToken      *string           `json:"nextPageToken"`
	NextPageTokenAlias *string           `json:"next_page_token"`
	QuotaEstimate      quota.Estimate    `json:"quotaEstimate"`
	Truncated          bool              `json:"truncated"`
	AppliedMaxItems    int               `json:"appliedMaxItems"`
	AppliedOrder       map[string]string `json:"appliedOrder,omitempty"`
}

// NewPageOutput maps a listing page to tool output.
func NewPageOutput(p listing.Page[ytapi.Resource]) PageOutput {
	items := p.Items
	if items == nil {
		items = []ytapi.Resource{}
	}
	est := p.QuotaEstimate
	if est.Notes == nil {
		est.Notes = []string{}
	}
	return PageOutput{
		Items:              items,
		NextPageToken:      Nullable(p.NextPageToken),
		NextPageTokenAlias: Nullable(p.NextPageToken),
		QuotaEstimate:      est,
		Truncated:          p.Truncated,
		AppliedMaxItems:    p.AppliedMaxItems,
	}
}

// Nullable returns nil for "" so the field serializes as JSON null.
func Nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
