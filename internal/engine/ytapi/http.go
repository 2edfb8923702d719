package ytapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/anatolykoptev/go-kit/strutil"
	"github.com/anatolykoptev/go_youtube/internal/engine"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the fixed Data API v3 root. Requests never target any other host.
const DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

const (
	maxResponseBytes = 16 << 20
	maxErrorBytes    = 64 << 10
	userAgent        = "go_youtube/1.0"
)

// 401/403 reasons that mean the project ran out of quota rather than lacking access.
var quotaReasons = map[string]bool{
	"quotaExceeded":      true,
	"dailyLimitExceeded": true,
}

// 403 reasons that are throttling and worth retrying.
var throttleReasons = map[string]bool{
	"rateLimitExceeded":     true,
	"userRateLimitExceeded": true,
}

// Doer executes HTTP requests (allows injection for testing).
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures the HTTPClient.
type Option func(*HTTPClient)

// WithBaseURL overrides the API root (useful for testing with httptest).
func WithBaseURL(u string) Option {
	return func(c *HTTPClient) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithDoer sets a custom HTTP client.
func WithDoer(d Doer) Option {
	return func(c *HTTPClient) {
		c.doer = d
	}
}

// WithRetry sets the transient-failure retry policy.
func WithRetry(rc engine.RetryConfig) Option {
	return func(c *HTTPClient) {
		c.retry = rc
	}
}

// WithRateLimit caps outgoing requests per second. rps <= 0 disables limiting.
func WithRateLimit(rps float64) Option {
	return func(c *HTTPClient) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// HTTPClient is the production Client: API-key GET requests against DefaultBaseURL
// with failure classification and bounded retries.
type HTTPClient struct {
	apiKey  string
	baseURL string
	doer    Doer
	retry   engine.RetryConfig
	limiter *rate.Limiter
}

// NewHTTPClient creates a Data API client. An empty key is a misconfiguration.
func NewHTTPClient(apiKey string, opts ...Option) (*HTTPClient, error) {
	key := strings.TrimSpace(apiKey)
	if key == "" {
		return nil, &Error{Kind: KindMisconfigured, Message: "API key is required"}
	}
	c := &HTTPClient{
		apiKey:  key,
		baseURL: DefaultBaseURL,
		doer:    &http.Client{Timeout: 10 * time.Second},
		retry:   engine.DefaultRetryConfig,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *HTTPClient) Channels(ctx context.Context, part string, params Params) (Response, error) {
	return c.get(ctx, OpChannels, part, params)
}

func (c *HTTPClient) Playlists(ctx context.Context, part string, params Params) (Response, error) {
	return c.get(ctx, OpPlaylists, part, params)
}

func (c *HTTPClient) PlaylistItems(ctx context.Context, part string, params Params) (Response, error) {
	return c.get(ctx, OpPlaylistItems, part, params)
}

func (c *HTTPClient) Videos(ctx context.Context, part string, params Params) (Response, error) {
	return c.get(ctx, OpVideos, part, params)
}

func (c *HTTPClient) Search(ctx context.Context, part string, params Params) (Response, error) {
	return c.get(ctx, OpSearch, part, params)
}

func (c *HTTPClient) CommentThreads(ctx context.Context, part string, params Params) (Response, error) {
	return c.get(ctx, OpCommentThreads, part, params)
}

func (c *HTTPClient) get(ctx context.Context, op Operation, part string, params Params) (Response, error) {
	if !Allowed(op) {
		return nil, &Error{Kind: KindMisconfigured, Op: op, Message: "operation is not allowlisted"}
	}
	if strings.TrimSpace(part) == "" {
		return nil, &Error{Kind: KindBadRequest, Op: op, Message: "part is required"}
	}

	reqURL := c.buildURL(op, part, params)
	slog.Debug("ytapi: request", slog.String("op", string(op)), slog.String("url", RedactURL(reqURL)))

	attempt := 0
	resp, err := engine.RetryDo(ctx, c.retry, func() (Response, error) {
		attempt++
		if attempt > 1 {
			engine.IncrAPIRetry(string(op))
		}
		return c.once(ctx, op, reqURL)
	})
	if err != nil {
		var apiErr *Error
		if attempt > 1 && errors.As(err, &apiErr) && apiErr.Kind == KindTransient {
			apiErr.Message += " (retries exhausted)"
		}
		return nil, err
	}
	return resp, nil
}

func (c *HTTPClient) buildURL(op Operation, part string, params Params) string {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	q.Set("part", part)
	q.Set("key", c.apiKey)
	return c.baseURL + "/" + string(op) + "?" + q.Encode()
}

// once performs a single attempt. Every error it returns is credential-free.
func (c *HTTPClient) once(ctx context.Context, op Operation, reqURL string) (Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &Error{Kind: KindMisconfigured, Op: op, Message: "cannot build request"}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.doer.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		// *url.Error embeds the full URL (and key); keep only the cause.
		cause := err
		var uerr *url.Error
		if errors.As(err, &uerr) {
			cause = uerr.Err
		}
		return nil, &Error{Kind: KindTransient, Op: op, Message: "network error: " + cause.Error(), Err: cause}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
		return nil, classify(op, resp.StatusCode, extractReason(body))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &Error{Kind: KindTransient, Op: op, Status: resp.StatusCode, Message: "read response: " + err.Error(), Err: err}
	}
	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		slog.Debug("ytapi: undecodable body",
			slog.String("op", string(op)),
			slog.String("body", strutil.TruncateWith(string(body), 200, "...")))
		return nil, &Error{Kind: KindUnexpected, Op: op, Status: resp.StatusCode, Reason: "invalid_json", Message: "invalid JSON response"}
	}
	if out == nil {
		out = Response{}
	}
	return out, nil
}

// classify maps an HTTP failure to an Error kind.
func classify(op Operation, status int, reason string) *Error {
	e := &Error{Op: op, Status: status, Reason: reason}
	switch {
	case status == http.StatusBadRequest:
		e.Kind, e.Message = KindBadRequest, "request rejected"
	case (status == http.StatusUnauthorized || status == http.StatusForbidden) && quotaReasons[reason]:
		e.Kind, e.Message = KindQuotaExceeded, "quota exceeded"
	case status == http.StatusForbidden && throttleReasons[reason]:
		e.Kind, e.Message = KindTransient, "rate limited"
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e.Kind, e.Message = KindAuth, "authorization failed"
	case status == http.StatusNotFound:
		e.Kind, e.Message = KindNotFound, "resource not found"
	case engine.IsRetryableStatus(status):
		e.Kind, e.Message = KindTransient, "transient error"
	default:
		e.Kind, e.Message = KindUnexpected, fmt.Sprintf("request failed (%s)", http.StatusText(status))
	}
	return e
}

type apiErrorBody struct {
	Error struct {
		Errors []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

// extractReason pulls error.errors[0].reason from an error body. Never fails.
func extractReason(body []byte) string {
	var b apiErrorBody
	if err := json.Unmarshal(body, &b); err != nil || len(b.Error.Errors) == 0 {
		return ""
	}
	return b.Error.Errors[0].Reason
}
