package ytapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/anatolykoptev/go_youtube/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "AIzaSecretTestKey123"

var fastRetry = engine.RetryConfig{MaxRetries: 2, InitialWait: time.Millisecond, MaxWait: 5 * time.Millisecond, Multiplier: 2}

func newTestClient(t *testing.T, h http.HandlerFunc) (*HTTPClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewHTTPClient(testKey, WithBaseURL(srv.URL), WithRetry(fastRetry))
	require.NoError(t, err)
	return c, srv
}

func writeAPIError(w http.ResponseWriter, status int, reason string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"code":   status,
			"errors": []map[string]any{{"reason": reason, "domain": "youtube.quota"}},
		},
	})
}

func TestNewHTTPClient_RequiresKey(t *testing.T) {
	_, err := NewHTTPClient("   ")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindMisconfigured))
}

func TestHTTPClient_SendsPartKeyAndParams(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":"UC123"}],"nextPageToken":"NEXT"}`))
	})

	resp, err := c.Channels(context.Background(), "snippet,id", Params{"forHandle": "@google"})
	require.NoError(t, err)

	assert.Equal(t, "/channels", gotPath)
	assert.Equal(t, []string{"snippet,id"}, gotQuery["part"])
	assert.Equal(t, []string{testKey}, gotQuery["key"])
	assert.Equal(t, []string{"@google"}, gotQuery["forHandle"])
	assert.Len(t, resp.Items(), 1)
	assert.Equal(t, "NEXT", resp.NextPageToken())
}

func TestHTTPClient_EmptyPartIsBadRequest(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	})

	_, err := c.Videos(context.Background(), " ", Params{"id": "abc"})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindBadRequest))
	assert.Zero(t, hits.Load(), "no request should be sent")
}

func TestHTTPClient_Classification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		reason string
		want   Kind
	}{
		{"bad request", 400, "invalidParameter", KindBadRequest},
		{"quota exceeded", 403, "quotaExceeded", KindQuotaExceeded},
		{"daily limit", 403, "dailyLimitExceeded", KindQuotaExceeded},
		{"forbidden", 403, "forbidden", KindAuth},
		{"comments disabled", 403, "commentsDisabled", KindAuth},
		{"unauthorized", 401, "keyInvalid", KindAuth},
		{"not found", 404, "channelNotFound", KindNotFound},
		{"teapot", 418, "", KindUnexpected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				writeAPIError(w, tt.status, tt.reason)
			})

			_, err := c.Search(context.Background(), "snippet", Params{"q": "go"})
			require.Error(t, err)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.want, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.reason, apiErr.Reason)
			assert.Equal(t, OpSearch, apiErr.Op)
			assert.EqualValues(t, 1, hits.Load(), "non-transient failures are not retried")
			assert.NotContains(t, err.Error(), testKey)
		})
	}
}

func TestHTTPClient_RetriesTransientThenSucceeds(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			writeAPIError(w, http.StatusServiceUnavailable, "backendError")
			return
		}
		_, _ = w.Write([]byte(`{"items":[]}`))
	})

	resp, err := c.PlaylistItems(context.Background(), "snippet", Params{"playlistId": "UU1"})
	require.NoError(t, err)
	assert.Empty(t, resp.Items())
	assert.EqualValues(t, 3, hits.Load())
}

func TestHTTPClient_RetriesExhausted(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeAPIError(w, http.StatusTooManyRequests, "")
	})

	_, err := c.Videos(context.Background(), "snippet", Params{"id": "a"})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindTransient))
	assert.Contains(t, err.Error(), "retries exhausted")
	assert.EqualValues(t, 3, hits.Load(), "initial attempt + 2 retries")
}

func TestHTTPClient_NoRetriesNotMarkedExhausted(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeAPIError(w, http.StatusServiceUnavailable, "backendError")
	}))
	t.Cleanup(srv.Close)

	noRetry := fastRetry
	noRetry.MaxRetries = 0
	c, err := NewHTTPClient(testKey, WithBaseURL(srv.URL), WithRetry(noRetry))
	require.NoError(t, err)

	_, err = c.Videos(context.Background(), "snippet", Params{"id": "a"})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindTransient))
	assert.NotContains(t, err.Error(), "retries exhausted")
	assert.EqualValues(t, 1, hits.Load())
}

func TestHTTPClient_NetworkErrorHidesURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	c, err := NewHTTPClient(testKey, WithBaseURL(base), WithRetry(fastRetry))
	require.NoError(t, err)

	_, err = c.CommentThreads(context.Background(), "snippet", Params{"videoId": "abc"})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindTransient))
	assert.NotContains(t, err.Error(), testKey)
	assert.NotContains(t, err.Error(), "key=")
}

func TestHTTPClient_InvalidJSON(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	})

	_, err := c.Playlists(context.Background(), "snippet", Params{"channelId": "UC1"})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindUnexpected))
}

func TestHTTPClient_ContextCanceled(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusServiceUnavailable, "")
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Channels(ctx, "id", Params{"id": "UC1"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestExtractReason(t *testing.T) {
	assert.Equal(t, "quotaExceeded", extractReason([]byte(`{"error":{"errors":[{"reason":"quotaExceeded"}]}}`)))
	assert.Equal(t, "", extractReason([]byte(`{"error":{}}`)))
	assert.Equal(t, "", extractReason([]byte(`garbage`)))
}

func TestInvoke_RejectsUnknownOperation(t *testing.T) {
	_, err := Invoke(context.Background(), NewFake(), Operation("activities"), "snippet", nil)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindMisconfigured))
	assert.True(t, strings.Contains(err.Error(), "not allowlisted"))
}
