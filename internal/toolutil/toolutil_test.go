package toolutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anatolykoptev/go_youtube/internal/engine"
	"github.com/anatolykoptev/go_youtube/internal/engine/listing"
	"github.com/anatolykoptev/go_youtube/internal/engine/quota"
	"github.com/anatolykoptev/go_youtube/internal/engine/ytapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withConfig(t *testing.T, c engine.Config) {
	t.Helper()
	prev := *engine.Cfg
	engine.Init(c)
	t.Cleanup(func() { engine.Init(prev) })
}

func TestAPIKey(t *testing.T) {
	tests := []struct {
		key     string
		want    string
		wantErr error
	}{
		{"", "", ErrAPIKeyMissing},
		{"   ", "", ErrAPIKeyMissing},
		{"${YOUTUBE_API_KEY}", "", ErrAPIKeyPlaceholder},
		{" AIzaKey ", "AIzaKey", nil},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			withConfig(t, engine.Config{YouTubeAPIKey: tt.key})
			got, err := APIKey()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewClient_UsesConfig(t *testing.T) {
	var gotKey, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":"UC1"}]}`))
	}))
	defer srv.Close()

	withConfig(t, engine.Config{
		YouTubeAPIKey:  "AIzaConfigured",
		YouTubeAPIBase: srv.URL,
		HTTPTimeout:    time.Second,
	})

	client, err := NewClient()
	require.NoError(t, err)

	resp, err := client.Channels(context.Background(), "id", ytapi.Params{"id": "UC1"})
	require.NoError(t, err)
	assert.Len(t, resp.Items(), 1)
	assert.Equal(t, "AIzaConfigured", gotKey)
	assert.Equal(t, "/channels", gotPath)
}

func TestNewClient_MissingKey(t *testing.T) {
	withConfig(t, engine.Config{})
	_, err := NewClient()
	require.ErrorIs(t, err, ErrAPIKeyMissing)
}

func TestBudget(t *testing.T) {
	withConfig(t, engine.Config{})
	assert.Equal(t, quota.DefaultBudget(), Budget())

	withConfig(t, engine.Config{MaxVideos: 20, MaxQuotaUnits: 50})
	assert.Equal(t, quota.Budget{MaxItems: 20, MaxPages: 10, MaxCostUnits: 50}, Budget())
}

func TestInputHelpers(t *testing.T) {
	assert.Equal(t, "a", PageToken("a", "b"))
	assert.Equal(t, "b", PageToken(" ", "b"))
	assert.Empty(t, PageToken("", ""))

	assert.Equal(t, 7, IntOr(0, 7))
	assert.Equal(t, 3, IntOr(3, 7))

	f := false
	assert.True(t, BoolOr(nil, true))
	assert.False(t, BoolOr(&f, true))
}

func TestNewPageOutput(t *testing.T) {
	out := NewPageOutput(listing.Page[ytapi.Resource]{
		QuotaEstimate:   quota.Estimate{EstimatedUnits: 2, Strategy: quota.StrategyUploads},
		AppliedMaxItems: 0,
	})
	assert.NotNil(t, out.Items)
	assert.Empty(t, out.Items)
	assert.Nil(t, out.NextPageToken)
	assert.Nil(t, out.NextPageTokenAlias)
	assert.NotNil(t, out.QuotaEstimate.Notes)

	out = NewPageOutput(listing.Page[ytapi.Resource]{NextPageToken: "NEXT", Truncated: true})
	require.NotNil(t, out.NextPageToken)
	assert.Equal(t, "NEXT", *out.NextPageToken)
	assert.Equal(t, "NEXT", *out.NextPageTokenAlias)
	assert.True(t, out.Truncated)
}
