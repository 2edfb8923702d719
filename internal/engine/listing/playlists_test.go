package listing

import (
	"context"
	"testing"

	"github.com/anatolykoptev/go_youtube/internal/engine"
	"github.com/anatolykoptev/go_youtube/internal/engine/quota"
	"github.com/anatolykoptev/go_youtube/internal/engine/ytapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelPlaylistsPage(t *testing.T) {
	playlists := ytapi.Response{
		"items":         []any{map[string]any{"id": "PL1"}, map[string]any{"id": "PL2"}},
		"nextPageToken": "N",
	}
	fake := withChannel().Reply(ytapi.OpPlaylists, playlists)

	opts := Options{ChannelRef: handle, PageToken: "P", Budget: quota.DefaultBudget()}
	page, err := ChannelPlaylistsPage(context.Background(), fake, opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"PL1", "PL2"}, itemIDs(page.Items))
	assert.Equal(t, "N", page.NextPageToken)
	assert.Equal(t, 2, page.AppliedMaxItems)
	assert.Equal(t, quota.StrategyDirect, page.QuotaEstimate.Strategy)
	assert.Equal(t, 1, page.QuotaEstimate.EstimatedUnits)

	calls := fake.CallsTo(ytapi.OpPlaylists)
	require.Len(t, calls, 1)
	assert.Equal(t, ytapi.Params{"channelId": "UC1", "maxResults": "50", "pageToken": "P"}, calls[0].Params)
}

func TestPlaylistVideosPage(t *testing.T) {
	fake := ytapi.NewFake().
		Reply(ytapi.OpPlaylistItems, ytapi.PlaylistItemsResponse("N", "a", "b", "c")).
		Reply(ytapi.OpVideos, ytapi.VideosResponse(
			ytapi.Video("a", "PT30S", "none", 1),
			ytapi.Video("b", "PT5M", "none", 2),
		))

	page, err := PlaylistVideosPage(context.Background(), fake, PlaylistOptions{
		PlaylistID:  "PL1",
		MaxItems:    2,
		IncludeLive: true,
		Parts:       PartsFull,
		Budget:      quota.DefaultBudget(),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"b"}, itemIDs(page.Items))
	assert.True(t, page.Truncated)
	assert.Equal(t, "N", page.NextPageToken)
	assert.Equal(t, 2, page.QuotaEstimate.EstimatedUnits)
	assert.Empty(t, fake.CallsTo(ytapi.OpChannels))

	vc := fake.CallsTo(ytapi.OpVideos)
	require.Len(t, vc, 1)
	assert.Equal(t, "a,b", vc[0].Params["id"])
	assert.Contains(t, vc[0].Part, "liveStreamingDetails")
}

func TestPlaylistVideosPage_Validation(t *testing.T) {
	tests := []struct {
		name string
		opts PlaylistOptions
	}{
		{"missing id", PlaylistOptions{MaxItems: 5, Parts: PartsBasic, Budget: quota.DefaultBudget()}},
		{"zero max", PlaylistOptions{PlaylistID: "PL", Parts: PartsBasic, Budget: quota.DefaultBudget()}},
		{"bad parts", PlaylistOptions{PlaylistID: "PL", MaxItems: 5, Parts: "all", Budget: quota.DefaultBudget()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := ytapi.NewFake()
			_, err := PlaylistVideosPage(context.Background(), fake, tt.opts)
			require.ErrorIs(t, err, engine.ErrInvalidArgument)
			assert.Empty(t, fake.Calls())
		})
	}

	fake := ytapi.NewFake()
	_, err := PlaylistVideosPage(context.Background(), fake, PlaylistOptions{
		PlaylistID: "PL", MaxItems: 5, Parts: PartsBasic,
		Budget: quota.Budget{MaxItems: 5, MaxPages: 1, MaxCostUnits: 1},
	})
	require.ErrorIs(t, err, quota.ErrBudgetExceeded)
	assert.Empty(t, fake.Calls())
}

func TestCommentThreadsPage(t *testing.T) {
	threads := ytapi.Response{"items": []any{map[string]any{"id": "T1"}, "junk"}}
	fake := ytapi.NewFake().Reply(ytapi.OpCommentThreads, threads)

	page, err := CommentThreadsPage(context.Background(), fake, CommentOptions{
		VideoID:        "dQw4w9WgXcQ",
		MaxThreads:     500,
		Order:          CommentsByRelevance,
		IncludeReplies: true,
		Budget:         quota.DefaultBudget(),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"T1"}, itemIDs(page.Items))
	assert.Empty(t, page.NextPageToken)
	assert.Equal(t, 1, page.AppliedMaxItems)

	calls := fake.CallsTo(ytapi.OpCommentThreads)
	require.Len(t, calls, 1)
	assert.Equal(t, "snippet,replies", calls[0].Part)
	assert.Equal(t, ytapi.Params{
		"videoId":    "dQw4w9WgXcQ",
		"maxResults": "100",
		"order":      "relevance",
		"textFormat": "plainText",
	}, calls[0].Params)
}

func TestCommentThreadsPage_Validation(t *testing.T) {
	base := CommentOptions{VideoID: "v", MaxThreads: 10, Budget: quota.DefaultBudget()}

	bad := []func(*CommentOptions){
		func(o *CommentOptions) { o.VideoID = " " },
		func(o *CommentOptions) { o.MaxThreads = 0 },
		func(o *CommentOptions) { o.Order = "newest" },
		func(o *CommentOptions) { o.TextFormat = "markdown" },
	}
	for _, mutate := range bad {
		opts := base
		mutate(&opts)
		fake := ytapi.NewFake()
		_, err := CommentThreadsPage(context.Background(), fake, opts)
		require.ErrorIs(t, err, engine.ErrInvalidArgument)
		assert.Empty(t, fake.Calls())
	}
}
