package ytserver

import (
	"context"
	"testing"

	"github.com/anatolykoptev/go_youtube/internal/engine"
	"github.com/anatolykoptev/go_youtube/internal/engine/quota"
	"github.com/anatolykoptev/go_youtube/internal/engine/ytapi"
	"github.com/anatolykoptev/go_youtube/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeHandlers(fake *ytapi.Fake) *handlers {
	return &handlers{
		newClient: func() (ytapi.Client, error) { return fake, nil },
		budget:    quota.DefaultBudget,
	}
}

func withChannel() *ytapi.Fake {
	return ytapi.NewFake().Reply(ytapi.OpChannels, ytapi.ChannelResponse("UC1", "Creator", "@creator", "UU1"))
}

func TestRegisterTools(t *testing.T) {
	server := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "0.0.0"}, nil)
	assert.NotPanics(t, func() { RegisterTools(server) })
}

func TestListChannelVideos_Defaults(t *testing.T) {
	fake := withChannel().
		Reply(ytapi.OpPlaylistItems, ytapi.PlaylistItemsResponse("NEXT", "a")).
		Reply(ytapi.OpVideos, ytapi.VideosResponse(ytapi.Video("a", "PT5M", "none", 10)))

	_, out, err := fakeHandlers(fake).listChannelVideos(context.Background(), nil, ChannelVideosInput{
		ChannelRef:    "@creator",
		NextPageToken: "TOKEN",
	})
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	require.NotNil(t, out.NextPageToken)
	assert.Equal(t, "NEXT", *out.NextPageToken)
	assert.Equal(t, out.NextPageToken, out.NextPageTokenAlias)
	assert.Equal(t, quota.StrategyUploads, out.QuotaEstimate.Strategy)
	assert.Equal(t, map[string]string{"strategy": "uploads_playlist", "by": "date"}, out.AppliedOrder)

	pl := fake.CallsTo(ytapi.OpPlaylistItems)
	require.Len(t, pl, 1)
	assert.Equal(t, "TOKEN", pl[0].Params["pageToken"])
}

func TestListChannelVideos_InvalidInputSkipsClient(t *testing.T) {
	tests := []struct {
		name  string
		input ChannelVideosInput
	}{
		{"strategy", ChannelVideosInput{ChannelRef: "@creator", OrderStrategy: "random"}},
		{"order", ChannelVideosInput{ChannelRef: "@creator", OrderBy: "likes"}},
		{"parts", ChannelVideosInput{ChannelRef: "@creator", PartsLevel: "everything"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := &handlers{
				newClient: func() (ytapi.Client, error) { called = true; return ytapi.NewFake(), nil },
				budget:    quota.DefaultBudget,
			}
			_, _, err := h.listChannelVideos(context.Background(), nil, tt.input)
			require.ErrorIs(t, err, engine.ErrInvalidArgument)
			assert.False(t, called)
		})
	}
}

func TestListChannelVideos_MissingKey(t *testing.T) {
	h := &handlers{
		newClient: func() (ytapi.Client, error) { return nil, toolutil.ErrAPIKeyMissing },
		budget:    quota.DefaultBudget,
	}
	_, _, err := h.listChannelVideos(context.Background(), nil, ChannelVideosInput{ChannelRef: "@creator"})
	require.ErrorIs(t, err, toolutil.ErrAPIKeyMissing)
}

func TestSearchChannelVideos(t *testing.T) {
	fake := withChannel().
		Reply(ytapi.OpSearch, ytapi.SearchVideosResponse("", "a", "b")).
		Reply(ytapi.OpVideos, ytapi.VideosResponse(
			ytapi.Video("a", "PT5M", "none", 1),
			ytapi.Video("b", "PT5M", "none", 2),
		))

	_, out, err := fakeHandlers(fake).searchChannelVideos(context.Background(), nil, SearchChannelVideosInput{
		ChannelRef: "@creator",
		Query:      "golang",
	})
	require.NoError(t, err)

	assert.Len(t, out.Items, 2)
	assert.Nil(t, out.NextPageToken)
	assert.Equal(t, map[string]string{"order": "relevance"}, out.AppliedOrder)

	sc := fake.CallsTo(ytapi.OpSearch)
	require.Len(t, sc, 1)
	assert.Equal(t, "golang", sc[0].Params["q"])
	assert.Equal(t, "relevance", sc[0].Params["order"])
}

func TestResolveChannel(t *testing.T) {
	fake := withChannel()

	_, out, err := fakeHandlers(fake).resolveChannel(context.Background(), nil, ResolveChannelInput{ChannelRef: "@creator"})
	require.NoError(t, err)

	require.NotNil(t, out.ChannelID)
	assert.Equal(t, "UC1", *out.ChannelID)
	require.NotNil(t, out.UploadsPlaylistID)
	assert.Equal(t, "UU1", *out.UploadsPlaylistID)
	assert.NotNil(t, out.Candidates)
	assert.Empty(t, out.Candidates)
	assert.NotNil(t, out.Warnings)

	calls := fake.CallsTo(ytapi.OpChannels)
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Part, "contentDetails")
}

func TestResolveChannel_RejectsBadRef(t *testing.T) {
	fake := ytapi.NewFake()
	_, _, err := fakeHandlers(fake).resolveChannel(context.Background(), nil, ResolveChannelInput{ChannelRef: "https://www.youtube.com/channel/"})
	require.ErrorIs(t, err, engine.ErrInvalidArgument)
	assert.Empty(t, fake.Calls())
}

func TestListVideoComments_Defaults(t *testing.T) {
	fake := ytapi.NewFake()

	_, out, err := fakeHandlers(fake).listVideoComments(context.Background(), nil, VideoCommentsInput{
		Video: "https://youtu.be/dQw4w9WgXcQ",
	})
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Zero(t, out.AppliedMaxItems)

	calls := fake.CallsTo(ytapi.OpCommentThreads)
	require.Len(t, calls, 1)
	assert.Equal(t, "dQw4w9WgXcQ", calls[0].Params["videoId"])
	assert.Equal(t, "relevance", calls[0].Params["order"])
	assert.Equal(t, "plainText", calls[0].Params["textFormat"])
	assert.Equal(t, "100", calls[0].Params["maxResults"])
	assert.Equal(t, "snippet", calls[0].Part)
}

func TestListPlaylistVideos(t *testing.T) {
	fake := ytapi.NewFake().
		Reply(ytapi.OpPlaylistItems, ytapi.PlaylistItemsResponse("P2", "a")).
		Reply(ytapi.OpVideos, ytapi.VideosResponse(ytapi.Video("a", "PT5M", "none", 1)))

	_, out, err := fakeHandlers(fake).listPlaylistVideos(context.Background(), nil, PlaylistVideosInput{
		PlaylistID: "PL1",
		PageToken:  "P1",
	})
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)
	require.NotNil(t, out.NextPageToken)
	assert.Equal(t, "P2", *out.NextPageToken)
	assert.Equal(t, 2, out.QuotaEstimate.EstimatedUnits)
}

func TestListChannelPlaylists(t *testing.T) {
	fake := withChannel().Reply(ytapi.OpPlaylists, ytapi.Response{
		"items": []any{map[string]any{"id": "PL1"}},
	})

	_, out, err := fakeHandlers(fake).listChannelPlaylists(context.Background(), nil, ChannelPlaylistsInput{ChannelRef: "UC1234567890abcdef"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "PL1", out.Items[0]["id"])
	assert.Nil(t, out.NextPageToken)
}
