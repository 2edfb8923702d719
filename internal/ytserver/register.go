// Package ytserver registers the YouTube Data API tools on an MCP server.
package ytserver

import (
	"context"
	"log/slog"

	"github.com/anatolykoptev/go_youtube/internal/engine"
	"github.com/anatolykoptev/go_youtube/internal/engine/quota"
	"github.com/anatolykoptev/go_youtube/internal/engine/ytapi"
	"github.com/anatolykoptev/go_youtube/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolCount is the number of tools RegisterTools adds.
const ToolCount = 6

// handlers carries the per-call dependencies so tests can swap the backend.
type handlers struct {
	newClient func() (ytapi.Client, error)
	budget    func() quota.Budget
}

// RegisterTools registers all YouTube tools on the given MCP server:
// resolve_youtube_channel, list_youtube_channel_videos,
// search_youtube_channel_videos, list_youtube_channel_playlists,
// list_youtube_playlist_videos, list_youtube_video_comments.
func RegisterTools(server *mcp.Server) {
	h := &handlers{newClient: toolutil.NewClient, budget: toolutil.Budget}
	h.register(server)
}

func (h *handlers) register(server *mcp.Server) {
	readOnly := &mcp.ToolAnnotations{ReadOnlyHint: true}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_youtube_channel",
		Description: "Resolve a YouTube channel reference (@handle, channel URL, /user/ URL or UC... id) to its channelId, title, handle and uploads playlist. Strict by default: ambiguous input fails instead of guessing. best_effort mode returns search candidates without picking one.",
		Annotations: readOnly,
	}, h.resolveChannel)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_youtube_channel_videos",
		Description: "List a channel's videos with full records (snippet, statistics, contentDetails). Quota-budgeted: the estimated cost is computed before any call and returned as quotaEstimate. Shorts and live broadcasts are excluded unless requested. order_strategy selects uploads_playlist (cheap, paginated), local_sort (bounded, sorted) or search_api (expensive).",
		Annotations: readOnly,
	}, h.listChannelVideos)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_youtube_channel_videos",
		Description: "Keyword search within one channel's videos via search.list. Expensive: 100 quota units per page, at most 500 results. Returns full video records and a continuation token.",
		Annotations: readOnly,
	}, h.searchChannelVideos)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_youtube_channel_playlists",
		Description: "List one page of a channel's public playlists. 1 quota unit per page.",
		Annotations: readOnly,
	}, h.listChannelPlaylists)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_youtube_playlist_videos",
		Description: "List one page of a playlist's videos with full records. Shorts and live broadcasts are excluded unless requested. 2 quota units per page.",
		Annotations: readOnly,
	}, h.listPlaylistVideos)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_youtube_video_comments",
		Description: "List one page of public comment threads for a video (id or URL). Fails when comments are disabled. 1 quota unit per page.",
		Annotations: readOnly,
	}, h.listVideoComments)
}

// run wraps a tool body with slow-call tracking and failure logging.
func run[Out any](ctx context.Context, tool string, fn func(context.Context) (Out, error)) (*mcp.CallToolResult, Out, error) {
	var out Out
	err := engine.TrackOperation(ctx, tool, func(ctx context.Context) error {
		var err error
		out, err = fn(ctx)
		return err
	})
	if err != nil {
		slog.Warn(tool+": failed", slog.Any("error", err))
		var zero Out
		return nil, zero, err
	}
	return nil, out, nil
}
