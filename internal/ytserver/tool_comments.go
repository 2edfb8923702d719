package ytserver

import (
	"context"

	"github.com/anatolykoptev/go_youtube/internal/engine/listing"
	"github.com/anatolykoptev/go_youtube/internal/engine/videos"
	"github.com/anatolykoptev/go_youtube/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultCommentThreads = 100

func (h *handlers) listVideoComments(ctx context.Context, _ *mcp.CallToolRequest, input VideoCommentsInput) (*mcp.CallToolResult, toolutil.PageOutput, error) {
	return run(ctx, "list_youtube_video_comments", func(ctx context.Context) (toolutil.PageOutput, error) {
		videoID, err := videos.ParseVideoID(input.Video)
		if err != nil {
			return toolutil.PageOutput{}, err
		}
		order := listing.CommentOrder(input.Order)
		if order == "" {
			order = listing.CommentsByRelevance
		}
		client, err := h.newClient()
		if err != nil {
			return toolutil.PageOutput{}, err
		}

		page, err := listing.CommentThreadsPage(ctx, client, listing.CommentOptions{
			VideoID:        videoID,
			PageToken:      toolutil.PageToken(input.PageToken, input.NextPageToken),
			MaxThreads:     toolutil.IntOr(input.MaxThreads, defaultCommentThreads),
			Order:          order,
			TextFormat:     listing.TextFormat(input.TextFormat),
			IncludeReplies: input.IncludeReplies,
			Budget:         h.budget(),
		})
		if err != nil {
			return toolutil.PageOutput{}, err
		}
		return toolutil.NewPageOutput(page), nil
	})
}
