package ytserver

import (
	"context"

	"github.com/anatolykoptev/go_youtube/internal/engine/listing"
	"github.com/anatolykoptev/go_youtube/internal/engine/quota"
	"github.com/anatolykoptev/go_youtube/internal/engine/videos"
	"github.com/anatolykoptev/go_youtube/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	defaultChannelVideos  = 200
	defaultSearchVideos   = 50
	defaultPlaylistVideos = 50
)

func (h *handlers) listChannelVideos(ctx context.Context, _ *mcp.CallToolRequest, input ChannelVideosInput) (*mcp.CallToolResult, toolutil.PageOutput, error) {
	return run(ctx, "list_youtube_channel_videos", func(ctx context.Context) (toolutil.PageOutput, error) {
		strategy, err := quota.ParseStrategy(input.OrderStrategy)
		if err != nil {
			return toolutil.PageOutput{}, err
		}
		orderBy, err := videos.ParseOrderBy(input.OrderBy)
		if err != nil {
			return toolutil.PageOutput{}, err
		}
		parts, err := listing.ParsePartsLevel(input.PartsLevel)
		if err != nil {
			return toolutil.PageOutput{}, err
		}
		client, err := h.newClient()
		if err != nil {
			return toolutil.PageOutput{}, err
		}

		page, err := listing.List(ctx, client, strategy, listing.Options{
			ChannelRef:    input.ChannelRef,
			MaxItems:      toolutil.IntOr(input.MaxVideos, defaultChannelVideos),
			PageToken:     toolutil.PageToken(input.PageToken, input.NextPageToken),
			IncludeShorts: input.IncludeShorts,
			IncludeLive:   input.IncludeLive,
			Parts:         parts,
			OrderBy:       orderBy,
			Budget:        h.budget(),
		})
		if err != nil {
			return toolutil.PageOutput{}, err
		}

		out := toolutil.NewPageOutput(page)
		out.AppliedOrder = map[string]string{"strategy": string(strategy), "by": string(orderBy)}
		return out, nil
	})
}

func (h *handlers) searchChannelVideos(ctx context.Context, _ *mcp.CallToolRequest, input SearchChannelVideosInput) (*mcp.CallToolResult, toolutil.PageOutput, error) {
	return run(ctx, "search_youtube_channel_videos", func(ctx context.Context) (toolutil.PageOutput, error) {
		order, err := listing.ParseSearchOrder(input.Order)
		if err != nil {
			return toolutil.PageOutput{}, err
		}
		parts, err := listing.ParsePartsLevel(input.PartsLevel)
		if err != nil {
			return toolutil.PageOutput{}, err
		}
		client, err := h.newClient()
		if err != nil {
			return toolutil.PageOutput{}, err
		}

		page, err := listing.SearchChannel(ctx, client, input.Query, order, listing.Options{
			ChannelRef:    input.ChannelRef,
			MaxItems:      toolutil.IntOr(input.MaxVideos, defaultSearchVideos),
			PageToken:     toolutil.PageToken(input.PageToken, input.NextPageToken),
			IncludeShorts: input.IncludeShorts,
			IncludeLive:   input.IncludeLive,
			Parts:         parts,
			Budget:        h.budget(),
		})
		if err != nil {
			return toolutil.PageOutput{}, err
		}

		out := toolutil.NewPageOutput(page)
		out.AppliedOrder = map[string]string{"order": string(order)}
		return out, nil
	})
}

func (h *handlers) listPlaylistVideos(ctx context.Context, _ *mcp.CallToolRequest, input PlaylistVideosInput) (*mcp.CallToolResult, toolutil.PageOutput, error) {
	return run(ctx, "list_youtube_playlist_videos", func(ctx context.Context) (toolutil.PageOutput, error) {
		parts, err := listing.ParsePartsLevel(input.PartsLevel)
		if err != nil {
			return toolutil.PageOutput{}, err
		}
		client, err := h.newClient()
		if err != nil {
			return toolutil.PageOutput{}, err
		}

		page, err := listing.PlaylistVideosPage(ctx, client, listing.PlaylistOptions{
			PlaylistID:    input.PlaylistID,
			PageToken:     toolutil.PageToken(input.PageToken, input.NextPageToken),
			MaxItems:      toolutil.IntOr(input.MaxItems, defaultPlaylistVideos),
			IncludeShorts: input.IncludeShorts,
			IncludeLive:   input.IncludeLive,
			Parts:         parts,
			Budget:        h.budget(),
		})
		if err != nil {
			return toolutil.PageOutput{}, err
		}
		return toolutil.NewPageOutput(page), nil
	})
}
