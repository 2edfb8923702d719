package ytserver

import (
	"context"

	"github.com/anatolykoptev/go_youtube/internal/engine/channel"
	"github.com/anatolykoptev/go_youtube/internal/engine/listing"
	"github.com/anatolykoptev/go_youtube/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (h *handlers) resolveChannel(ctx context.Context, _ *mcp.CallToolRequest, input ResolveChannelInput) (*mcp.CallToolResult, ResolveChannelOutput, error) {
	return run(ctx, "resolve_youtube_channel", func(ctx context.Context) (ResolveChannelOutput, error) {
		mode, err := channel.ParseMode(input.ResolutionMode)
		if err != nil {
			return ResolveChannelOutput{}, err
		}
		ref, err := channel.Parse(input.ChannelRef)
		if err != nil {
			return ResolveChannelOutput{}, err
		}
		client, err := h.newClient()
		if err != nil {
			return ResolveChannelOutput{}, err
		}

		res, err := channel.Resolve(ctx, client, ref, mode, toolutil.BoolOr(input.IncludeUploadsPlaylist, true))
		if err != nil {
			return ResolveChannelOutput{}, err
		}

		warnings, candidates := res.Warnings, res.Candidates
		if warnings == nil {
			warnings = []string{}
		}
		if candidates == nil {
			candidates = []channel.Candidate{}
		}
		return ResolveChannelOutput{
			ChannelID:         toolutil.Nullable(res.ID),
			Title:             toolutil.Nullable(res.Title),
			Handle:            toolutil.Nullable(res.Handle),
			UploadsPlaylistID: toolutil.Nullable(res.UploadsPlaylistID),
			Warnings:          warnings,
			Candidates:        candidates,
		}, nil
	})
}

func (h *handlers) listChannelPlaylists(ctx context.Context, _ *mcp.CallToolRequest, input ChannelPlaylistsInput) (*mcp.CallToolResult, toolutil.PageOutput, error) {
	return run(ctx, "list_youtube_channel_playlists", func(ctx context.Context) (toolutil.PageOutput, error) {
		client, err := h.newClient()
		if err != nil {
			return toolutil.PageOutput{}, err
		}
		page, err := listing.ChannelPlaylistsPage(ctx, client, listing.Options{
			ChannelRef: input.ChannelRef,
			MaxItems:   input.MaxItems,
			PageToken:  toolutil.PageToken(input.PageToken, input.NextPageToken),
			Budget:     h.budget(),
		})
		if err != nil {
			return toolutil.PageOutput{}, err
		}
		return toolutil.NewPageOutput(page), nil
	})
}
