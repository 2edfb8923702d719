package listing

import (
	"context"
	"log/slog"

	"github.com/anatolykoptev/go_youtube/internal/engine/quota"
	"github.com/anatolykoptev/go_youtube/internal/engine/videos"
	"github.com/anatolykoptev/go_youtube/internal/engine/ytapi"
)

// UploadsPage returns one page of a channel's uploads playlist: one
// playlistItems call and one videos.list batch. The playlist's continuation
// token is passed through unchanged.
func UploadsPage(ctx context.Context, client ytapi.Client, opts Options) (Page[ytapi.Resource], error) {
	if err := checkParts(opts.Parts); err != nil {
		return Page[ytapi.Resource]{}, err
	}
	plan, err := quota.PlanListing(quota.StrategyUploads, opts.MaxItems, opts.Budget, true)
	if err != nil {
		return Page[ytapi.Resource]{}, err
	}

	uploads, err := resolveUploads(ctx, client, opts.ChannelRef)
	if err != nil {
		return Page[ytapi.Resource]{}, err
	}

	resp, err := client.PlaylistItems(ctx, "snippet,contentDetails", playlistItemsParams(uploads, opts.PageToken))
	if err != nil {
		return Page[ytapi.Resource]{}, err
	}

	page := Page[ytapi.Resource]{
		Items:         []ytapi.Resource{},
		NextPageToken: resp.NextPageToken(),
		QuotaEstimate: plan.Estimate,
	}

	ids := videos.PlaylistItemIDs(resp.Items(), 0)
	if len(ids) > plan.MaxItems {
		ids = ids[:plan.MaxItems]
		page.Truncated = true
	}
	page.AppliedMaxItems = len(ids)
	if len(ids) == 0 {
		return page, nil
	}

	records, err := fetchDetails(ctx, client, ids, opts.Parts)
	if err != nil {
		return Page[ytapi.Resource]{}, err
	}
	page.Items = videos.Filter(records, opts.IncludeShorts, opts.IncludeLive)

	slog.Debug("listing: uploads page",
		slog.String("playlist_id", uploads),
		slog.Int("ids", len(ids)),
		slog.Int("items", len(page.Items)),
		slog.Bool("truncated", page.Truncated))
	return page, nil
}
