package listing

import (
	"context"
	"log/slog"

	"github.com/anatolykoptev/go_youtube/internal/engine/quota"
	"github.com/anatolykoptev/go_youtube/internal/engine/videos"
	"github.com/anatolykoptev/go_youtube/internal/engine/ytapi"
)

// LocalSorted reads up to the planned number of uploads pages, loads the
// videos and sorts them locally by opts.OrderBy, highest first.
//
// It is not paginated: a supplied page token is rejected and the result
// never carries one. Truncated is set when more videos existed than were kept.
func LocalSorted(ctx context.Context, client ytapi.Client, opts Options) (Page[ytapi.Resource], error) {
	if opts.PageToken != "" {
		return Page[ytapi.Resource]{}, invalidf("page_token is not supported for local_sort")
	}
	if _, err := videos.ParseOrderBy(string(opts.OrderBy)); err != nil {
		return Page[ytapi.Resource]{}, err
	}
	if err := checkParts(opts.Parts); err != nil {
		return Page[ytapi.Resource]{}, err
	}
	plan, err := quota.PlanListing(quota.StrategyLocalSort, opts.MaxItems, opts.Budget, true)
	if err != nil {
		return Page[ytapi.Resource]{}, err
	}

	uploads, err := resolveUploads(ctx, client, opts.ChannelRef)
	if err != nil {
		return Page[ytapi.Resource]{}, err
	}

	var (
		ids   []string
		seen  = make(map[string]bool)
		token string
		pages int
	)
	for len(ids) < plan.MaxItems && pages < plan.MaxPages {
		resp, err := client.PlaylistItems(ctx, "snippet,contentDetails", playlistItemsParams(uploads, token))
		if err != nil {
			return Page[ytapi.Resource]{}, err
		}
		pages++
		for _, id := range videos.PlaylistItemIDs(resp.Items(), 0) {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
		token = resp.NextPageToken()
		if token == "" {
			break
		}
	}

	truncated := len(ids) > plan.MaxItems || token != ""
	if len(ids) > plan.MaxItems {
		ids = ids[:plan.MaxItems]
	}

	records, err := fetchDetails(ctx, client, ids, opts.Parts)
	if err != nil {
		return Page[ytapi.Resource]{}, err
	}
	items := videos.SortDesc(videos.Filter(records, opts.IncludeShorts, opts.IncludeLive), opts.OrderBy)

	slog.Debug("listing: local sort",
		slog.String("order_by", string(opts.OrderBy)),
		slog.Int("pages", pages),
		slog.Int("ids", len(ids)),
		slog.Bool("truncated", truncated))

	return Page[ytapi.Resource]{
		Items:           items,
		QuotaEstimate:   plan.Estimate,
		Truncated:       truncated,
		AppliedMaxItems: len(ids),
	}, nil
}
