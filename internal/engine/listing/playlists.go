package listing

import (
	"context"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_youtube/internal/engine/quota"
	"github.com/anatolykoptev/go_youtube/internal/engine/videos"
	"github.com/anatolykoptev/go_youtube/internal/engine/ytapi"
)

// ChannelPlaylistsPage returns one page of a channel's public playlists.
// Only ChannelRef, PageToken, MaxItems (1..50, default 50) and Budget are used.
func ChannelPlaylistsPage(ctx context.Context, client ytapi.Client, opts Options) (Page[ytapi.Resource], error) {
	limit := opts.MaxItems
	switch {
	case limit < 0:
		return Page[ytapi.Resource]{}, invalidf("max_items must be positive, got %d", limit)
	case limit == 0 || limit > pageSize:
		limit = pageSize
	}
	est, err := quota.Check(quota.ReadPageCost, opts.Budget)
	if err != nil {
		return Page[ytapi.Resource]{}, err
	}

	channelID, err := resolveID(ctx, client, opts.ChannelRef)
	if err != nil {
		return Page[ytapi.Resource]{}, err
	}

	params := ytapi.Params{"channelId": channelID, "maxResults": fmt.Sprint(limit)}
	if opts.PageToken != "" {
		params["pageToken"] = opts.PageToken
	}
	resp, err := client.Playlists(ctx, "snippet,contentDetails", params)
	if err != nil {
		return Page[ytapi.Resource]{}, err
	}

	items := videos.Resources(resp.Items())
	return Page[ytapi.Resource]{
		Items:           items,
		NextPageToken:   resp.NextPageToken(),
		QuotaEstimate:   est,
		AppliedMaxItems: len(items),
	}, nil
}

// PlaylistOptions configures PlaylistVideosPage.
type PlaylistOptions struct {
	PlaylistID    string
	PageToken     string
	MaxItems      int
	IncludeShorts bool
	IncludeLive   bool
	Parts         PartsLevel
	Budget        quota.Budget
}

// PlaylistVideosPage returns one page of a playlist's videos with full
// records: one playlistItems call plus one videos.list batch.
func PlaylistVideosPage(ctx context.Context, client ytapi.Client, opts PlaylistOptions) (Page[ytapi.Resource], error) {
	playlistID := strings.TrimSpace(opts.PlaylistID)
	if playlistID == "" {
		return Page[ytapi.Resource]{}, invalidf("playlist_id is required")
	}
	if opts.MaxItems <= 0 {
		return Page[ytapi.Resource]{}, invalidf("max_items must be positive, got %d", opts.MaxItems)
	}
	if err := checkParts(opts.Parts); err != nil {
		return Page[ytapi.Resource]{}, err
	}
	est, err := quota.Check(2*quota.ReadPageCost, opts.Budget)
	if err != nil {
		return Page[ytapi.Resource]{}, err
	}
	limit := min(opts.MaxItems, opts.Budget.MaxItems)

	resp, err := client.PlaylistItems(ctx, "snippet,contentDetails", playlistItemsParams(playlistID, opts.PageToken))
	if err != nil {
		return Page[ytapi.Resource]{}, err
	}

	page := Page[ytapi.Resource]{
		Items:         []ytapi.Resource{},
		NextPageToken: resp.NextPageToken(),
		QuotaEstimate: est,
	}
	ids := videos.PlaylistItemIDs(resp.Items(), 0)
	if len(ids) > limit {
		ids = ids[:limit]
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
	return page, nil
}
