package listing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_youtube/internal/engine/quota"
	"github.com/anatolykoptev/go_youtube/internal/engine/videos"
	"github.com/anatolykoptev/go_youtube/internal/engine/ytapi"
)

// SearchOrder is the order forwarded to search.list.
type SearchOrder string

const (
	SearchDate      SearchOrder = "date"
	SearchViewCount SearchOrder = "viewCount"
	SearchRelevance SearchOrder = "relevance"
	SearchRating    SearchOrder = "rating"
	SearchTitle     SearchOrder = "title"
)

// ParseSearchOrder validates a channel search order. Empty means relevance.
func ParseSearchOrder(s string) (SearchOrder, error) {
	switch o := SearchOrder(strings.TrimSpace(s)); o {
	case "":
		return SearchRelevance, nil
	case SearchDate, SearchViewCount, SearchRelevance, SearchRating, SearchTitle:
		return o, nil
	}
	return "", invalidf("order must be one of date, viewCount, relevance, rating, title; got %q", s)
}

// SearchOrdered lists a channel's videos through search.list ordered by date
// or viewCount. Search costs 100 units per page and is capped at 500 results.
func SearchOrdered(ctx context.Context, client ytapi.Client, opts Options) (Page[ytapi.Resource], error) {
	switch opts.OrderBy {
	case videos.OrderDate, videos.OrderViewCount:
	default:
		return Page[ytapi.Resource]{}, invalidf("search_api supports only order_by date or viewCount, got %q", opts.OrderBy)
	}
	return searchPage(ctx, client, opts, "", string(opts.OrderBy))
}

// SearchChannel runs a keyword search restricted to one channel's videos.
// order is forwarded to the backend unchanged.
func SearchChannel(ctx context.Context, client ytapi.Client, query string, order SearchOrder, opts Options) (Page[ytapi.Resource], error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Page[ytapi.Resource]{}, invalidf("query is required")
	}
	switch order {
	case SearchDate, SearchViewCount, SearchRelevance, SearchRating, SearchTitle:
	default:
		return Page[ytapi.Resource]{}, invalidf("order must be one of date, viewCount, relevance, rating, title; got %q", order)
	}
	return searchPage(ctx, client, opts, query, string(order))
}

func searchPage(ctx context.Context, client ytapi.Client, opts Options, query, order string) (Page[ytapi.Resource], error) {
	if err := checkParts(opts.Parts); err != nil {
		return Page[ytapi.Resource]{}, err
	}
	plan, err := quota.PlanListing(quota.StrategySearch, opts.MaxItems, opts.Budget, true)
	if err != nil {
		return Page[ytapi.Resource]{}, err
	}

	channelID, err := resolveID(ctx, client, opts.ChannelRef)
	if err != nil {
		return Page[ytapi.Resource]{}, err
	}

	params := ytapi.Params{
		"channelId":  channelID,
		"type":       "video",
		"order":      order,
		"maxResults": fmt.Sprint(min(plan.MaxItems, pageSize)),
	}
	if query != "" {
		params["q"] = query
	}
	if opts.PageToken != "" {
		params["pageToken"] = opts.PageToken
	}
	resp, err := client.Search(ctx, "snippet", params)
	if err != nil {
		return Page[ytapi.Resource]{}, err
	}

	page := Page[ytapi.Resource]{
		Items:         []ytapi.Resource{},
		NextPageToken: resp.NextPageToken(),
		QuotaEstimate: plan.Estimate,
	}
	ids := videos.SearchResultIDs(resp.Items(), 0)
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

	slog.Debug("listing: search page",
		slog.String("channel_id", channelID),
		slog.String("order", order),
		slog.Int("items", len(page.Items)))
	return page, nil
}
