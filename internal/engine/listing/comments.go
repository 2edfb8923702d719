package listing

import (
	"context"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_youtube/internal/engine/quota"
	"github.com/anatolykoptev/go_youtube/internal/engine/videos"
	"github.com/anatolykoptev/go_youtube/internal/engine/ytapi"
)

// CommentOrder is the commentThreads.list order.
type CommentOrder string

const (
	CommentsByTime      CommentOrder = "time"
	CommentsByRelevance CommentOrder = "relevance"
)

// TextFormat is the commentThreads.list text format.
type TextFormat string

const (
	TextPlain TextFormat = "plainText"
	TextHTML  TextFormat = "html"
)

const maxCommentThreads = 100

// CommentOptions configures CommentThreadsPage.
type CommentOptions struct {
	VideoID        string
	PageToken      string
	MaxThreads     int // clamped to 100
	Order          CommentOrder
	TextFormat     TextFormat
	IncludeReplies bool
	Budget         quota.Budget
}

// CommentThreadsPage returns one page of a video's public comment threads.
// Videos with comments disabled fail with a ytapi auth error.
func CommentThreadsPage(ctx context.Context, client ytapi.Client, opts CommentOptions) (Page[ytapi.Resource], error) {
	videoID := strings.TrimSpace(opts.VideoID)
	if videoID == "" {
		return Page[ytapi.Resource]{}, invalidf("video_id is required")
	}
	if opts.MaxThreads <= 0 {
		return Page[ytapi.Resource]{}, invalidf("max_threads must be positive, got %d", opts.MaxThreads)
	}
	order := opts.Order
	if order == "" {
		order = CommentsByTime
	}
	if order != CommentsByTime && order != CommentsByRelevance {
		return Page[ytapi.Resource]{}, invalidf("order must be time or relevance, got %q", opts.Order)
	}
	format := opts.TextFormat
	if format == "" {
		format = TextPlain
	}
	if format != TextPlain && format != TextHTML {
		return Page[ytapi.Resource]{}, invalidf("text_format must be plainText or html, got %q", opts.TextFormat)
	}
	est, err := quota.Check(quota.ReadPageCost, opts.Budget)
	if err != nil {
		return Page[ytapi.Resource]{}, err
	}

	limit := min(opts.MaxThreads, maxCommentThreads)
	part := "snippet"
	if opts.IncludeReplies {
		part = "snippet,replies"
	}
	params := ytapi.Params{
		"videoId":    videoID,
		"maxResults": strconv.Itoa(limit),
		"order":      string(order),
		"textFormat": string(format),
	}
	if opts.PageToken != "" {
		params["pageToken"] = opts.PageToken
	}

	resp, err := client.CommentThreads(ctx, part, params)
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
