// Package listing produces bounded, budgeted pages of channel videos,
// playlists and comment threads.
//
// Every entry point prices its plan with the quota package before the first
// backend call and never fetches more than it priced.
package listing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_youtube/internal/engine"
	"github.com/anatolykoptev/go_youtube/internal/engine/channel"
	"github.com/anatolykoptev/go_youtube/internal/engine/quota"
	"github.com/anatolykoptev/go_youtube/internal/engine/videos"
	"github.com/anatolykoptev/go_youtube/internal/engine/ytapi"
)

// Page is one result page. NextPageToken is "" when the backend reported no
// further pages; feed it back verbatim to continue.
type Page[T any] struct {
	Items           []T
	NextPageToken   string
	QuotaEstimate   quota.Estimate
	Truncated       bool
	AppliedMaxItems int // entries kept after the item cap, before shorts/live filtering
}

// PartsLevel selects the videos.list field set.
type PartsLevel string

const (
	PartsBasic PartsLevel = "basic"
	PartsFull  PartsLevel = "full"
)

// ParsePartsLevel validates a parts level. Empty means basic.
func ParsePartsLevel(s string) (PartsLevel, error) {
	switch p := PartsLevel(strings.TrimSpace(s)); p {
	case "":
		return PartsBasic, nil
	case PartsBasic, PartsFull:
		return p, nil
	}
	return "", invalidf("parts_level must be basic or full, got %q", s)
}

// VideoParts returns the comma-joined part selector for videos.list.
func (p PartsLevel) VideoParts() string {
	if p == PartsFull {
		return "snippet,statistics,contentDetails,liveStreamingDetails,status"
	}
	return "snippet,statistics,contentDetails"
}

// Options configures a channel video listing.
type Options struct {
	ChannelRef    string
	MaxItems      int
	PageToken     string
	IncludeShorts bool
	IncludeLive   bool
	Parts         PartsLevel
	// OrderBy is the sort key for local_sort and the search order for
	// search_api. Ignored by uploads_playlist.
	OrderBy videos.OrderBy
	Budget  quota.Budget
}

// ErrNoUploads is returned when a resolved channel exposes no uploads playlist.
var ErrNoUploads = errors.New("uploadsPlaylistId not available for this channel")

const pageSize = quota.PageSize

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", engine.ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func checkParts(p PartsLevel) error {
	if p != PartsBasic && p != PartsFull {
		return invalidf("parts_level must be basic or full, got %q", p)
	}
	return nil
}

// resolveUploads resolves ref strictly and returns its uploads playlist.
func resolveUploads(ctx context.Context, client ytapi.Client, ref string) (string, error) {
	res, err := channel.ResolveRef(ctx, client, ref, channel.ModeStrict, true)
	if err != nil {
		return "", err
	}
	if res.UploadsPlaylistID == "" {
		return "", ErrNoUploads
	}
	return res.UploadsPlaylistID, nil
}

func resolveID(ctx context.Context, client ytapi.Client, ref string) (string, error) {
	res, err := channel.ResolveRef(ctx, client, ref, channel.ModeStrict, false)
	if err != nil {
		return "", err
	}
	return res.ID, nil
}

// fetchDetails loads full video records for ids in batches of 50.
func fetchDetails(ctx context.Context, client ytapi.Client, ids []string, parts PartsLevel) ([]ytapi.Resource, error) {
	out := make([]ytapi.Resource, 0, len(ids))
	for start := 0; start < len(ids); start += pageSize {
		end := min(start+pageSize, len(ids))
		resp, err := client.Videos(ctx, parts.VideoParts(), ytapi.Params{"id": strings.Join(ids[start:end], ",")})
		if err != nil {
			return nil, err
		}
		out = append(out, videos.Resources(resp.Items())...)
	}
	return out, nil
}

func playlistItemsParams(playlistID, pageToken string) ytapi.Params {
	p := ytapi.Params{"playlistId": playlistID, "maxResults": fmt.Sprint(pageSize)}
	if pageToken != "" {
		p["pageToken"] = pageToken
	}
	return p
}
