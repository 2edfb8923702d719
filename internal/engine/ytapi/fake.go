package ytapi

import (
	"context"
	"maps"
	"strconv"
	"strings"
	"sync"
)

// Call is one request recorded by Fake.
type Call struct {
	Op     Operation
	Part   string
	Params Params
}

type fakeReply struct {
	resp Response
	err  error
}

// Fake is an in-memory Client serving canned responses per operation in FIFO
// order. An operation with no queued reply returns an empty response.
type Fake struct {
	mu      sync.Mutex
	replies map[Operation][]fakeReply
	calls   []Call
}

// NewFake returns an empty Fake.
func NewFake() *Fake {
	return &Fake{replies: make(map[Operation][]fakeReply)}
}

// Reply queues resp for the next call to op.
func (f *Fake) Reply(op Operation, resp Response) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[op] = append(f.replies[op], fakeReply{resp: resp})
	return f
}

// Fail queues err for the next call to op.
func (f *Fake) Fail(op Operation, err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[op] = append(f.replies[op], fakeReply{err: err})
	return f
}

// Calls returns every recorded call in order.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallsTo returns the recorded calls to op.
func (f *Fake) CallsTo(op Operation) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (f *Fake) Channels(ctx context.Context, part string, params Params) (Response, error) {
	return f.call(ctx, OpChannels, part, params)
}

func (f *Fake) Playlists(ctx context.Context, part string, params Params) (Response, error) {
	return f.call(ctx, OpPlaylists, part, params)
}

func (f *Fake) PlaylistItems(ctx context.Context, part string, params Params) (Response, error) {
	return f.call(ctx, OpPlaylistItems, part, params)
}

func (f *Fake) Videos(ctx context.Context, part string, params Params) (Response, error) {
	return f.call(ctx, OpVideos, part, params)
}

func (f *Fake) Search(ctx context.Context, part string, params Params) (Response, error) {
	return f.call(ctx, OpSearch, part, params)
}

func (f *Fake) CommentThreads(ctx context.Context, part string, params Params) (Response, error) {
	return f.call(ctx, OpCommentThreads, part, params)
}

func (f *Fake) call(_ context.Context, op Operation, part string, params Params) (Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, Call{Op: op, Part: part, Params: maps.Clone(params)})
	if strings.TrimSpace(part) == "" {
		return nil, &Error{Kind: KindBadRequest, Op: op, Message: "part is required"}
	}

	queue := f.replies[op]
	if len(queue) == 0 {
		return Response{}, nil
	}
	next := queue[0]
	f.replies[op] = queue[1:]
	if next.err != nil {
		return nil, next.err
	}
	return next.resp, nil
}

// --- canned response builders ---

// ChannelResponse builds a channels.list response with one channel.
// Empty title/handle/uploads are omitted.
func ChannelResponse(id, title, handle, uploads string) Response {
	item := map[string]any{"id": id}
	snippet := map[string]any{}
	if title != "" {
		snippet["title"] = title
	}
	if handle != "" {
		snippet["customUrl"] = handle
	}
	item["snippet"] = snippet
	if uploads != "" {
		item["contentDetails"] = map[string]any{
			"relatedPlaylists": map[string]any{"uploads": uploads},
		}
	}
	return Response{"items": []any{item}}
}

// PlaylistItemsResponse builds a playlistItems.list page holding videoIDs.
func PlaylistItemsResponse(next string, videoIDs ...string) Response {
	items := make([]any, 0, len(videoIDs))
	for _, id := range videoIDs {
		items = append(items, map[string]any{
			"snippet": map[string]any{
				"resourceId": map[string]any{"kind": "youtube#video", "videoId": id},
			},
		})
	}
	return withToken(Response{"items": items}, next)
}

// SearchVideosResponse builds a search.list page of video results.
func SearchVideosResponse(next string, videoIDs ...string) Response {
	items := make([]any, 0, len(videoIDs))
	for _, id := range videoIDs {
		items = append(items, map[string]any{
			"id": map[string]any{"kind": "youtube#video", "videoId": id},
		})
	}
	return withToken(Response{"items": items}, next)
}

// VideosResponse builds a videos.list response from resources.
func VideosResponse(videos ...Resource) Response {
	items := make([]any, 0, len(videos))
	for _, v := range videos {
		items = append(items, v)
	}
	return Response{"items": items}
}

// Video builds a minimal video resource.
func Video(id, duration, liveBroadcast string, views int) Resource {
	return Resource{
		"id":             id,
		"snippet":        map[string]any{"title": "video " + id, "liveBroadcastContent": liveBroadcast},
		"contentDetails": map[string]any{"duration": duration},
		"statistics":     map[string]any{"viewCount": strconv.Itoa(views)},
	}
}

func withToken(r Response, next string) Response {
	if next != "" {
		r["nextPageToken"] = next
	}
	return r
}
