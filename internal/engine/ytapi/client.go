// Package ytapi is the only path to the YouTube Data API v3.
//
// Callers depend on the Client interface; the package ships the production
// HTTP adapter, an in-memory Fake for tests, and two wrappers applied at the
// boundary: WithRedaction (credential scrubbing) and WithObservability
// (spans + metrics).
package ytapi

import (
	"context"
	"fmt"
)

// Operation names one allowlisted Data API list endpoint.
type Operation string

const (
	OpChannels       Operation = "channels"
	OpPlaylists      Operation = "playlists"
	OpPlaylistItems  Operation = "playlistItems"
	OpVideos         Operation = "videos"
	OpSearch         Operation = "search"
	OpCommentThreads Operation = "commentThreads"
)

var allowedOps = map[Operation]bool{
	OpChannels:       true,
	OpPlaylists:      true,
	OpPlaylistItems:  true,
	OpVideos:         true,
	OpSearch:         true,
	OpCommentThreads: true,
}

// Allowed reports whether op is one of the six permitted endpoints.
func Allowed(op Operation) bool { return allowedOps[op] }

// Params are the query parameters of a list call, excluding part and key.
type Params map[string]string

// Resource is one decoded API resource (video, playlist, channel, comment thread).
// Treated as read-only by every consumer.
type Resource = map[string]any

// Response is a decoded list response.
type Response map[string]any

// Items returns the raw "items" list, or nil when absent or malformed.
func (r Response) Items() []any {
	items, _ := r["items"].([]any)
	return items
}

// NextPageToken returns the continuation token, or "" when the backend reported none.
func (r Response) NextPageToken() string {
	tok, _ := r["nextPageToken"].(string)
	return tok
}

// Client exposes the six read operations. part is the comma-joined field
// selector and must be non-empty.
type Client interface {
	Channels(ctx context.Context, part string, params Params) (Response, error)
	Playlists(ctx context.Context, part string, params Params) (Response, error)
	PlaylistItems(ctx context.Context, part string, params Params) (Response, error)
	Videos(ctx context.Context, part string, params Params) (Response, error)
	Search(ctx context.Context, part string, params Params) (Response, error)
	CommentThreads(ctx context.Context, part string, params Params) (Response, error)
}

// Invoke calls the Client method that serves op.
func Invoke(ctx context.Context, c Client, op Operation, part string, params Params) (Response, error) {
	switch op {
	case OpChannels:
		return c.Channels(ctx, part, params)
	case OpPlaylists:
		return c.Playlists(ctx, part, params)
	case OpPlaylistItems:
		return c.PlaylistItems(ctx, part, params)
	case OpVideos:
		return c.Videos(ctx, part, params)
	case OpSearch:
		return c.Search(ctx, part, params)
	case OpCommentThreads:
		return c.CommentThreads(ctx, part, params)
	}
	return nil, &Error{Kind: KindMisconfigured, Op: op, Message: fmt.Sprintf("operation %q is not allowlisted", string(op))}
}

// callFunc adapts a single dispatch function into a full Client.
// Wrappers implement one function and get all six methods.
type callFunc func(ctx context.Context, op Operation, part string, params Params) (Response, error)

func (f callFunc) Channels(ctx context.Context, part string, params Params) (Response, error) {
	return f(ctx, OpChannels, part, params)
}

func (f callFunc) Playlists(ctx context.Context, part string, params Params) (Response, error) {
	return f(ctx, OpPlaylists, part, params)
}

func (f callFunc) PlaylistItems(ctx context.Context, part string, params Params) (Response, error) {
	return f(ctx, OpPlaylistItems, part, params)
}

func (f callFunc) Videos(ctx context.Context, part string, params Params) (Response, error) {
	return f(ctx, OpVideos, part, params)
}

func (f callFunc) Search(ctx context.Context, part string, params Params) (Response, error) {
	return f(ctx, OpSearch, part, params)
}

func (f callFunc) CommentThreads(ctx context.Context, part string, params Params) (Response, error) {
	return f(ctx, OpCommentThreads, part, params)
}
