package channel

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_youtube/internal/engine"
	"github.com/anatolykoptev/go_youtube/internal/engine/ytapi"
)

// Mode selects how ambiguous references are handled.
type Mode string

const (
	// ModeStrict fails on anything that cannot be looked up deterministically.
	ModeStrict Mode = "strict"
	// ModeBestEffort returns search candidates for ambiguous input instead of failing.
	ModeBestEffort Mode = "best_effort"
)

// ParseMode validates a mode name. Empty means strict.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.TrimSpace(s)) {
	case "", ModeStrict:
		return ModeStrict, nil
	case ModeBestEffort:
		return ModeBestEffort, nil
	}
	return "", fmt.Errorf("%w: mode must be %q or %q", engine.ErrInvalidArgument, ModeStrict, ModeBestEffort)
}

// Warning markers attached to Resolved.Warnings.
const (
	WarnUploadsUnavailable = "uploadsPlaylistId not available"
	WarnCandidatesOnly     = "best_effort_candidates_only"
)

const maxCandidates = 5

// Candidate is a possible match from keyword search. Never authoritative.
type Candidate struct {
	ID     string `json:"channelId"`
	Title  string `json:"title,omitempty"`
	Handle string `json:"handle,omitempty"`
}

// Resolved is a looked-up channel. ID is empty only for best-effort query
// resolution, in which case Candidates holds the search results.
type Resolved struct {
	ID                string      `json:"channelId"`
	Title             string      `json:"title,omitempty"`
	Handle            string      `json:"handle,omitempty"`
	UploadsPlaylistID string      `json:"uploadsPlaylistId,omitempty"`
	Warnings          []string    `json:"warnings"`
	Candidates        []Candidate `json:"candidates,omitempty"`
}

// ResolutionError reports a reference that cannot be resolved. Message
// carries guidance for the caller.
type ResolutionError struct {
	Input   string
	Message string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve channel %q: %s", e.Input, e.Message)
}

// ResolveRef parses raw and resolves it.
func ResolveRef(ctx context.Context, client ytapi.Client, raw string, mode Mode, includeUploads bool) (*Resolved, error) {
	ref, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return Resolve(ctx, client, ref, mode, includeUploads)
}

// Resolve looks ref up on the Data API.
//
// handle, channel_id and username go through channels.list, which returns at
// most one channel for those filters; more than one is reported as an error
// rather than picking one. custom_url and query fail in strict mode; in
// best-effort mode they return up to five search candidates and an empty ID.
// Backend errors are returned unchanged.
func Resolve(ctx context.Context, client ytapi.Client, ref Ref, mode Mode, includeUploads bool) (*Resolved, error) {
	res, err := resolve(ctx, client, ref, mode, includeUploads)
	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
	case res.ID == "":
		outcome = "candidates"
	}
	engine.IncrResolution(string(ref.Kind), outcome)
	return res, err
}

func resolve(ctx context.Context, client ytapi.Client, ref Ref, mode Mode, includeUploads bool) (*Resolved, error) {
	switch ref.Kind {
	case KindCustomURL:
		if mode != ModeBestEffort {
			return nil, &ResolutionError{Input: ref.Raw, Message: "custom channel URLs (/c/...) cannot be resolved deterministically; " +
				"provide @handle, /channel/<id> or /user/<username>"}
		}
		return searchCandidates(ctx, client, ref)
	case KindQuery:
		if mode != ModeBestEffort {
			return nil, &ResolutionError{Input: ref.Raw, Message: "ambiguous channel reference; " +
				"provide @handle, channel URL (/channel/UC...) or /user/<username>"}
		}
		return searchCandidates(ctx, client, ref)
	case KindHandle:
		return lookup(ctx, client, ref, ytapi.Params{"forHandle": "@" + ref.Value}, includeUploads)
	case KindChannelID:
		return lookup(ctx, client, ref, ytapi.Params{"id": ref.Value}, includeUploads)
	case KindUsername:
		return lookup(ctx, client, ref, ytapi.Params{"forUsername": ref.Value}, includeUploads)
	}
	return nil, &ResolutionError{Input: ref.Raw, Message: fmt.Sprintf("unsupported reference kind %q", ref.Kind)}
}

func lookup(ctx context.Context, client ytapi.Client, ref Ref, filter ytapi.Params, includeUploads bool) (*Resolved, error) {
	part := "snippet,id"
	if includeUploads {
		part += ",contentDetails"
	}

	resp, err := client.Channels(ctx, part, filter)
	if err != nil {
		return nil, err
	}
	items := resp.Items()
	switch {
	case len(items) == 0:
		return nil, &ResolutionError{Input: ref.Raw, Message: "channel not found"}
	case len(items) > 1:
		return nil, &ResolutionError{Input: ref.Raw, Message: fmt.Sprintf("%d channels matched a unique filter", len(items))}
	}

	item := items[0]
	id := ytapi.StringAt(item, "id")
	if id == "" {
		return nil, &ResolutionError{Input: ref.Raw, Message: "channel not found"}
	}

	res := &Resolved{
		ID:       id,
		Title:    ytapi.StringAt(item, "snippet", "title"),
		Handle:   ytapi.StringAt(item, "snippet", "customUrl"),
		Warnings: []string{},
	}
	if includeUploads {
		res.UploadsPlaylistID = ytapi.StringAt(item, "contentDetails", "relatedPlaylists", "uploads")
		if res.UploadsPlaylistID == "" {
			slog.Warn("channel has no uploads playlist", slog.String("channel_id", id))
			res.Warnings = append(res.Warnings, WarnUploadsUnavailable)
		}
	}
	return res, nil
}

// searchCandidates runs a channel-typed keyword search. Results keep the
// backend's relevance order and are never auto-selected.
func searchCandidates(ctx context.Context, client ytapi.Client, ref Ref) (*Resolved, error) {
	query := strings.TrimSpace(ref.Value)
	if query == "" {
		return nil, &ResolutionError{Input: ref.Raw, Message: "query cannot be empty"}
	}

	resp, err := client.Search(ctx, "snippet", ytapi.Params{
		"q":          query,
		"type":       "channel",
		"maxResults": fmt.Sprint(maxCandidates),
	})
	if err != nil {
		return nil, err
	}

	candidates := []Candidate{}
	for _, item := range resp.Items() {
		id := ytapi.StringAt(item, "id", "channelId")
		if id == "" {
			continue
		}
		candidates = append(candidates, Candidate{
			ID:     id,
			Title:  ytapi.StringAt(item, "snippet", "title"),
			Handle: ytapi.StringAt(item, "snippet", "customUrl"),
		})
		if len(candidates) == maxCandidates {
			break
		}
	}

	return &Resolved{
		Warnings:   []string{WarnCandidatesOnly},
		Candidates: candidates,
	}, nil
}
