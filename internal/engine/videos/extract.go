package videos

import "github.com/anatolykoptev/go_youtube/internal/engine/ytapi"

// PlaylistItemIDs collects snippet.resourceId.videoId from playlistItems.list
// items. Malformed entries are skipped, duplicates dropped, first-seen order
// kept. limit <= 0 means no limit.
func PlaylistItemIDs(items []any, limit int) []string {
	return collectIDs(items, limit, "snippet", "resourceId", "videoId")
}

// SearchResultIDs collects id.videoId from search.list items with the same
// rules as PlaylistItemIDs.
func SearchResultIDs(items []any, limit int) []string {
	return collectIDs(items, limit, "id", "videoId")
}

func collectIDs(items []any, limit int, path ...string) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, it := range items {
		if limit > 0 && len(out) >= limit {
			break
		}
		id := ytapi.StringAt(it, path...)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// Resources keeps the object entries of a response item list.
func Resources(items []any) []ytapi.Resource {
	out := make([]ytapi.Resource, 0, len(items))
	for _, it := range items {
		if r, ok := it.(map[string]any); ok {
			out = append(out, r)
		}
	}
	return out
}
