package videos

import (
	"testing"

	"github.com/anatolykoptev/go_youtube/internal/engine/ytapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaylistItemIDs(t *testing.T) {
	items := ytapi.PlaylistItemsResponse("", "a", "b", "a", "c").Items()
	items = append(items,
		"not an object",
		map[string]any{"snippet": "flat"},
		map[string]any{"snippet": map[string]any{"resourceId": map[string]any{"videoId": ""}}},
	)

	assert.Equal(t, []string{"a", "b", "c"}, PlaylistItemIDs(items, 0))
	assert.Equal(t, []string{"a", "b"}, PlaylistItemIDs(items, 2))
	assert.Equal(t, []string{}, PlaylistItemIDs(nil, 5))
}

func TestSearchResultIDs(t *testing.T) {
	items := ytapi.SearchVideosResponse("", "x", "y").Items()
	items = append(items, map[string]any{"id": map[string]any{"kind": "youtube#channel", "channelId": "UC1"}})

	assert.Equal(t, []string{"x", "y"}, SearchResultIDs(items, 10))
	assert.Equal(t, []string{"x"}, SearchResultIDs(items, 1))
}

func TestResources(t *testing.T) {
	got := Resources([]any{map[string]any{"id": "a"}, 42, nil})
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0]["id"])
}
