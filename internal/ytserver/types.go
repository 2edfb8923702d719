package ytserver

import "github.com/anatolykoptev/go_youtube/internal/engine/channel"

// ResolveChannelInput is the input for resolve_youtube_channel.
type ResolveChannelInput struct {
	ChannelRef             string `json:"channel_ref" jsonschema:"Channel reference: @handle, channel URL (/channel/UC..., /@handle, /user/name), raw UC... id, or free text in best_effort mode"`
	ResolutionMode         string `json:"resolution_mode,omitempty" jsonschema:"strict (default) fails on ambiguous input; best_effort returns up to 5 search candidates (costs 100 quota units)"`
	IncludeUploadsPlaylist *bool  `json:"include_uploads_playlist,omitempty" jsonschema:"Also return the uploads playlist id (default true)"`
}

// ResolveChannelOutput is the result of resolve_youtube_channel. ChannelID
// is null when only candidates were found.
type ResolveChannelOutput struct {
	ChannelID         *string             `json:"channelId"`
	Title             *string             `json:"title"`
	Handle            *string             `json:"handle"`
	UploadsPlaylistID *string             `json:"uploadsPlaylistId"`
	Warnings          []string            `json:"warnings"`
	Candidates        []channel.Candidate `json:"candidates"`
}

// ChannelVideosInput is the input for list_youtube_channel_videos.
type ChannelVideosInput struct {
	ChannelRef    string `json:"channel_ref" jsonschema:"Channel reference: @handle, channel URL or UC... id"`
	MaxVideos     int    `json:"max_videos,omitempty" jsonschema:"Max videos to return (default 200, capped by the server budget)"`
	PageToken     string `json:"page_token,omitempty" jsonschema:"Continuation token from a previous nextPageToken (uploads_playlist and search_api only)"`
	NextPageToken string `json:"next_page_token,omitempty" jsonschema:"Alias for page_token"`
	IncludeShorts bool   `json:"include_shorts,omitempty" jsonschema:"Include videos of 60s or less (best-effort heuristic, default false)"`
	IncludeLive   bool   `json:"include_live,omitempty" jsonschema:"Include live and upcoming broadcasts (best-effort heuristic, default false)"`
	PartsLevel    string `json:"parts_level,omitempty" jsonschema:"basic (default) or full (adds liveStreamingDetails and status)"`
	OrderStrategy string `json:"order_strategy,omitempty" jsonschema:"uploads_playlist (default, cheap, paginated), local_sort (bounded, sorted locally, not paginated), search_api (expensive: 100 units per page, max 500 videos)"`
	OrderBy       string `json:"order_by,omitempty" jsonschema:"date (default), viewCount, likeCount, commentCount, duration; search_api accepts only date and viewCount"`
}

// SearchChannelVideosInput is the input for search_youtube_channel_videos.
type SearchChannelVideosInput struct {
	ChannelRef    string `json:"channel_ref" jsonschema:"Channel reference: @handle, channel URL or UC... id"`
	Query         string `json:"query" jsonschema:"Keywords to search for within the channel"`
	MaxVideos     int    `json:"max_videos,omitempty" jsonschema:"Max videos to return (default 50)"`
	PageToken     string `json:"page_token,omitempty" jsonschema:"Continuation token from a previous nextPageToken"`
	NextPageToken string `json:"next_page_token,omitempty" jsonschema:"Alias for page_token"`
	IncludeShorts bool   `json:"include_shorts,omitempty" jsonschema:"Include videos of 60s or less (default false)"`
	IncludeLive   bool   `json:"include_live,omitempty" jsonschema:"Include live and upcoming broadcasts (default false)"`
	PartsLevel    string `json:"parts_level,omitempty" jsonschema:"basic (default) or full"`
	Order         string `json:"order,omitempty" jsonschema:"relevance (default), date, viewCount, rating, title"`
}

// ChannelPlaylistsInput is the input for list_youtube_channel_playlists.
type ChannelPlaylistsInput struct {
	ChannelRef    string `json:"channel_ref" jsonschema:"Channel reference: @handle, channel URL or UC... id"`
	MaxItems      int    `json:"max_items,omitempty" jsonschema:"Playlists per page, 1-50 (default 50)"`
	PageToken     string `json:"page_token,omitempty" jsonschema:"Continuation token from a previous nextPageToken"`
	NextPageToken string `json:"next_page_token,omitempty" jsonschema:"Alias for page_token"`
}

// PlaylistVideosInput is the input for list_youtube_playlist_videos.
type PlaylistVideosInput struct {
	PlaylistID    string `json:"playlist_id" jsonschema:"Playlist id (PL..., UU...)"`
	MaxItems      int    `json:"max_items,omitempty" jsonschema:"Max videos to return from this page (default 50)"`
	PageToken     string `json:"page_token,omitempty" jsonschema:"Continuation token from a previous nextPageToken"`
	NextPageToken string `json:"next_page_token,omitempty" jsonschema:"Alias for page_token"`
	IncludeShorts bool   `json:"include_shorts,omitempty" jsonschema:"Include videos of 60s or less (default false)"`
	IncludeLive   bool   `json:"include_live,omitempty" jsonschema:"Include live and upcoming broadcasts (default false)"`
	PartsLevel    string `json:"parts_level,omitempty" jsonschema:"basic (default) or full"`
}

// VideoCommentsInput is the input for list_youtube_video_comments.
type VideoCommentsInput struct {
	Video          string `json:"video" jsonschema:"Video id or URL (watch?v=, youtu.be/, /shorts/, /embed/)"`
	MaxThreads     int    `json:"max_threads,omitempty" jsonschema:"Comment threads per page, 1-100 (default 100)"`
	PageToken      string `json:"page_token,omitempty" jsonschema:"Continuation token from a previous nextPageToken"`
	NextPageToken  string `json:"next_page_token,omitempty" jsonschema:"Alias for page_token"`
	Order          string `json:"order,omitempty" jsonschema:"relevance (default) or time"`
	TextFormat     string `json:"text_format,omitempty" jsonschema:"plainText (default) or html"`
	IncludeReplies bool   `json:"include_replies,omitempty" jsonschema:"Include up to 5 replies per thread"`
}
