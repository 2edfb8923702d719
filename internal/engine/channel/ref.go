// Package channel turns user-typed channel identifiers into catalog IDs.
//
// Parse classifies input without any I/O. Resolve looks the result up on the
// Data API, refusing to guess in strict mode.
package channel

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/anatolykoptev/go_youtube/internal/engine"
)

// Kind classifies a channel reference.
type Kind string

const (
	KindHandle    Kind = "handle"
	KindChannelID Kind = "channel_id"
	KindUsername  Kind = "username"
	KindCustomURL Kind = "custom_url"
	KindQuery     Kind = "query"
)

// Ref is a classified channel reference. Value is the kind-specific
// normalized part (handle without '@', bare channel ID, ...); Raw is the
// trimmed input.
type Ref struct {
	Kind  Kind
	Value string
	Raw   string
}

// ParseError reports input that cannot be classified deterministically.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return "parse channel reference: " + e.Reason
}

func (e *ParseError) Unwrap() error { return engine.ErrInvalidArgument }

// Hostnames accepted in channel URLs. This is a parse allowlist, not a fetch allowlist.
var youtubeHosts = map[string]bool{
	"youtube.com":     true,
	"www.youtube.com": true,
	"m.youtube.com":   true,
}

const minChannelIDLen = 16

var pathKinds = []struct {
	prefix string
	kind   Kind
	label  string
}{
	{"/@", KindHandle, "handle"},
	{"/channel/", KindChannelID, "channel ID"},
	{"/user/", KindUsername, "username"},
	{"/c/", KindCustomURL, "custom URL segment"},
}

// Parse classifies input. First match wins:
//
//	@handle                       -> handle
//	UC... (>= 16 chars)           -> channel_id
//	youtube.com/@h, /channel/id,
//	/user/name, /c/name           -> handle, channel_id, username, custom_url
//	anything else                 -> query
//
// Scheme-less youtube.com URLs are accepted. Parse never guesses: unknown
// YouTube paths and foreign hosts become queries, not errors.
func Parse(input string) (Ref, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Ref{}, &ParseError{Input: input, Reason: "channel reference cannot be empty"}
	}

	if rest, ok := strings.CutPrefix(raw, "@"); ok {
		handle := strings.TrimSpace(rest)
		if err := checkSegment(raw, handle, "handle"); err != nil {
			return Ref{}, err
		}
		return Ref{Kind: KindHandle, Value: handle, Raw: raw}, nil
	}

	if looksLikeChannelID(raw) {
		return Ref{Kind: KindChannelID, Value: raw, Raw: raw}, nil
	}

	ref, ok, err := parseURL(raw)
	if err != nil {
		return Ref{}, err
	}
	if ok {
		return ref, nil
	}
	return Ref{Kind: KindQuery, Value: raw, Raw: raw}, nil
}

// looksLikeChannelID is deliberately loose; a wrong guess fails at lookup time.
func looksLikeChannelID(s string) bool {
	return strings.HasPrefix(s, "UC") && len(s) >= minChannelIDLen && !strings.ContainsAny(s, " \t\r\n")
}

// parseURL reports ok=false when raw is not a YouTube channel URL at all.
func parseURL(raw string) (Ref, bool, error) {
	candidate := raw
	for host := range youtubeHosts {
		if strings.HasPrefix(candidate, host+"/") {
			candidate = "https://" + candidate
			break
		}
	}

	u, err := url.Parse(candidate)
	if err != nil {
		return Ref{}, false, nil
	}
	if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
		return Ref{}, false, nil
	}
	host := strings.ToLower(u.Host)
	if host == "" || !youtubeHosts[host] {
		return Ref{}, false, nil
	}

	path := u.Path
	for _, pk := range pathKinds {
		rest, found := strings.CutPrefix(path, pk.prefix)
		if !found {
			continue
		}
		value := strings.Trim(rest, "/")
		if err := checkSegment(raw, value, pk.label); err != nil {
			return Ref{}, false, err
		}
		return Ref{Kind: pk.kind, Value: value, Raw: raw}, true, nil
	}

	// A YouTube URL we do not understand stays ambiguous.
	return Ref{Kind: KindQuery, Value: raw, Raw: raw}, true, nil
}

func checkSegment(raw, value, label string) error {
	if value == "" {
		return &ParseError{Input: raw, Reason: label + " cannot be empty"}
	}
	if strings.ContainsAny(value, "/?#") {
		return &ParseError{Input: raw, Reason: fmt.Sprintf("%s contains invalid URL separator characters", label)}
	}
	return nil
}
