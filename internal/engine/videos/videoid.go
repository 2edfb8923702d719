package videos

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/anatolykoptev/go_youtube/internal/engine"
)

var (
	videoIDRe   = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	videoPathRe = regexp.MustCompile(`^/(?:shorts|embed)/([A-Za-z0-9_-]{11})`)
)

// ParseVideoID accepts a bare 11-character video ID or a watch, youtu.be,
// shorts or embed URL.
func ParseVideoID(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: video url or id is required", engine.ErrInvalidArgument)
	}
	if videoIDRe.MatchString(s) {
		return s, nil
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: invalid video URL", engine.ErrInvalidArgument)
	}
	host := strings.ToLower(u.Host)

	if host == "youtube.com" || strings.HasSuffix(host, ".youtube.com") {
		if u.Path == "/watch" {
			if v := u.Query().Get("v"); videoIDRe.MatchString(v) {
				return v, nil
			}
		}
		if m := videoPathRe.FindStringSubmatch(u.Path); m != nil {
			return m[1], nil
		}
	}
	if host == "youtu.be" {
		seg, _, _ := strings.Cut(strings.TrimLeft(u.Path, "/"), "/")
		if videoIDRe.MatchString(seg) {
			return seg, nil
		}
	}
	return "", fmt.Errorf("%w: could not extract video id from %q", engine.ErrInvalidArgument, s)
}
