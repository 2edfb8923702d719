// Package videos holds the record-level helpers shared by every listing:
// identifier extraction, best-effort classification, filtering and sorting.
//
// Classification is heuristic. IsShort and IsLive never fail; a record they
// cannot read is simply not classified.
package videos

import (
	"regexp"
	"strconv"

	"github.com/anatolykoptev/go_youtube/internal/engine/ytapi"
)

// ShortMaxSeconds is the longest duration still counted as a short.
const ShortMaxSeconds = 60

var durationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseDurationSeconds parses the PT[nH][nM][nS] subset of ISO-8601 that the
// Data API returns (PT30S, PT5M, PT1H2M3S). ok is false for anything else.
func ParseDurationSeconds(d string) (seconds int, ok bool) {
	m := durationRe.FindStringSubmatch(d)
	if m == nil {
		return 0, false
	}
	var parts [3]int
	for i, g := range m[1:] {
		if g == "" {
			continue
		}
		n, err := strconv.Atoi(g)
		if err != nil {
			return 0, false
		}
		parts[i] = n
	}
	return parts[0]*3600 + parts[1]*60 + parts[2], true
}

// IsShort reports contentDetails.duration <= 60s. Unparsable durations are not shorts.
func IsShort(v ytapi.Resource) bool {
	secs, ok := ParseDurationSeconds(ytapi.StringAt(v, "contentDetails", "duration"))
	return ok && secs <= ShortMaxSeconds
}

// IsLive reports snippet.liveBroadcastContent of live or upcoming.
func IsLive(v ytapi.Resource) bool {
	switch ytapi.StringAt(v, "snippet", "liveBroadcastContent") {
	case "live", "upcoming":
		return true
	}
	return false
}

// Filter drops shorts and/or live entries. The input is not modified.
func Filter(vs []ytapi.Resource, includeShorts, includeLive bool) []ytapi.Resource {
	out := make([]ytapi.Resource, 0, len(vs))
	for _, v := range vs {
		if !includeShorts && IsShort(v) {
			continue
		}
		if !includeLive && IsLive(v) {
			continue
		}
		out = append(out, v)
	}
	return out
}
