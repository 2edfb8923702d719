package videos

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_youtube/internal/engine"
	"github.com/anatolykoptev/go_youtube/internal/engine/ytapi"
)

// OrderBy names a sort key.
type OrderBy string

const (
	OrderDate         OrderBy = "date"
	OrderViewCount    OrderBy = "viewCount"
	OrderLikeCount    OrderBy = "likeCount"
	OrderCommentCount OrderBy = "commentCount"
	OrderDuration     OrderBy = "duration"
)

// ParseOrderBy validates a local sort key. Empty means date.
func ParseOrderBy(s string) (OrderBy, error) {
	switch o := OrderBy(strings.TrimSpace(s)); o {
	case "":
		return OrderDate, nil
	case OrderDate, OrderViewCount, OrderLikeCount, OrderCommentCount, OrderDuration:
		return o, nil
	}
	return "", fmt.Errorf("%w: unknown order_by %q", engine.ErrInvalidArgument, s)
}

// SortKey returns the integer key of v for by. Missing or unreadable fields
// and the date key are 0, so date sorting keeps upstream order.
func SortKey(v ytapi.Resource, by OrderBy) int64 {
	switch by {
	case OrderViewCount, OrderLikeCount, OrderCommentCount:
		raw, _ := ytapi.Lookup(v, "statistics", string(by))
		return toInt(raw)
	case OrderDuration:
		secs, _ := ParseDurationSeconds(ytapi.StringAt(v, "contentDetails", "duration"))
		return int64(secs)
	}
	return 0
}

// SortDesc returns a copy of vs sorted by by, highest first. Ties keep input order.
func SortDesc(vs []ytapi.Resource, by OrderBy) []ytapi.Resource {
	out := slices.Clone(vs)
	slices.SortStableFunc(out, func(a, b ytapi.Resource) int {
		return cmp.Compare(SortKey(b, by), SortKey(a, by))
	})
	return out
}

// toInt reads statistics counters, which the API encodes as decimal strings.
func toInt(raw any) int64 {
	switch n := raw.(type) {
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0
		}
		return i
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return int64(n)
	case int:
		return int64(n)
	case int64:
		return n
	}
	return 0
}
