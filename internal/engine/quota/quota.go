// Package quota estimates Data API cost before any call is made and rejects
// plans that would exceed the caller's budget.
//
// Estimates are conservative upper bounds derived from page-size arithmetic
// only; they never observe real responses.
package quota

import (
	"errors"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_youtube/internal/engine"
	"github.com/go-playground/validator/v10"
)

// Strategy tags how a listing is fetched. It also labels the estimate.
type Strategy string

const (
	StrategyUploads   Strategy = "uploads_playlist"
	StrategyLocalSort Strategy = "local_sort"
	StrategySearch    Strategy = "search_api"
	// StrategyDirect labels fixed-cost single-page reads (playlists, comments).
	StrategyDirect Strategy = "direct_read"
)

// ParseStrategy validates a listing strategy name. Empty means uploads_playlist.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.TrimSpace(s)); st {
	case "":
		return StrategyUploads, nil
	case StrategyUploads, StrategyLocalSort, StrategySearch:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown strategy %q (want uploads_playlist, local_sort or search_api)", engine.ErrInvalidArgument, s)
}

// Cost model constants.
const (
	PageSize        = 50  // items per list page and per videos.list batch
	ReadPageCost    = 1   // playlistItems/videos/playlists/channels/commentThreads
	SearchPageCost  = 100 // search.list
	SearchItemLimit = 500 // platform ceiling for channel-scoped search results
)

// Default ceilings for one tool call.
const (
	DefaultMaxItems     = 200
	DefaultMaxPages     = 10
	DefaultMaxCostUnits = 1000
)

// Notes attached to estimates.
const (
	NoteItemsTruncated = "requested_max_videos truncated to budget.max_videos"
	NotePagesTruncated = "pages truncated to budget.max_pages"
	NoteSearchCapped   = "search_api is capped to 500 videos by API behavior"
)

// Budget is the per-call ceiling. All fields must be positive.
type Budget struct {
	MaxItems     int `json:"maxItems" validate:"gt=0"`
	MaxPages     int `json:"maxPages" validate:"gt=0"`
	MaxCostUnits int `json:"maxCostUnits" validate:"gt=0"`
}

// DefaultBudget returns {200 items, 10 pages, 1000 units}.
func DefaultBudget() Budget {
	return Budget{MaxItems: DefaultMaxItems, MaxPages: DefaultMaxPages, MaxCostUnits: DefaultMaxCostUnits}
}

var budgetValidate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that every ceiling is positive.
func (b Budget) Validate() error {
	err := budgetValidate.Struct(b)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return fmt.Errorf("%w: budget %s must be positive", engine.ErrInvalidArgument, strings.Join(fields, ", "))
	}
	return fmt.Errorf("%w: budget: %v", engine.ErrInvalidArgument, err)
}

// Estimate is the pre-flight cost of one call.
type Estimate struct {
	EstimatedUnits int      `json:"estimatedUnits"`
	Strategy       Strategy `json:"strategy"`
	Notes          []string `json:"notes"`
}

// ErrBudgetExceeded matches every *ExceededError.
var ErrBudgetExceeded = errors.New("quota budget exceeded")

// ExceededError means the plan would cost more than Budget.MaxCostUnits.
// It is raised before any backend call and is unrelated to the platform's
// own quotaExceeded responses.
type ExceededError struct {
	Strategy Strategy
	Units    int
	Limit    int
}

func (e *ExceededError) Error() string {
	return fmt.Sprintf("%s: estimated %d units exceeds maxCostUnits=%d (strategy %s)",
		ErrBudgetExceeded, e.Units, e.Limit, e.Strategy)
}

func (e *ExceededError) Unwrap() error { return ErrBudgetExceeded }

// Plan is an accepted estimate plus the limits a pipeline must stay within
// for the estimate to hold.
type Plan struct {
	Estimate Estimate
	MaxItems int // items to fetch, after budget and platform caps
	MaxPages int // list pages to read
}

// PlanListing computes the cost of listing requestedMaxItems videos with
// strategy and rejects it when it exceeds the budget.
//
// uploads_playlist and local_sort cost one unit per playlistItems page;
// search_api costs 100 per search page and is capped at 500 items. With
// includeDetails, each batch of up to 50 videos.list lookups adds one unit.
func PlanListing(strategy Strategy, requestedMaxItems int, b Budget, includeDetails bool) (Plan, error) {
	if requestedMaxItems <= 0 {
		return Plan{}, fmt.Errorf("%w: requested max items must be positive, got %d", engine.ErrInvalidArgument, requestedMaxItems)
	}
	if err := b.Validate(); err != nil {
		return Plan{}, err
	}

	notes := []string{}
	items := min(requestedMaxItems, b.MaxItems)
	if requestedMaxItems > b.MaxItems {
		notes = append(notes, NoteItemsTruncated)
	}

	var pageCost int
	switch strategy {
	case StrategyUploads, StrategyLocalSort:
		pageCost = ReadPageCost
	case StrategySearch:
		pageCost = SearchPageCost
		if items > SearchItemLimit {
			items = SearchItemLimit
			notes = append(notes, NoteSearchCapped)
		}
	default:
		return Plan{}, fmt.Errorf("%w: unknown strategy %q", engine.ErrInvalidArgument, strategy)
	}

	pages := ceilDiv(items, PageSize)
	if pages > b.MaxPages {
		pages = b.MaxPages
		notes = append(notes, NotePagesTruncated)
	}

	units := pages * pageCost
	if includeDetails {
		units += ceilDiv(items, PageSize) * ReadPageCost
	}

	est := Estimate{EstimatedUnits: units, Strategy: strategy, Notes: notes}
	if err := enforce(est, b); err != nil {
		return Plan{}, err
	}
	return Plan{Estimate: est, MaxItems: items, MaxPages: pages}, nil
}

// EstimateListing is PlanListing without the fetch limits.
func EstimateListing(strategy Strategy, requestedMaxItems int, b Budget, includeDetails bool) (Estimate, error) {
	p, err := PlanListing(strategy, requestedMaxItems, b, includeDetails)
	if err != nil {
		return Estimate{}, err
	}
	return p.Estimate, nil
}

// Check prices a fixed-cost read of units and applies the same ceiling.
func Check(units int, b Budget) (Estimate, error) {
	if units <= 0 {
		return Estimate{}, fmt.Errorf("%w: units must be positive, got %d", engine.ErrInvalidArgument, units)
	}
	if err := b.Validate(); err != nil {
		return Estimate{}, err
	}
	est := Estimate{EstimatedUnits: units, Strategy: StrategyDirect, Notes: []string{}}
	if err := enforce(est, b); err != nil {
		return Estimate{}, err
	}
	return est, nil
}

func enforce(est Estimate, b Budget) error {
	if est.EstimatedUnits > b.MaxCostUnits {
		engine.IncrQuotaRejection(string(est.Strategy))
		return &ExceededError{Strategy: est.Strategy, Units: est.EstimatedUnits, Limit: b.MaxCostUnits}
	}
	engine.AddEstimatedUnits(string(est.Strategy), est.EstimatedUnits)
	return nil
}

func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}
