package listing

import (
	"context"

	"github.com/anatolykoptev/go_youtube/internal/engine/quota"
	"github.com/anatolykoptev/go_youtube/internal/engine/ytapi"
)

// List dispatches to the pipeline for strategy.
func List(ctx context.Context, client ytapi.Client, strategy quota.Strategy, opts Options) (Page[ytapi.Resource], error) {
	switch strategy {
	case quota.StrategyUploads:
		return UploadsPage(ctx, client, opts)
	case quota.StrategyLocalSort:
		return LocalSorted(ctx, client, opts)
	case quota.StrategySearch:
		return SearchOrdered(ctx, client, opts)
	}
	return Page[ytapi.Resource]{}, invalidf("unknown strategy %q", strategy)
}
