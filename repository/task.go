package repository

import (
	"context"
	"fmt"

	"github.com/helioreports/helio-go/dto"
	"github.com/helioreports/helio-go/serverinfo"
)

type strategyFactory func(criteria internalCriteria, api *API, version serverinfo.Version) SearchStrategy

// SearchTask is the caller-facing cursor over one search. It resolves
// its strategy on the first lookup and keeps it for the lifetime of
// the task. NextLookup blocks for one page round trip; calls on the
// same task must be serialized by the caller.
type SearchTask struct {
	criteria internalCriteria
	api      *API
	info     dto.InfoProvider

	// factory is swapped in tests; production tasks use strategyFor.
	factory   strategyFactory
	strategy  SearchStrategy
	exhausted bool
}

func NewSearchTask(criteria SearchCriteria, api *API, info dto.InfoProvider) *SearchTask {
	return &SearchTask{
		criteria: newInternalCriteria(criteria),
		api:      api,
		info:     info,
		factory:  strategyFor,
	}
}

// NextLookup returns the next batch of results, or nil once the search
// is exhausted. Every call after the first nil is nil without a
// network round trip. Errors propagate unchanged and leave the cursor
// where it was, so the caller can simply call again to retry the same
// page.
func (t *SearchTask) NextLookup(ctx context.Context) ([]dto.Resource, error) {
	if t.exhausted {
		return nil, nil
	}

	if t.strategy == nil {
		strategy, err := t.resolveStrategy(ctx)
		if err != nil {
			return nil, err
		}
		t.strategy = strategy
	}

	items, err := t.strategy.SearchNext(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		t.exhausted = true
	}
	return items, nil
}

// Exhausted reports whether the task has already returned its terminal
// marker.
func (t *SearchTask) Exhausted() bool {
	return t.exhausted
}

// resolveStrategy fetches the server capability snapshot and selects
// the strategy. A failure here leaves the task unresolved; the next
// lookup retries the resolution.
func (t *SearchTask) resolveStrategy(ctx context.Context) (SearchStrategy, error) {
	info, err := t.info.Info(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve search strategy: %w", err)
	}
	version, err := serverinfo.ParseVersion(info.Version)
	if err != nil {
		return nil, fmt.Errorf("resolve search strategy: %w", err)
	}
	return t.factory(t.criteria, t.api, version), nil
}
