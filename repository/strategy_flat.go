package repository

import (
	"context"

	"github.com/helioreports/helio-go/dto"
)

// flatStrategy pages by offset and limit. A page shorter than the
// limit is the exhaustion signal; the cursor only advances after a
// successful fetch, so a failed call can be retried against the same
// page.
type flatStrategy struct {
	criteria  internalCriteria
	api       *API
	offset    int
	exhausted bool
}

func newFlatStrategy(criteria internalCriteria, api *API) *flatStrategy {
	return &flatStrategy{
		criteria: criteria.withRecursive(false),
		api:      api,
		offset:   criteria.offset,
	}
}

func (s *flatStrategy) SearchNext(ctx context.Context) ([]dto.Resource, error) {
	if s.exhausted {
		return nil, nil
	}

	page, err := s.api.SearchResources(ctx, s.criteria.withOffset(s.offset))
	if err != nil {
		return nil, err
	}

	if len(page.Items) == 0 {
		s.exhausted = true
		return nil, nil
	}

	s.offset += len(page.Items)
	if len(page.Items) < s.criteria.Limit() {
		s.exhausted = true
	}
	return page.Items, nil
}
