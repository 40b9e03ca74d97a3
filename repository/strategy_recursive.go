package repository

import (
	"context"

	"github.com/helioreports/helio-go/dto"
)

// recursiveStrategy lets the server walk subfolders and follows the
// continuation offsets it hands back in the Next-Offset header. An
// absent header, or an empty page, ends the search.
type recursiveStrategy struct {
	criteria  internalCriteria
	api       *API
	offset    int
	exhausted bool
}

func newRecursiveStrategy(criteria internalCriteria, api *API) *recursiveStrategy {
	return &recursiveStrategy{
		criteria: criteria.withRecursive(true),
		api:      api,
		offset:   criteria.offset,
	}
}

func (s *recursiveStrategy) SearchNext(ctx context.Context) ([]dto.Resource, error) {
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

	if page.HasNextOffset {
		s.offset = page.NextOffset
	} else {
		s.exhausted = true
	}
	return page.Items, nil
}
