package repository

import (
	"context"

	"github.com/helioreports/helio-go/dto"
	"github.com/helioreports/helio-go/serverinfo"
)

// SearchStrategy pages through lookup results one network call at a
// time. SearchNext returns the next batch, or nil once the server has
// no more pages; after that every call returns nil without touching
// the network. A strategy instance is single-caller state and must not
// be shared across goroutines.
type SearchStrategy interface {
	SearchNext(ctx context.Context) ([]dto.Resource, error)
}

// strategyFor picks the variant matching the criteria shape and
// server capabilities. Pure selection; no network happens here.
//
// Recursive searches need server-side continuation offsets, which
// arrived in 5.6.1. Folder-scoped searches on servers without them get
// the two-phase folder-first walk; everything else pages flat.
func strategyFor(criteria internalCriteria, api *API, version serverinfo.Version) SearchStrategy {
	switch {
	case criteria.Recursive() && version.AtLeast(serverinfo.Version5_6_1):
		return newRecursiveStrategy(criteria, api)
	case criteria.FolderURI() != "":
		return newFolderFirstStrategy(criteria, api)
	default:
		return newFlatStrategy(criteria, api)
	}
}
