package repository

import (
	"context"

	"github.com/helioreports/helio-go/dto"
)

// folderFirstStrategy serves folder-scoped searches on servers that
// cannot recurse. It walks the scope in two phases, folders first and
// then the remaining resources, each phase flat-paged. Callers see one
// continuous stream; the phase switch happens between calls, never
// inside one.
type folderFirstStrategy struct {
	folders   *flatStrategy
	resources *flatStrategy
	inFolders bool
	exhausted bool
}

// folderType is the repository type of folder entries.
const folderType = "folder"

func newFolderFirstStrategy(criteria internalCriteria, api *API) *folderFirstStrategy {
	return &folderFirstStrategy{
		folders:   newFlatStrategy(criteria.withTypes(folderType), api),
		resources: newFlatStrategy(criteria, api),
		inFolders: true,
	}
}

func (s *folderFirstStrategy) SearchNext(ctx context.Context) ([]dto.Resource, error) {
	if s.exhausted {
		return nil, nil
	}

	if s.inFolders {
		items, err := s.folders.SearchNext(ctx)
		if err != nil {
			return nil, err
		}
		if items != nil {
			return items, nil
		}
		s.inFolders = false
	}

	// A page can consist entirely of folder entries. Keep fetching so
	// an empty batch never reaches the caller before exhaustion.
	for {
		items, err := s.resources.SearchNext(ctx)
		if err != nil {
			return nil, err
		}
		if items == nil {
			s.exhausted = true
			return nil, nil
		}
		if filtered := dropFolders(items); len(filtered) > 0 {
			return filtered, nil
		}
	}
}

// dropFolders strips folder entries from the resource phase so the
// two phases never repeat an entry. The input slice is left untouched.
func dropFolders(items []dto.Resource) []dto.Resource {
	out := make([]dto.Resource, 0, len(items))
	for _, item := range items {
		if item.ResourceType == folderType {
			continue
		}
		out = append(out, item)
	}
	return out
}
