package repository

import "sort"

const defaultPageLimit = 100

// SearchCriteria describes one repository search: free-text query,
// folder scope, type filters, sort order and page size. Values are
// immutable; the WithX methods return modified copies so a criteria
// handed to a task can never change under it.
type SearchCriteria struct {
	query     string
	folderURI string
	types     []string
	sortBy    string
	limit     int
	recursive bool
}

// NoCriteria matches every visible resource with default paging.
func NoCriteria() SearchCriteria {
	return SearchCriteria{limit: defaultPageLimit}
}

func (c SearchCriteria) WithQuery(query string) SearchCriteria {
	c.query = query
	return c
}

// WithFolderURI scopes the search to one repository folder.
func (c SearchCriteria) WithFolderURI(uri string) SearchCriteria {
	c.folderURI = uri
	return c
}

// WithTypes filters results to the given resource types.
func (c SearchCriteria) WithTypes(types ...string) SearchCriteria {
	c.types = append([]string(nil), types...)
	sort.Strings(c.types)
	return c
}

func (c SearchCriteria) WithSortBy(field string) SearchCriteria {
	c.sortBy = field
	return c
}

// WithLimit sets the page size. Non-positive limits fall back to the
// default.
func (c SearchCriteria) WithLimit(limit int) SearchCriteria {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	c.limit = limit
	return c
}

// WithRecursive asks the server to descend into subfolders.
func (c SearchCriteria) WithRecursive(recursive bool) SearchCriteria {
	c.recursive = recursive
	return c
}

func (c SearchCriteria) Query() string     { return c.query }
func (c SearchCriteria) FolderURI() string { return c.folderURI }
func (c SearchCriteria) SortBy() string    { return c.sortBy }
func (c SearchCriteria) Limit() int        { return c.limit }
func (c SearchCriteria) Recursive() bool   { return c.recursive }

// Types returns a copy of the type filters.
func (c SearchCriteria) Types() []string {
	return append([]string(nil), c.types...)
}

// Equal compares criteria by value.
func (c SearchCriteria) Equal(other SearchCriteria) bool {
	if c.query != other.query ||
		c.folderURI != other.folderURI ||
		c.sortBy != other.sortBy ||
		c.limit != other.limit ||
		c.recursive != other.recursive ||
		len(c.types) != len(other.types) {
		return false
	}
	for i := range c.types {
		if c.types[i] != other.types[i] {
			return false
		}
	}
	return true
}

// internalCriteria is the criteria snapshot a strategy pages over. It
// adds the mutable-per-copy offset the public criteria deliberately
// lacks.
type internalCriteria struct {
	SearchCriteria
	offset int
}

func newInternalCriteria(c SearchCriteria) internalCriteria {
	if c.limit <= 0 {
		c.limit = defaultPageLimit
	}
	return internalCriteria{SearchCriteria: c}
}

// withOffset returns a copy positioned at the given offset.
func (ic internalCriteria) withOffset(offset int) internalCriteria {
	ic.offset = offset
	return ic
}

// withTypes returns a copy with the type filters replaced.
func (ic internalCriteria) withTypes(types ...string) internalCriteria {
	ic.SearchCriteria = ic.SearchCriteria.WithTypes(types...)
	return ic
}

// withRecursive returns a copy with the recursion flag replaced.
func (ic internalCriteria) withRecursive(recursive bool) internalCriteria {
	ic.recursive = recursive
	return ic
}
