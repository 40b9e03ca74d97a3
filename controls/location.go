package controls

import (
	"net/url"
	"sort"
	"strings"
)

// Location addresses a set of input controls on one report unit.
// An empty ID set means every control the report declares.
type Location struct {
	uri string
	ids map[string]struct{}
}

func NewLocation(reportURI string, controlIDs ...string) Location {
	loc := Location{
		uri: reportURI,
		ids: make(map[string]struct{}, len(controlIDs)),
	}
	for _, id := range controlIDs {
		if id != "" {
			loc.ids[id] = struct{}{}
		}
	}
	return loc
}

func (l Location) URI() string {
	return l.uri
}

// IDs returns the control IDs in sorted order.
func (l Location) IDs() []string {
	out := make([]string, 0, len(l.ids))
	for id := range l.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// idSegment renders the ID set as the semicolon separated path segment
// the server expects, or "" when the set is empty. Each ID is escaped
// on its own so the separators survive.
func (l Location) idSegment() string {
	ids := l.IDs()
	for i := range ids {
		ids[i] = url.PathEscape(ids[i])
	}
	return strings.Join(ids, ";")
}

// Equal compares locations by URI and ID set.
func (l Location) Equal(other Location) bool {
	if l.uri != other.uri || len(l.ids) != len(other.ids) {
		return false
	}
	for id := range l.ids {
		if _, ok := other.ids[id]; !ok {
			return false
		}
	}
	return true
}
