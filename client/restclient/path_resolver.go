package restclient

import (
	"net/url"
	"strings"
)

type pathSegment struct {
	value string
	raw   bool
}

// PathBuilder composes REST endpoint URLs from the server base URL and
// path segments. Repository URIs ("/reports/samples") expand into their
// individual segments so each one is escaped on its own.
type PathBuilder struct {
	segments []pathSegment
}

func NewPathBuilder() *PathBuilder {
	return &PathBuilder{}
}

// Add appends one literal path segment. Empty segments are dropped.
func (b *PathBuilder) Add(segment string) *PathBuilder {
	if segment != "" {
		b.segments = append(b.segments, pathSegment{value: segment})
	}
	return b
}

// AddRaw appends a segment that is already escaped. Used for matrix
// style segments ("id1;id2") whose separators must survive encoding.
func (b *PathBuilder) AddRaw(segment string) *PathBuilder {
	if segment != "" {
		b.segments = append(b.segments, pathSegment{value: segment, raw: true})
	}
	return b
}

// AddURI appends every segment of a slash separated repository URI.
func (b *PathBuilder) AddURI(uri string) *PathBuilder {
	for _, part := range strings.Split(uri, "/") {
		b.Add(part)
	}
	return b
}

// Resolve joins the collected segments onto the base URL.
func (b *PathBuilder) Resolve(baseURL string) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimRight(baseURL, "/"))
	for _, segment := range b.segments {
		sb.WriteByte('/')
		if segment.raw {
			sb.WriteString(segment.value)
		} else {
			sb.WriteString(url.PathEscape(segment.value))
		}
	}
	return sb.String()
}
