package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/helioreports/helio-go/client/restclient"
	"github.com/helioreports/helio-go/dto"
)

// API is the thin wrapper over the repository search endpoint. It
// fetches exactly one page per call; paging policy lives in the
// strategies.
type API struct {
	baseURL string
	client  dto.NetClientInterface
}

func NewAPI(baseURL string, client dto.NetClientInterface) *API {
	return &API{
		baseURL: baseURL,
		client:  client,
	}
}

// resourcesPage is one page of lookup results plus the continuation
// offset newer servers return in the Next-Offset header.
type resourcesPage struct {
	Items         []dto.Resource
	NextOffset    int
	HasNextOffset bool
	// ResultCount is the page's entry count as reported by the server,
	// -1 when the header was absent.
	ResultCount int
}

type resourcesEnvelope struct {
	ResourceLookup []dto.Resource `json:"resourceLookup"`
}

// SearchResources issues one GET against /rest_v2/resources for the
// given criteria snapshot. A 204 or empty body yields an empty page.
func (a *API) SearchResources(ctx context.Context, criteria internalCriteria) (resourcesPage, error) {
	reqCfg := restclient.DefaultRestRequestConfig()
	reqCfg.WithURL(a.searchURL(criteria))

	reqCfg.WithQueryParam("offset", strconv.Itoa(criteria.offset))
	reqCfg.WithQueryParam("limit", strconv.Itoa(criteria.Limit()))
	if criteria.Query() != "" {
		reqCfg.WithQueryParam("q", criteria.Query())
	}
	if criteria.FolderURI() != "" {
		reqCfg.WithQueryParam("folderUri", criteria.FolderURI())
	}
	if criteria.SortBy() != "" {
		reqCfg.WithQueryParam("sortBy", criteria.SortBy())
	}
	if criteria.Recursive() {
		reqCfg.WithQueryParam("recursive", "true")
	}

	cfg := dto.DefaultRequestConfig()
	cfg.WithReqConfig(&reqCfg).WithTaskName("GET resources")

	resp, err := a.client.ProcessRequest(ctx, &cfg)
	if err != nil {
		return resourcesPage{}, fmt.Errorf("search resources: %w", err)
	}

	page := resourcesPage{Items: []dto.Resource{}, ResultCount: -1}
	if raw := resp.Headers.Get("Result-Count"); raw != "" {
		if count, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			page.ResultCount = count
		}
	}
	if resp.StatusCode == http.StatusNoContent || len(resp.Body) == 0 {
		return page, nil
	}

	var envelope resourcesEnvelope
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return resourcesPage{}, &dto.DecodingError{Err: err}
	}
	if envelope.ResourceLookup != nil {
		page.Items = envelope.ResourceLookup
	}

	if raw := resp.Headers.Get("Next-Offset"); raw != "" {
		next, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return resourcesPage{}, &dto.DecodingError{Err: fmt.Errorf("parse Next-Offset %q: %w", raw, err)}
		}
		page.NextOffset = next
		page.HasNextOffset = true
	}

	return page, nil
}

// searchURL renders the endpoint with the repeatable type filters
// already encoded; the single-valued params ride in the query map.
func (a *API) searchURL(criteria internalCriteria) string {
	base := restclient.NewPathBuilder().
		Add("rest_v2").
		Add("resources").
		Resolve(a.baseURL)

	types := criteria.Types()
	if len(types) == 0 {
		return base
	}

	var sb strings.Builder
	sb.WriteString(base)
	for i, t := range types {
		if i == 0 {
			sb.WriteByte('?')
		} else {
			sb.WriteByte('&')
		}
		sb.WriteString("type=")
		sb.WriteString(url.QueryEscape(t))
	}
	return sb.String()
}
