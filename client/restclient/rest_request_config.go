package restclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/helioreports/helio-go/dto"
)

// RestRequestConfig is immutable input (safe to reuse).
type RestRequestConfig struct {
	Method string `json:"method" yaml:"method"`
	URL    string
	Query  map[string]string      `json:"query" yaml:"query"`
	Body   map[string]interface{} `json:"body" yaml:"body"`
	// BodyType application/json, application/x-www-form-urlencoded
	BodyType string            `json:"body_type" yaml:"body_type"`
	Headers  map[string]string `json:"headers" yaml:"headers"`
}

func DefaultRestRequestConfig() RestRequestConfig {
	return RestRequestConfig{
		Method:   http.MethodGet,
		Query:    map[string]string{},
		Body:     map[string]interface{}{},
		BodyType: "application/json",
		Headers: map[string]string{
			"Accept": "application/json; charset=UTF-8",
		},
	}
}

func (c *RestRequestConfig) Ref() dto.NetClientType {
	return NetClientRestRef
}

func (c *RestRequestConfig) WithMethod(method string) *RestRequestConfig {
	c.Method = method
	return c
}
func (c *RestRequestConfig) WithBody(body map[string]interface{}) *RestRequestConfig {
	c.Body = body
	return c
}
func (c *RestRequestConfig) WithHeaders(headers map[string]string) *RestRequestConfig {
	c.Headers = headers
	return c
}
func (c *RestRequestConfig) WithURL(url string) *RestRequestConfig {
	c.URL = url
	return c
}
func (c *RestRequestConfig) WithQuery(query map[string]string) *RestRequestConfig {
	c.Query = query
	return c
}
func (c *RestRequestConfig) WithQueryParam(key, value string) *RestRequestConfig {
	if c.Query == nil {
		c.Query = map[string]string{}
	}
	c.Query[key] = value
	return c
}

// NewRequest creates a per-call mutable request object.
// This avoids mutating the config and avoids leaks without cloning the config maps.
func (c *RestRequestConfig) NewRequest(ctx context.Context) (any, error) {
	r := &RestRequest{
		Method:   c.Method,
		URL:      c.URL,
		BodyType: c.BodyType,
		Query:    make(map[string]string, len(c.Query)),
		Headers:  make(map[string]string, len(c.Headers)),
		Body:     make(map[string]any, len(c.Body)),
	}
	for k, v := range c.Query {
		r.Query[k] = v
	}
	for k, v := range c.Headers {
		r.Headers[k] = v
	}
	for k, v := range c.Body {
		r.Body[k] = v
	}
	return r, nil
}

// RestRequest is per-call mutable state.
type RestRequest struct {
	Method   string
	URL      string
	Query    map[string]string
	Body     map[string]any
	BodyType string
	Headers  map[string]string
	// Finalized wire body (deterministic for tests and retries)
	BodyBytes   []byte
	ContentType string
}

func (r *RestRequest) ClientType() dto.NetClientType { return NetClientRestRef }

func (r *RestRequest) SetHeader(k, v string) {
	if r.Headers == nil {
		r.Headers = map[string]string{}
	}
	r.Headers[k] = v
}

func (r *RestRequest) Header(k string) string {
	if r.Headers == nil {
		return ""
	}
	return r.Headers[k]
}

func (r *RestRequest) SetQuery(k, v string) {
	if r.Query == nil {
		r.Query = map[string]string{}
	}
	r.Query[k] = v
}

// ResolveURL appends the encoded query string to the request URL.
func (r *RestRequest) ResolveURL() string {
	if len(r.Query) == 0 {
		return r.URL
	}
	vals := url.Values{}
	for k, v := range r.Query {
		vals.Set(k, v)
	}
	sep := "?"
	for i := 0; i < len(r.URL); i++ {
		if r.URL[i] == '?' {
			sep = "&"
			break
		}
	}
	return r.URL + sep + vals.Encode()
}
