package restclient

import (
	"context"
	"time"

	"github.com/helioreports/helio-go/dto"
	"golang.org/x/oauth2"
)

type Middleware func(ctx context.Context, req *RestRequest) error

type RestClientConfig struct {
	AuthProvider  dto.AuthProvider
	OAuthSource   oauth2.TokenSource
	RefreshBuffer time.Duration
	Middlewares   []Middleware
}

func DefaultRestClientConfig() RestClientConfig {
	return RestClientConfig{
		RefreshBuffer: 30 * time.Second,
		Middlewares:   make([]Middleware, 0),
	}
}

func (c *RestClientConfig) WithAuthProvider(provider dto.AuthProvider) *RestClientConfig {
	c.AuthProvider = provider
	return c
}
func (c *RestClientConfig) WithOAuthSource(tokenSource oauth2.TokenSource) *RestClientConfig {
	c.OAuthSource = tokenSource
	return c
}

// WithRefreshBuffer sets the early-refresh buffer.
func (c *RestClientConfig) WithRefreshBuffer(d time.Duration) *RestClientConfig {
	c.RefreshBuffer = d
	return c
}
func (c *RestClientConfig) WithMiddleware(m ...Middleware) *RestClientConfig {
	c.Middlewares = append(c.Middlewares, m...)
	return c
}
