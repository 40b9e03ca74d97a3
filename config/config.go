package config

import (
	"strings"
	"time"

	"github.com/helioreports/helio-go/dto"
	relayDTO "github.com/joy-dx/relay/dto"
	"golang.org/x/oauth2"
)

// SvcConfig holds the service-wide settings shared by all registered
// clients. Request-level options live in dto.RequestConfig instead.
type SvcConfig struct {
	// BaseURL root of the report server, e.g. "https://bi.example.com/helio"
	BaseURL      string           `json:"base_url" yaml:"base_url"`
	Organization string           `json:"organization,omitempty" yaml:"organization,omitempty"`
	ExtraHeaders dto.ExtraHeaders `json:"extra_headers,omitempty" yaml:"extra_headers,omitempty"`

	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout"`
	UserAgent      string        `json:"user_agent" yaml:"user_agent"`

	ExportCallbackInterval time.Duration `json:"export_callback_interval" yaml:"export_callback_interval"`
	// PreferCurlExports Instead of streaming via net/http, use curl from $PATH when available
	PreferCurlExports bool `json:"prefer_curl_exports" yaml:"prefer_curl_exports"`

	relay       relayDTO.RelayInterface
	auth        dto.AuthProvider
	oauthSource oauth2.TokenSource
}

func DefaultSvcConfig() SvcConfig {
	return SvcConfig{
		RequestTimeout:         20 * time.Second,
		UserAgent:              "helio-go/1.0",
		ExtraHeaders:           make(dto.ExtraHeaders),
		ExportCallbackInterval: 2 * time.Second,
	}
}

func (c *SvcConfig) WithBaseURL(url string) *SvcConfig {
	c.BaseURL = strings.TrimRight(url, "/")
	return c
}

func (c *SvcConfig) WithOrganization(org string) *SvcConfig {
	c.Organization = org
	return c
}

func (c *SvcConfig) WithExtraHeaders(headers dto.ExtraHeaders) *SvcConfig {
	c.ExtraHeaders = headers
	return c
}

func (c *SvcConfig) WithRequestTimeout(d time.Duration) *SvcConfig {
	c.RequestTimeout = d
	return c
}

func (c *SvcConfig) WithUserAgent(ua string) *SvcConfig {
	c.UserAgent = ua
	return c
}

func (c *SvcConfig) WithExportCallbackInterval(d time.Duration) *SvcConfig {
	c.ExportCallbackInterval = d
	return c
}

func (c *SvcConfig) WithPreferCurl(prefer bool) *SvcConfig {
	c.PreferCurlExports = prefer
	return c
}

func (c *SvcConfig) WithRelay(relay relayDTO.RelayInterface) *SvcConfig {
	c.relay = relay
	return c
}

func (c *SvcConfig) Relay() relayDTO.RelayInterface {
	return c.relay
}

// WithAuthProvider sets the login scheme used by the default client,
// e.g. auth.SpringProvider.
func (c *SvcConfig) WithAuthProvider(provider dto.AuthProvider) *SvcConfig {
	c.auth = provider
	return c
}

func (c *SvcConfig) WithOAuthSource(source oauth2.TokenSource) *SvcConfig {
	c.oauthSource = source
	return c
}

func (c *SvcConfig) AuthProvider() dto.AuthProvider {
	return c.auth
}

func (c *SvcConfig) OAuthSource() oauth2.TokenSource {
	return c.oauthSource
}
