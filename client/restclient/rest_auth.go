package restclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// normalizeAuthType ensures proper "Bearer", "Basic", or custom capitalization.
func normalizeAuthType(t string) string {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "bearer":
		return "Bearer"
	case "basic":
		return "Basic"
	default:
		if t == "" {
			return "Bearer"
		}
		return t
	}
}

// AuthorizeHTTPRequest attaches the client's current credentials to a
// plain *http.Request. Streaming callers that bypass ProcessRequest
// (export downloads) use this to share the session.
func (c *RestClient) AuthorizeHTTPRequest(ctx context.Context, req *http.Request) error {
	if err := c.ensureToken(ctx); err != nil {
		return fmt.Errorf("ensure token: %w", err)
	}

	c.tokenMu.RLock()
	defer c.tokenMu.RUnlock()

	if c.token.AccessToken != "" {
		req.Header.Set("Authorization", fmt.Sprintf(
			"%s %s", normalizeAuthType(c.token.TokenType), c.token.AccessToken,
		))
		return nil
	}
	for _, ck := range c.token.Cookies {
		req.AddCookie(ck)
	}
	return nil
}

// attachAuth injects auth credentials or session cookies into a request.
func (c *RestClient) attachAuth(cfg *RestRequest) {
	if cfg.Headers == nil {
		cfg.Headers = map[string]string{}
	}

	if c.token.AccessToken != "" {
		authHeader := fmt.Sprintf("%s %s", normalizeAuthType(c.token.TokenType), c.token.AccessToken)
		cfg.Headers["Authorization"] = authHeader
		return
	}

	if len(c.token.Cookies) > 0 {
		merged := ""
		for _, ck := range c.token.Cookies {
			merged += ck.Name + "=" + ck.Value + "; "
		}
		cfg.Headers["Cookie"] = merged
	}
}
