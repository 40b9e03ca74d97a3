package restclient

import (
	"context"
	"fmt"
)

// StaticHeaderMiddleware injects static headers into every request.
func StaticHeaderMiddleware(headers map[string]string) Middleware {
	return func(ctx context.Context, r *RestRequest) error {
		if r.Headers == nil {
			r.Headers = make(map[string]string)
		}
		for k, v := range headers {
			r.Headers[k] = v
		}
		return nil
	}
}

func LoggingMiddleware(logger func(msg string)) Middleware {
	return func(ctx context.Context, r *RestRequest) error {
		logger(fmt.Sprintf("[REST] %s %s", r.Method, r.URL))
		return nil
	}
}

// OrganizationMiddleware scopes every call to a server organization.
func OrganizationMiddleware(org string) Middleware {
	return func(ctx context.Context, r *RestRequest) error {
		if org == "" {
			return nil
		}
		r.SetQuery("organization", org)
		return nil
	}
}
