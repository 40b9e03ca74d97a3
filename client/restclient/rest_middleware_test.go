package restclient

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/helioreports/helio-go/dto"
	"golang.org/x/oauth2"
)

func Test_Middlewares_golden(t *testing.T) {
	srv, last := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		_, _ = w.Write([]byte("ok"))
	})

	cfg := DefaultRestClientConfig()
	cfg.WithMiddleware(
		StaticHeaderMiddleware(map[string]string{
			"X-Static": "1",
		}),
		OrganizationMiddleware("organization_1"),
	)

	// Provide OAuth so attachAuth is exercised
	ts := &staticTokenSource{
		tok: &oauth2.Token{
			AccessToken: "abc",
			TokenType:   "bearer",
			Expiry:      time.Now().Add(1 * time.Hour),
		},
	}
	cfg.OAuthSource = ts

	c := newTestClient(t, &cfg)

	reqCfg := DefaultRestRequestConfig()
	reqCfg.WithMethod(http.MethodGet).
		WithURL(srv.URL + "/rest_v2/resources").
		WithHeaders(map[string]string{
			"X-FromConfig": "1",
		})

	gotResp, err := c.ProcessRequest(context.Background(), &dto.RequestConfig{
		ReqConfig: &reqCfg,
	})
	if err != nil {
		t.Fatalf("ProcessRequest error: %v", err)
	}
	if gotResp.StatusCode != 200 {
		t.Fatalf("status=%d; want 200", gotResp.StatusCode)
	}

	if got := last.Header.Get("X-Static"); got != "1" {
		t.Fatalf("X-Static=%q; want 1", got)
	}
	if got := last.Header.Get("X-FromConfig"); got != "1" {
		t.Fatalf("X-FromConfig=%q; want 1", got)
	}
	if got := last.Query; got != "organization=organization_1" {
		t.Fatalf("query=%q; want organization scope", got)
	}
	if ts.n.Load() != 1 {
		t.Fatalf("oauth Token() calls=%d; want 1", ts.n.Load())
	}
}
