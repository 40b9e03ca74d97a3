package restclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/helioreports/helio-go/config"
	"github.com/helioreports/helio-go/dto"
	"golang.org/x/oauth2"
)

// --- helpers ----------------------------------------------------------------

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	return b
}

func newTestClient(t *testing.T, cfg *RestClientConfig) *RestClient {
	t.Helper()

	svcCfg := &config.SvcConfig{
		RequestTimeout: 2 * time.Second,
		UserAgent:      "helio-go/test",
	}
	if cfg == nil {
		c := DefaultRestClientConfig()
		cfg = &c
	}
	return NewRestClient("test", svcCfg, cfg)
}

type staticTokenSource struct {
	tok *oauth2.Token
	err error
	n   atomic.Int64
}

func (s *staticTokenSource) Token() (*oauth2.Token, error) {
	s.n.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	// return a copy to avoid tests mutating shared state
	cpy := *s.tok
	return &cpy, nil
}

type fakeAuthProvider struct {
	authenticate func(ctx context.Context) (dto.TokenInfo, error)
	refresh      func(ctx context.Context, old dto.TokenInfo) (dto.TokenInfo, error)
}

func (f fakeAuthProvider) Authenticate(ctx context.Context) (dto.TokenInfo, error) {
	if f.authenticate == nil {
		return dto.TokenInfo{}, errors.New("Authenticate not implemented")
	}
	return f.authenticate(ctx)
}

func (f fakeAuthProvider) Refresh(ctx context.Context, old dto.TokenInfo) (dto.TokenInfo, error) {
	if f.refresh == nil {
		return dto.TokenInfo{}, errors.New("Refresh not implemented")
	}
	return f.refresh(ctx, old)
}

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
}

func newRecordingServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *recordedRequest) {
	t.Helper()

	var last recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		last = recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &last
}

// --- tests ------------------------------------------------------------------

func Test_RestClient_ProcessRequest_oauthBearer_golden(t *testing.T) {
	srv, last := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	cfg := DefaultRestClientConfig()
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
	reqCfg.WithURL(srv.URL + "/rest_v2/serverInfo")

	resp, err := c.ProcessRequest(context.Background(), &dto.RequestConfig{ReqConfig: &reqCfg})
	if err != nil {
		t.Fatalf("ProcessRequest error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status=%d; want 200", resp.StatusCode)
	}
	if got := last.Header.Get("Authorization"); got != "Bearer abc" {
		t.Fatalf("Authorization=%q; want %q", got, "Bearer abc")
	}
	if got := last.Header.Get("User-Agent"); got != "helio-go/test" {
		t.Fatalf("User-Agent=%q; want helio-go/test", got)
	}
	if ts.n.Load() != 1 {
		t.Fatalf("oauth Token() calls=%d; want 1", ts.n.Load())
	}
}

func Test_RestClient_ProcessRequest_cookieSession_golden(t *testing.T) {
	srv, last := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	})

	cfg := DefaultRestClientConfig()
	cfg.AuthProvider = fakeAuthProvider{
		authenticate: func(ctx context.Context) (dto.TokenInfo, error) {
			return dto.TokenInfo{
				Cookies: []*http.Cookie{{Name: "JSESSIONID", Value: "s1"}},
			}, nil
		},
	}

	c := newTestClient(t, &cfg)

	reqCfg := DefaultRestRequestConfig()
	reqCfg.WithURL(srv.URL + "/rest_v2/resources")

	if _, err := c.ProcessRequest(context.Background(), &dto.RequestConfig{ReqConfig: &reqCfg}); err != nil {
		t.Fatalf("ProcessRequest error: %v", err)
	}
	if got := last.Header.Get("Cookie"); got != "JSESSIONID=s1; " {
		t.Fatalf("Cookie=%q; want session cookie attached", got)
	}
}

func Test_RestClient_ProcessRequest_httpError_golden(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		wantCode      int
		wantErrorCode string
	}{
		{
			name:     "plain 500 without descriptor",
			status:   500,
			body:     "boom",
			wantCode: 500,
		},
		{
			name:          "404 with descriptor",
			status:        404,
			body:          `{"message":"Resource /x not found","errorCode":"resource.not.found"}`,
			wantCode:      404,
			wantErrorCode: "resource.not.found",
		},
		{
			name:          "400 export out of range descriptor",
			status:        400,
			body:          `{"message":"Page 99 out of range","errorCode":"export.pages.out.of.range"}`,
			wantCode:      400,
			wantErrorCode: "export.pages.out.of.range",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			c := newTestClient(t, nil)

			reqCfg := DefaultRestRequestConfig()
			reqCfg.WithURL(srv.URL + "/rest_v2/resources")

			resp, err := c.ProcessRequest(context.Background(), &dto.RequestConfig{ReqConfig: &reqCfg})
			if err == nil {
				t.Fatalf("expected error for status %d", tt.status)
			}

			var httpErr *dto.HTTPError
			if !errors.As(err, &httpErr) {
				t.Fatalf("err=%v; want *dto.HTTPError", err)
			}
			if httpErr.StatusCode != tt.wantCode {
				t.Fatalf("StatusCode=%d; want %d", httpErr.StatusCode, tt.wantCode)
			}
			if tt.wantErrorCode == "" {
				if httpErr.Descriptor != nil {
					t.Fatalf("Descriptor=%+v; want nil", httpErr.Descriptor)
				}
			} else {
				if httpErr.Descriptor == nil || httpErr.Descriptor.ErrorCode != tt.wantErrorCode {
					t.Fatalf("Descriptor=%+v; want errorCode %q", httpErr.Descriptor, tt.wantErrorCode)
				}
			}
			// body still surfaced alongside the error
			if resp.StatusCode != tt.wantCode {
				t.Fatalf("resp.StatusCode=%d; want %d", resp.StatusCode, tt.wantCode)
			}
		})
	}
}

func Test_RestClient_ProcessRequest_noContent_golden(t *testing.T) {
	srv, _ := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	c := newTestClient(t, nil)

	reqCfg := DefaultRestRequestConfig()
	reqCfg.WithURL(srv.URL + "/rest_v2/reports/sample/inputControls")

	resp, err := c.ProcessRequest(context.Background(), &dto.RequestConfig{ReqConfig: &reqCfg})
	if err != nil {
		t.Fatalf("ProcessRequest error: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status=%d; want 204", resp.StatusCode)
	}
	if len(resp.Body) != 0 {
		t.Fatalf("body=%q; want empty", resp.Body)
	}
}

func Test_RestClient_ProcessRequest_capturesSetCookie(t *testing.T) {
	srv, last := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "fresh", Path: "/"})
		w.WriteHeader(200)
	})

	c := newTestClient(t, nil)

	reqCfg := DefaultRestRequestConfig()
	reqCfg.WithURL(srv.URL + "/rest_v2/serverInfo")

	if _, err := c.ProcessRequest(context.Background(), &dto.RequestConfig{ReqConfig: &reqCfg}); err != nil {
		t.Fatalf("first call error: %v", err)
	}
	// Second call should send the captured session cookie back.
	if _, err := c.ProcessRequest(context.Background(), &dto.RequestConfig{ReqConfig: &reqCfg}); err != nil {
		t.Fatalf("second call error: %v", err)
	}
	if got := last.Header.Get("Cookie"); got == "" {
		t.Fatalf("expected captured cookie on second call")
	}
}
