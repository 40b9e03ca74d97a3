package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/helioreports/helio-go/config"
	"github.com/helioreports/helio-go/dto"
)

// RestClient is a high-level wrapper around the report server's REST
// surface, providing automatic authentication and session management.
//
// It supports multiple authentication modes:
//   - OAuth2 TokenSource (golang.org/x/oauth2)
//   - Custom AuthProvider (e.g. Spring form login with session cookies)
//
// RestClient is suitable for long-lived integrations where multiple
// requests share authentication state safely.

const NetClientRestRef dto.NetClientType = "helio.client.rest"

type RestClient struct {
	NetClient dto.NetClient `json:"net_client" yaml:"net_client"`
	cfg       *RestClientConfig
	svcCfg    *config.SvcConfig
	client    *http.Client
	token     dto.TokenInfo
	tokenMu   sync.RWMutex
}

func NewRestClient(ref string, svcCfg *config.SvcConfig, cfg *RestClientConfig) *RestClient {
	return &RestClient{
		cfg:    cfg,
		svcCfg: svcCfg,
		NetClient: dto.NetClient{
			Name:        "REST Client",
			Ref:         ref,
			ClientType:  NetClientRestRef,
			Description: "Performs authenticated calls against the report server REST API",
		},
		client: &http.Client{
			Timeout: svcCfg.RequestTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        50,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
				DisableKeepAlives:   false,
				Proxy:               http.ProxyFromEnvironment,
			},
		},
	}
}

func (c *RestClient) Ref() string {
	return c.NetClient.Ref
}
func (c *RestClient) Type() dto.NetClientType {
	return NetClientRestRef
}

// ProcessRequest executes one authenticated, middleware-wrapped call.
// Automatically handles token lifetimes, OAuth2 renewal, and cookie
// sessions. Any response with a status outside 2xx is returned together
// with a *dto.HTTPError carrying the parsed error descriptor, if the
// body held one.
func (c *RestClient) ProcessRequest(ctx context.Context, inCfg *dto.RequestConfig) (dto.Response, error) {
	cfg, castOk := inCfg.ReqConfig.(*RestRequestConfig)
	if !castOk {
		return dto.Response{}, errors.New("problem casting to restrequestconfig")
	}

	reqAny, err := cfg.NewRequest(ctx)
	if err != nil {
		return dto.Response{}, fmt.Errorf("build request: %w", err)
	}
	reqCfg, ok := reqAny.(*RestRequest)
	if !ok {
		return dto.Response{}, errors.New("problem casting built request to restrequest")
	}

	for _, mw := range c.cfg.Middlewares {
		if err := mw(ctx, reqCfg); err != nil {
			return dto.Response{}, fmt.Errorf("middleware aborted: %w", err)
		}
	}

	if err := c.ensureToken(ctx); err != nil {
		return dto.Response{}, fmt.Errorf("ensure token: %w", err)
	}

	c.tokenMu.RLock()
	c.attachAuth(reqCfg)
	c.tokenMu.RUnlock()

	if err := reqCfg.FinalizeBody(); err != nil {
		return dto.Response{}, err
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		reqCfg.Method,
		reqCfg.ResolveURL(),
		bytes.NewReader(reqCfg.BodyBytes),
	)
	if err != nil {
		return dto.Response{}, fmt.Errorf("create request: %w", err)
	}

	for k, v := range c.svcCfg.ExtraHeaders {
		httpReq.Header.Set(k, v)
	}
	for k, v := range reqCfg.Headers {
		if k == "Authorization" && httpReq.Header.Get("Authorization") != "" {
			continue
		}
		httpReq.Header.Set(k, v)
	}

	if c.svcCfg.UserAgent != "" && httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", c.svcCfg.UserAgent)
	}
	if reqCfg.ContentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", reqCfg.ContentType)
	}

	// client.Do may return a non-nil response alongside an error
	httpResp, reqErr := c.client.Do(httpReq)
	if httpResp != nil {
		defer func() {
			io.Copy(io.Discard, httpResp.Body) // drain fully for connection reuse
			httpResp.Body.Close()
		}()
	}
	if reqErr != nil {
		return dto.Response{}, fmt.Errorf("perform request: %w", reqErr)
	}

	bodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return dto.Response{}, fmt.Errorf("read body: %w", err)
	}

	response := dto.Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header.Clone(),
		Body:       bodyBytes,
	}

	// Capture cookies, prunes if expired
	if setCookies := response.Headers["Set-Cookie"]; len(setCookies) > 0 {
		c.captureCookiesFromResponse(response)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return response, &dto.HTTPError{
			StatusCode: response.StatusCode,
			Descriptor: parseErrorDescriptor(response.Body),
		}
	}

	return response, nil
}

// parseErrorDescriptor attempts to read the structured error body the
// server attaches to some failures. A body that is not a descriptor is
// not an error here; the caller still gets the status code.
func parseErrorDescriptor(body []byte) *dto.ErrorDescriptor {
	if len(body) == 0 {
		return nil
	}
	var descriptor dto.ErrorDescriptor
	if err := json.Unmarshal(body, &descriptor); err != nil {
		return nil
	}
	if descriptor.ErrorCode == "" && descriptor.Message == "" {
		return nil
	}
	return &descriptor
}
