package serverinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/helioreports/helio-go/client/restclient"
	"github.com/helioreports/helio-go/dto"
)

// Provider fetches and memoizes the server capability snapshot.
// The first successful Info call hits the network; later calls reuse
// the cached snapshot for the provider's lifetime. A failed fetch is
// not cached, so the next call retries.
type Provider struct {
	baseURL string
	client  dto.NetClientInterface

	mu     sync.Mutex
	cached *dto.ServerInfo
}

func NewProvider(baseURL string, client dto.NetClientInterface) *Provider {
	return &Provider{
		baseURL: baseURL,
		client:  client,
	}
}

func (p *Provider) Info(ctx context.Context) (dto.ServerInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != nil {
		return *p.cached, nil
	}

	reqCfg := restclient.DefaultRestRequestConfig()
	reqCfg.WithURL(
		restclient.NewPathBuilder().
			Add("rest_v2").
			Add("serverInfo").
			Resolve(p.baseURL),
	)

	cfg := dto.DefaultRequestConfig()
	cfg.WithReqConfig(&reqCfg).WithTaskName("GET serverInfo")

	resp, err := p.client.ProcessRequest(ctx, &cfg)
	if err != nil {
		return dto.ServerInfo{}, fmt.Errorf("fetch server info: %w", err)
	}

	var info dto.ServerInfo
	if err := json.Unmarshal(resp.Body, &info); err != nil {
		return dto.ServerInfo{}, &dto.DecodingError{Err: err}
	}

	p.cached = &info
	return info, nil
}

// ServerVersion parses the version out of the memoized snapshot.
func (p *Provider) ServerVersion(ctx context.Context) (Version, error) {
	info, err := p.Info(ctx)
	if err != nil {
		return Version{}, err
	}
	return ParseVersion(info.Version)
}
