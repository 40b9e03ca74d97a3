package helio

import (
	"context"
	"errors"
	"os/exec"
	"runtime"

	"github.com/helioreports/helio-go/client/restclient"
	"github.com/helioreports/helio-go/dto"
	"github.com/helioreports/helio-go/relays"
	"github.com/helioreports/helio-go/serverinfo"
)

func (s *ReportSvc) State() *dto.SvcState {

	return &dto.SvcState{
		BaseURL:                s.cfg.BaseURL,
		ExtraHeaders:           s.cfg.ExtraHeaders,
		RequestTimeout:         s.cfg.RequestTimeout,
		UserAgent:              s.cfg.UserAgent,
		ExportCallbackInterval: s.cfg.ExportCallbackInterval,
		PreferCurlExports:      s.cfg.PreferCurlExports,
		ExportsStatus:          s.exportState.GetAll(),
	}
}

func isCurlAvailable() bool {
	_, err := exec.LookPath("curl")
	return err == nil
}

// Hydrate wires the default REST client from the service config and
// prepares the server capability provider. Must run before any domain
// API is used.
func (s *ReportSvc) Hydrate(ctx context.Context) error {
	if s.cfg == nil {
		return errors.New("no service config")
	}
	if s.relay == nil {
		return errors.New("no relay implementation")
	}
	if s.cfg.BaseURL == "" {
		return errors.New("no server base url")
	}
	// On Mac, to conform to download security policy, force curl
	if runtime.GOOS == "darwin" {
		s.cfg.WithPreferCurl(true)
	}
	if s.cfg.PreferCurlExports && !isCurlAvailable() {
		s.relay.Warn(relays.RlyRestLog{Msg: "Curl set as preference but, not available"})
		s.cfg.WithPreferCurl(false)
	}

	defaultClientCfg := restclient.DefaultRestClientConfig()
	defaultClientCfg.
		WithAuthProvider(s.cfg.AuthProvider()).
		WithOAuthSource(s.cfg.OAuthSource())
	if s.cfg.Organization != "" {
		defaultClientCfg.WithMiddleware(restclient.OrganizationMiddleware(s.cfg.Organization))
	}

	defaultClient := restclient.NewRestClient(dto.NET_DEFAULT_CLIENT_REF, s.cfg, &defaultClientCfg)
	s.clients[dto.NET_DEFAULT_CLIENT_REF] = defaultClient

	s.info = serverinfo.NewProvider(s.cfg.BaseURL, defaultClient)

	return nil
}
