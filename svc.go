package helio

import (
	"sync"

	"github.com/helioreports/helio-go/config"
	"github.com/helioreports/helio-go/controls"
	"github.com/helioreports/helio-go/dto"
	"github.com/helioreports/helio-go/repository"
	"github.com/helioreports/helio-go/serverinfo"
	"github.com/joy-dx/lockablemap"
	relayDTO "github.com/joy-dx/relay/dto"
)

// ReportSvc is the root handle onto one report server. It owns the
// registered transport clients, the export transfer state, and the
// per-source listener channels; the domain APIs hang off it once
// Hydrate has run.
type ReportSvc struct {
	cfg               *config.SvcConfig
	relay             relayDTO.RelayInterface
	clients           map[string]dto.NetClientInterface
	exportState       lockablemap.LockableMap[string, dto.ExportNotification]
	muListeners       sync.Mutex
	listenersBySource map[string][]chan dto.ExportNotification

	info *serverinfo.Provider
}

func (s *ReportSvc) RegisterClient(ref string, client dto.NetClientInterface) {
	s.clients[ref] = client
}

// ServerInfo returns the memoizing capability provider. Nil before
// Hydrate.
func (s *ReportSvc) ServerInfo() *serverinfo.Provider {
	return s.info
}

// Repository builds the search surface over the default client.
func (s *ReportSvc) Repository() *repository.API {
	return repository.NewAPI(s.cfg.BaseURL, s.clients[dto.NET_DEFAULT_CLIENT_REF])
}

// SearchTask opens a fresh cursor over the repository for the given
// criteria.
func (s *ReportSvc) SearchTask(criteria repository.SearchCriteria) *repository.SearchTask {
	return repository.NewSearchTask(criteria, s.Repository(), s.info)
}

// Controls builds the input control surface over the default client.
func (s *ReportSvc) Controls() *controls.API {
	return controls.NewAPI(s.cfg.BaseURL, s.clients[dto.NET_DEFAULT_CLIENT_REF], s.info)
}

// ExportListener returns a channel of transfer updates for one export
// source URL, plus an unsubscribe func.
func (s *ReportSvc) ExportListener(sourceURL string) (<-chan dto.ExportNotification, func()) {
	s.muListeners.Lock()
	defer s.muListeners.Unlock()

	ch := make(chan dto.ExportNotification, 10)
	s.listenersBySource[sourceURL] = append(s.listenersBySource[sourceURL], ch)

	unsub := func() {
		s.muListeners.Lock()
		defer s.muListeners.Unlock()

		chans := s.listenersBySource[sourceURL]
		out := chans[:0]
		for _, c := range chans {
			if c != ch {
				out = append(out, c)
			}
		}
		if len(out) == 0 {
			delete(s.listenersBySource, sourceURL)
		} else {
			s.listenersBySource[sourceURL] = out
		}
		close(ch)
	}

	return ch, unsub
}

// ExportListenerClose closes all channels for a given source manually
func (s *ReportSvc) ExportListenerClose(sourceURL string) {
	s.muListeners.Lock()
	defer s.muListeners.Unlock()
	if chans, ok := s.listenersBySource[sourceURL]; ok {
		for _, c := range chans {
			close(c)
		}
		delete(s.listenersBySource, sourceURL)
	}
}
