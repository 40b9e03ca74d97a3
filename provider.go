package helio

import (
	"sync"

	"github.com/helioreports/helio-go/config"
	"github.com/helioreports/helio-go/dto"
	"github.com/helioreports/helio-go/relays"
	"github.com/joy-dx/lockablemap"
)

var (
	service     *ReportSvc
	serviceOnce sync.Once
)

func ProvideReportSvc(cfg *config.SvcConfig) *ReportSvc {
	serviceOnce.Do(func() {
		service = &ReportSvc{
			cfg:               cfg,
			relay:             cfg.Relay(),
			listenersBySource: make(map[string][]chan dto.ExportNotification),
			exportState:       *lockablemap.NewLockableMap[string, dto.ExportNotification](),
			clients:           make(map[string]dto.NetClientInterface),
		}
		cfg.Relay().Debug(relays.RlyRestLog{Msg: "Report service started"})
	})
	return service
}
