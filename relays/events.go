package relays

import (
	"fmt"
	"log/slog"

	"github.com/helioreports/helio-go/dto"
	relayDTO "github.com/joy-dx/relay/dto"
)

const (
	ChannelRest   relayDTO.EventChannel = "helio.rest"
	ChannelExport relayDTO.EventChannel = "helio.export"
)

const (
	EventRestLog relayDTO.EventRef = "helio.rest.log"
	EventExport  relayDTO.EventRef = "helio.export.transfer"
)

// RlyRestLog reports one REST call or service lifecycle message.
type RlyRestLog struct {
	Method string
	URL    string
	Msg    string
}

func (e RlyRestLog) RelayChannel() relayDTO.EventChannel { return ChannelRest }
func (e RlyRestLog) RelayType() relayDTO.EventRef        { return EventRestLog }

func (e RlyRestLog) Message() string {
	if e.Method == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Msg)
}

func (e RlyRestLog) ToSlog() []slog.Attr {
	return []slog.Attr{
		slog.String("method", e.Method),
		slog.String("url", e.URL),
		slog.String("msg", e.Msg),
	}
}

// RlyExport reports progress of one export output transfer.
type RlyExport struct {
	Source      string
	Destination string
	Msg         string
	Status      dto.TransferStatus
	Percentage  float64
}

func (e RlyExport) RelayChannel() relayDTO.EventChannel { return ChannelExport }
func (e RlyExport) RelayType() relayDTO.EventRef        { return EventExport }

func (e RlyExport) Message() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("export %s -> %s (%s)", e.Source, e.Destination, e.Status)
}

func (e RlyExport) ToSlog() []slog.Attr {
	return []slog.Attr{
		slog.String("source", e.Source),
		slog.String("destination", e.Destination),
		slog.String("status", string(e.Status)),
		slog.Float64("percentage", e.Percentage),
		slog.String("msg", e.Msg),
	}
}
