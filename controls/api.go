package controls

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/helioreports/helio-go/client/restclient"
	"github.com/helioreports/helio-go/dto"
	"github.com/helioreports/helio-go/serverinfo"
)

// API exposes the input control endpoints of a report unit. Controls
// carry the selectable parameters a report accepts; before running an
// export callers fetch the controls, present them, and push the chosen
// values back through UpdateStates.
type API struct {
	baseURL string
	client  dto.NetClientInterface
	info    dto.InfoProvider
}

// NewAPI wires the API against a registered transport client. info may
// be nil, in which case metadata fetches never use the server-side
// state exclusion and strip states locally instead.
func NewAPI(baseURL string, client dto.NetClientInterface, info dto.InfoProvider) *API {
	return &API{
		baseURL: baseURL,
		client:  client,
		info:    info,
	}
}

type controlsEnvelope struct {
	InputControl []dto.InputControl `json:"inputControl"`
}

type statesEnvelope struct {
	InputControlState []dto.InputControlState `json:"inputControlState"`
}

type parametersEnvelope struct {
	ReportParameter []dto.ReportParameter `json:"reportParameter"`
}

// Controls fetches control metadata without the current value state.
// Servers from 6.0 on drop the state server-side; older servers return
// it and the API strips it before handing the controls back.
func (a *API) Controls(ctx context.Context, loc Location) ([]dto.InputControl, error) {
	reqCfg := restclient.DefaultRestRequestConfig()
	reqCfg.WithURL(a.controlsURL(loc, ""))

	if a.serverAtLeast(ctx, serverinfo.Version6) {
		reqCfg.WithQueryParam("exclude", "state")
	}

	controls, err := a.fetchControls(ctx, &reqCfg)
	if err != nil {
		return nil, err
	}
	for i := range controls {
		controls[i].State = nil
	}
	return controls, nil
}

// ControlsWithState fetches control metadata together with the current
// value state in a single round trip.
func (a *API) ControlsWithState(ctx context.Context, loc Location) ([]dto.InputControl, error) {
	reqCfg := restclient.DefaultRestRequestConfig()
	reqCfg.WithURL(a.controlsURL(loc, ""))
	return a.fetchControls(ctx, &reqCfg)
}

// InitialStates fetches the current value state of the addressed
// controls. freshData bypasses any server-side cache.
func (a *API) InitialStates(ctx context.Context, loc Location, freshData bool) ([]dto.InputControlState, error) {
	reqCfg := restclient.DefaultRestRequestConfig()
	reqCfg.WithURL(a.controlsURL(loc, "values"))
	reqCfg.WithQueryParam("freshData", strconv.FormatBool(freshData))

	return a.fetchStates(ctx, &reqCfg, "GET inputControls values")
}

// UpdateStates pushes chosen values for the addressed controls and
// returns the cascaded state the server derives from them.
func (a *API) UpdateStates(ctx context.Context, loc Location, params []dto.ReportParameter, freshData bool) ([]dto.InputControlState, error) {
	body := map[string]interface{}{}
	envelope := parametersEnvelope{ReportParameter: params}
	raw, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("encode report parameters: %w", err)
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("encode report parameters: %w", err)
	}

	reqCfg := restclient.DefaultRestRequestConfig()
	reqCfg.WithMethod(http.MethodPost).
		WithURL(a.controlsURL(loc, "values")).
		WithQueryParam("freshData", strconv.FormatBool(freshData)).
		WithBody(body)

	return a.fetchStates(ctx, &reqCfg, "POST inputControls values")
}

func (a *API) controlsURL(loc Location, suffix string) string {
	b := restclient.NewPathBuilder().
		Add("rest_v2").
		Add("reports").
		AddURI(loc.URI()).
		Add("inputControls").
		AddRaw(loc.idSegment())
	if suffix != "" {
		b.Add(suffix)
	}
	return b.Resolve(a.baseURL)
}

func (a *API) fetchControls(ctx context.Context, reqCfg *restclient.RestRequestConfig) ([]dto.InputControl, error) {
	cfg := dto.DefaultRequestConfig()
	cfg.WithReqConfig(reqCfg).WithTaskName("GET inputControls")

	resp, err := a.client.ProcessRequest(ctx, &cfg)
	if err != nil {
		return nil, fmt.Errorf("fetch input controls: %w", err)
	}
	if resp.StatusCode == http.StatusNoContent || len(resp.Body) == 0 {
		return []dto.InputControl{}, nil
	}

	var envelope controlsEnvelope
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return nil, &dto.DecodingError{Err: err}
	}
	if envelope.InputControl == nil {
		return []dto.InputControl{}, nil
	}
	return envelope.InputControl, nil
}

func (a *API) fetchStates(ctx context.Context, reqCfg *restclient.RestRequestConfig, taskName string) ([]dto.InputControlState, error) {
	cfg := dto.DefaultRequestConfig()
	cfg.WithReqConfig(reqCfg).WithTaskName(taskName)

	resp, err := a.client.ProcessRequest(ctx, &cfg)
	if err != nil {
		return nil, fmt.Errorf("fetch input control states: %w", err)
	}
	if resp.StatusCode == http.StatusNoContent || len(resp.Body) == 0 {
		return []dto.InputControlState{}, nil
	}

	var envelope statesEnvelope
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return nil, &dto.DecodingError{Err: err}
	}
	if envelope.InputControlState == nil {
		return []dto.InputControlState{}, nil
	}
	return envelope.InputControlState, nil
}

func (a *API) serverAtLeast(ctx context.Context, min serverinfo.Version) bool {
	if a.info == nil {
		return false
	}
	info, err := a.info.Info(ctx)
	if err != nil {
		return false
	}
	v, err := serverinfo.ParseVersion(info.Version)
	if err != nil {
		return false
	}
	return v.AtLeast(min)
}
