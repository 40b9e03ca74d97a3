package repository

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/helioreports/helio-go/client/restclient"
	"github.com/helioreports/helio-go/dto"
	"github.com/helioreports/helio-go/serverinfo"
)

type staticInfo struct {
	version string
	err     error
}

func (s staticInfo) Info(ctx context.Context) (dto.ServerInfo, error) {
	if s.err != nil {
		return dto.ServerInfo{}, s.err
	}
	return dto.ServerInfo{Version: s.version}, nil
}

type scriptedStrategy struct {
	calls   int
	batches [][]dto.Resource
	errs    []error
}

func (s *scriptedStrategy) SearchNext(ctx context.Context) ([]dto.Resource, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	if i < len(s.batches) {
		return s.batches[i], nil
	}
	return nil, nil
}

func newScriptedTask(strategy SearchStrategy) (*SearchTask, *int) {
	task := NewSearchTask(NoCriteria(), NewAPI("http://bi.example.com", &fakeNetClient{}), staticInfo{version: "6.0"})
	factoryCalls := 0
	task.factory = func(criteria internalCriteria, api *API, version serverinfo.Version) SearchStrategy {
		factoryCalls++
		return strategy
	}
	return task, &factoryCalls
}

func TestSearchTask_ResolvesStrategyExactlyOnce(t *testing.T) {
	t.Parallel()

	strategy := &scriptedStrategy{batches: [][]dto.Resource{
		resourceBatch("a", 3),
		resourceBatch("b", 3),
		resourceBatch("c", 3),
	}}
	task, factoryCalls := newScriptedTask(strategy)

	for i := 0; i < 3; i++ {
		if _, err := task.NextLookup(context.Background()); err != nil {
			t.Fatalf("lookup %d err: %v", i, err)
		}
	}

	if *factoryCalls != 1 {
		t.Fatalf("factory calls=%d; want 1", *factoryCalls)
	}
	if strategy.calls != 3 {
		t.Fatalf("strategy calls=%d; want 3", strategy.calls)
	}
}

func TestSearchTask_IdempotentExhaustion(t *testing.T) {
	t.Parallel()

	strategy := &scriptedStrategy{batches: [][]dto.Resource{resourceBatch("a", 2)}}
	task, _ := newScriptedTask(strategy)

	if _, err := task.NextLookup(context.Background()); err != nil {
		t.Fatalf("first lookup err: %v", err)
	}

	terminal, err := task.NextLookup(context.Background())
	if err != nil || terminal != nil {
		t.Fatalf("expected terminal marker, got items=%v err=%v", terminal, err)
	}
	if !task.Exhausted() {
		t.Fatal("task must report exhaustion")
	}

	callsAtExhaustion := strategy.calls
	for i := 0; i < 3; i++ {
		again, err := task.NextLookup(context.Background())
		if err != nil || again != nil {
			t.Fatalf("post-exhaustion lookup %d: items=%v err=%v", i, again, err)
		}
	}
	if strategy.calls != callsAtExhaustion {
		t.Fatalf("strategy called after exhaustion: %d then %d", callsAtExhaustion, strategy.calls)
	}
}

func TestSearchTask_ErrorLeavesTaskResumable(t *testing.T) {
	t.Parallel()

	boom := &dto.HTTPError{StatusCode: 500}
	strategy := &scriptedStrategy{
		batches: [][]dto.Resource{nil, resourceBatch("a", 2)},
		errs:    []error{boom},
	}
	task, _ := newScriptedTask(strategy)

	if _, err := task.NextLookup(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("err=%v; want boom", err)
	}
	if task.Exhausted() {
		t.Fatal("failed lookup must not exhaust the task")
	}

	items, err := task.NextLookup(context.Background())
	if err != nil || len(items) != 2 {
		t.Fatalf("retry: items=%d err=%v", len(items), err)
	}
}

func TestSearchTask_InfoFailureRetriesResolution(t *testing.T) {
	t.Parallel()

	boom := errors.New("server info unavailable")
	task := NewSearchTask(NoCriteria(), NewAPI("http://bi.example.com", &fakeNetClient{}), staticInfo{err: boom})

	if _, err := task.NextLookup(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("err=%v; want wrapped boom", err)
	}
	if task.strategy != nil {
		t.Fatal("failed resolution must leave the task unresolved")
	}
}

func TestSearchTask_BadVersionPropagates(t *testing.T) {
	t.Parallel()

	task := NewSearchTask(NoCriteria(), NewAPI("http://bi.example.com", &fakeNetClient{}), staticInfo{version: "not-a-version"})

	if _, err := task.NextLookup(context.Background()); err == nil {
		t.Fatal("expected version parse error")
	}
	if task.strategy != nil {
		t.Fatal("failed resolution must leave the task unresolved")
	}
}

// Full flat scenario over the real strategy and transport fake: page
// of 10, then an empty page, then silence.
func TestSearchTask_FlatScenario_Golden(t *testing.T) {
	t.Parallel()

	client := &fakeNetClient{fn: func(call int, req *restclient.RestRequest) (dto.Response, error) {
		switch call {
		case 0:
			if req.URL != "http://bi.example.com/rest_v2/serverInfo" {
				t.Errorf("first call url=%q; want serverInfo", req.URL)
			}
			return dto.Response{StatusCode: 200, Body: []byte(`{"version":"6.0"}`)}, nil
		case 1:
			if got := req.Query["offset"]; got != "0" {
				t.Errorf("offset=%q; want 0", got)
			}
			return dto.Response{StatusCode: 200, Body: lookupBody(t, resourceBatch("a", 10))}, nil
		case 2:
			if got := req.Query["offset"]; got != "10" {
				t.Errorf("offset=%q; want 10", got)
			}
			return dto.Response{StatusCode: http.StatusNoContent}, nil
		default:
			t.Errorf("unexpected network call %d", call)
			return dto.Response{}, errors.New("unexpected")
		}
	}}

	api := NewAPI("http://bi.example.com", client)
	info := serverinfo.NewProvider("http://bi.example.com", client)
	task := NewSearchTask(NoCriteria().WithQuery("all accounts").WithLimit(10), api, info)

	first, err := task.NextLookup(context.Background())
	if err != nil || len(first) != 10 {
		t.Fatalf("first lookup: items=%d err=%v", len(first), err)
	}

	second, err := task.NextLookup(context.Background())
	if err != nil || second != nil {
		t.Fatalf("second lookup: items=%v err=%v", second, err)
	}

	third, err := task.NextLookup(context.Background())
	if err != nil || third != nil {
		t.Fatalf("third lookup: items=%v err=%v", third, err)
	}
	if len(client.requests) != 3 {
		t.Fatalf("network calls=%d; want 3 (info, page, empty page)", len(client.requests))
	}
}
