package serverinfo

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/helioreports/helio-go/dto"
)

type fakeNetClient struct {
	mu   sync.Mutex
	call int
	fn   func(ctx context.Context, cfg *dto.RequestConfig) (dto.Response, error)
}

func (c *fakeNetClient) Ref() string             { return "fake" }
func (c *fakeNetClient) Type() dto.NetClientType { return "helio.client.rest" }
func (c *fakeNetClient) ProcessRequest(ctx context.Context, cfg *dto.RequestConfig) (dto.Response, error) {
	c.mu.Lock()
	c.call++
	c.mu.Unlock()
	return c.fn(ctx, cfg)
}

func (c *fakeNetClient) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.call
}

func TestProvider_Info_MemoizesFirstSuccess(t *testing.T) {
	t.Parallel()

	client := &fakeNetClient{fn: func(ctx context.Context, cfg *dto.RequestConfig) (dto.Response, error) {
		return dto.Response{
			StatusCode: 200,
			Body:       []byte(`{"version":"6.0.1","edition":"PRO"}`),
		}, nil
	}}

	p := NewProvider("http://bi.example.com", client)

	for i := 0; i < 3; i++ {
		info, err := p.Info(context.Background())
		if err != nil {
			t.Fatalf("Info err: %v", err)
		}
		if info.Version != "6.0.1" || info.Edition != "PRO" {
			t.Fatalf("info=%+v", info)
		}
	}

	if got := client.calls(); got != 1 {
		t.Fatalf("network calls=%d; want 1 (memoized)", got)
	}

	v, err := p.ServerVersion(context.Background())
	if err != nil {
		t.Fatalf("ServerVersion err: %v", err)
	}
	if v != (Version{6, 0, 1}) {
		t.Fatalf("version=%v; want 6.0.1", v)
	}
}

func TestProvider_Info_FailureNotCached(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	fail := true
	client := &fakeNetClient{fn: func(ctx context.Context, cfg *dto.RequestConfig) (dto.Response, error) {
		if fail {
			return dto.Response{}, boom
		}
		return dto.Response{StatusCode: 200, Body: []byte(`{"version":"5.5"}`)}, nil
	}}

	p := NewProvider("http://bi.example.com", client)

	if _, err := p.Info(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("err=%v; want wrapped boom", err)
	}

	fail = false
	info, err := p.Info(context.Background())
	if err != nil {
		t.Fatalf("Info after recovery err: %v", err)
	}
	if info.Version != "5.5" {
		t.Fatalf("info=%+v", info)
	}
	if got := client.calls(); got != 2 {
		t.Fatalf("network calls=%d; want 2", got)
	}
}

func TestProvider_Info_DecodeError(t *testing.T) {
	t.Parallel()

	client := &fakeNetClient{fn: func(ctx context.Context, cfg *dto.RequestConfig) (dto.Response, error) {
		return dto.Response{StatusCode: 200, Body: []byte("not json")}, nil
	}}

	p := NewProvider("http://bi.example.com", client)

	_, err := p.Info(context.Background())
	var decodeErr *dto.DecodingError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("err=%v; want *dto.DecodingError", err)
	}
}
