package dto

import (
	"context"
)

type SvcInterface interface {
	Hydrate(ctx context.Context) error
	State() *SvcState
	DownloadExport(ctx context.Context, cfg *ExportDownloadConfig) error
	Get(ctx context.Context, url string, withRetry bool) (Response, error)
	Post(ctx context.Context, url string, payload map[string]interface{}, withRetry bool) (Response, error)
	RegisterClient(ref string, client NetClientInterface)
	RequestOnce(ctx context.Context, cfg *RequestConfig) (Response, error)
	RequestWithRetry(ctx context.Context, cfg *RequestConfig) (Response, error)
}

// AuthProvider defines methods for non-OAuth authentication schemes.
// Returned dto.TokenInfo may include cookies or access tokens.
type AuthProvider interface {
	Authenticate(ctx context.Context) (TokenInfo, error)
	Refresh(ctx context.Context, old TokenInfo) (TokenInfo, error)
}

// InfoProvider supplies the server capability snapshot used for
// strategy selection. Implementations are expected to memoize.
type InfoProvider interface {
	Info(ctx context.Context) (ServerInfo, error)
}

// NetClientInterface abstracts a transport client for mocking
type NetClientInterface interface {
	Ref() string
	Type() NetClientType
	ProcessRequest(ctx context.Context, cfg *RequestConfig) (Response, error)
}
