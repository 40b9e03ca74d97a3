package dto

import (
	"net/http"
	"time"
)

type NetClientType string

const NET_DEFAULT_CLIENT_REF = "helio.client.rest"

// NetClient identifies a registered transport implementation.
type NetClient struct {
	Name        string        `json:"name" yaml:"name"`
	Ref         string        `json:"ref" yaml:"ref"`
	ClientType  NetClientType `json:"client_type" yaml:"client_type"`
	Description string        `json:"description" yaml:"description"`
}

type TransferStatus string

const (
	IN_PROGRESS TransferStatus = "in_progress"
	COMPLETE    TransferStatus = "complete"
	ERROR       TransferStatus = "error"
	STOPPED     TransferStatus = "stopped"
)

type ExportNotification struct {
	Source      string `json:"source" yaml:"source"`
	Destination string `json:"destination" yaml:"destination"`
	Message     string `json:"message,omitempty" yaml:"message,omitempty"`
	// Status MetaType of message
	Status TransferStatus `json:"status" yaml:"status"`
	// Percentage completion status as a percentage
	Percentage float64 `json:"percentage" yaml:"percentage"`
	// TotalSize length content in bytes. The value -1 indicates that the length is unknown
	TotalSize int64 `json:"total_size,omitempty" yaml:"total_size,omitempty"`
	// Downloaded downloaded body length in bytes
	Downloaded int64 `json:"downloaded,omitempty" yaml:"downloaded,omitempty"`
}

type SvcState struct {
	BaseURL                string        `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	ExtraHeaders           ExtraHeaders  `json:"extra_headers,omitempty" yaml:"extra_headers,omitempty"`
	RequestTimeout         time.Duration `json:"request_timeout,omitempty" yaml:"request_timeout,omitempty"`
	UserAgent              string        `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	ExportCallbackInterval time.Duration `json:"export_callback_interval,omitempty" yaml:"export_callback_interval,omitempty"`
	// PreferCurlExports Instead of streaming via net/http, prefer curl found on $PATH if available
	PreferCurlExports bool                          `json:"prefer_curl_exports,omitempty" yaml:"prefer_curl_exports,omitempty"`
	ExportsStatus     map[string]ExportNotification `json:"exports_status,omitempty" yaml:"exports_status,omitempty"`
}

// ExportDownloadConfig describes one report export output to pull to disk.
type ExportDownloadConfig struct {
	// ExecutionID identifies the finished report execution on the server
	ExecutionID string
	// ExportID identifies the export attachment within the execution
	ExportID string
	Checksum string
	// DestinationFolder Used if OutputFileName not an absolute path
	DestinationFolder string
	OutputFileName    string
}

type Response struct {
	StatusCode int
	Headers    http.Header
	// As well as casting to ResponseObject if set, return as bytes
	Body []byte
}

// Resource is one repository entry returned by the search surface.
type Resource struct {
	Label          string `json:"label"`
	Description    string `json:"description,omitempty"`
	URI            string `json:"uri"`
	ResourceType   string `json:"resourceType"`
	Version        int    `json:"version,omitempty"`
	PermissionMask int    `json:"permissionMask,omitempty"`
	CreationDate   string `json:"creationDate,omitempty"`
	UpdateDate     string `json:"updateDate,omitempty"`
}

// ServerInfo is the capability snapshot returned by /rest_v2/serverInfo.
type ServerInfo struct {
	Version        string `json:"version"`
	Edition        string `json:"edition"`
	EditionName    string `json:"editionName,omitempty"`
	Build          string `json:"build,omitempty"`
	DateFormat     string `json:"dateFormatPattern,omitempty"`
	DatetimeFormat string `json:"datetimeFormatPattern,omitempty"`
}

// InputControl is the metadata of one report input control.
type InputControl struct {
	ID                 string             `json:"id"`
	Label              string             `json:"label"`
	URI                string             `json:"uri"`
	Type               string             `json:"type"`
	Mandatory          bool               `json:"mandatory,omitempty"`
	ReadOnly           bool               `json:"readOnly,omitempty"`
	Visible            bool               `json:"visible,omitempty"`
	MasterDependencies []string           `json:"masterDependencies,omitempty"`
	SlaveDependencies  []string           `json:"slaveDependencies,omitempty"`
	State              *InputControlState `json:"state,omitempty"`
}

// InputControlState carries the current value set for one control.
type InputControlState struct {
	ID      string               `json:"id"`
	URI     string               `json:"uri"`
	Value   string               `json:"value,omitempty"`
	Error   string               `json:"error,omitempty"`
	Options []InputControlOption `json:"options,omitempty"`
}

type InputControlOption struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Selected bool   `json:"selected,omitempty"`
}

// ReportParameter is a {control_id: [values]} pair sent back to the server.
type ReportParameter struct {
	Name   string   `json:"name"`
	Values []string `json:"value"`
}
