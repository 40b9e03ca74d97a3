package helio

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/helioreports/helio-go/client/s3client"
	"github.com/helioreports/helio-go/dto"
	"github.com/helioreports/helio-go/relays"
)

// ArchiveConfig addresses the S3 location exports are archived to. The
// client referenced by ClientRef must be a registered s3client.
type ArchiveConfig struct {
	ClientRef string `json:"client_ref" yaml:"client_ref"`
	Bucket    string `json:"bucket" yaml:"bucket"`
	Prefix    string `json:"prefix" yaml:"prefix"`
}

// ArchiveExport uploads a previously downloaded export output to the
// archive bucket. The export must already exist on disk at the
// destination DownloadExport wrote it to.
func (s *ReportSvc) ArchiveExport(ctx context.Context, archive ArchiveConfig, cfg *dto.ExportDownloadConfig) error {
	if archive.ClientRef == "" || archive.Bucket == "" {
		return errors.New("archive needs a client ref and bucket")
	}
	if cfg.OutputFileName == "" {
		return errors.New("export has no output file name; download it first")
	}

	local := filepath.Join(cfg.DestinationFolder, cfg.OutputFileName)
	body, err := os.ReadFile(local)
	if err != nil {
		return fmt.Errorf("read export output %q: %w", local, err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(cfg.OutputFileName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	putCfg := s3client.NewArchivePutConfig(
		archive.Bucket,
		archive.Prefix,
		cfg.ExecutionID,
		cfg.ExportID,
		cfg.OutputFileName,
		body,
		contentType,
	)

	reqCfg := dto.DefaultRequestConfig()
	reqCfg.WithClientRef(archive.ClientRef).
		WithReqConfig(putCfg).
		WithTaskName("PUT archive " + cfg.OutputFileName)

	if _, err := s.RequestOnce(ctx, &reqCfg); err != nil {
		return fmt.Errorf("archive export: %w", err)
	}

	s.relay.Info(relays.RlyExport{
		Source:      local,
		Destination: "s3://" + archive.Bucket + "/" + putCfg.Key,
		Status:      dto.COMPLETE,
		Percentage:  100,
		Msg:         "export archived",
	})
	return nil
}

// ListArchivedExports lists everything archived under the configured
// prefix. The response body is the raw listing from the archive client.
func (s *ReportSvc) ListArchivedExports(ctx context.Context, archive ArchiveConfig) (dto.Response, error) {
	if archive.ClientRef == "" || archive.Bucket == "" {
		return dto.Response{}, errors.New("archive needs a client ref and bucket")
	}

	listCfg := s3client.NewArchiveListConfig(archive.Bucket, archive.Prefix)

	reqCfg := dto.DefaultRequestConfig()
	reqCfg.WithClientRef(archive.ClientRef).
		WithReqConfig(listCfg).
		WithTaskName("LIST archive " + archive.Prefix)

	return s.RequestOnce(ctx, &reqCfg)
}
