package helio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/helioreports/helio-go/client/restclient"
	"github.com/helioreports/helio-go/dto"
	"github.com/helioreports/helio-go/relays"
	"github.com/helioreports/helio-go/utils"
)

// OutputResourceURL composes the download endpoint of one finished
// export attachment.
func (s *ReportSvc) OutputResourceURL(executionID, exportID string) string {
	return restclient.NewPathBuilder().
		Add("rest_v2").
		Add("reportExecutions").
		Add(executionID).
		Add("exports").
		Add(exportID).
		Add("outputResource").
		Resolve(s.cfg.BaseURL)
}

// authorizedExportRequest builds the streaming GET with the default
// client's credentials and the service-wide headers attached.
func (s *ReportSvc) authorizedExportRequest(ctx context.Context, source string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	for k, v := range s.cfg.ExtraHeaders {
		req.Header.Set(k, v)
	}
	if s.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", s.cfg.UserAgent)
	}

	if rc, ok := s.clients[dto.NET_DEFAULT_CLIENT_REF].(*restclient.RestClient); ok {
		if err := rc.AuthorizeHTTPRequest(ctx, req); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// downloadExportWithHTTP streams via net/http with progress
func (s *ReportSvc) downloadExportWithHTTP(
	ctx context.Context,
	cfg *dto.ExportDownloadConfig,
	source string,
	destination string,
) error {
	s.relay.Debug(relays.RlyExport{
		Source:      source,
		Destination: destination,
		Msg:         "Downloading export via net/http",
		Status:      dto.IN_PROGRESS,
	})

	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		s.publishExportUpdate(dto.ExportNotification{
			Source:      source,
			Destination: destination,
			Status:      dto.ERROR,
			Message:     err.Error(),
		})
		return fmt.Errorf("could not create destination folder %q: %w", destination, err)
	}

	req, err := s.authorizedExportRequest(ctx, source)
	if err != nil {
		s.publishExportUpdate(dto.ExportNotification{
			Source:      source,
			Destination: destination,
			Status:      dto.ERROR,
			Message:     err.Error(),
		})
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		// If ctx was canceled, prefer STOPPED (so listeners close consistently)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			s.publishExportUpdate(dto.ExportNotification{
				Source:      source,
				Destination: destination,
				Status:      dto.STOPPED,
				Message:     err.Error(),
			})
			return err
		}

		s.publishExportUpdate(dto.ExportNotification{
			Source:      source,
			Destination: destination,
			Status:      dto.ERROR,
			Message:     err.Error(),
		})
		return fmt.Errorf("failed to start download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		s.publishExportUpdate(dto.ExportNotification{
			Source:      source,
			Destination: destination,
			Status:      dto.ERROR,
			Message:     fmt.Sprintf("bad HTTP status: %s", resp.Status),
		})
		return &dto.HTTPError{StatusCode: resp.StatusCode}
	}

	out, err := os.Create(destination)
	if err != nil {
		s.publishExportUpdate(dto.ExportNotification{
			Source:      source,
			Destination: destination,
			Status:      dto.ERROR,
			Message:     err.Error(),
		})
		return fmt.Errorf("could not create output file %q: %w", destination, err)
	}
	defer out.Close()

	total := resp.ContentLength
	if total <= 0 {
		s.relay.Warn(relays.RlyExport{Source: source, Msg: "unknown export size"})
	}

	interval := s.cfg.ExportCallbackInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}

	report := func(downloaded, total int64, percent float64, speed float64, eta time.Duration) {
		s.publishExportUpdate(dto.ExportNotification{
			Source:      source,
			Destination: destination,
			Status:      dto.IN_PROGRESS,
			Downloaded:  downloaded,
			TotalSize:   total,
			Percentage:  percent,
		})
	}

	pr := &progressReader{
		ctx:        ctx,
		reader:     resp.Body,
		total:      total,
		interval:   interval,
		lastReport: time.Now(),
		startTime:  time.Now(),
		onProgress: report,
	}

	buf := make([]byte, 64*1024)
	_, err = io.CopyBuffer(out, pr, buf)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			s.publishExportUpdate(dto.ExportNotification{
				Source:      source,
				Destination: destination,
				Status:      dto.STOPPED,
			})
			return ctx.Err()
		}

		s.publishExportUpdate(dto.ExportNotification{
			Source:      source,
			Destination: destination,
			Status:      dto.ERROR,
			Message:     err.Error(),
		})
		return fmt.Errorf("export transfer failed for %s: %w", source, err)
	}

	if cfg.Checksum != "" {
		checkErr := utils.Sha256SumVerify(destination, cfg.Checksum)
		if checkErr != nil {
			s.publishExportUpdate(dto.ExportNotification{
				Source:      source,
				Destination: destination,
				Status:      dto.ERROR,
				Percentage:  100,
				Message:     "failed to verify checksum",
			})
			return fmt.Errorf("checksum verification failed: %w", checkErr)
		}
	}

	s.publishExportUpdate(dto.ExportNotification{
		Source:      source,
		Destination: destination,
		Status:      dto.COMPLETE,
		Downloaded:  total,
		TotalSize:   total,
		Percentage:  100,
		Message:     "export complete",
	})
	return nil
}

// =====================================================================
// Curl Downloader Implementation
// =====================================================================

func (s *ReportSvc) downloadExportWithCurl(
	ctx context.Context,
	cfg *dto.ExportDownloadConfig,
	source string,
	destination string,
) error {
	s.relay.Debug(relays.RlyExport{
		Source:      source,
		Destination: destination,
		Msg:         "Downloading export via curl",
		Status:      dto.IN_PROGRESS,
	})

	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return fmt.Errorf("could not create destination folder %q: %w", destination, err)
	}

	// Resolve credentials once; curl carries them as plain headers.
	authReq, err := s.authorizedExportRequest(ctx, source)
	if err != nil {
		return err
	}
	args := []string{"-L", "--progress-bar", "-o", destination}
	for k, vals := range authReq.Header {
		for _, v := range vals {
			args = append(args, "-H", k+": "+v)
		}
	}
	args = append(args, source)

	curlCmd := exec.CommandContext(ctx, "curl", args...)
	stdoutBuf := new(bytes.Buffer)
	stderrBuf := new(bytes.Buffer)
	curlCmd.Stdout = stdoutBuf
	curlCmd.Stderr = stderrBuf

	if err := curlCmd.Start(); err != nil {
		return fmt.Errorf("failed to start curl: %w", err)
	}

	interval := s.cfg.ExportCallbackInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	done := make(chan error, 1)

	go func() {
		err := curlCmd.Wait()
		select {
		case done <- err:
		case <-ctx.Done():
		}
	}()

	for {
		select {
		case <-ticker.C:
			if msg, newContent := utils.Flush(stderrBuf); newContent && len(msg) >= 6 {
				if parsed, err := utils.ParsePercentage(msg[len(msg)-6:]); err == nil {
					if parsed > 100 {
						parsed = 100
					}
					s.publishExportUpdate(dto.ExportNotification{
						Source:      source,
						Destination: destination,
						Status:      dto.IN_PROGRESS,
						Percentage:  parsed,
					})
				}
			}
		case <-ctx.Done():
			if curlCmd.Process != nil {
				_ = curlCmd.Process.Kill()
			}
			s.publishExportUpdate(dto.ExportNotification{
				Source:      source,
				Destination: destination,
				Status:      dto.STOPPED,
			})
			return ctx.Err()

		case err := <-done:
			ticker.Stop()
			if err != nil {
				s.publishExportUpdate(dto.ExportNotification{
					Source:      source,
					Destination: destination,
					Status:      dto.ERROR,
					Message:     err.Error(),
				})
				return fmt.Errorf("curl download failed: %w", err)
			}

			if cfg.Checksum != "" {
				checkErr := utils.Sha256SumVerify(destination, cfg.Checksum)
				if checkErr != nil {
					s.publishExportUpdate(dto.ExportNotification{
						Source:      source,
						Destination: destination,
						Status:      dto.ERROR,
						Percentage:  100,
						Message:     "failed to verify checksum",
					})
					return fmt.Errorf("checksum verification failed: %w", checkErr)
				}
			}

			s.publishExportUpdate(dto.ExportNotification{
				Source:      source,
				Destination: destination,
				Status:      dto.COMPLETE,
				Percentage:  100,
				Message:     "export complete",
			})
			return nil
		}
	}
}

// DownloadResourceFile pulls the raw content of one repository file
// resource (an image, font, jrxml and so on) to the destination
// folder. The file name derives from the resource URI. Returns the
// path written.
func (s *ReportSvc) DownloadResourceFile(ctx context.Context, resourceURI, destinationFolder string) (string, error) {
	source := restclient.NewPathBuilder().
		Add("rest_v2").
		Add("resources").
		AddURI(resourceURI).
		Resolve(s.cfg.BaseURL)

	name, err := utils.FilenameFromUrl(source)
	if err != nil || name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("cannot derive file name from %q", resourceURI)
	}
	destination := filepath.Join(destinationFolder, name)

	if err := os.MkdirAll(destinationFolder, 0o755); err != nil {
		return "", fmt.Errorf("could not create destination folder %q: %w", destinationFolder, err)
	}

	req, err := s.authorizedExportRequest(ctx, source)
	if err != nil {
		return "", err
	}
	// raw content, not the resource descriptor
	req.Header.Set("Accept", "application/octet-stream")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch resource file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", &dto.HTTPError{StatusCode: resp.StatusCode}
	}

	out, err := os.Create(destination)
	if err != nil {
		return "", fmt.Errorf("could not create output file %q: %w", destination, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("resource transfer failed for %s: %w", source, err)
	}

	s.relay.Debug(relays.RlyExport{
		Source:      source,
		Destination: destination,
		Status:      dto.COMPLETE,
		Msg:         "resource file downloaded",
	})
	return destination, nil
}

// DownloadExport pulls one finished export attachment to disk,
// publishing progress to the source's listeners along the way.
func (s *ReportSvc) DownloadExport(ctx context.Context, cfg *dto.ExportDownloadConfig) error {
	if cfg.ExecutionID == "" || cfg.ExportID == "" {
		return errors.New("export download needs execution and export IDs")
	}

	source := s.OutputResourceURL(cfg.ExecutionID, cfg.ExportID)

	if cfg.OutputFileName == "" {
		cfg.OutputFileName = cfg.ExecutionID + "-" + cfg.ExportID
	}
	destination := filepath.Join(cfg.DestinationFolder, cfg.OutputFileName)

	s.relay.Info(relays.RlyExport{
		Source:      source,
		Destination: destination,
		Status:      dto.IN_PROGRESS,
		Percentage:  0,
		Msg:         fmt.Sprintf("starting export download: %s", source),
	})

	if s.cfg.PreferCurlExports {
		return s.downloadExportWithCurl(ctx, cfg, source, destination)
	}

	return s.downloadExportWithHTTP(ctx, cfg, source, destination)
}
