// Package fetch holds the network primitives shared by all source handlers:
// the reachability probe and the streaming download.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/glkt/upkeep/internal/errs"
	"github.com/glkt/upkeep/internal/logger"
	"github.com/glkt/upkeep/internal/service"
	"github.com/glkt/upkeep/internal/utils"
)

// ProbeTimeout bounds a single reachability request.
const ProbeTimeout = 10 * time.Second

// Probe checks whether url answers with a usable status. Network errors,
// timeouts and status codes >= 400 all mean "no download available" and are
// logged, never raised.
func Probe(ctx context.Context, client service.HTTPClient, url string) (bool, string) {
	if url == "" {
		return false, ""
	}

	logger.Info("Checking URL...")
	logger.Info("%s", url)

	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		logger.LogError("invalid URL %s: %v", url, err)
		return false, ""
	}

	resp, err := client.Do(req)
	if err != nil {
		logger.LogError("probe failed: %v", err)
		return false, ""
	}
	defer utils.Try(resp.Body.Close)
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))

	logger.Info("Status code: %d", resp.StatusCode)
	if resp.StatusCode >= 400 {
		return false, ""
	}
	return true, url
}

// Download streams url into destPath, creating parent directories as needed
// and reporting progress. A user-initiated cancellation surfaces as a
// context.Canceled error; every other failure wraps errs.ErrDownloadFailed
// so callers can log and move on.
func Download(ctx context.Context, client service.HTTPClient, url, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrDownloadFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrDownloadFailed, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return downloadErr(ctx, err)
	}
	defer utils.Try(resp.Body.Close)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: unexpected status %d", errs.ErrDownloadFailed, resp.StatusCode)
	}

	f, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrDownloadFailed, err)
	}

	pw := newProgressWriter(logger.Out(), resp.ContentLength)
	_, copyErr := io.Copy(io.MultiWriter(f, pw), resp.Body)
	pw.finish()
	closeErr := f.Close()

	if copyErr != nil {
		_ = os.Remove(destPath)
		return downloadErr(ctx, copyErr)
	}
	if closeErr != nil {
		_ = os.Remove(destPath)
		return fmt.Errorf("%w: %v", errs.ErrDownloadFailed, closeErr)
	}
	return nil
}

// downloadErr keeps cancellations distinguishable from ordinary failures.
func downloadErr(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return fmt.Errorf("download canceled: %w", context.Canceled)
	}
	return fmt.Errorf("%w: %v", errs.ErrDownloadFailed, err)
}
