package handler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glkt/upkeep/internal/errs"
	"github.com/glkt/upkeep/internal/extract"
	"github.com/glkt/upkeep/internal/fetch"
	"github.com/glkt/upkeep/internal/logger"
	"github.com/glkt/upkeep/internal/models"
	"github.com/glkt/upkeep/internal/runner"
	"github.com/glkt/upkeep/internal/service"
	"github.com/glkt/upkeep/internal/utils"
	"github.com/glkt/upkeep/internal/utils/pathutils"
)

// ArchiveHandler downloads an archive into a scratch directory and extracts
// the declared targets one by one. A failed target never stops the remaining
// ones, but any failure skips post-extraction actions and the state-store
// update so the whole artifact is retried next run.
type ArchiveHandler struct {
	Client service.HTTPClient
	Runner runner.CommandRunner
}

func (*ArchiveHandler) EvaluateReady(app *models.Application) error {
	if !utils.CommandExists(app.UnzipProg) {
		return fmt.Errorf("command <%s> not found on your system", app.UnzipProg)
	}
	if _, ok := extract.Lookup(app.UnzipProg); !ok {
		return fmt.Errorf("no extraction backend registered for <%s>", app.UnzipProg)
	}
	return nil
}

func (h *ArchiveHandler) ResolveSource(ctx context.Context, app *models.Application) (Resolution, error) {
	return resolveDownload(ctx, h.Client, app)
}

func (h *ArchiveHandler) Fetch(ctx context.Context, app *models.Application,
	rec models.UpdateRecord, res Resolution, force bool,
) (Outcome, error) {
	if !force && res.Tag != "" && res.Tag == rec.TagName {
		return Outcome{Changed: false}, nil
	}

	tmpDir, err := os.MkdirTemp("", app.ID)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	// The artifact id names the download; deriving a filename from the URL
	// is not worth the trouble.
	archivePath := filepath.Join(tmpDir, app.ID)
	if err := fetch.Download(ctx, h.Client, res.URL, archivePath); err != nil {
		return Outcome{}, err
	}

	if err := h.extractTargets(ctx, app, tmpDir, archivePath); err != nil {
		return Outcome{}, err
	}

	return Outcome{Changed: true, Tag: res.Tag}, nil
}

func (h *ArchiveHandler) extractTargets(ctx context.Context, app *models.Application,
	workDir, archivePath string,
) error {
	backend, _ := extract.Lookup(app.UnzipProg)

	var failed errs.ExtractionErrors
	for _, target := range app.UnzipTargets {
		cmd, err := backend.Extract(ctx, h.Runner, workDir, archivePath, target, app.UnzipArgs)
		if err == nil {
			continue
		}
		if errors.Is(err, context.Canceled) {
			return err
		}
		logger.LogError("%v", err)
		failed = append(failed, &errs.ExtractionError{Cmd: cmd, Err: err})
	}

	if len(failed) > 0 {
		logger.Warn("The following errors were found while processing %s:", app.Name)
		logger.Warn("Post-extraction actions will not be performed.")
		for _, f := range failed {
			logger.Warn("Command: %s", f.Cmd)
			logger.LogError("Error: %v", f.Err)
		}
		return failed
	}
	return nil
}

// PostProcess applies set_exec and symlink actions. Per-action errors are
// logged but never fail the artifact.
func (*ArchiveHandler) PostProcess(_ context.Context, app *models.Application, out Outcome) error {
	if !out.Changed || app.PostExtraction == nil {
		return nil
	}

	if len(app.PostExtraction.SetExec) > 0 {
		logger.Info("Setting files as executable...")
		for _, p := range app.PostExtraction.SetExec {
			path := pathutils.Expand(p)
			if ok, _ := utils.FileExists(path); !ok {
				continue
			}
			logger.Info("%s", path)
			if err := os.Chmod(path, 0o755); err != nil {
				logger.LogError("chmod failed for %s: %v", path, err)
			}
		}
	}

	if len(app.PostExtraction.Symlinks) > 0 {
		logger.Info("Generating symbolic links...")
		for _, link := range app.PostExtraction.Symlinks {
			target := pathutils.Expand(link.Target)
			linkPath := pathutils.Expand(link.Link)

			logger.Info("Target: %s", target)
			logger.Info("Link: %s", linkPath)

			if err := recreateSymlink(target, linkPath); err != nil {
				logger.LogError("symlink failed for %s: %v", linkPath, err)
			}
		}
	}
	return nil
}

// recreateSymlink replaces whatever sits at linkPath so reruns converge on
// the same link.
func recreateSymlink(target, linkPath string) error {
	if err := os.MkdirAll(filepath.Dir(linkPath), 0o755); err != nil {
		return err
	}
	if _, err := os.Lstat(linkPath); err == nil {
		if err := os.Remove(linkPath); err != nil {
			return err
		}
	}
	return os.Symlink(target, linkPath)
}
