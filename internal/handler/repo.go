package handler

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/glkt/upkeep/internal/errs"
	"github.com/glkt/upkeep/internal/logger"
	"github.com/glkt/upkeep/internal/models"
	"github.com/glkt/upkeep/internal/runner"
	"github.com/glkt/upkeep/internal/utils"
)

const (
	cloneTimeout    = 10 * time.Minute
	pullTimeout     = 5 * time.Minute
	checkTimeout    = 30 * time.Second
	checkoutTimeout = time.Minute
)

// RepoHandler keeps a git or hg checkout current. An existing destination
// that does not answer the repo-check command is terminal for the artifact:
// manual intervention required, state untouched.
type RepoHandler struct {
	VCS    string // "git" or "hg"
	Runner runner.CommandRunner
}

func (*RepoHandler) EvaluateReady(*models.Application) error { return nil }

func (*RepoHandler) ResolveSource(_ context.Context, app *models.Application) (Resolution, error) {
	return Resolution{URL: app.URL}, nil
}

func (h *RepoHandler) Fetch(ctx context.Context, app *models.Application,
	_ models.UpdateRecord, res Resolution, _ bool,
) (Outcome, error) {
	repoPath := app.Destination

	if !utils.DirExists(repoPath) {
		logger.Warn("%s repository doesn't seem to exist.", app.Name)
		logger.Info("Cloning %s repository.", app.Name)
		if err := h.clone(ctx, repoPath, res.URL); err != nil {
			return Outcome{}, err
		}
		return Outcome{Changed: true, Path: repoPath}, nil
	}

	if !h.isRepo(ctx, repoPath) {
		logger.Warn("Manual intervention required!")
		logger.Warn("The following path doesn't seem to be a repository:")
		logger.Warn("%s", repoPath)
		return Outcome{}, errs.ErrManualIntervention
	}

	logger.Info("Pulling from %s's repository.", app.Name)
	if _, err := h.Runner.Run(ctx, pullTimeout, runner.Stream, repoPath, h.VCS, "pull"); err != nil {
		return Outcome{}, fmt.Errorf("%s pull failed in %s: %w", h.VCS, repoPath, err)
	}
	return Outcome{Changed: true, Path: repoPath}, nil
}

func (h *RepoHandler) PostProcess(ctx context.Context, app *models.Application, out Outcome) error {
	if app.CheckoutRevision == "" || !out.Changed {
		return nil
	}

	logger.Info("Checking out revision <%s>...", app.CheckoutRevision)

	verb := "checkout"
	if h.VCS == "hg" {
		verb = "update"
	}
	if _, err := h.Runner.Run(ctx, checkoutTimeout, runner.Stream, out.Path,
		h.VCS, verb, app.CheckoutRevision); err != nil {
		return fmt.Errorf("%s %s %s failed: %w", h.VCS, verb, app.CheckoutRevision, err)
	}
	return nil
}

// clone runs in the destination's parent so both VCS create the final path
// component themselves. Shallow for git only; hg always clones full.
func (h *RepoHandler) clone(ctx context.Context, repoPath, url string) error {
	args := []string{"clone"}
	if h.VCS == "git" {
		args = append(args, "--depth=1")
	}
	args = append(args, url, filepath.Base(repoPath))

	if _, err := h.Runner.Run(ctx, cloneTimeout, runner.Stream,
		filepath.Dir(repoPath), h.VCS, args...); err != nil {
		return fmt.Errorf("%s clone of %s failed: %w", h.VCS, url, err)
	}
	return nil
}

// isRepo runs the type-specific repo check; zero exit means the destination
// is a valid repository we can pull into.
func (h *RepoHandler) isRepo(ctx context.Context, repoPath string) bool {
	var args []string
	if h.VCS == "hg" {
		args = []string{"-R", ".", "root"}
	} else {
		args = []string{"ls-remote"}
	}

	_, err := h.Runner.Run(ctx, checkTimeout, runner.Capture, repoPath, h.VCS, args...)
	return err == nil
}
