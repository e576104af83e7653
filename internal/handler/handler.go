// Package handler implements the per-type source handling pipeline. Each
// artifact type maps to one fixed Handler; the orchestrator drives the
// EvaluateReady -> ResolveSource -> Fetch -> PostProcess sequence and is the
// only place that writes the state store.
package handler

import (
	"context"

	"github.com/glkt/upkeep/internal/models"
	"github.com/glkt/upkeep/internal/runner"
	"github.com/glkt/upkeep/internal/service"
)

// Resolution is the concrete source determined for one run: the URL to fetch
// (may be empty when nothing is reachable) and the release tag when the
// source went through the GitHub release API.
type Resolution struct {
	URL string
	Tag string
}

// Outcome reports what a fetch did. Changed=false means the artifact was
// already current. Hash and Tag, when non-empty, are recorded into the state
// store on a successful run.
type Outcome struct {
	Changed bool
	Path    string
	Hash    string
	Tag     string
}

type Handler interface {
	// EvaluateReady reports whether the handler can run at all for app,
	// e.g. whether the declared extraction program is on PATH.
	EvaluateReady(app *models.Application) error

	// ResolveSource determines the concrete download or remote URL.
	ResolveSource(ctx context.Context, app *models.Application) (Resolution, error)

	// Fetch retrieves the artifact, skipping work it can prove unnecessary.
	Fetch(ctx context.Context, app *models.Application, rec models.UpdateRecord,
		res Resolution, force bool) (Outcome, error)

	// PostProcess applies post-fetch actions (checkout, chmod, symlinks).
	PostProcess(ctx context.Context, app *models.Application, out Outcome) error
}

// Registry returns the fixed type -> handler mapping for one run.
func Registry(client service.HTTPClient, r runner.CommandRunner) map[models.AppType]Handler {
	return map[models.AppType]Handler{
		models.TypeGitRepo: &RepoHandler{VCS: "git", Runner: r},
		models.TypeHgRepo:  &RepoHandler{VCS: "hg", Runner: r},
		models.TypeFile:    &FileHandler{Client: client},
		models.TypeArchive: &ArchiveHandler{Client: client, Runner: r},
	}
}
