// Package manage orchestrates one synchronization run over the declared
// applications.
package manage

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/glkt/upkeep/internal/errs"
	"github.com/glkt/upkeep/internal/handler"
	"github.com/glkt/upkeep/internal/logger"
	"github.com/glkt/upkeep/internal/models"
	"github.com/glkt/upkeep/internal/runner"
	"github.com/glkt/upkeep/internal/schedule"
	"github.com/glkt/upkeep/internal/service"
	"github.com/glkt/upkeep/internal/state"
)

// status is the terminal per-artifact outcome of one run.
type status string

const (
	statusUpToDate status = "up-to-date"
	statusApplied  status = "applied"
	statusFailed   status = "failed"
	statusManual   status = "manual-intervention-required"
	statusSkipped  status = "skipped"
)

var bucketLabels = map[models.AppType]string{
	models.TypeGitRepo: "Git repositories",
	models.TypeHgRepo:  "Mercurial repositories",
	models.TypeFile:    "individual files",
	models.TypeArchive: "archives",
}

type Manager struct {
	Apps     map[string]*models.Application
	Store    *state.Store
	Handlers map[models.AppType]handler.Handler

	IDs        []string       // optional id allow-list
	TypeFilter models.AppType // optional single-type selector
	Force      bool

	Now func() time.Time
}

func New(apps map[string]*models.Application, store *state.Store,
	client service.HTTPClient, r runner.CommandRunner,
) *Manager {
	if client == nil {
		client = service.NewHTTPClient(30 * time.Second)
	}
	if r == nil {
		r = &runner.ExecRunner{}
	}
	return &Manager{
		Apps:     apps,
		Store:    store,
		Handlers: handler.Registry(client, r),
		Now:      time.Now,
	}
}

// Execute processes the buckets in a fixed sequence: git repositories, hg
// repositories, files, archives. One artifact's failure never aborts the
// batch; only a cancellation does. Whatever was applied is persisted once at
// the end.
func (m *Manager) Execute(ctx context.Context) error {
	buckets := m.partition()

	for _, t := range models.AllTypes {
		ids := buckets[t]
		if len(ids) == 0 {
			continue
		}

		logger.Separator("#")
		logger.Info("Handling %s...", bucketLabels[t])

		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				return err
			}

			app := m.Apps[id]
			logger.Separator("-")
			logger.Info("Handling %s...", app.Name)

			st, err := m.processOne(ctx, app)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				logger.LogError("Operations for <%s> aborted: %v", app.Name, err)
			}
			logger.Debug("%s: %s", app.ID, st)
		}
	}

	return m.Store.Persist()
}

// partition allocates fresh per-run buckets, filtered by the id allow-list or
// the type selector, lexicographic by id inside each bucket.
func (m *Manager) partition() map[models.AppType][]string {
	var allowed map[string]struct{}
	if len(m.IDs) > 0 {
		allowed = make(map[string]struct{}, len(m.IDs))
		for _, id := range m.IDs {
			allowed[id] = struct{}{}
		}
	}

	buckets := make(map[models.AppType][]string, len(models.AllTypes))
	for id, app := range m.Apps {
		if m.TypeFilter != "" && app.Type != m.TypeFilter {
			continue
		}
		if allowed != nil {
			if _, ok := allowed[id]; !ok {
				continue
			}
		}
		buckets[app.Type] = append(buckets[app.Type], id)
	}
	for t := range buckets {
		sort.Strings(buckets[t])
	}
	return buckets
}

func (m *Manager) processOne(ctx context.Context, app *models.Application) (status, error) {
	rec := m.Store.Get(app.ID)

	if !schedule.ShouldUpdate(app, rec, m.Now(), m.Force) {
		logger.Info("%s doesn't need updating.", app.Name)
		return statusUpToDate, nil
	}

	h := m.Handlers[app.Type]

	if err := h.EvaluateReady(app); err != nil {
		logger.Warn("%v", err)
		logger.Warn("Operations for <%s> aborted.", app.Name)
		return statusSkipped, nil
	}

	res, err := h.ResolveSource(ctx, app)
	if err != nil {
		if errors.Is(err, errs.ErrUnreachable) {
			logger.Warn("No download URL could be determined. Aborted!")
			return statusFailed, nil
		}
		return statusFailed, err
	}

	out, err := h.Fetch(ctx, app, rec, res, m.Force)
	if err != nil {
		if errors.Is(err, errs.ErrManualIntervention) {
			// Already reported by the handler; state stays untouched.
			return statusManual, nil
		}
		return statusFailed, err
	}

	if !out.Changed {
		logger.Info("%s doesn't need updating.", app.Name)
		return statusUpToDate, nil
	}

	if err := h.PostProcess(ctx, app, out); err != nil {
		return statusFailed, err
	}

	// Applied: the only transition that mutates the state store.
	m.Store.SetUpdateDate(app.ID, m.Now().Format(schedule.DateLayout))
	if out.Hash != "" {
		m.Store.SetHash(app.ID, out.Hash)
	}
	if out.Tag != "" {
		m.Store.SetTagName(app.ID, out.Tag)
	}

	logger.Success("%s updated successfully!", app.Name)
	return statusApplied, nil
}
