package list

import (
	"fmt"

	"github.com/glkt/upkeep/internal/logger"
	"github.com/glkt/upkeep/internal/models"
	"github.com/glkt/upkeep/internal/printer"
	"github.com/glkt/upkeep/internal/registry"
	"github.com/glkt/upkeep/internal/state"
	"github.com/glkt/upkeep/internal/utils"
)

type Lister struct {
	Apps      map[string]*models.Application
	StatePath string
}

func New(apps map[string]*models.Application, statePath string) *Lister {
	return &Lister{
		Apps:      apps,
		StatePath: statePath,
	}
}

// Execute renders one row per declared application with its last recorded
// update metadata and whether the destination is present on disk.
func (l *Lister) Execute() error {
	store := state.Load(l.StatePath)
	p := printer.NewColorPrinter()

	table := logger.CreateTable([]string{"ID", "Name", "Type", "Frequency", "Updated", "Tag", "Status"})

	for _, id := range registry.SortedIDs(l.Apps) {
		app := l.Apps[id]
		rec := store.Get(id)

		updated := "-"
		if rec.UpdateDate != "" {
			updated = rec.UpdateDate
		}
		tag := "-"
		if rec.TagName != "" {
			tag = rec.TagName
		}

		if err := table.Append([]string{
			id,
			app.Name,
			string(app.Type),
			string(app.EffectiveFrequency()),
			updated,
			tag,
			destinationStatus(p, app),
		}); err != nil {
			return fmt.Errorf("an error occurred while appending to the table: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("an error occurred while rendering the table: %w", err)
	}
	return nil
}

func destinationStatus(p *printer.ColorPrinter, app *models.Application) string {
	switch app.Type {
	case models.TypeGitRepo, models.TypeHgRepo:
		if utils.DirExists(app.Destination) {
			return p.Success("✓ present")
		}
	case models.TypeFile:
		if ok, _ := utils.FileExists(app.Destination); ok {
			return p.Success("✓ present")
		}
	case models.TypeArchive:
		// Archive destinations are per-target; presence is not tracked.
		return p.Muted("n/a")
	}
	return p.Error("✗ missing")
}
