// Package registry loads and validates the declarative application list.
package registry

import (
	"fmt"
	"os"
	"sort"

	"github.com/glkt/upkeep/internal/errs"
	"github.com/glkt/upkeep/internal/models"
	"github.com/glkt/upkeep/internal/utils/pathutils"

	"gopkg.in/yaml.v3"
)

type document struct {
	Applications map[string]*models.Application `yaml:"applications"`
}

// Load parses the registry at path into an id -> Application mapping.
//
// With validate disabled only the document shape is checked; this is the fast
// path for enumeration-only callers (shell completion). With validate enabled
// every application must carry its full mandatory field set before anything
// is returned: the first invalid application aborts the whole load.
func Load(path string, validate bool) (map[string]*models.Application, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", errs.ErrConfigMissing, path)
		}
		return nil, fmt.Errorf("failed to read registry %s: %w", path, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse registry %s: %w", path, err)
	}
	if doc.Applications == nil {
		return nil, fmt.Errorf("%w (%s)", errs.ErrConfigMalformed, path)
	}

	for id, app := range doc.Applications {
		app.ID = id
		if app.Destination != "" {
			app.Destination = pathutils.Expand(app.Destination)
		}
	}

	if validate {
		for _, id := range SortedIDs(doc.Applications) {
			if err := validateApp(doc.Applications[id]); err != nil {
				return nil, err
			}
		}
	}

	return doc.Applications, nil
}

// SortedIDs returns the application ids in lexicographic order.
func SortedIDs(apps map[string]*models.Application) []string {
	ids := make([]string, 0, len(apps))
	for id := range apps {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func validateApp(app *models.Application) error {
	if app.Type == "" {
		return &errs.MissingFieldError{ID: app.ID, Fields: []string{"type"}}
	}
	if !app.Type.Valid() {
		return fmt.Errorf("application %s: invalid type %q", app.ID, app.Type)
	}
	if app.Frequency != "" && !app.Frequency.Valid() {
		return fmt.Errorf("application %s: invalid frequency %q", app.ID, app.Frequency)
	}

	missing := missingBaseFields(app)
	missing = append(missing, missingTypeFields(app)...)
	if len(missing) > 0 {
		return &errs.MissingFieldError{ID: app.ID, Fields: missing}
	}

	if app.Type == models.TypeArchive && len(app.UnzipTargets) == 0 {
		return fmt.Errorf("application %s: unzip_targets must not be empty", app.ID)
	}
	return nil
}

func missingBaseFields(app *models.Application) []string {
	var missing []string
	if app.Name == "" {
		missing = append(missing, "name")
	}
	if app.URL == "" {
		missing = append(missing, "url")
	}
	return missing
}

func missingTypeFields(app *models.Application) []string {
	var missing []string
	switch app.Type {
	case models.TypeGitRepo, models.TypeHgRepo, models.TypeFile:
		if app.Destination == "" {
			missing = append(missing, "destination")
		}
	case models.TypeArchive:
		if app.UnzipProg == "" {
			missing = append(missing, "unzip_prog")
		}
		if app.UnzipTargets == nil {
			missing = append(missing, "unzip_targets")
		}
		if app.PostExtraction == nil {
			missing = append(missing, "post_extraction_actions")
		}
	}
	return missing
}
