package handler

import (
	"context"
	"fmt"
	"os"

	"github.com/glkt/upkeep/internal/fetch"
	"github.com/glkt/upkeep/internal/logger"
	"github.com/glkt/upkeep/internal/models"
	"github.com/glkt/upkeep/internal/service"
	"github.com/glkt/upkeep/internal/utils"
)

// FileHandler downloads a single file to its destination and marks it
// executable. When the source resolves through the GitHub release API, the
// stored tag and content hash prove whether a new download is needed at all.
type FileHandler struct {
	Client service.HTTPClient
}

func (*FileHandler) EvaluateReady(*models.Application) error { return nil }

func (h *FileHandler) ResolveSource(ctx context.Context, app *models.Application) (Resolution, error) {
	return resolveDownload(ctx, h.Client, app)
}

func (h *FileHandler) Fetch(ctx context.Context, app *models.Application,
	rec models.UpdateRecord, res Resolution, force bool,
) (Outcome, error) {
	filePath := app.Destination

	if exists, _ := utils.FileExists(filePath); exists && !force {
		if unchanged(filePath, rec, res) {
			return Outcome{Changed: false}, nil
		}
	}

	if err := fetch.Download(ctx, h.Client, res.URL, filePath); err != nil {
		return Outcome{}, err
	}

	out := Outcome{Changed: true, Path: filePath}
	if res.Tag != "" {
		hash, err := utils.FileSHA256(filePath)
		if err != nil {
			logger.Debug("failed to hash %s: %v", filePath, err)
		}
		out.Hash = hash
		out.Tag = res.Tag
	}
	return out, nil
}

func (*FileHandler) PostProcess(_ context.Context, _ *models.Application, out Outcome) error {
	if !out.Changed {
		return nil
	}
	if err := os.Chmod(out.Path, 0o755); err != nil {
		return fmt.Errorf("failed to set %s executable: %w", out.Path, err)
	}
	return nil
}

// unchanged reports whether the existing download is provably current. A
// differing tag is decisive; equal or missing tags fall back to comparing the
// file's content hash against the stored one. Tag version ordering is never
// interpreted, only equality.
func unchanged(filePath string, rec models.UpdateRecord, res Resolution) bool {
	if res.Tag != "" && rec.TagName != "" && res.Tag != rec.TagName {
		return false
	}

	if rec.Hash == "" {
		// Nothing decisive stored; only an equal tag pair proves currency.
		return res.Tag != "" && res.Tag == rec.TagName
	}

	current, err := utils.FileSHA256(filePath)
	if err != nil {
		return false
	}
	return current == rec.Hash
}
