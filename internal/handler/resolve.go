package handler

import (
	"context"

	"github.com/glkt/upkeep/internal/errs"
	"github.com/glkt/upkeep/internal/fetch"
	"github.com/glkt/upkeep/internal/github"
	"github.com/glkt/upkeep/internal/models"
	"github.com/glkt/upkeep/internal/service"
)

// resolveDownload is the GitHub-aware resolution shared by the file and
// archive handlers. With asset match data the URL is treated as a release-API
// endpoint; otherwise it is probed directly. errs.ErrUnreachable means no
// download is available this run.
func resolveDownload(ctx context.Context, client service.HTTPClient,
	app *models.Application,
) (Resolution, error) {
	if app.GithubAssetData != nil {
		tag, assetURL, err := github.ResolveAsset(ctx, client, app.ID, app.URL, app.GithubAssetData)
		if err != nil {
			return Resolution{}, err
		}

		reachable, url := fetch.Probe(ctx, client, assetURL)
		if !reachable {
			return Resolution{Tag: tag}, errs.ErrUnreachable
		}
		return Resolution{URL: url, Tag: tag}, nil
	}

	reachable, url := fetch.Probe(ctx, client, app.URL)
	if !reachable {
		return Resolution{}, errs.ErrUnreachable
	}
	return Resolution{URL: url}, nil
}
