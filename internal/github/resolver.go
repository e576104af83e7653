// Package github resolves a release-API URL plus match predicates to a
// concrete downloadable asset.
package github

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/glkt/upkeep/internal/fetch"
	"github.com/glkt/upkeep/internal/logger"
	"github.com/glkt/upkeep/internal/models"
	"github.com/glkt/upkeep/internal/service"
	"github.com/glkt/upkeep/internal/utils"
)

type Release struct {
	TagName string  `json:"tag_name"`
	Assets  []Asset `json:"assets"`
}

type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// ResolveAsset downloads the release descriptor behind apiURL and returns its
// tag plus the download URL of the first asset, in document order, whose name
// satisfies every configured predicate. An unreachable API yields ("", "",
// nil); no matching asset yields the tag with an empty URL, still usable by
// callers for change detection.
func ResolveAsset(ctx context.Context, client service.HTTPClient, id, apiURL string,
	match *models.AssetMatch,
) (string, string, error) {
	logger.Info("Attempting to get asset URL from GitHub API.")

	reachable, url := fetch.Probe(ctx, client, apiURL)
	if !reachable {
		return "", "", nil
	}

	release, err := downloadRelease(ctx, client, id, url)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", "", err
		}
		logger.LogError("failed to fetch release descriptor: %v", err)
		return "", "", nil
	}

	for _, asset := range release.Assets {
		if matchesAsset(asset.Name, match) {
			return release.TagName, asset.BrowserDownloadURL, nil
		}
	}
	return release.TagName, "", nil
}

func downloadRelease(ctx context.Context, client service.HTTPClient, id, url string) (*Release, error) {
	tmp, err := os.CreateTemp("", id+"-*.json")
	if err != nil {
		return nil, err
	}
	scratch := tmp.Name()
	if err := tmp.Close(); err != nil {
		return nil, err
	}
	defer func() { _ = os.Remove(scratch) }()

	if err := fetch.Download(ctx, client, url, scratch); err != nil {
		return nil, err
	}

	var release Release
	if err := utils.FileReader(scratch, utils.FileTypeJSON, &release); err != nil {
		return nil, err
	}
	return &release, nil
}

// matchesAsset evaluates the three name predicates; absent predicates are
// vacuously true.
func matchesAsset(name string, match *models.AssetMatch) bool {
	if match == nil {
		return true
	}
	if match.Contains != "" && !strings.Contains(name, match.Contains) {
		return false
	}
	if match.StartsWith != "" && !strings.HasPrefix(name, match.StartsWith) {
		return false
	}
	if match.EndsWith != "" && !strings.HasSuffix(name, match.EndsWith) {
		return false
	}
	return true
}
