// Package extract is the registry of archive extraction backends, keyed by
// the program name an application declares. tar is the sole entry today;
// adding a backend means registering one more implementation here.
package extract

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/glkt/upkeep/internal/models"
	"github.com/glkt/upkeep/internal/runner"
	"github.com/glkt/upkeep/internal/utils/pathutils"
)

const extractTimeout = 5 * time.Minute

// Backend extracts a single member of an archive into a destination
// directory. It returns the rendered command line for error reporting.
type Backend interface {
	Extract(ctx context.Context, r runner.CommandRunner, workDir, archive string,
		target models.UnzipTarget, decompressArg string) (string, error)
}

var backends = map[string]Backend{
	"tar": tarBackend{},
}

// Lookup returns the backend registered for prog.
func Lookup(prog string) (Backend, bool) {
	b, ok := backends[prog]
	return b, ok
}

type tarBackend struct{}

func (tarBackend) Extract(ctx context.Context, r runner.CommandRunner, workDir, archive string,
	target models.UnzipTarget, decompressArg string,
) (string, error) {
	dest := pathutils.Expand(target.Into)
	args := []string{"-x", "-f", archive, "-C", dest, target.Member}
	if decompressArg != "" {
		args = append([]string{decompressArg}, args...)
	}
	cmdline := "tar " + strings.Join(args, " ")

	if decompressArg == "" {
		return cmdline, fmt.Errorf("missing required unzip_args value")
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return cmdline, fmt.Errorf("failed to create %s: %w", dest, err)
	}

	out, err := r.Run(ctx, extractTimeout, runner.Capture, workDir, "tar", args...)
	if err != nil {
		return cmdline, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(out)))
	}
	return cmdline, nil
}
