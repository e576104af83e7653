package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Fatal startup errors: abort before any artifact processing.
var (
	ErrConfigMissing   = errors.New("registry file not found")
	ErrConfigMalformed = errors.New("registry has no applications property")
)

// Recoverable per-artifact errors: caught at the artifact boundary and logged.
var (
	ErrUnreachable        = errors.New("url not reachable")
	ErrDownloadFailed     = errors.New("download failed")
	ErrManualIntervention = errors.New("manual intervention required")
)

// MissingFieldError names every mandatory key absent from one artifact's
// declaration. Fatal: the whole load aborts on the first invalid artifact.
type MissingFieldError struct {
	ID     string
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("application %s: missing required field(s): %s",
		e.ID, strings.Join(e.Fields, ", "))
}

// ExtractionError records one failed extraction or post-extraction command.
type ExtractionError struct {
	Cmd string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Cmd, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ExtractionErrors aggregates per-target failures; the remaining targets are
// still attempted, but post-extraction actions and the state-store update are
// skipped so the artifact is retried next run.
type ExtractionErrors []*ExtractionError

func (e ExtractionErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, it := range e {
		parts = append(parts, it.Error())
	}
	return fmt.Sprintf("%d extraction command(s) failed: %s",
		len(e), strings.Join(parts, "; "))
}
