package errs

import "fmt"

type Code string

const (
	IDsWithType   Code = "IDS_WITH_TYPE"
	InvalidType   Code = "INVALID_TYPE"
	ConfigExists  Code = "CONFIG_EXISTS"
	MissingConfig Code = "MISSING_CONFIG"
)

var messages = map[Code]string{
	IDsWithType: `Invalid flag combination: cannot use --type with explicit ids

Usage:
  - Manage every application of one type:
      upkeep manage --type file
  - Manage specific applications:
      upkeep manage firefox neovim

Reason:
  --type selects a whole bucket, ids select a subset.`,

	InvalidType: `Invalid value for --type: %[1]s

Valid types:
  git_repo, hg_repo, file, archive`,

	ConfigExists: `Configuration already exists at %[1]s

Remove it first if you want to start over.`,

	MissingConfig: `No configuration found. Please run 'upkeep init' first`,
}

func Msg(code Code, a ...any) string {
	msg := messages[code]
	if msg == "" {
		msg = string(code)
	}
	return fmt.Sprintf(msg, a...)
}
