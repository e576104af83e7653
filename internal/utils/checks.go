package utils

import "os/exec"

// LookPath is swappable in tests that simulate a missing extraction program.
var LookPath = exec.LookPath

// CommandExists verifies that a command is available on PATH.
func CommandExists(command string) bool {
	_, err := LookPath(command)
	return err == nil
}
