package extract

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glkt/upkeep/internal/models"
	"github.com/glkt/upkeep/internal/runner"
	"github.com/glkt/upkeep/internal/utils"
)

func TestLookup(t *testing.T) {
	if _, ok := Lookup("tar"); !ok {
		t.Error("tar backend must be registered")
	}
	if _, ok := Lookup("unzip"); ok {
		t.Error("unzip has no backend")
	}
}

func TestTarBackend_BuildsCommand(t *testing.T) {
	work := t.TempDir()
	dest := filepath.Join(work, "out")
	mock := runner.NewMockRunner()

	backend, _ := Lookup("tar")
	cmdline, err := backend.Extract(context.Background(), mock, work,
		filepath.Join(work, "pkg.tar.gz"),
		models.UnzipTarget{Member: "pkg/bin", Into: dest}, "-z")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if len(mock.Commands) != 1 {
		t.Fatalf("got %d commands, want 1", len(mock.Commands))
	}
	cmd := mock.Commands[0]
	if cmd.Name != "tar" {
		t.Errorf("command = %q", cmd.Name)
	}
	if cmd.Args[0] != "-z" {
		t.Errorf("decompression argument must come first, got %v", cmd.Args)
	}
	if cmd.Dir != work {
		t.Errorf("dir = %q, want %q", cmd.Dir, work)
	}
	if !strings.HasPrefix(cmdline, "tar -z -x -f ") {
		t.Errorf("cmdline = %q", cmdline)
	}
	if !strings.HasSuffix(cmdline, "pkg/bin") {
		t.Errorf("cmdline = %q", cmdline)
	}
}

func TestTarBackend_CreatesDestination(t *testing.T) {
	work := t.TempDir()
	dest := filepath.Join(work, "deep", "nested", "out")

	backend, _ := Lookup("tar")
	if _, err := backend.Extract(context.Background(), runner.NewMockRunner(), work,
		filepath.Join(work, "pkg.tar.gz"),
		models.UnzipTarget{Member: "pkg/bin", Into: dest}, "-z"); err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if !utils.DirExists(dest) {
		t.Errorf("destination %s was not created", dest)
	}
}

func TestTarBackend_RequiresDecompressionArgument(t *testing.T) {
	mock := runner.NewMockRunner()
	backend, _ := Lookup("tar")

	_, err := backend.Extract(context.Background(), mock, t.TempDir(), "pkg.tar",
		models.UnzipTarget{Member: "pkg/bin", Into: t.TempDir()}, "")
	if err == nil {
		t.Fatal("expected an error without unzip_args")
	}
	if len(mock.Commands) != 0 {
		t.Errorf("tar must not run, got %v", mock.Commands)
	}
}

func TestTarBackend_WrapsCommandFailure(t *testing.T) {
	work := t.TempDir()
	mock := runner.NewMockRunner()
	mock.ResponseFunc = func(string, ...string) ([]byte, error) {
		return []byte("tar: pkg/bin: Not found in archive\n"), errors.New("exit status 2")
	}

	backend, _ := Lookup("tar")
	_, err := backend.Extract(context.Background(), mock, work,
		filepath.Join(work, "pkg.tar.gz"),
		models.UnzipTarget{Member: "pkg/bin", Into: filepath.Join(work, "out")}, "-z")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "Not found in archive") {
		t.Errorf("error must carry the command output, got: %v", err)
	}
}
