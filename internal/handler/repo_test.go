package handler

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/glkt/upkeep/internal/errs"
	"github.com/glkt/upkeep/internal/models"
	"github.com/glkt/upkeep/internal/runner"
)

func repoApp(dest string) *models.Application {
	return &models.Application{
		ID:          "dotfiles",
		Name:        "dotfiles",
		Type:        models.TypeGitRepo,
		URL:         "https://example.com/me/dotfiles.git",
		Destination: dest,
	}
}

func TestRepoHandler_ClonesMissingDestination(t *testing.T) {
	parent := t.TempDir()
	dest := filepath.Join(parent, "dotfiles")

	mock := runner.NewMockRunner()
	h := &RepoHandler{VCS: "git", Runner: mock}
	app := repoApp(dest)

	res, err := h.ResolveSource(context.Background(), app)
	if err != nil {
		t.Fatalf("ResolveSource: %v", err)
	}
	out, err := h.Fetch(context.Background(), app, models.UpdateRecord{}, res, false)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !out.Changed || out.Path != dest {
		t.Errorf("outcome = %+v", out)
	}

	cloneArgs := []string{"clone", "--depth=1", app.URL, "dotfiles"}
	if !mock.VerifyCommand("git", cloneArgs...) {
		t.Fatalf("expected git clone, got %v", mock.Commands)
	}
	if got := mock.CommandDir("git", cloneArgs...); got != parent {
		t.Errorf("clone ran in %q, want parent %q", got, parent)
	}
}

func TestRepoHandler_CheckoutAfterChange(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "dotfiles")
	mock := runner.NewMockRunner()
	h := &RepoHandler{VCS: "git", Runner: mock}

	app := repoApp(dest)
	app.CheckoutRevision = "v1.0"

	out := Outcome{Changed: true, Path: dest}
	if err := h.PostProcess(context.Background(), app, out); err != nil {
		t.Fatalf("PostProcess: %v", err)
	}
	if !mock.VerifyCommand("git", "checkout", "v1.0") {
		t.Errorf("expected git checkout v1.0, got %v", mock.Commands)
	}
	if got := mock.CommandDir("git", "checkout", "v1.0"); got != dest {
		t.Errorf("checkout ran in %q, want %q", got, dest)
	}
}

func TestRepoHandler_NoCheckoutWhenUnchanged(t *testing.T) {
	mock := runner.NewMockRunner()
	h := &RepoHandler{VCS: "git", Runner: mock}

	app := repoApp(t.TempDir())
	app.CheckoutRevision = "v1.0"

	if err := h.PostProcess(context.Background(), app, Outcome{Changed: false}); err != nil {
		t.Fatalf("PostProcess: %v", err)
	}
	if len(mock.Commands) != 0 {
		t.Errorf("no command expected, got %v", mock.Commands)
	}
}

func TestRepoHandler_PullsExistingRepository(t *testing.T) {
	dest := t.TempDir()
	mock := runner.NewMockRunner()
	h := &RepoHandler{VCS: "git", Runner: mock}

	out, err := h.Fetch(context.Background(), repoApp(dest), models.UpdateRecord{},
		Resolution{URL: "https://example.com/me/dotfiles.git"}, false)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !out.Changed {
		t.Error("pull should report a change")
	}
	if !mock.VerifyCommand("git", "ls-remote") {
		t.Error("expected repository check before pulling")
	}
	if !mock.VerifyCommand("git", "pull") {
		t.Errorf("expected git pull, got %v", mock.Commands)
	}
	if got := mock.CommandDir("git", "pull"); got != dest {
		t.Errorf("pull ran in %q, want %q", got, dest)
	}
}

func TestRepoHandler_NonRepositoryDestinationNeedsManualIntervention(t *testing.T) {
	dest := t.TempDir()
	mock := runner.NewMockRunner()
	mock.AddResponse("git|ls-remote", []byte("fatal: not a git repository"),
		errors.New("exit status 128"))
	h := &RepoHandler{VCS: "git", Runner: mock}

	_, err := h.Fetch(context.Background(), repoApp(dest), models.UpdateRecord{},
		Resolution{URL: "https://example.com/me/dotfiles.git"}, false)
	if !errors.Is(err, errs.ErrManualIntervention) {
		t.Fatalf("err = %v, want ErrManualIntervention", err)
	}
	if mock.VerifyCommand("git", "pull") {
		t.Error("pull must not run against a non-repository destination")
	}
}

func TestRepoHandler_MercurialCommands(t *testing.T) {
	parent := t.TempDir()
	dest := filepath.Join(parent, "hgproj")

	mock := runner.NewMockRunner()
	h := &RepoHandler{VCS: "hg", Runner: mock}

	app := repoApp(dest)
	app.Type = models.TypeHgRepo
	app.URL = "https://hg.example.com/hgproj"
	app.CheckoutRevision = "stable"

	out, err := h.Fetch(context.Background(), app, models.UpdateRecord{},
		Resolution{URL: app.URL}, false)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	// hg never clones shallow.
	if !mock.VerifyCommand("hg", "clone", app.URL, "hgproj") {
		t.Errorf("expected hg clone, got %v", mock.Commands)
	}

	if err := h.PostProcess(context.Background(), app, out); err != nil {
		t.Fatalf("PostProcess: %v", err)
	}
	if !mock.VerifyCommand("hg", "update", "stable") {
		t.Errorf("expected hg update stable, got %v", mock.Commands)
	}
}

func TestRepoHandler_MercurialRepoCheck(t *testing.T) {
	dest := t.TempDir()
	mock := runner.NewMockRunner()
	h := &RepoHandler{VCS: "hg", Runner: mock}

	app := repoApp(dest)
	app.Type = models.TypeHgRepo

	if _, err := h.Fetch(context.Background(), app, models.UpdateRecord{},
		Resolution{URL: app.URL}, false); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !mock.VerifyCommand("hg", "-R", ".", "root") {
		t.Errorf("expected hg root check, got %v", mock.Commands)
	}
	if !mock.VerifyCommand("hg", "pull") {
		t.Errorf("expected hg pull, got %v", mock.Commands)
	}
}
