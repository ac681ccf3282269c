package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MrSnakeDoc/devkit/internal/domain"
	"github.com/MrSnakeDoc/devkit/internal/toolkit"
)

type runner struct {
	t  *testing.T
	db string
}

func newRunner(t *testing.T) *runner {
	t.Helper()
	t.Setenv("DEVKIT_CLIPBOARD", "memory")
	return &runner{t: t, db: filepath.Join(t.TempDir(), "devkit.db")}
}

func (r *runner) run(stdin string, args ...string) (string, error) {
	r.t.Helper()

	out, _, err := r.exec(stdin, args...)
	return out, err
}

func (r *runner) exec(stdin string, args ...string) (string, *cli, error) {
	r.t.Helper()

	var out bytes.Buffer
	root, c := newRoot()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--env-file", "", "--store", "sqlite", "--sqlite-path", r.db}, args...))

	err := c.execute(context.Background(), root)
	return out.String(), c, err
}

func TestBookmarkCommands(t *testing.T) {
	r := newRunner(t)

	if _, err := r.run("", "bookmark", "add", "List files", "--", "ls", "-la"); err != nil {
		t.Fatalf("bookmark add: %v", err)
	}

	out, err := r.run("", "--json", "bookmark", "list")
	if err != nil {
		t.Fatalf("bookmark list: %v", err)
	}
	var bookmarks []domain.Bookmark
	if err := json.Unmarshal([]byte(out), &bookmarks); err != nil {
		t.Fatalf("list output is not JSON: %v\n%s", err, out)
	}
	if len(bookmarks) != 1 || bookmarks[0].Label != "List files" || bookmarks[0].Command != "ls -la" {
		t.Fatalf("bookmarks = %+v", bookmarks)
	}
	id := bookmarks[0].RecordID()

	out, err = r.run("", "bookmark", "edit", id, "--command", "ls -lah")
	if err != nil || !strings.Contains(out, "$ ls -lah") {
		t.Errorf("bookmark edit = %q, %v", out, err)
	}

	if _, err := r.run("", "bookmark", "copy", id); err != nil {
		t.Errorf("bookmark copy: %v", err)
	}

	out, err = r.run("", "bookmark", "rm", id)
	if err != nil || !strings.Contains(out, "deleted") {
		t.Errorf("bookmark rm = %q, %v", out, err)
	}
	out, err = r.run("", "bookmark", "rm", id)
	if err != nil || !strings.Contains(out, "nothing to delete") {
		t.Errorf("second bookmark rm = %q, %v", out, err)
	}
}

func TestClipCommands(t *testing.T) {
	r := newRunner(t)

	if _, err := r.run("  kubectl get pods \n", "clip", "add"); err != nil {
		t.Fatalf("clip add from stdin: %v", err)
	}
	out, err := r.run("", "clip", "add", "kubectl get pods")
	if err != nil || !strings.Contains(out, "already in the history") {
		t.Errorf("duplicate clip = %q, %v", out, err)
	}

	out, err = r.run("", "clip", "list")
	if err != nil || !strings.Contains(out, "kubectl get pods") {
		t.Errorf("clip list = %q, %v", out, err)
	}

	if _, err := r.run("", "clip", "clear"); err != nil {
		t.Fatalf("clip clear: %v", err)
	}
	out, _ = r.run("", "--json", "clip", "list")
	if strings.TrimSpace(out) != "[]" {
		t.Errorf("clips after clear = %q", out)
	}
}

func TestBlankInputIsAnError(t *testing.T) {
	r := newRunner(t)

	_, err := r.run("   \n", "note", "add")
	if !errors.Is(err, toolkit.ErrBlankField) {
		t.Errorf("note add with blank stdin: err = %v, want ErrBlankField", err)
	}
}

func TestExportImportCommands(t *testing.T) {
	src := newRunner(t)
	if _, err := src.run("", "snippet", "add", "greet", "echo", "hi"); err != nil {
		t.Fatal(err)
	}

	file := filepath.Join(t.TempDir(), "export.yaml")
	if _, err := src.run("", "export", file); err != nil {
		t.Fatalf("export: %v", err)
	}

	dst := newRunner(t)
	out, err := dst.run("", "import", file)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "snippets") {
		t.Errorf("import summary = %q", out)
	}

	out, err = dst.run("", "snippet", "list")
	if err != nil || !strings.Contains(out, "echo hi") {
		t.Errorf("snippet list after import = %q, %v", out, err)
	}
}

func TestVersionNeedsNoStore(t *testing.T) {
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"--store", "nonsense", "version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out.String(), "devkit ") {
		t.Errorf("version output = %q", out.String())
	}
}

func TestInvalidStoreIsReported(t *testing.T) {
	r := newRunner(t)
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"--env-file", "", "--store", "nonsense", "--sqlite-path", r.db, "note", "list"})

	if err := root.Execute(); err == nil {
		t.Error("Expected an error for an unknown store backend")
	}
}

func TestStoreClosedWhenCommandFails(t *testing.T) {
	r := newRunner(t)

	_, c, err := r.exec("", "note", "edit", "no-such-id", "x")
	if !errors.Is(err, toolkit.ErrNotFound) {
		t.Fatalf("note edit error = %v, want ErrNotFound", err)
	}
	if c.app == nil {
		t.Fatal("Expected the app to be set up")
	}
	if _, err := c.app.Toolkit().Notes.Create(context.Background(), toolkit.NoteInput{Content: "late"}); err == nil {
		t.Error("Expected the store to be closed after the failed command")
	}
}
