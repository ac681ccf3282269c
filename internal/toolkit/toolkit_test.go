package toolkit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/MrSnakeDoc/devkit/internal/clipboard"
	"github.com/MrSnakeDoc/devkit/internal/domain"
	"github.com/MrSnakeDoc/devkit/internal/logger"
	"github.com/MrSnakeDoc/devkit/internal/store/memory"
)

var epoch = time.Date(2024, 6, 10, 9, 12, 25, 0, time.UTC)

type fixture struct {
	tk    *Toolkit
	store *memory.Store
	clip  *clipboard.Memory
	logs  *observer.ObservedLogs
	clock time.Time
}

// newFixture builds a toolkit with sequential ids and a clock that
// advances one second per call.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	f := &fixture{
		store: memory.New(),
		clip:  &clipboard.Memory{},
		logs:  logs,
		clock: epoch,
	}

	seq := 0
	f.tk = New(Options{
		Store:     f.store,
		Clipboard: f.clip,
		Logger:    logger.FromZap(zap.New(core)),
		Now: func() time.Time {
			f.clock = f.clock.Add(time.Second)
			return f.clock
		},
		NewID: func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		},
	})
	return f
}

func (f *fixture) stored(t *testing.T, key string) string {
	t.Helper()
	v, _, err := f.store.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("store.Get(%q) error = %v", key, err)
	}
	return v
}

func TestBookmarkLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	b, err := f.tk.Bookmarks.Create(ctx, BookmarkInput{Label: "List files", Command: "ls -la"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if b.ID != "id-1" || b.Label != "List files" || b.Command != "ls -la" {
		t.Fatalf("Create() = %+v", b)
	}
	if b.UpdatedAt != nil {
		t.Errorf("new bookmark has updated_at %v", b.UpdatedAt)
	}

	var persisted []domain.Bookmark
	if err := json.Unmarshal([]byte(f.stored(t, domain.KeyBookmarks)), &persisted); err != nil {
		t.Fatalf("stored text is not a JSON array: %v", err)
	}
	if len(persisted) != 1 || persisted[0].Command != "ls -la" {
		t.Fatalf("persisted = %+v", persisted)
	}

	if err := f.tk.Bookmarks.Copy(ctx, "id-1"); err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	if got, _ := f.clip.Read(); got != "ls -la" {
		t.Errorf("clipboard = %q, want %q", got, "ls -la")
	}

	updated, err := f.tk.Bookmarks.Update(ctx, "id-1", BookmarkInput{Label: "List all", Command: "ls -lah"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.UpdatedAt == nil || !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Errorf("Update() updated_at = %v, created_at = %v", updated.UpdatedAt, updated.CreatedAt)
	}
	if !updated.CreatedAt.Equal(b.CreatedAt) {
		t.Errorf("Update() changed created_at")
	}

	ok, err := f.tk.Bookmarks.Delete(ctx, "id-1")
	if err != nil || !ok {
		t.Fatalf("Delete() = %v, %v", ok, err)
	}
	if got := f.stored(t, domain.KeyBookmarks); got != "[]" {
		t.Errorf("stored after delete = %q, want []", got)
	}
}

func TestUpdateTwiceGivesSameRecord(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for _, in := range []BookmarkInput{
		{Label: "List files", Command: "ls -la"},
		{Label: "Disk usage", Command: "du -sh ."},
	} {
		if _, err := f.tk.Bookmarks.Create(ctx, in); err != nil {
			t.Fatal(err)
		}
	}

	in := BookmarkInput{Label: "List all", Command: "ls -lah"}
	first, err := f.tk.Bookmarks.Update(ctx, "id-1", in)
	if err != nil {
		t.Fatalf("first Update() error = %v", err)
	}
	afterFirst := f.stored(t, domain.KeyBookmarks)

	second, err := f.tk.Bookmarks.Update(ctx, "id-1", in)
	if err != nil {
		t.Fatalf("second Update() error = %v", err)
	}

	if second.UpdatedAt == nil || !second.UpdatedAt.After(*first.UpdatedAt) {
		t.Errorf("second updated_at = %v, first = %v", second.UpdatedAt, first.UpdatedAt)
	}
	first.UpdatedAt, second.UpdatedAt = nil, nil
	if first != second {
		t.Errorf("records differ beyond updated_at:\n first = %+v\nsecond = %+v", first, second)
	}

	list, err := f.tk.Bookmarks.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ID != "id-1" || list[1].Command != "du -sh ." {
		t.Errorf("list after two updates = %+v", list)
	}
	if f.stored(t, domain.KeyBookmarks) == afterFirst {
		t.Error("Expected the second update to rewrite updated_at")
	}
}

func TestCreateRejectsBlankFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	tests := []struct {
		name   string
		create func() error
	}{
		{"snippet title", func() error {
			_, err := f.tk.Snippets.Create(ctx, SnippetInput{Title: "  ", Code: "x"})
			return err
		}},
		{"snippet code", func() error {
			_, err := f.tk.Snippets.Create(ctx, SnippetInput{Title: "x", Code: "\n\t"})
			return err
		}},
		{"bookmark label", func() error {
			_, err := f.tk.Bookmarks.Create(ctx, BookmarkInput{Command: "ls"})
			return err
		}},
		{"bookmark command", func() error {
			_, err := f.tk.Bookmarks.Create(ctx, BookmarkInput{Label: "ls"})
			return err
		}},
		{"note", func() error {
			_, err := f.tk.Notes.Create(ctx, NoteInput{Content: "   "})
			return err
		}},
		{"clip", func() error {
			_, err := f.tk.Clips.Create(ctx, ClipInput{Content: " \n "})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.create(); !errors.Is(err, ErrBlankField) {
				t.Errorf("error = %v, want ErrBlankField", err)
			}
		})
	}

	for _, key := range []string{domain.KeySnippets, domain.KeyBookmarks, domain.KeyNotes, domain.KeyClips} {
		if _, ok, _ := f.store.Get(ctx, key); ok {
			t.Errorf("key %q was written", key)
		}
	}
}

func TestUpdateUnknownID(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	if _, err := f.tk.Snippets.Create(ctx, SnippetInput{Title: "a", Code: "b"}); err != nil {
		t.Fatal(err)
	}
	before := f.stored(t, domain.KeySnippets)

	_, err := f.tk.Snippets.Update(ctx, "missing", SnippetInput{Title: "c", Code: "d"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update() error = %v, want ErrNotFound", err)
	}
	if after := f.stored(t, domain.KeySnippets); after != before {
		t.Errorf("stored changed: %q -> %q", before, after)
	}
}

func TestUpdateKeepsTextVerbatim(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	n, err := f.tk.Notes.Create(ctx, NoteInput{Content: "  indented\n"})
	if err != nil {
		t.Fatal(err)
	}
	if n.Content != "  indented\n" {
		t.Errorf("note content = %q, want untrimmed", n.Content)
	}

	n, err = f.tk.Notes.Update(ctx, n.RecordID(), NoteInput{Content: "\tsecond "})
	if err != nil {
		t.Fatal(err)
	}
	if n.Content != "\tsecond " {
		t.Errorf("updated content = %q", n.Content)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	ok, err := f.tk.Notes.Delete(ctx, "nope")
	if err != nil || ok {
		t.Fatalf("Delete(unknown) = %v, %v", ok, err)
	}
	if _, found, _ := f.store.Get(ctx, domain.KeyNotes); found {
		t.Error("delete of unknown id wrote the store")
	}
}

func TestClipsAreTrimmedDedupedAndNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for _, content := range []string{"  first  ", "second", "third\n"} {
		if _, err := f.tk.Clips.Create(ctx, ClipInput{Content: content}); err != nil {
			t.Fatalf("Create(%q) error = %v", content, err)
		}
	}

	_, err := f.tk.Clips.Create(ctx, ClipInput{Content: "first"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate Create() error = %v, want ErrDuplicate", err)
	}

	clips, err := f.tk.Clips.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, c := range clips {
		got = append(got, c.Content)
	}
	want := []string{"third", "second", "first"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("clips = %q, want %q", got, want)
	}

	if err := f.tk.Clips.ClearAll(ctx); err != nil {
		t.Fatal(err)
	}
	if got := f.stored(t, domain.KeyClips); got != "[]" {
		t.Errorf("stored after clear = %q, want []", got)
	}
}

func TestCopyFailureIsLogged(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	s, err := f.tk.Snippets.Create(ctx, SnippetInput{Title: "hello", Code: "fmt.Println()"})
	if err != nil {
		t.Fatal(err)
	}

	f.clip.Err = clipboard.ErrUnavailable
	if err := f.tk.Snippets.Copy(ctx, s.RecordID()); err != nil {
		t.Fatalf("Copy() error = %v, want nil", err)
	}

	entries := f.logs.FilterMessage("failed to copy to clipboard").All()
	if len(entries) != 1 {
		t.Fatalf("got %d copy failure logs, want 1", len(entries))
	}
	if entries[0].Level != zapcore.WarnLevel {
		t.Errorf("level = %v, want warn", entries[0].Level)
	}
	if panel := entries[0].ContextMap()["panel"]; panel != PanelSnippets {
		t.Errorf("panel field = %v, want %q", panel, PanelSnippets)
	}
}

func TestCopyUnknownID(t *testing.T) {
	f := newFixture(t)
	if err := f.tk.Clips.Copy(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Copy() error = %v, want ErrNotFound", err)
	}
}

func TestPaste(t *testing.T) {
	f := newFixture(t)

	if got := f.tk.Clips.Paste(); got != "" {
		t.Errorf("Paste() on empty clipboard = %q", got)
	}

	_ = f.clip.Write("   ")
	if got := f.tk.Clips.Paste(); got != "" {
		t.Errorf("Paste() on whitespace = %q", got)
	}

	_ = f.clip.Write(" git status ")
	if got := f.tk.Clips.Paste(); got != " git status " {
		t.Errorf("Paste() = %q", got)
	}

	f.clip.Err = errors.New("denied")
	if got := f.tk.Clips.Paste(); got != "" {
		t.Errorf("Paste() on read failure = %q", got)
	}
	if n := f.logs.FilterMessage("failed to read from clipboard").Len(); n != 1 {
		t.Errorf("read failure logged %d times, want 1", n)
	}
}

func TestPanelsAreIndependent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	if err := f.store.Set(ctx, domain.KeyNotes, "not json"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.tk.Snippets.Create(ctx, SnippetInput{Title: "a", Code: "b"}); err != nil {
		t.Fatalf("snippets affected by corrupt notes: %v", err)
	}

	err := f.tk.Load(ctx)
	if err == nil {
		t.Fatal("Load() error = nil, want corrupt notes")
	}

	stats := f.tk.Stats(ctx)
	counts := map[string]int{}
	for _, st := range stats {
		counts[st.Panel] = st.Count
		if (st.Err != nil) != (st.Panel == PanelNotes) {
			t.Errorf("panel %s err = %v", st.Panel, st.Err)
		}
	}
	if counts[PanelSnippets] != 1 {
		t.Errorf("snippet count = %d, want 1", counts[PanelSnippets])
	}
}

func TestReloadFromStore(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.tk.Snippets.Create(ctx, SnippetInput{Title: "t", Code: "c"})
	if err != nil {
		t.Fatal(err)
	}

	fresh := New(Options{Store: f.store})
	got, err := fresh.Snippets.Get(ctx, created.RecordID())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "t" || !got.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("reloaded = %+v, want %+v", got, created)
	}
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	var seen []int
	stop := f.tk.Bookmarks.Subscribe(func(items []domain.Bookmark) {
		seen = append(seen, len(items))
	})

	if _, err := f.tk.Bookmarks.Create(ctx, BookmarkInput{Label: "a", Command: "b"}); err != nil {
		t.Fatal(err)
	}
	stop()
	if _, err := f.tk.Bookmarks.Create(ctx, BookmarkInput{Label: "c", Command: "d"}); err != nil {
		t.Fatal(err)
	}

	if len(seen) == 0 || seen[len(seen)-1] != 1 {
		t.Errorf("observer saw %v, want last count 1", seen)
	}
}
