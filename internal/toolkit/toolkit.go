// Package toolkit implements the four panels of the developer toolkit
// (snippets, bookmarks, notes and clipboard history) on top of
// persisted collections.
package toolkit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/devkit/internal/clipboard"
	"github.com/MrSnakeDoc/devkit/internal/collection"
	"github.com/MrSnakeDoc/devkit/internal/kv"
	"github.com/MrSnakeDoc/devkit/internal/logger"
)

// Panel names.
const (
	PanelSnippets  = "snippets"
	PanelBookmarks = "bookmarks"
	PanelNotes     = "notes"
	PanelClips     = "clips"
)

var (
	// ErrBlankField rejects a submission whose required field is empty
	// or only whitespace. Nothing is stored.
	ErrBlankField = errors.New("required field is blank")

	// ErrDuplicate rejects a clip whose content is already in the history.
	ErrDuplicate = errors.New("duplicate content")

	// ErrNotFound is returned for an unknown record id.
	ErrNotFound = collection.ErrNotFound
)

// Options configures a Toolkit. Only Store is required.
type Options struct {
	Store     kv.Store
	Clipboard clipboard.Clipboard
	Logger    logger.Logger
	Now       func() time.Time // defaults to time.Now
	NewID     func() string    // defaults to random UUIDs
}

// Toolkit groups the four independent panels.
type Toolkit struct {
	Snippets  *Snippets
	Bookmarks *Bookmarks
	Notes     *Notes
	Clips     *Clips

	log logger.Logger
}

// New creates the panels. Nothing is read from the store until a panel
// is first used or Load is called.
func New(opts Options) *Toolkit {
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = &clipboard.Memory{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	base := env{
		clip:  opts.Clipboard,
		log:   opts.Logger,
		now:   opts.Now,
		newID: opts.NewID,
	}

	return &Toolkit{
		Snippets:  newSnippets(base.named(PanelSnippets), opts.Store),
		Bookmarks: newBookmarks(base.named(PanelBookmarks), opts.Store),
		Notes:     newNotes(base.named(PanelNotes), opts.Store),
		Clips:     newClips(base.named(PanelClips), opts.Store),
		log:       opts.Logger,
	}
}

// Load hydrates every panel. A panel that fails to load does not stop
// the others; the failures are returned joined.
func (t *Toolkit) Load(ctx context.Context) error {
	var errs []error
	for _, st := range t.Stats(ctx) {
		if st.Err != nil {
			t.log.Error("failed to load panel",
				logger.String("panel", st.Panel),
				logger.Error(st.Err))
			errs = append(errs, fmt.Errorf("%s: %w", st.Panel, st.Err))
			continue
		}
		t.log.Info("panel loaded",
			logger.String("panel", st.Panel),
			logger.Int("count", st.Count))
	}
	return errors.Join(errs...)
}

// Stat is the load state of one panel.
type Stat struct {
	Panel string
	Count int
	Err   error
}

// Stats returns the record count of every panel, loading them if needed.
func (t *Toolkit) Stats(ctx context.Context) []Stat {
	counters := []struct {
		panel string
		count func(context.Context) (int, error)
	}{
		{PanelSnippets, t.Snippets.col.Len},
		{PanelBookmarks, t.Bookmarks.col.Len},
		{PanelNotes, t.Notes.col.Len},
		{PanelClips, t.Clips.col.Len},
	}

	stats := make([]Stat, 0, len(counters))
	for _, c := range counters {
		n, err := c.count(ctx)
		stats = append(stats, Stat{Panel: c.panel, Count: n, Err: err})
	}
	return stats
}

// env holds what every panel shares.
type env struct {
	clip  clipboard.Clipboard
	log   logger.Logger
	now   func() time.Time
	newID func() string
}

func (e env) named(panel string) env {
	e.log = e.log.With(logger.String("panel", panel))
	return e
}

func (e env) stamp() time.Time { return e.now().UTC() }

// copyText writes text to the clipboard. Failures are logged and
// otherwise ignored.
func (e env) copyText(id, text string) {
	if err := e.clip.Write(text); err != nil {
		e.log.Warn("failed to copy to clipboard",
			logger.String("id", id),
			logger.Error(err))
		return
	}
	e.log.Debug("copied to clipboard", logger.String("id", id))
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func blankField(name string) error {
	return fmt.Errorf("%w: %s", ErrBlankField, name)
}
