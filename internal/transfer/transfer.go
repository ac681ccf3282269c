// Package transfer exports and imports the toolkit as a YAML document.
package transfer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/moby/sys/atomicwriter"
	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/devkit/internal/collection"
	"github.com/MrSnakeDoc/devkit/internal/domain"
	"github.com/MrSnakeDoc/devkit/internal/toolkit"
	"github.com/MrSnakeDoc/devkit/internal/utils"
)

// FormatVersion is written to every exported document.
const FormatVersion = 1

// Document is a snapshot of all four panels.
type Document struct {
	Version    int               `yaml:"version"`
	ExportedAt time.Time         `yaml:"exported_at"`
	Snippets   []domain.Snippet  `yaml:"snippets"`
	Bookmarks  []domain.Bookmark `yaml:"bookmarks"`
	Notes      []domain.Note     `yaml:"notes"`
	Clips      []domain.Clip     `yaml:"clips"`

	// Unavailable names the panels left out of an export because their
	// stored text is corrupt.
	Unavailable []string `yaml:"-"`
}

// Export reads the current content of every panel. A corrupt panel is
// left empty and named in Unavailable; the other panels are exported.
func Export(ctx context.Context, tk *toolkit.Toolkit, now time.Time) (*Document, error) {
	doc := &Document{Version: FormatVersion, ExportedAt: now.UTC()}

	var err error
	if doc.Snippets, err = collect(ctx, doc, toolkit.PanelSnippets, tk.Snippets.List); err != nil {
		return nil, err
	}
	if doc.Bookmarks, err = collect(ctx, doc, toolkit.PanelBookmarks, tk.Bookmarks.List); err != nil {
		return nil, err
	}
	if doc.Notes, err = collect(ctx, doc, toolkit.PanelNotes, tk.Notes.List); err != nil {
		return nil, err
	}
	if doc.Clips, err = collect(ctx, doc, toolkit.PanelClips, tk.Clips.List); err != nil {
		return nil, err
	}
	return doc, nil
}

func collect[T any](
	ctx context.Context,
	doc *Document,
	panel string,
	list func(context.Context) ([]T, error),
) ([]T, error) {
	items, err := list(ctx)
	switch {
	case err == nil:
		return items, nil
	case errors.Is(err, collection.ErrCorrupt):
		doc.Unavailable = append(doc.Unavailable, panel)
		return nil, nil
	default:
		return nil, fmt.Errorf("failed to export %s: %w", panel, err)
	}
}

// KeepFrom copies the unavailable panels of doc from prev, so a backup
// taken while a panel is corrupt still holds that panel's last good
// content.
func (doc *Document) KeepFrom(prev *Document) {
	for _, panel := range doc.Unavailable {
		switch panel {
		case toolkit.PanelSnippets:
			doc.Snippets = prev.Snippets
		case toolkit.PanelBookmarks:
			doc.Bookmarks = prev.Bookmarks
		case toolkit.PanelNotes:
			doc.Notes = prev.Notes
		case toolkit.PanelClips:
			doc.Clips = prev.Clips
		}
	}
}

// Encode writes doc as YAML.
func Encode(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

// Decode parses a YAML document. An empty input yields an empty document.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if doc.Version > FormatVersion {
		return nil, fmt.Errorf("unsupported document version %d", doc.Version)
	}
	return &doc, nil
}

// Summary counts what Import did per panel.
type Summary struct {
	Snippets  Count `json:"snippets"`
	Bookmarks Count `json:"bookmarks"`
	Notes     Count `json:"notes"`
	Clips     Count `json:"clips"`
}

type Count struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

func (c *Count) add(err error) error {
	switch {
	case err == nil:
		c.Imported++
	case errors.Is(err, toolkit.ErrBlankField), errors.Is(err, toolkit.ErrDuplicate):
		c.Skipped++
	default:
		return err
	}
	return nil
}

// Import adds every entry of doc through the regular create operations,
// so entries get fresh ids and timestamps. Blank entries and duplicate
// clips are skipped. Existing records are kept.
func Import(ctx context.Context, tk *toolkit.Toolkit, doc *Document) (Summary, error) {
	var sum Summary

	for _, s := range doc.Snippets {
		_, err := tk.Snippets.Create(ctx, toolkit.SnippetInput{Title: s.Title, Code: s.Code})
		if err := sum.Snippets.add(err); err != nil {
			return sum, fmt.Errorf("failed to import snippet %q: %w", s.Title, err)
		}
	}
	for _, b := range doc.Bookmarks {
		_, err := tk.Bookmarks.Create(ctx, toolkit.BookmarkInput{Label: b.Label, Command: b.Command})
		if err := sum.Bookmarks.add(err); err != nil {
			return sum, fmt.Errorf("failed to import bookmark %q: %w", b.Label, err)
		}
	}
	for _, n := range doc.Notes {
		_, err := tk.Notes.Create(ctx, toolkit.NoteInput{Content: n.Content})
		if err := sum.Notes.add(err); err != nil {
			return sum, fmt.Errorf("failed to import note: %w", err)
		}
	}
	// Clips are stored newest first; replaying oldest first keeps that order.
	for i := len(doc.Clips) - 1; i >= 0; i-- {
		_, err := tk.Clips.Create(ctx, toolkit.ClipInput{Content: doc.Clips[i].Content})
		if err := sum.Clips.add(err); err != nil {
			return sum, fmt.Errorf("failed to import clip: %w", err)
		}
	}

	return sum, nil
}

// WriteFile encodes doc to path. The file is replaced atomically and
// synced before the rename, so readers see either the old or the new
// snapshot.
func WriteFile(path string, doc *Document) error {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	if err := atomicwriter.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ReadFile decodes the document stored at path.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer utils.Close(f)

	return Decode(f)
}
