package toolkit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/devkit/internal/collection"
	"github.com/MrSnakeDoc/devkit/internal/domain"
	"github.com/MrSnakeDoc/devkit/internal/kv"
	"github.com/MrSnakeDoc/devkit/internal/logger"
)

type ClipInput struct {
	Content string `json:"content" yaml:"content"`
}

// Clips is the clipboard history panel.
//
// Clips cannot be edited. New clips go first, content is trimmed, and a
// clip whose content is already present is rejected with ErrDuplicate.
type Clips struct {
	env
	col *collection.Collection[domain.Clip]
}

func newClips(e env, store kv.Store) *Clips {
	return &Clips{
		env: e,
		col: collection.New[domain.Clip](store, domain.KeyClips, collection.Prepend),
	}
}

func (c *Clips) Load(ctx context.Context) error { return c.col.Load(ctx) }

// List returns the history, newest first.
func (c *Clips) List(ctx context.Context) ([]domain.Clip, error) {
	return c.col.Items(ctx)
}

func (c *Clips) Get(ctx context.Context, id string) (domain.Clip, error) {
	return c.col.Get(ctx, id)
}

func (c *Clips) Create(ctx context.Context, in ClipInput) (domain.Clip, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return domain.Clip{}, blankField("content")
	}

	clip := domain.Clip{
		ID:        domain.ID(c.newID()),
		Content:   content,
		CreatedAt: c.stamp(),
	}
	err := c.col.InsertUnique(ctx, clip, func(stored, clip domain.Clip) bool {
		return stored.Content == clip.Content
	})
	if errors.Is(err, collection.ErrExists) {
		return domain.Clip{}, fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	if err != nil {
		return domain.Clip{}, err
	}

	c.log.Debug("clip created", logger.String("id", clip.RecordID()))
	return clip, nil
}

func (c *Clips) Delete(ctx context.Context, id string) (bool, error) {
	return c.col.Delete(ctx, id)
}

// ClearAll empties the history.
func (c *Clips) ClearAll(ctx context.Context) error {
	if err := c.col.Clear(ctx); err != nil {
		return err
	}
	c.log.Info("clipboard history cleared")
	return nil
}

// Copy puts the clip content back on the clipboard.
func (c *Clips) Copy(ctx context.Context, id string) error {
	clip, err := c.col.Get(ctx, id)
	if err != nil {
		return err
	}
	c.copyText(id, clip.Content)
	return nil
}

// Paste reads the clipboard to prefill a new clip. It returns "" when
// the clipboard is empty, holds only whitespace, or cannot be read.
func (c *Clips) Paste() string {
	text, err := c.clip.Read()
	if err != nil {
		c.log.Warn("failed to read from clipboard", logger.Error(err))
		return ""
	}
	if blank(text) {
		return ""
	}
	return text
}

func (c *Clips) Subscribe(fn func([]domain.Clip)) func() {
	return c.col.Subscribe(fn)
}
