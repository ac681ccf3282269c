package toolkit

import (
	"context"

	"github.com/MrSnakeDoc/devkit/internal/collection"
	"github.com/MrSnakeDoc/devkit/internal/domain"
	"github.com/MrSnakeDoc/devkit/internal/kv"
	"github.com/MrSnakeDoc/devkit/internal/logger"
)

// BookmarkInput is the editable part of a command bookmark.
type BookmarkInput struct {
	Label   string `json:"label" yaml:"label"`
	Command string `json:"command" yaml:"command"`
}

func (in BookmarkInput) validate() error {
	switch {
	case blank(in.Label):
		return blankField("label")
	case blank(in.Command):
		return blankField("command")
	}
	return nil
}

// Bookmarks is the terminal command panel.
type Bookmarks struct {
	env
	col *collection.Collection[domain.Bookmark]
}

func newBookmarks(e env, store kv.Store) *Bookmarks {
	return &Bookmarks{
		env: e,
		col: collection.New[domain.Bookmark](store, domain.KeyBookmarks, collection.Append),
	}
}

func (b *Bookmarks) Load(ctx context.Context) error { return b.col.Load(ctx) }

func (b *Bookmarks) List(ctx context.Context) ([]domain.Bookmark, error) {
	return b.col.Items(ctx)
}

func (b *Bookmarks) Get(ctx context.Context, id string) (domain.Bookmark, error) {
	return b.col.Get(ctx, id)
}

func (b *Bookmarks) Create(ctx context.Context, in BookmarkInput) (domain.Bookmark, error) {
	if err := in.validate(); err != nil {
		return domain.Bookmark{}, err
	}

	bookmark := domain.Bookmark{
		ID:        domain.ID(b.newID()),
		Label:     in.Label,
		Command:   in.Command,
		CreatedAt: b.stamp(),
	}
	if err := b.col.Insert(ctx, bookmark); err != nil {
		return domain.Bookmark{}, err
	}

	b.log.Debug("bookmark created", logger.String("id", bookmark.RecordID()))
	return bookmark, nil
}

func (b *Bookmarks) Update(ctx context.Context, id string, in BookmarkInput) (domain.Bookmark, error) {
	if err := in.validate(); err != nil {
		return domain.Bookmark{}, err
	}

	now := b.stamp()
	return b.col.Update(ctx, id, func(bookmark domain.Bookmark) domain.Bookmark {
		bookmark.Label = in.Label
		bookmark.Command = in.Command
		bookmark.UpdatedAt = &now
		return bookmark
	})
}

func (b *Bookmarks) Delete(ctx context.Context, id string) (bool, error) {
	return b.col.Delete(ctx, id)
}

// Copy puts the command on the clipboard.
func (b *Bookmarks) Copy(ctx context.Context, id string) error {
	bookmark, err := b.col.Get(ctx, id)
	if err != nil {
		return err
	}
	b.copyText(id, bookmark.Command)
	return nil
}

func (b *Bookmarks) Subscribe(fn func([]domain.Bookmark)) func() {
	return b.col.Subscribe(fn)
}
