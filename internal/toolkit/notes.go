package toolkit

import (
	"context"

	"github.com/MrSnakeDoc/devkit/internal/collection"
	"github.com/MrSnakeDoc/devkit/internal/domain"
	"github.com/MrSnakeDoc/devkit/internal/kv"
	"github.com/MrSnakeDoc/devkit/internal/logger"
)

type NoteInput struct {
	Content string `json:"content" yaml:"content"`
}

// Notes is the notepad panel. Notes have no copy action.
type Notes struct {
	env
	col *collection.Collection[domain.Note]
}

func newNotes(e env, store kv.Store) *Notes {
	return &Notes{
		env: e,
		col: collection.New[domain.Note](store, domain.KeyNotes, collection.Append),
	}
}

func (n *Notes) Load(ctx context.Context) error { return n.col.Load(ctx) }

func (n *Notes) List(ctx context.Context) ([]domain.Note, error) {
	return n.col.Items(ctx)
}

func (n *Notes) Get(ctx context.Context, id string) (domain.Note, error) {
	return n.col.Get(ctx, id)
}

func (n *Notes) Create(ctx context.Context, in NoteInput) (domain.Note, error) {
	if blank(in.Content) {
		return domain.Note{}, blankField("content")
	}

	note := domain.Note{
		ID:        domain.ID(n.newID()),
		Content:   in.Content,
		CreatedAt: n.stamp(),
	}
	if err := n.col.Insert(ctx, note); err != nil {
		return domain.Note{}, err
	}

	n.log.Debug("note created", logger.String("id", note.RecordID()))
	return note, nil
}

func (n *Notes) Update(ctx context.Context, id string, in NoteInput) (domain.Note, error) {
	if blank(in.Content) {
		return domain.Note{}, blankField("content")
	}

	now := n.stamp()
	return n.col.Update(ctx, id, func(note domain.Note) domain.Note {
		note.Content = in.Content
		note.UpdatedAt = &now
		return note
	})
}

func (n *Notes) Delete(ctx context.Context, id string) (bool, error) {
	return n.col.Delete(ctx, id)
}

func (n *Notes) Subscribe(fn func([]domain.Note)) func() {
	return n.col.Subscribe(fn)
}
