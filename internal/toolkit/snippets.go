package toolkit

import (
	"context"

	"github.com/MrSnakeDoc/devkit/internal/collection"
	"github.com/MrSnakeDoc/devkit/internal/domain"
	"github.com/MrSnakeDoc/devkit/internal/kv"
	"github.com/MrSnakeDoc/devkit/internal/logger"
)

// SnippetInput is the editable part of a snippet.
type SnippetInput struct {
	Title string `json:"title" yaml:"title"`
	Code  string `json:"code" yaml:"code"`
}

func (in SnippetInput) validate() error {
	switch {
	case blank(in.Title):
		return blankField("title")
	case blank(in.Code):
		return blankField("code")
	}
	return nil
}

// Snippets is the code snippet panel.
type Snippets struct {
	env
	col *collection.Collection[domain.Snippet]
}

func newSnippets(e env, store kv.Store) *Snippets {
	return &Snippets{
		env: e,
		col: collection.New[domain.Snippet](store, domain.KeySnippets, collection.Append),
	}
}

func (s *Snippets) Load(ctx context.Context) error { return s.col.Load(ctx) }

func (s *Snippets) List(ctx context.Context) ([]domain.Snippet, error) {
	return s.col.Items(ctx)
}

func (s *Snippets) Get(ctx context.Context, id string) (domain.Snippet, error) {
	return s.col.Get(ctx, id)
}

// Create stores a new snippet at the end of the list.
func (s *Snippets) Create(ctx context.Context, in SnippetInput) (domain.Snippet, error) {
	if err := in.validate(); err != nil {
		return domain.Snippet{}, err
	}

	snippet := domain.Snippet{
		ID:        domain.ID(s.newID()),
		Title:     in.Title,
		Code:      in.Code,
		CreatedAt: s.stamp(),
	}
	if err := s.col.Insert(ctx, snippet); err != nil {
		return domain.Snippet{}, err
	}

	s.log.Debug("snippet created", logger.String("id", snippet.RecordID()))
	return snippet, nil
}

// Update replaces title and code of an existing snippet.
func (s *Snippets) Update(ctx context.Context, id string, in SnippetInput) (domain.Snippet, error) {
	if err := in.validate(); err != nil {
		return domain.Snippet{}, err
	}

	now := s.stamp()
	return s.col.Update(ctx, id, func(snippet domain.Snippet) domain.Snippet {
		snippet.Title = in.Title
		snippet.Code = in.Code
		snippet.UpdatedAt = &now
		return snippet
	})
}

func (s *Snippets) Delete(ctx context.Context, id string) (bool, error) {
	return s.col.Delete(ctx, id)
}

// Copy puts the snippet code on the clipboard.
func (s *Snippets) Copy(ctx context.Context, id string) error {
	snippet, err := s.col.Get(ctx, id)
	if err != nil {
		return err
	}
	s.copyText(id, snippet.Code)
	return nil
}

func (s *Snippets) Subscribe(fn func([]domain.Snippet)) func() {
	return s.col.Subscribe(fn)
}
