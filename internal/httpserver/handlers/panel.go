package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/devkit/internal/httpserver/deps"
)

// The handlers below are shared by every panel. Each one takes the
// matching panel method, e.g. List(d, tk.Snippets.List).

func List[T any](d deps.Deps, list func(context.Context) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := list(r.Context())
		if err != nil {
			writeError(d, w, r, err)
			return
		}
		writeJSON(d, w, http.StatusOK, items)
	}
}

func Get[T any](d deps.Deps, get func(context.Context, string) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(d, w, r, err)
			return
		}
		writeJSON(d, w, http.StatusOK, item)
	}
}

func Create[T, I any](d deps.Deps, create func(context.Context, I) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in I
		if err := decodeJSON(w, r, &in); err != nil {
			writeJSON(d, w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body: " + err.Error()})
			return
		}

		item, err := create(r.Context(), in)
		if err != nil {
			writeError(d, w, r, err)
			return
		}
		writeJSON(d, w, http.StatusCreated, item)
	}
}

func Update[T, I any](d deps.Deps, update func(context.Context, string, I) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in I
		if err := decodeJSON(w, r, &in); err != nil {
			writeJSON(d, w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body: " + err.Error()})
			return
		}

		item, err := update(r.Context(), chi.URLParam(r, "id"), in)
		if err != nil {
			writeError(d, w, r, err)
			return
		}
		writeJSON(d, w, http.StatusOK, item)
	}
}

// Delete answers 204 whether or not the record existed.
func Delete(d deps.Deps, del func(context.Context, string) (bool, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := del(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(d, w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// Copy writes the record's copyable text to the server clipboard.
func Copy(d deps.Deps, cp func(context.Context, string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := cp(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(d, w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
