// internal/app/features/blog/list.go
package blog

import (
	"context"
	"net/http"
	"strings"

	"github.com/inkboardhq/inkboard/internal/app/system/apperr"
	"github.com/inkboardhq/inkboard/internal/app/system/respond"
	"github.com/inkboardhq/inkboard/internal/app/system/timeouts"
)

// ServePosts lists visible posts, most recently active first.
//
// Route: GET /blog/posts
func (h *Handler) ServePosts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	posts, err := h.Posts.List(ctx, true)
	if err != nil {
		respond.Error(w, r, apperr.Internal(err))
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"message": "Fetched posts successfully",
		"posts":   posts,
	})
}

// ServeSearch lists visible posts whose title contains the query string.
//
// Route: GET /blog/posts/search?title=
func (h *Handler) ServeSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("title"))
	if q == "" {
		respond.Error(w, r, apperr.Validation("Missing title query"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	posts, err := h.Posts.SearchTitle(ctx, q, true)
	if err != nil {
		respond.Error(w, r, apperr.Internal(err))
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"message": "Fetched posts successfully",
		"posts":   posts,
	})
}
