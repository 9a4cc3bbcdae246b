// internal/app/features/blog/create.go
package blog

import (
	"context"
	"net/http"

	"github.com/inkboardhq/inkboard/internal/app/system/apperr"
	"github.com/inkboardhq/inkboard/internal/app/system/inputval"
	"github.com/inkboardhq/inkboard/internal/app/system/request"
	"github.com/inkboardhq/inkboard/internal/app/system/respond"
	"github.com/inkboardhq/inkboard/internal/app/system/sanitize"
	"github.com/inkboardhq/inkboard/internal/app/system/timeouts"
	"github.com/inkboardhq/inkboard/internal/domain/models"
	"go.uber.org/zap"
)

type postPayload struct {
	Title       string `json:"title" validate:"required,min=5"`
	Description string `json:"description" validate:"required,min=5"`
}

// HandleCreatePost stores a new post and records it on the author's account.
//
// Route: POST /blog/post
func (h *Handler) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	ident, apiErr := request.RequiredIdentity(r)
	if apiErr != nil {
		respond.Error(w, r, apiErr)
		return
	}

	var in postPayload
	if apiErr := request.DecodeJSON(r, &in); apiErr != nil {
		respond.Error(w, r, apiErr)
		return
	}
	if apiErr := inputval.Check(in); apiErr != nil {
		respond.Error(w, r, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	post, err := h.Posts.Insert(ctx, models.Post{
		Title:       sanitize.Text(in.Title),
		Description: sanitize.Text(in.Description),
		AuthorID:    ident.ID,
	})
	if err != nil {
		respond.Error(w, r, apperr.Internal(err))
		return
	}

	if err := h.Accounts.PushPost(ctx, ident.ID, post.ID); err != nil {
		h.Log.Error("post created but author back-reference failed",
			zap.String("post_id", post.ID.Hex()),
			zap.String("author_id", ident.ID.Hex()),
			zap.Error(err))
		respond.Error(w, r, apperr.Internal(err))
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]any{
		"message": "Post created successfully",
		"post":    post,
	})
}

// HandleEditPost rewrites the title and description of the caller's own post.
//
// Route: PUT /blog/posts/{postID}
func (h *Handler) HandleEditPost(w http.ResponseWriter, r *http.Request) {
	ident, apiErr := request.RequiredIdentity(r)
	if apiErr != nil {
		respond.Error(w, r, apiErr)
		return
	}
	postID, apiErr := request.ObjectID(r, "postID")
	if apiErr != nil {
		respond.Error(w, r, apiErr)
		return
	}

	var in postPayload
	if apiErr := request.DecodeJSON(r, &in); apiErr != nil {
		respond.Error(w, r, apiErr)
		return
	}
	if apiErr := inputval.Check(in); apiErr != nil {
		respond.Error(w, r, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	post, err := h.Policy.EditPost(ctx, postID, ident.ID, sanitize.Text(in.Title), sanitize.Text(in.Description))
	if err != nil {
		respond.Error(w, r, policyErr(err, "Post"))
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"message": "Post updated",
		"post":    post,
	})
}
