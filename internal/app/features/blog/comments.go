// internal/app/features/blog/comments.go
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

type commentPayload struct {
	Description string `json:"description" validate:"required"`
}

// HandleAddComment appends a comment to a post, hidden or not. The comment
// stores the author's display name as it was at creation; later renames do
// not rewrite history.
//
// Route: POST /blog/posts/{postID}/comment
func (h *Handler) HandleAddComment(w http.ResponseWriter, r *http.Request) {
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

	var in commentPayload
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

	// The target post must exist before anything is written.
	if _, err := h.Posts.GetByID(ctx, postID, false); err != nil {
		respond.Error(w, r, storeErr(err, "Post"))
		return
	}

	comment, err := h.Comments.Insert(ctx, models.Comment{
		Description: sanitize.Text(in.Description),
		CreatedBy:   ident.Name,
		AuthorID:    ident.ID,
	})
	if err != nil {
		respond.Error(w, r, apperr.Internal(err))
		return
	}

	if err := h.Posts.PushComment(ctx, postID, comment.ID); err != nil {
		h.Log.Error("comment stored but post reference failed",
			zap.String("comment_id", comment.ID.Hex()),
			zap.String("post_id", postID.Hex()),
			zap.Error(err))
		respond.Error(w, r, apperr.Internal(err))
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]any{
		"message": "Comment added",
		"comment": comment,
	})
}

// HandleDeleteComment removes a comment. Allowed for the comment's author
// and for the post's author.
//
// Route: DELETE /blog/posts/{postID}/comment/{commentID}
func (h *Handler) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
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
	commentID, apiErr := request.ObjectID(r, "commentID")
	if apiErr != nil {
		respond.Error(w, r, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Policy.DeleteComment(ctx, postID, commentID, ident.ID, false); err != nil {
		respond.Error(w, r, policyErr(err, "Comment"))
		return
	}

	respond.Message(w, http.StatusOK, "Comment deleted")
}
