// internal/app/features/blog/react.go
package blog

import (
	"context"
	"errors"
	"net/http"

	"github.com/inkboardhq/inkboard/internal/app/engagement"
	"github.com/inkboardhq/inkboard/internal/app/system/apperr"
	"github.com/inkboardhq/inkboard/internal/app/system/request"
	"github.com/inkboardhq/inkboard/internal/app/system/respond"
	"github.com/inkboardhq/inkboard/internal/app/system/timeouts"
	"github.com/inkboardhq/inkboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleLikePost records a like on a post.
//
// Route: POST /blog/posts/{postID}/like
func (h *Handler) HandleLikePost(w http.ResponseWriter, r *http.Request) {
	h.reactToPost(w, r, h.Ledger.LikePost, "Post liked")
}

// HandleDislikePost records a dislike on a post.
//
// Route: POST /blog/posts/{postID}/dislike
func (h *Handler) HandleDislikePost(w http.ResponseWriter, r *http.Request) {
	h.reactToPost(w, r, h.Ledger.DislikePost, "Post disliked")
}

// HandleLikeComment records a like on a comment.
//
// Route: POST /blog/posts/{postID}/comments/{commentID}/like
func (h *Handler) HandleLikeComment(w http.ResponseWriter, r *http.Request) {
	h.reactToComment(w, r, h.Ledger.LikeComment, "Comment liked")
}

// HandleDislikeComment records a dislike on a comment.
//
// Route: POST /blog/posts/{postID}/comments/{commentID}/dislike
func (h *Handler) HandleDislikeComment(w http.ResponseWriter, r *http.Request) {
	h.reactToComment(w, r, h.Ledger.DislikeComment, "Comment disliked")
}

func (h *Handler) reactToPost(w http.ResponseWriter, r *http.Request, apply func(context.Context, primitive.ObjectID, primitive.ObjectID) (*models.Post, error), msg string) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	post, err := apply(ctx, postID, ident.ID)
	if err != nil {
		respond.Error(w, r, reactionErr(err, "Post"))
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"message": msg,
		"post":    post,
	})
}

func (h *Handler) reactToComment(w http.ResponseWriter, r *http.Request, apply func(context.Context, primitive.ObjectID, primitive.ObjectID) (*models.Comment, error), msg string) {
	ident, apiErr := request.RequiredIdentity(r)
	if apiErr != nil {
		respond.Error(w, r, apiErr)
		return
	}
	commentID, apiErr := request.ObjectID(r, "commentID")
	if apiErr != nil {
		respond.Error(w, r, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	comment, err := apply(ctx, commentID, ident.ID)
	if err != nil {
		respond.Error(w, r, reactionErr(err, "Comment"))
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"message": msg,
		"comment": comment,
	})
}

// reactionErr maps ledger failures: repeats are conflicts the client can
// interpret, contention exhaustion asks the client to retry.
func reactionErr(err error, resource string) *apperr.Error {
	switch {
	case errors.Is(err, models.ErrAlreadyLiked):
		return apperr.Conflict("You have already liked this")
	case errors.Is(err, models.ErrAlreadyDisliked):
		return apperr.Conflict("You have already disliked this")
	case errors.Is(err, engagement.ErrContended):
		return apperr.Conflict("Too much activity on this item, try again")
	}
	return storeErr(err, resource)
}
