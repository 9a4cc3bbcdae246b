// internal/app/features/admin/posts.go
package admin

import (
	"context"
	"net/http"

	"github.com/inkboardhq/inkboard/internal/app/system/apperr"
	"github.com/inkboardhq/inkboard/internal/app/system/authz"
	"github.com/inkboardhq/inkboard/internal/app/system/request"
	"github.com/inkboardhq/inkboard/internal/app/system/respond"
	"github.com/inkboardhq/inkboard/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeAllPosts lists every post, hidden ones included.
//
// Route: GET /admin/allposts
func (h *Handler) ServeAllPosts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	posts, err := h.Posts.List(ctx, false)
	if err != nil {
		respond.Error(w, r, apperr.Internal(err))
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"message": "Fetched posts successfully",
		"posts":   posts,
	})
}

// ServePost returns one post regardless of its dislike count.
//
// Route: GET /admin/post/{postID}
func (h *Handler) ServePost(w http.ResponseWriter, r *http.Request) {
	postID, apiErr := request.ObjectID(r, "postID")
	if apiErr != nil {
		respond.Error(w, r, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	post, err := h.Posts.GetByID(ctx, postID, false)
	if err != nil {
		respond.Error(w, r, storeErr(err, "Post"))
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"message": "Post fetched",
		"post":    post,
	})
}

// HandleDeletePost removes a post only once its dislike count has crossed
// the threshold. A post still under the threshold is reported back with
// deleted=false and a 200; declining is an answer, not an error.
//
// Route: DELETE /admin/deletepost/{postID}
func (h *Handler) HandleDeletePost(w http.ResponseWriter, r *http.Request) {
	postID, apiErr := request.ObjectID(r, "postID")
	if apiErr != nil {
		respond.Error(w, r, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	deleted, err := h.Policy.DeletePostAsModerator(ctx, postID)
	if err != nil {
		respond.Error(w, r, storeErr(err, "Post"))
		return
	}
	if !deleted {
		respond.JSON(w, http.StatusOK, map[string]any{
			"message": "This post cannot be deleted, not enough dislikes",
			"deleted": false,
		})
		return
	}

	h.Log.Info("post deleted by moderator", zap.String("post_id", postID.Hex()))
	respond.JSON(w, http.StatusOK, map[string]any{
		"message": "Post deleted",
		"deleted": true,
	})
}

// HandleDeleteComment removes a comment from its post, no ownership
// required.
//
// Route: DELETE /admin/post/{postID}/comment/{commentID}
func (h *Handler) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
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

	ident, apiErr := request.RequiredIdentity(r)
	if apiErr != nil {
		respond.Error(w, r, apiErr)
		return
	}

	if err := h.Policy.DeleteComment(ctx, postID, commentID, ident.ID, authz.IsModerator(r)); err != nil {
		respond.Error(w, r, storeErr(err, "Comment"))
		return
	}

	respond.Message(w, http.StatusOK, "Comment deleted")
}
