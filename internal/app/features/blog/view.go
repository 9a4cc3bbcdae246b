// internal/app/features/blog/view.go
package blog

import (
	"context"
	"net/http"

	"github.com/inkboardhq/inkboard/internal/app/system/apperr"
	"github.com/inkboardhq/inkboard/internal/app/system/request"
	"github.com/inkboardhq/inkboard/internal/app/system/respond"
	"github.com/inkboardhq/inkboard/internal/app/system/timeouts"
	"github.com/inkboardhq/inkboard/internal/domain/models"
)

// postDetail is a post with its comment references expanded into documents.
// The outer Comments field takes the "comments" key over the embedded id
// list.
type postDetail struct {
	models.Post
	Comments []models.Comment `json:"comments"`
}

// ServePost returns one visible post with its comments expanded in creation
// order. A post hidden by dislikes reads as missing here, same as in lists.
//
// Route: GET /blog/post/{postID}
func (h *Handler) ServePost(w http.ResponseWriter, r *http.Request) {
	postID, apiErr := request.ObjectID(r, "postID")
	if apiErr != nil {
		respond.Error(w, r, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	post, err := h.Posts.GetByID(ctx, postID, true)
	if err != nil {
		respond.Error(w, r, storeErr(err, "Post"))
		return
	}

	comments, err := h.Comments.FindByIDs(ctx, post.CommentIDs)
	if err != nil {
		respond.Error(w, r, apperr.Internal(err))
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"message": "Post fetched",
		"post":    postDetail{Post: *post, Comments: comments},
	})
}
