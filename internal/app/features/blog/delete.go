// internal/app/features/blog/delete.go
package blog

import (
	"context"
	"net/http"

	"github.com/inkboardhq/inkboard/internal/app/system/request"
	"github.com/inkboardhq/inkboard/internal/app/system/respond"
	"github.com/inkboardhq/inkboard/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDeletePost removes the caller's own post along with its comments.
//
// Route: DELETE /blog/posts/{postID}
func (h *Handler) HandleDeletePost(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Policy.DeletePostAsOwner(ctx, postID, ident.ID); err != nil {
		respond.Error(w, r, policyErr(err, "Post"))
		return
	}

	h.Log.Info("post deleted by owner",
		zap.String("post_id", postID.Hex()),
		zap.String("author_id", ident.ID.Hex()))

	respond.Message(w, http.StatusOK, "Post deleted")
}
