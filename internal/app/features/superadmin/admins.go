// internal/app/features/superadmin/admins.go
package superadmin

import (
	"context"
	"net/http"

	"github.com/inkboardhq/inkboard/internal/app/system/apperr"
	"github.com/inkboardhq/inkboard/internal/app/system/request"
	"github.com/inkboardhq/inkboard/internal/app/system/respond"
	"github.com/inkboardhq/inkboard/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeAdmins lists every admin account, without password hashes.
//
// Route: GET /superadmin/admins
func (h *Handler) ServeAdmins(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	admins, err := h.Accounts.ListAdmins(ctx)
	if err != nil {
		respond.Error(w, r, apperr.Internal(err))
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"message": "Fetched admins successfully",
		"admins":  admins,
	})
}

// HandleDeleteAdmin removes an admin account. Admins author no content, so
// there is nothing to cascade.
//
// Route: DELETE /superadmin/deleteadmin/{adminID}
func (h *Handler) HandleDeleteAdmin(w http.ResponseWriter, r *http.Request) {
	adminID, apiErr := request.ObjectID(r, "adminID")
	if apiErr != nil {
		respond.Error(w, r, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Policy.DeleteAdmin(ctx, adminID); err != nil {
		respond.Error(w, r, storeErr(err, "Admin"))
		return
	}

	h.Log.Info("admin deleted", zap.String("admin_id", adminID.Hex()))
	respond.Message(w, http.StatusOK, "Admin deleted")
}

// HandleDeletePost removes any post, dislike count notwithstanding.
//
// Route: DELETE /superadmin/deletepost/{postID}
func (h *Handler) HandleDeletePost(w http.ResponseWriter, r *http.Request) {
	postID, apiErr := request.ObjectID(r, "postID")
	if apiErr != nil {
		respond.Error(w, r, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Policy.DeletePostAsSuperAdmin(ctx, postID); err != nil {
		respond.Error(w, r, storeErr(err, "Post"))
		return
	}

	h.Log.Info("post deleted by superadmin", zap.String("post_id", postID.Hex()))
	respond.Message(w, http.StatusOK, "Post deleted")
}
