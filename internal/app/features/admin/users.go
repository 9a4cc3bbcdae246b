// internal/app/features/admin/users.go
package admin

import (
	"context"
	"net/http"

	"github.com/inkboardhq/inkboard/internal/app/system/apperr"
	"github.com/inkboardhq/inkboard/internal/app/system/request"
	"github.com/inkboardhq/inkboard/internal/app/system/respond"
	"github.com/inkboardhq/inkboard/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeUsers lists every user account, without password hashes.
//
// Route: GET /admin/users
func (h *Handler) ServeUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Accounts.ListUsers(ctx)
	if err != nil {
		respond.Error(w, r, apperr.Internal(err))
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"message": "Fetched users successfully",
		"users":   users,
	})
}

// HandleDeleteUser removes a user account and everything it authored.
//
// Route: DELETE /admin/deleteuser/{userID}
func (h *Handler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, apiErr := request.ObjectID(r, "userID")
	if apiErr != nil {
		respond.Error(w, r, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Policy.DeleteUser(ctx, userID); err != nil {
		respond.Error(w, r, storeErr(err, "User"))
		return
	}

	h.Log.Info("user deleted with cascade", zap.String("user_id", userID.Hex()))
	respond.Message(w, http.StatusOK, "User deleted")
}

// HandleToggleUserStatus flips a user between active and inactive.
//
// Route: PUT /admin/userStatus/{userID}
func (h *Handler) HandleToggleUserStatus(w http.ResponseWriter, r *http.Request) {
	userID, apiErr := request.ObjectID(r, "userID")
	if apiErr != nil {
		respond.Error(w, r, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	status, err := h.Policy.ToggleUserStatus(ctx, userID)
	if err != nil {
		respond.Error(w, r, storeErr(err, "User"))
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"message": "User status updated",
		"status":  status,
	})
}
