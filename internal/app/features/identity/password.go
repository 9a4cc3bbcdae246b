// internal/app/features/identity/password.go
package identity

import (
	"context"
	"errors"
	"net/http"

	"github.com/inkboardhq/inkboard/internal/app/system/apperr"
	"github.com/inkboardhq/inkboard/internal/app/system/inputval"
	"github.com/inkboardhq/inkboard/internal/app/system/request"
	"github.com/inkboardhq/inkboard/internal/app/system/respond"
	"github.com/inkboardhq/inkboard/internal/app/system/timeouts"
	"github.com/inkboardhq/inkboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type updatePasswordPayload struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=5"`
}

// HandleUpdatePassword changes the caller's own password after verifying the
// current one.
//
// Route: PUT /{variant}/auth/update-password
func (h *Handler) HandleUpdatePassword(role models.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, apiErr := request.RequiredIdentity(r)
		if apiErr != nil {
			respond.Error(w, r, apiErr)
			return
		}

		var in updatePasswordPayload
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

		acct, err := h.Accounts.FindByID(ctx, role, ident.ID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				respond.Error(w, r, apperr.NotFound("Account"))
				return
			}
			respond.Error(w, r, apperr.Internal(err))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(acct.Password), []byte(in.OldPassword)); err != nil {
			respond.Error(w, r, apperr.BadCredentials("Current password is incorrect"))
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcryptCost)
		if err != nil {
			respond.Error(w, r, apperr.Internal(err))
			return
		}
		if err := h.Accounts.UpdatePassword(ctx, role, ident.ID, string(hash)); err != nil {
			respond.Error(w, r, apperr.Internal(err))
			return
		}

		respond.Message(w, http.StatusOK, "Password updated")
	}
}
