// internal/app/features/identity/login.go
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
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin verifies credentials for the mounted variant and issues a
// bearer token.
//
// Route: POST /{variant}/auth/login
func (h *Handler) HandleLogin(role models.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in loginPayload
		if apiErr := request.DecodeJSON(r, &in); apiErr != nil {
			respond.Error(w, r, apiErr)
			return
		}
		if apiErr := inputval.Check(in); apiErr != nil {
			respond.Error(w, r, apiErr)
			return
		}

		if allowed, reason := h.Limits.Check(r, in.Email); !allowed {
			respond.Error(w, r, apperr.RateLimited(reason))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()

		acct, err := h.Accounts.FindByEmail(ctx, role, in.Email)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				respond.Error(w, r, apperr.BadCredentials("Invalid email or password"))
				return
			}
			respond.Error(w, r, apperr.Internal(err))
			return
		}

		// Deactivated users are turned away before the password check; the
		// response must not reveal whether the password was right.
		if role == models.RoleUser && !acct.Active() {
			respond.Error(w, r, apperr.AccountInactive())
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(acct.Password), []byte(in.Password)); err != nil {
			respond.Error(w, r, apperr.BadCredentials("Invalid email or password"))
			return
		}

		token, err := h.Tokens.Issue(acct.ID, role, acct.Email, acct.Name)
		if err != nil {
			respond.Error(w, r, apperr.Internal(err))
			return
		}

		h.Limits.ResetEmail(in.Email)
		h.Log.Info("login",
			zap.String("account_id", acct.ID.Hex()),
			zap.String("role", string(role)))

		respond.JSON(w, http.StatusOK, map[string]any{
			"token":  token,
			"userId": acct.ID.Hex(),
			"role":   role,
			"name":   acct.Name,
		})
	}
}
