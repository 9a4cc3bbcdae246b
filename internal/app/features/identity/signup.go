// internal/app/features/identity/signup.go
package identity

import (
	"context"
	"errors"
	"net/http"

	accountstore "github.com/inkboardhq/inkboard/internal/app/store/accounts"
	"github.com/inkboardhq/inkboard/internal/app/system/apperr"
	"github.com/inkboardhq/inkboard/internal/app/system/inputval"
	"github.com/inkboardhq/inkboard/internal/app/system/request"
	"github.com/inkboardhq/inkboard/internal/app/system/respond"
	"github.com/inkboardhq/inkboard/internal/app/system/sanitize"
	"github.com/inkboardhq/inkboard/internal/app/system/timeouts"
	"github.com/inkboardhq/inkboard/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type signupPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5"`
	Name     string `json:"name" validate:"required"`
}

// HandleSignup registers a new account of the mounted variant.
//
// Route: PUT /{variant}/auth/signup
func (h *Handler) HandleSignup(role models.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in signupPayload
		if apiErr := request.DecodeJSON(r, &in); apiErr != nil {
			respond.Error(w, r, apiErr)
			return
		}
		if apiErr := inputval.Check(in); apiErr != nil {
			respond.Error(w, r, apiErr)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
		if err != nil {
			respond.Error(w, r, apperr.Internal(err))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
		defer cancel()

		acct, err := h.Accounts.Create(ctx, models.Account{
			Email:    in.Email,
			Password: string(hash),
			Name:     sanitize.Text(in.Name),
			Role:     role,
		})
		switch {
		case errors.Is(err, accountstore.ErrEmailTaken):
			respond.Error(w, r, apperr.EmailTaken())
			return
		case errors.Is(err, accountstore.ErrSuperAdminExists):
			respond.Error(w, r, apperr.SuperAdminLimit())
			return
		case err != nil:
			respond.Error(w, r, apperr.Internal(err))
			return
		}

		h.Log.Info("account created",
			zap.String("account_id", acct.ID.Hex()),
			zap.String("role", string(acct.Role)))

		respond.JSON(w, http.StatusCreated, map[string]any{
			"message": "Account created successfully",
			"userId":  acct.ID.Hex(),
			"role":    acct.Role,
		})
	}
}
