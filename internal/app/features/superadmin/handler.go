// Package superadmin serves the routes reserved for the single superadmin:
// admin account management and unconditional post deletion.
package superadmin

import (
	"errors"

	"github.com/inkboardhq/inkboard/internal/app/policy/moderation"
	accountstore "github.com/inkboardhq/inkboard/internal/app/store/accounts"
	"github.com/inkboardhq/inkboard/internal/app/system/apperr"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Accounts *accountstore.Store
	Policy   *moderation.Policy
	Log      *zap.Logger
}

func NewHandler(accounts *accountstore.Store, policy *moderation.Policy, logger *zap.Logger) *Handler {
	return &Handler{Accounts: accounts, Policy: policy, Log: logger}
}

func storeErr(err error, resource string) *apperr.Error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.NotFound(resource)
	}
	return apperr.Internal(err)
}
