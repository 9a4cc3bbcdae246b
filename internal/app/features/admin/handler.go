// Package admin serves the moderation surface: unfiltered post views, the
// threshold-gated post deletion, comment removal, and user administration.
// Superadmins can use every admin route as well.
package admin

import (
	"errors"

	"github.com/inkboardhq/inkboard/internal/app/policy/moderation"
	accountstore "github.com/inkboardhq/inkboard/internal/app/store/accounts"
	poststore "github.com/inkboardhq/inkboard/internal/app/store/posts"
	"github.com/inkboardhq/inkboard/internal/app/system/apperr"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Accounts *accountstore.Store
	Posts    *poststore.Store
	Policy   *moderation.Policy
	Log      *zap.Logger
}

func NewHandler(
	accounts *accountstore.Store,
	posts *poststore.Store,
	policy *moderation.Policy,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Accounts: accounts,
		Posts:    posts,
		Policy:   policy,
		Log:      logger,
	}
}

func storeErr(err error, resource string) *apperr.Error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.NotFound(resource)
	}
	return apperr.Internal(err)
}
