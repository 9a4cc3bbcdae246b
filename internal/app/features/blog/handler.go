// Package blog serves the user-facing content surface: listing and reading
// posts, authoring, reactions, comments, and the subscription flag.
package blog

import (
	"errors"
	"strings"

	"github.com/inkboardhq/inkboard/internal/app/engagement"
	"github.com/inkboardhq/inkboard/internal/app/policy/moderation"
	accountstore "github.com/inkboardhq/inkboard/internal/app/store/accounts"
	commentstore "github.com/inkboardhq/inkboard/internal/app/store/comments"
	poststore "github.com/inkboardhq/inkboard/internal/app/store/posts"
	"github.com/inkboardhq/inkboard/internal/app/system/apperr"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Accounts *accountstore.Store
	Posts    *poststore.Store
	Comments *commentstore.Store
	Ledger   *engagement.Ledger
	Policy   *moderation.Policy
	Log      *zap.Logger
}

func NewHandler(
	accounts *accountstore.Store,
	posts *poststore.Store,
	comments *commentstore.Store,
	ledger *engagement.Ledger,
	policy *moderation.Policy,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Accounts: accounts,
		Posts:    posts,
		Comments: comments,
		Ledger:   ledger,
		Policy:   policy,
		Log:      logger,
	}
}

// storeErr maps a storage failure to the API taxonomy: a missing document is
// a 404 naming the resource, anything else is an internal fault.
func storeErr(err error, resource string) *apperr.Error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.NotFound(resource)
	}
	return apperr.Internal(err)
}

// policyErr additionally maps ownership refusals from the moderation policy.
func policyErr(err error, resource string) *apperr.Error {
	if errors.Is(err, moderation.ErrNotAuthorized) {
		return apperr.NotAuthorized("Not authorized for this " + strings.ToLower(resource))
	}
	return storeErr(err, resource)
}
