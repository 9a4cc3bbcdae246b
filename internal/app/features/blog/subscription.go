// internal/app/features/blog/subscription.go
package blog

import (
	"context"
	"errors"
	"net/http"

	accountstore "github.com/inkboardhq/inkboard/internal/app/store/accounts"
	"github.com/inkboardhq/inkboard/internal/app/system/apperr"
	"github.com/inkboardhq/inkboard/internal/app/system/request"
	"github.com/inkboardhq/inkboard/internal/app/system/respond"
	"github.com/inkboardhq/inkboard/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleSubscribe marks the caller as subscribed. Subscription is one-way;
// repeating it is a conflict, not a no-op.
//
// Route: PUT /blog/subscription
func (h *Handler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	ident, apiErr := request.RequiredIdentity(r)
	if apiErr != nil {
		respond.Error(w, r, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Accounts.Subscribe(ctx, ident.ID); err != nil {
		switch {
		case errors.Is(err, accountstore.ErrAlreadySubscribed):
			respond.Error(w, r, apperr.Conflict("You are already subscribed"))
		case errors.Is(err, mongo.ErrNoDocuments):
			respond.Error(w, r, apperr.NotFound("User"))
		default:
			respond.Error(w, r, apperr.Internal(err))
		}
		return
	}

	respond.Message(w, http.StatusOK, "Subscribed successfully")
}
