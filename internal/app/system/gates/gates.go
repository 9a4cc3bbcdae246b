// Package gates provides the short-circuiting authorization pipeline applied
// to API routes.
//
// The pipeline has four stages, each its own middleware so routes compose
// only what they need:
//
//  1. auth.Authenticate (package auth): decodes the bearer token.
//  2. RequireRole: the claims role must be in the route's allowed set.
//  3. RequireActiveUser: loads the live user document and rejects inactive
//     accounts. Applied to user-role routes only; status is checked against
//     storage, not the token, so a deactivation takes effect while earlier
//     tokens are still unexpired.
//  4. RequireSubscribed: the live user must carry the subscribed flag.
//
// Ownership checks (is the requester the resource's author?) are not gates:
// they need the target resource loaded first and live inside the moderation
// and engagement operations.
package gates

import (
	"context"
	"errors"
	"net/http"

	"github.com/inkboardhq/inkboard/internal/app/system/apperr"
	"github.com/inkboardhq/inkboard/internal/app/system/auth"
	"github.com/inkboardhq/inkboard/internal/app/system/authz"
	"github.com/inkboardhq/inkboard/internal/app/system/respond"
	"github.com/inkboardhq/inkboard/internal/app/system/timeouts"
	"github.com/inkboardhq/inkboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserLoader fetches the live user document for status and subscription
// checks. Implemented by the accounts store; an interface so gate tests can
// stub storage. Missing users are reported with an error chain containing
// mongo.ErrNoDocuments.
type UserLoader interface {
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error)
}

// RequireRole rejects anonymous requests with 401 and authenticated
// requests whose role is outside the allowed set with 403.
func RequireRole(allowed ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := authz.Role(r)
			if !ok {
				respond.Error(w, r, apperr.Unauthenticated("Not authenticated"))
				return
			}
			if !authz.HasAnyRole(r, allowed...) {
				respond.Error(w, r, apperr.Forbidden("You cannot access this route as "+string(role)))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireActiveUser loads the requester's user document and rejects when it
// is missing or inactive. Mount after RequireRole(models.RoleUser).
func RequireActiveUser(loader UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := loadUser(r, loader)
			if err != nil {
				respond.Error(w, r, err)
				return
			}
			if user.Status == models.StatusInactive {
				respond.Error(w, r, apperr.AccountInactive())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSubscribed rejects users who have not subscribed. Mount after
// RequireActiveUser on the content routes that need it.
func RequireSubscribed(loader UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := loadUser(r, loader)
			if err != nil {
				respond.Error(w, r, err)
				return
			}
			if !user.Subscribed {
				respond.Error(w, r, apperr.SubscriptionRequired())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func loadUser(r *http.Request, loader UserLoader) (*models.Account, error) {
	identity, ok := auth.CurrentIdentity(r)
	if !ok {
		return nil, apperr.Unauthenticated("Not authenticated")
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := loader.FindUserByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("User")
		}
		return nil, apperr.Internal(err)
	}
	return user, nil
}
