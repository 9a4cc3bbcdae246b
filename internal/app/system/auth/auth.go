// Package auth extracts the bearer identity from inbound requests and makes
// it available to handlers via the request context.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/inkboardhq/inkboard/internal/app/system/apperr"
	"github.com/inkboardhq/inkboard/internal/app/system/respond"
	"github.com/inkboardhq/inkboard/internal/app/system/tokens"
	"github.com/inkboardhq/inkboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Identity is the decoded token payload injected into r.Context().
type Identity struct {
	ID    primitive.ObjectID
	Role  models.Role
	Email string
	Name  string
}

type ctxKey string

const identityKey ctxKey = "identity"

// CurrentIdentity returns the request identity and a found flag.
func CurrentIdentity(r *http.Request) (*Identity, bool) {
	id, ok := r.Context().Value(identityKey).(*Identity)
	return id, ok
}

// Verifier decodes a raw bearer token into claims. Implemented by
// *tokens.Service; an interface so middleware tests can stub it.
type Verifier interface {
	Verify(raw string) (*tokens.Claims, error)
}

// Authenticate verifies the Authorization header and injects the Identity.
//
// A missing header lets the request continue anonymously; the role gates
// reject it downstream with Unauthenticated. A present but malformed or
// expired credential is rejected here with 401 (a client fault, not a
// server fault).
func Authenticate(verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.Fields(header)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				respond.Error(w, r, apperr.Unauthenticated("Invalid authorization header"))
				return
			}

			claims, err := verifier.Verify(parts[1])
			if err != nil {
				respond.Error(w, r, apperr.Unauthenticated("Invalid or expired token"))
				return
			}

			oid, err := primitive.ObjectIDFromHex(claims.AccountID)
			if err != nil {
				respond.Error(w, r, apperr.Unauthenticated("Invalid or expired token"))
				return
			}

			identity := &Identity{
				ID:    oid,
				Role:  claims.Role,
				Email: claims.Email,
				Name:  claims.Name,
			}
			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), identity)))
		})
	}
}

func withIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// WithTestIdentity returns a copy of r carrying the given identity.
// Test helper for handler and gate tests.
func WithTestIdentity(r *http.Request, id *Identity) *http.Request {
	return r.WithContext(withIdentity(r.Context(), id))
}
