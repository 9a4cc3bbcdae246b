package testutil

import (
	"net/http"
	"net/http/httptest"

	"github.com/inkboardhq/inkboard/internal/app/system/auth"
	"github.com/inkboardhq/inkboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserIdentity returns a fresh user identity for handler tests.
func UserIdentity() *auth.Identity {
	return &auth.Identity{
		ID:    primitive.NewObjectID(),
		Role:  models.RoleUser,
		Email: "user@test.com",
		Name:  "Test User",
	}
}

// AdminIdentity returns a fresh admin identity for handler tests.
func AdminIdentity() *auth.Identity {
	return &auth.Identity{
		ID:    primitive.NewObjectID(),
		Role:  models.RoleAdmin,
		Email: "admin@test.com",
		Name:  "Test Admin",
	}
}

// SuperAdminIdentity returns a fresh superadmin identity for handler tests.
func SuperAdminIdentity() *auth.Identity {
	return &auth.Identity{
		ID:    primitive.NewObjectID(),
		Role:  models.RoleSuperAdmin,
		Email: "superadmin@test.com",
		Name:  "Test SuperAdmin",
	}
}

// IdentityFor builds an identity matching an account fixture, as the token
// middleware would have produced after verifying that account's token.
func IdentityFor(acct models.Account) *auth.Identity {
	return &auth.Identity{
		ID:    acct.ID,
		Role:  acct.Role,
		Email: acct.Email,
		Name:  acct.Name,
	}
}

// NewAuthenticatedRequest creates an HTTP request carrying the identity,
// bypassing the token middleware.
func NewAuthenticatedRequest(method, target string, id *auth.Identity) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return auth.WithTestIdentity(req, id)
}
