package authz_test

import (
	"net/http/httptest"
	"testing"

	"github.com/inkboardhq/inkboard/internal/app/system/auth"
	"github.com/inkboardhq/inkboard/internal/app/system/authz"
	"github.com/inkboardhq/inkboard/internal/domain/models"
	"github.com/inkboardhq/inkboard/internal/testutil"
)

func TestUserCtx(t *testing.T) {
	ident := testutil.UserIdentity()
	req := testutil.NewAuthenticatedRequest("GET", "/blog/posts", ident)

	role, name, id, ok := authz.UserCtx(req)
	if !ok {
		t.Fatal("expected identity to be found")
	}
	if role != models.RoleUser || name != ident.Name || id != ident.ID {
		t.Errorf("got role=%q name=%q id=%s", role, name, id.Hex())
	}
}

func TestUserCtx_Anonymous(t *testing.T) {
	req := httptest.NewRequest("GET", "/blog/posts", nil)

	if _, _, _, ok := authz.UserCtx(req); ok {
		t.Error("anonymous request reported an identity")
	}
}

func TestRole(t *testing.T) {
	req := testutil.NewAuthenticatedRequest("GET", "/admin/users", testutil.AdminIdentity())

	role, ok := authz.Role(req)
	if !ok || role != models.RoleAdmin {
		t.Errorf("got role=%q ok=%v", role, ok)
	}

	if _, ok := authz.Role(httptest.NewRequest("GET", "/", nil)); ok {
		t.Error("anonymous request reported a role")
	}
}

func TestHasAnyRole(t *testing.T) {
	tests := []struct {
		name    string
		ident   *auth.Identity
		allowed []models.Role
		want    bool
	}{
		{"exact match", testutil.UserIdentity(), []models.Role{models.RoleUser}, true},
		{"in set", testutil.AdminIdentity(), []models.Role{models.RoleAdmin, models.RoleSuperAdmin}, true},
		{"outside set", testutil.UserIdentity(), []models.Role{models.RoleAdmin, models.RoleSuperAdmin}, false},
		{"empty set", testutil.UserIdentity(), nil, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.NewAuthenticatedRequest("GET", "/", tc.ident)
			if got := authz.HasAnyRole(req, tc.allowed...); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}

	if authz.HasAnyRole(httptest.NewRequest("GET", "/", nil), models.RoleUser) {
		t.Error("anonymous request passed the role check")
	}
}

func TestIsModerator(t *testing.T) {
	if !authz.IsModerator(testutil.NewAuthenticatedRequest("GET", "/", testutil.AdminIdentity())) {
		t.Error("admin not recognized as moderator")
	}
	if !authz.IsModerator(testutil.NewAuthenticatedRequest("GET", "/", testutil.SuperAdminIdentity())) {
		t.Error("superadmin not recognized as moderator")
	}
	if authz.IsModerator(testutil.NewAuthenticatedRequest("GET", "/", testutil.UserIdentity())) {
		t.Error("ordinary user recognized as moderator")
	}
	if authz.IsModerator(httptest.NewRequest("GET", "/", nil)) {
		t.Error("anonymous request recognized as moderator")
	}
}
