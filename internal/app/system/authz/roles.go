// internal/app/system/authz/roles.go
package authz

import (
	"net/http"

	"github.com/inkboardhq/inkboard/internal/domain/models"
)

// HasAnyRole reports whether the current request's identity has any of the
// given roles. Returns false for anonymous requests.
func HasAnyRole(r *http.Request, roles ...models.Role) bool {
	cur, _, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	for _, want := range roles {
		if cur == want {
			return true
		}
	}
	return false
}

// Role returns the current identity's role and whether one is present.
func Role(r *http.Request) (models.Role, bool) {
	role, _, _, ok := UserCtx(r)
	return role, ok
}
