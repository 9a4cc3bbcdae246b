// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/inkboardhq/inkboard/internal/app/system/auth"
	"github.com/inkboardhq/inkboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the requester's role, display name, account id, and a
// found flag. ok=false means the request is anonymous; callers can trust
// that ok=true means a verified token was presented.
func UserCtx(r *http.Request) (role models.Role, name string, id primitive.ObjectID, ok bool) {
	identity, ok := auth.CurrentIdentity(r)
	if !ok {
		return "", "", primitive.NilObjectID, false
	}
	return identity.Role, identity.Name, identity.ID, true
}

// IsModerator reports whether the requester may moderate content.
// Superadmins count as moderators alongside admins.
func IsModerator(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && (role == models.RoleAdmin || role == models.RoleSuperAdmin)
}
