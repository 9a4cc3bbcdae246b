// Package request extracts data from incoming HTTP requests: JSON bodies,
// ObjectID path parameters, and the authenticated identity.
package request

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/inkboardhq/inkboard/internal/app/system/apperr"
	"github.com/inkboardhq/inkboard/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DecodeJSON reads the request body into target. A body that is not valid
// JSON for the target shape is a validation fault, not a server error.
func DecodeJSON(r *http.Request, target any) *apperr.Error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return apperr.Validation("Request body is not valid JSON")
	}
	return nil
}

// ObjectID parses the named chi URL parameter as a Mongo ObjectID.
func ObjectID(r *http.Request, name string) (primitive.ObjectID, *apperr.Error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		return primitive.NilObjectID, apperr.Validation("Malformed " + name)
	}
	return id, nil
}

// RequiredIdentity returns the authenticated identity or an Unauthenticated
// error. Handlers behind the role gates can rely on it being present; this
// guards the handful that are mounted with only the token check.
func RequiredIdentity(r *http.Request) (*auth.Identity, *apperr.Error) {
	ident, ok := auth.CurrentIdentity(r)
	if !ok {
		return nil, apperr.Unauthenticated("Not authenticated")
	}
	return ident, nil
}
