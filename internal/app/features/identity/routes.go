// internal/app/features/identity/routes.go
package identity

import (
	"github.com/go-chi/chi/v5"
	"github.com/inkboardhq/inkboard/internal/app/system/gates"
	"github.com/inkboardhq/inkboard/internal/domain/models"
)

// Routes returns the auth subrouter for one account variant. Bootstrap
// mounts it three times: under /user/auth, /admin/auth, and /superadmin/auth.
func Routes(h *Handler, role models.Role) chi.Router {
	r := chi.NewRouter()

	r.Put("/signup", h.HandleSignup(role))
	r.Post("/login", h.HandleLogin(role))

	r.Group(func(pr chi.Router) {
		pr.Use(gates.RequireRole(role))
		pr.Put("/update-password", h.HandleUpdatePassword(role))
	})

	return r
}
