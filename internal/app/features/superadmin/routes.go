// internal/app/features/superadmin/routes.go
package superadmin

import (
	"github.com/go-chi/chi/v5"
	"github.com/inkboardhq/inkboard/internal/app/system/gates"
	"github.com/inkboardhq/inkboard/internal/domain/models"
)

// Routes mounts the superadmin routes under /superadmin.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(gates.RequireRole(models.RoleSuperAdmin))

	r.Get("/admins", h.ServeAdmins)
	r.Delete("/deleteadmin/{adminID}", h.HandleDeleteAdmin)
	r.Delete("/deletepost/{postID}", h.HandleDeletePost)

	return r
}
