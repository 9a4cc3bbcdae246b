// internal/app/features/admin/routes.go
package admin

import (
	"github.com/go-chi/chi/v5"
	"github.com/inkboardhq/inkboard/internal/app/system/gates"
	"github.com/inkboardhq/inkboard/internal/domain/models"
)

// Routes mounts the moderation routes under /admin.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(gates.RequireRole(models.RoleAdmin, models.RoleSuperAdmin))

	r.Get("/users", h.ServeUsers)
	r.Get("/allposts", h.ServeAllPosts)
	r.Get("/post/{postID}", h.ServePost)

	r.Delete("/deletepost/{postID}", h.HandleDeletePost)
	r.Delete("/post/{postID}/comment/{commentID}", h.HandleDeleteComment)

	r.Delete("/deleteuser/{userID}", h.HandleDeleteUser)
	r.Put("/userStatus/{userID}", h.HandleToggleUserStatus)

	return r
}
