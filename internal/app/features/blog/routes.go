// internal/app/features/blog/routes.go
package blog

import (
	"github.com/go-chi/chi/v5"
	"github.com/inkboardhq/inkboard/internal/app/system/gates"
	"github.com/inkboardhq/inkboard/internal/domain/models"
)

// Routes mounts the content routes under /blog. Every route requires an
// active user; all but the subscription toggle also require a subscription.
func Routes(h *Handler, loader gates.UserLoader) chi.Router {
	r := chi.NewRouter()
	r.Use(gates.RequireRole(models.RoleUser))
	r.Use(gates.RequireActiveUser(loader))

	// Subscribing is how a user obtains the subscription, so it cannot sit
	// behind the subscription gate.
	r.Put("/subscription", h.HandleSubscribe)

	r.Group(func(pr chi.Router) {
		pr.Use(gates.RequireSubscribed(loader))

		pr.Get("/posts", h.ServePosts)
		pr.Get("/posts/search", h.ServeSearch)
		pr.Get("/post/{postID}", h.ServePost)

		pr.Post("/post", h.HandleCreatePost)
		pr.Put("/posts/{postID}", h.HandleEditPost)
		pr.Delete("/posts/{postID}", h.HandleDeletePost)

		pr.Post("/posts/{postID}/like", h.HandleLikePost)
		pr.Post("/posts/{postID}/dislike", h.HandleDislikePost)

		pr.Post("/posts/{postID}/comment", h.HandleAddComment)
		pr.Delete("/posts/{postID}/comment/{commentID}", h.HandleDeleteComment)
		pr.Post("/posts/{postID}/comments/{commentID}/like", h.HandleLikeComment)
		pr.Post("/posts/{postID}/comments/{commentID}/dislike", h.HandleDislikeComment)
	})

	return r
}
