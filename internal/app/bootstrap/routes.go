// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	adminfeature "github.com/inkboardhq/inkboard/internal/app/features/admin"
	blogfeature "github.com/inkboardhq/inkboard/internal/app/features/blog"
	healthfeature "github.com/inkboardhq/inkboard/internal/app/features/health"
	identityfeature "github.com/inkboardhq/inkboard/internal/app/features/identity"
	superadminfeature "github.com/inkboardhq/inkboard/internal/app/features/superadmin"
	"github.com/inkboardhq/inkboard/internal/app/engagement"
	"github.com/inkboardhq/inkboard/internal/app/policy/moderation"
	accountstore "github.com/inkboardhq/inkboard/internal/app/store/accounts"
	commentstore "github.com/inkboardhq/inkboard/internal/app/store/comments"
	poststore "github.com/inkboardhq/inkboard/internal/app/store/posts"
	"github.com/inkboardhq/inkboard/internal/app/system/auth"
	"github.com/inkboardhq/inkboard/internal/app/system/ratelimit"
	"github.com/inkboardhq/inkboard/internal/app/system/tokens"
	"github.com/inkboardhq/inkboard/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// Inkboard builds the bearer-token service, the login rate limiter, the
// Mongo-backed stores, and the reaction/moderation services, then mounts
// the auth surfaces for each account tier alongside the blog, admin, and
// superadmin APIs.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokenSvc, err := tokens.New(appCfg.TokenSecret, appCfg.TokenIssuer)
	if err != nil {
		logger.Error("token service init failed", zap.Error(err))
		return nil, err
	}

	// The IP window is deliberately looser than the per-email window so a
	// shared NAT does not lock out a whole office.
	limits := ratelimit.NewLoginLimiterWithConfig(
		appCfg.AuthRateLimit*3, appCfg.AuthRateWindow,
		appCfg.AuthRateLimit, appCfg.AuthRateWindow,
	)

	db := deps.MongoDatabase
	accounts := accountstore.New(db)
	posts := poststore.New(db)
	comments := commentstore.New(db)

	ledger := engagement.New(posts, comments, logger)
	policy := moderation.New(accounts, posts, comments, logger)

	r := chi.NewRouter()

	// Global auth middleware: decodes a bearer token into an Identity if one
	// is presented. Anonymous requests pass through; the role gates on each
	// subrouter decide what an anonymous caller may reach.
	r.Use(auth.Authenticate(tokenSvc))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Signup, login, and password management for each account tier.
	identityHandler := identityfeature.NewHandler(accounts, tokenSvc, limits, logger)
	r.Mount("/user/auth", identityfeature.Routes(identityHandler, models.RoleUser))
	r.Mount("/admin/auth", identityfeature.Routes(identityHandler, models.RoleAdmin))
	r.Mount("/superadmin/auth", identityfeature.Routes(identityHandler, models.RoleSuperAdmin))

	// Reader-facing blog API (active, subscribed users only past the gates).
	blogHandler := blogfeature.NewHandler(accounts, posts, comments, ledger, policy, logger)
	r.Mount("/blog", blogfeature.Routes(blogHandler, accounts))

	// Moderation API for admins and superadmins.
	adminHandler := adminfeature.NewHandler(accounts, posts, policy, logger)
	r.Mount("/admin", adminfeature.Routes(adminHandler))

	// Superadmin-only management of admin accounts.
	superadminHandler := superadminfeature.NewHandler(accounts, policy, logger)
	r.Mount("/superadmin", superadminfeature.Routes(superadminHandler))

	return r, nil
}
