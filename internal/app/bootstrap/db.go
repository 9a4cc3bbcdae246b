// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"github.com/inkboardhq/inkboard/internal/app/system/indexes"
	"go.uber.org/zap"
)

// EnsureSchema creates the indexes the stores rely on. Idempotent; startup
// fails fast if any index cannot be reconciled.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return indexes.EnsureAll(ctx, deps.MongoDatabase)
}
