// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	logger.Info("carebridge starting",
		zap.String("store_backend", appCfg.StoreBackend),
		zap.Int("in_filter_limit", appCfg.InFilterLimit),
		zap.Int("visible_issue_limit", appCfg.VisibleIssueLimit))
	return nil
}
