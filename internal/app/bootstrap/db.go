// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/carebridge/carebridge/internal/app/store/entity/memstore"
	"github.com/carebridge/carebridge/internal/app/store/entity/mongostore"
	"github.com/carebridge/carebridge/internal/app/system/objectstore"
	"github.com/carebridge/carebridge/internal/app/system/timeouts"
)

// ConnectDB builds the document store and object store backends.
//
// With the mongo backend it connects, pings, and wraps the database in
// the entity.Store adapter. The memory backend skips Mongo entirely and
// serves everything from process memory.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	var deps DBDeps

	objects, err := objectstore.NewDisk(appCfg.StorageLocalPath, appCfg.StorageLocalURL)
	if err != nil {
		return DBDeps{}, err
	}
	deps.Objects = objects

	if appCfg.StoreBackend == "memory" {
		logger.Info("using in-memory document store")
		deps.Store = memstore.New()
		return deps, nil
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(appCfg.MongoURI))
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))

	deps.MongoClient = client
	deps.MongoDatabase = client.Database(appCfg.MongoDatabase)
	deps.Store = mongostore.New(deps.MongoDatabase)
	return deps, nil
}

// EnsureSchema creates indexes for the mongo backend. The memory
// backend has no schema.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	ms, ok := deps.Store.(*mongostore.Store)
	if !ok {
		return nil
	}
	if err := ms.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}
	logger.Info("MongoDB indexes ensured")
	return nil
}
