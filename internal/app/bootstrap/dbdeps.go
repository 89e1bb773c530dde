// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/carebridge/carebridge/internal/app/store/entity"
	"github.com/carebridge/carebridge/internal/app/system/objectstore"
)

// DBDeps holds database/back-end dependencies for the app.
//
// Store is the document store every feature goes through; the Mongo
// client and database are kept alongside it for health checks, index
// creation, and shutdown. Both are nil when the memory backend is
// selected.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	Store   entity.Store
	Objects objectstore.Store
}
