package database

import (
	"context"
	"time"

	"github.com/cargotrack/cargotrack/pkg/util"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultConnectionString = "mongodb://localhost:27017/"
const defaultDatabase = "cargotrack"

// Instance is an explicit MongoDB handle. Each batch job connects at the
// start of an invocation and disconnects on every exit path; nothing in
// the codebase holds a global connection.
type Instance struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func Connect(ctx context.Context) (*Instance, error) {
	connectionString := defaultConnectionString
	dbName := defaultDatabase

	env := util.GetEnvironmentVariables()

	if env["CARGOTRACK_MONGODB_CONNECTION"] != "" {
		connectionString = env["CARGOTRACK_MONGODB_CONNECTION"]
	}

	if env["CARGOTRACK_MONGODB_DATABASE"] != "" {
		dbName = env["CARGOTRACK_MONGODB_DATABASE"]
	}

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(connectionString))
	if err != nil {
		return nil, err
	}

	instance := &Instance{
		Client:   client,
		Database: client.Database(dbName),
	}

	// Connectivity probe - a stage invocation aborts here rather than
	// failing record by record later.
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}

	instance.createIndexes(ctx)

	return instance, nil
}

func (i *Instance) Disconnect(ctx context.Context) error {
	return i.Client.Disconnect(ctx)
}

func (i *Instance) GetCollection(collectionName string) *mongo.Collection {
	return i.Database.Collection(collectionName)
}
