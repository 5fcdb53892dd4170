package config

import (
	"context"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"SchoolBridge/internal/apperr"
)

type MongoDBConfig struct {
	URI      string
	Database string
}

func NewMongoDBConfig() (*MongoDBConfig, error) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		return nil, apperr.New(apperr.KindInternal, "MONGO_URI not set")
	}
	name := os.Getenv("MONGO_DB")
	if name == "" {
		name = "schoolbridge"
	}
	return &MongoDBConfig{URI: uri, Database: name}, nil
}

type MongoDBClient struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoDBClient(lc fx.Lifecycle, config *MongoDBConfig, logger *zap.Logger) (*MongoDBClient, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.URI))
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, err
	}
	logger.Info("connected to MongoDB", zap.String("database", config.Database))

	lc.Append(fx.Hook{
		OnStop: func(stopCtx context.Context) error {
			logger.Info("closing MongoDB connection")
			return client.Disconnect(stopCtx)
		},
	})

	db := client.Database(config.Database)
	return &MongoDBClient{Client: client, Database: db}, db, nil
}

// EnsureIndexes creates the unique indexes that act as the atomic
// uniqueness gate for registrations. Application code never does a
// check-then-insert; the insert either lands or fails with a
// duplicate-key error translated at the repository layer.
func EnsureIndexes(db *mongo.Database, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	unique := func(keys bson.D) mongo.IndexModel {
		return mongo.IndexModel{Keys: keys, Options: options.Index().SetUnique(true)}
	}

	indexes := map[string][]mongo.IndexModel{
		"org_accounts": {
			unique(bson.D{{Key: "email", Value: 1}}),
		},
		"staff": {
			unique(bson.D{{Key: "organization", Value: 1}, {Key: "mobile_number", Value: 1}}),
			unique(bson.D{{Key: "organization", Value: 1}, {Key: "email", Value: 1}}),
		},
		"students": {
			unique(bson.D{{Key: "organization", Value: 1}, {Key: "name", Value: 1}, {Key: "father_name", Value: 1}}),
			unique(bson.D{{Key: "organization", Value: 1}, {Key: "mobile_number", Value: 1}}),
		},
		"messages": {
			{Keys: bson.D{{Key: "organization", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "organization", Value: 1}, {Key: "recipients", Value: 1}, {Key: "created_at", Value: -1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
		logger.Info("indexes ensured", zap.String("collection", collection), zap.Int("count", len(models)))
	}
	return nil
}
