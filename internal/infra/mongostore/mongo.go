// Package mongostore keeps orders, carts, the catalog and the audit trail in MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Raviram02/HostelBite/internal/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ordersCollection    = "orders"
	productsCollection  = "products"
	cartsCollection     = "carts"
	auditLogsCollection = "audit_logs"

	connectTimeout = 10 * time.Second
)

// Store is a connected database plus what the server reported about itself.
type Store struct {
	Client *mongo.Client
	DB     *mongo.Database
	// replica sets and sharded clusters only
	SupportsTransactions bool
}

func Connect(ctx context.Context, cfg config.Config) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.MongoDatabase)

	var hello struct {
		SetName string `bson:"setName"`
		Msg     string `bson:"msg"`
	}
	if err := db.RunCommand(ctx, bson.D{{Key: "hello", Value: 1}}).Decode(&hello); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo hello: %w", err)
	}

	return &Store{
		Client:               client,
		DB:                   db,
		SupportsTransactions: hello.SetName != "" || hello.Msg == "isdbgrid",
	}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the queries rely on. Safe to run repeatedly.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		ordersCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		productsCollection: {
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
		auditLogsCollection: {
			{Keys: bson.D{{Key: "resource_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "actor_id", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

// binds ctx to session when one is set
func withSession(ctx context.Context, session mongo.Session) context.Context {
	if session == nil {
		return ctx
	}
	return mongo.NewSessionContext(ctx, session)
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
