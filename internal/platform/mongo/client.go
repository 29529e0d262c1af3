package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/phrazzld/mesto-api/internal/store"
)

// DefaultDatabase is used when the connection URL names no database.
const DefaultDatabase = "mestodb"

const (
	usersCollection = "users"
	cardsCollection = "cards"
)

// Store is the MongoDB-backed store.Store.
type Store struct {
	client *mongo.Client
	users  *UserStore
	cards  *CardStore
}

var _ store.Store = (*Store)(nil)

// Connect dials url, verifies the deployment is reachable within timeout and
// ensures the indexes the stores rely on exist.
func Connect(ctx context.Context, url string, timeout time.Duration, logger *slog.Logger) (*Store, error) {
	cs, err := connstring.ParseAndValidate(url)
	if err != nil {
		return nil, fmt.Errorf("invalid mongodb url: %w", err)
	}
	dbName := cs.Database
	if dbName == "" {
		dbName = DefaultDatabase
	}

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(url).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(dbName)
	if err := EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	logger.Info("connected to mongodb", slog.String("database", dbName))

	return &Store{
		client: client,
		users:  NewUserStore(db, logger),
		cards:  NewCardStore(db, logger),
	}, nil
}

// EnsureIndexes creates the unique email index. Creating an existing index is a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create users.email index: %w", err)
	}
	return nil
}

func (s *Store) Users() store.UserStore { return s.users }
func (s *Store) Cards() store.CardStore { return s.cards }

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
