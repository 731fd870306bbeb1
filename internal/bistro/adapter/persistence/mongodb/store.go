package mongodb

import (
	"context"
	"fmt"

	"bistro-boss/internal/bistro/domain/repository"
	"bistro-boss/internal/shared/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection    = "users"
	menuCollection     = "menu"
	reviewsCollection  = "reviews"
	cartsCollection    = "carts"
	paymentsCollection = "payments"
)

// MongoStore implements repository.Store over one database.
type MongoStore struct {
	client   *mongo.Client
	db       *mongo.Database
	menu     *MenuRepository
	reviews  *ReviewRepository
	users    *UserRepository
	carts    *CartRepository
	payments *PaymentRepository
	logger   logger.Logger
}

// NewMongoStore wires the repositories to the collections of db. When useTransactions
// is set, payments are recorded in a multi-document transaction.
func NewMongoStore(client *mongo.Client, db *mongo.Database, useTransactions bool, log logger.Logger) (*MongoStore, error) {
	if client == nil || db == nil {
		return nil, fmt.Errorf("mongo client and database are required")
	}
	if log == nil {
		log = logger.NewLogger()
	}
	log = log.WithComponent("bistro.mongodb")

	var tx TransactionRunner
	if useTransactions {
		tx = NewMongoTransactionRunner(client)
	}

	carts := NewMongoCollectionAdapter(db.Collection(cartsCollection))
	return &MongoStore{
		client:   client,
		db:       db,
		menu:     NewMenuRepository(NewMongoCollectionAdapter(db.Collection(menuCollection))),
		reviews:  NewReviewRepository(NewMongoCollectionAdapter(db.Collection(reviewsCollection))),
		users:    NewUserRepository(NewMongoCollectionAdapter(db.Collection(usersCollection))),
		carts:    NewCartRepository(carts),
		payments: NewPaymentRepository(NewMongoCollectionAdapter(db.Collection(paymentsCollection)), carts, tx, log),
		logger:   log,
	}, nil
}

// EnsureIndexes creates the unique email index on users and the email lookups on
// carts and payments.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_email_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create users email index: %w", err)
	}
	for _, name := range []string{cartsCollection, paymentsCollection} {
		_, err := s.db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName(name + "_email"),
		})
		if err != nil {
			return fmt.Errorf("failed to create %s email index: %w", name, err)
		}
	}
	s.logger.Debug("indexes ensured")
	return nil
}

func (s *MongoStore) Menu() repository.MenuRepository       { return s.menu }
func (s *MongoStore) Reviews() repository.ReviewRepository  { return s.reviews }
func (s *MongoStore) Users() repository.UserRepository      { return s.users }
func (s *MongoStore) Carts() repository.CartRepository      { return s.carts }
func (s *MongoStore) Payments() repository.PaymentRepository { return s.payments }

// Ping checks the primary is reachable.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

var _ repository.Store = (*MongoStore)(nil)
