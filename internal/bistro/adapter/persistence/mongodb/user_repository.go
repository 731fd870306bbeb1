package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bistro-boss/internal/bistro/domain/model"
	"bistro-boss/internal/bistro/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository implements repository.UserRepository
type UserRepository struct {
	collection CollectionInterface
	now        func() time.Time
}

func NewUserRepository(collection CollectionInterface) *UserRepository {
	return &UserRepository{collection: collection, now: time.Now}
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*model.User, error) {
	cur, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	return decodeAll[model.User](ctx, cur)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) Insert(ctx context.Context, user *model.User) (*model.InsertResult, error) {
	if user.ID.IsZero() {
		user.ID = model.NewDocumentID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.now().UTC()
	}
	insertedID, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: %s", repository.ErrDuplicateEmail, user.Email)
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return model.Inserted(insertedDocumentID(insertedID, user.ID)), nil
}

func (r *UserRepository) SetRole(ctx context.Context, id model.DocumentID, role string) (*model.UpdateResult, error) {
	res, err := r.collection.UpdateOne(ctx, idFilter(id), bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return nil, fmt.Errorf("failed to update user role: %w", err)
	}
	return updated(res), nil
}

func (r *UserRepository) Delete(ctx context.Context, id model.DocumentID) (*model.DeleteResult, error) {
	res, err := r.collection.DeleteOne(ctx, idFilter(id))
	if err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	return deleted(res), nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

func (r *UserRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"role": role})
	if err != nil {
		return 0, fmt.Errorf("failed to count users by role: %w", err)
	}
	return n, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
