package mongodb

import (
	"context"
	"fmt"

	"bistro-boss/internal/bistro/domain/model"
	"bistro-boss/internal/bistro/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
)

// CartRepository implements repository.CartRepository
type CartRepository struct {
	collection CollectionInterface
}

func NewCartRepository(collection CollectionInterface) *CartRepository {
	return &CartRepository{collection: collection}
}

func (r *CartRepository) FindByEmail(ctx context.Context, email string) ([]*model.CartItem, error) {
	cur, err := r.collection.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to find carts: %w", err)
	}
	return decodeAll[model.CartItem](ctx, cur)
}

func (r *CartRepository) Insert(ctx context.Context, item *model.CartItem) (*model.InsertResult, error) {
	if item.ID.IsZero() {
		item.ID = model.NewDocumentID()
	}
	insertedID, err := r.collection.InsertOne(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to insert cart item: %w", err)
	}
	return model.Inserted(insertedDocumentID(insertedID, item.ID)), nil
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, id model.DocumentID, quantity int) (*model.UpdateResult, error) {
	res, err := r.collection.UpdateOne(ctx, idFilter(id), bson.M{"$set": bson.M{"quantity": quantity}})
	if err != nil {
		return nil, fmt.Errorf("failed to update cart quantity: %w", err)
	}
	return updated(res), nil
}

func (r *CartRepository) Delete(ctx context.Context, id model.DocumentID) (*model.DeleteResult, error) {
	res, err := r.collection.DeleteOne(ctx, idFilter(id))
	if err != nil {
		return nil, fmt.Errorf("failed to delete cart item: %w", err)
	}
	return deleted(res), nil
}

var _ repository.CartRepository = (*CartRepository)(nil)
