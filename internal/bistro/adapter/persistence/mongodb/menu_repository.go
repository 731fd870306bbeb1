package mongodb

import (
	"context"
	"errors"
	"fmt"

	"bistro-boss/internal/bistro/domain/model"
	"bistro-boss/internal/bistro/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MenuRepository implements repository.MenuRepository
type MenuRepository struct {
	collection CollectionInterface
}

func NewMenuRepository(collection CollectionInterface) *MenuRepository {
	return &MenuRepository{collection: collection}
}

func (r *MenuRepository) FindAll(ctx context.Context) ([]*model.MenuItem, error) {
	cur, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find menu items: %w", err)
	}
	return decodeAll[model.MenuItem](ctx, cur)
}

func (r *MenuRepository) FindByID(ctx context.Context, id model.DocumentID) (*model.MenuItem, error) {
	var item model.MenuItem
	if err := r.collection.FindOne(ctx, idFilter(id)).Decode(&item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find menu item: %w", err)
	}
	return &item, nil
}

func (r *MenuRepository) Insert(ctx context.Context, item *model.MenuItem) (*model.InsertResult, error) {
	if item.ID.IsZero() {
		item.ID = model.NewDocumentID()
	}
	insertedID, err := r.collection.InsertOne(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to insert menu item: %w", err)
	}
	return model.Inserted(insertedDocumentID(insertedID, item.ID)), nil
}

func (r *MenuRepository) Update(ctx context.Context, id model.DocumentID, update model.MenuUpdate) (*model.UpdateResult, error) {
	res, err := r.collection.UpdateOne(ctx, idFilter(id), bson.M{"$set": update.Fields()})
	if err != nil {
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}
	return updated(res), nil
}

func (r *MenuRepository) Delete(ctx context.Context, id model.DocumentID) (*model.DeleteResult, error) {
	res, err := r.collection.DeleteOne(ctx, idFilter(id))
	if err != nil {
		return nil, fmt.Errorf("failed to delete menu item: %w", err)
	}
	return deleted(res), nil
}

func (r *MenuRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count menu items: %w", err)
	}
	return n, nil
}

// ReviewRepository implements repository.ReviewRepository
type ReviewRepository struct {
	collection CollectionInterface
}

func NewReviewRepository(collection CollectionInterface) *ReviewRepository {
	return &ReviewRepository{collection: collection}
}

func (r *ReviewRepository) FindAll(ctx context.Context) ([]*model.Review, error) {
	cur, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}
	return decodeAll[model.Review](ctx, cur)
}

// idFilter matches a hex identifier stored either as an ObjectID or as a string.
func idFilter(id model.DocumentID) bson.M {
	candidates := id.Candidates()
	if len(candidates) == 1 {
		return bson.M{"_id": candidates[0]}
	}
	return bson.M{"_id": bson.M{"$in": bson.A(candidates)}}
}

func idsFilter(ids []model.DocumentID) bson.M {
	values := make(bson.A, 0, len(ids))
	for _, id := range ids {
		values = append(values, id.Candidates()...)
	}
	return bson.M{"_id": bson.M{"$in": values}}
}

func insertedDocumentID(raw interface{}, fallback model.DocumentID) model.DocumentID {
	switch v := raw.(type) {
	case primitive.ObjectID:
		return model.DocumentIDFromObjectID(v)
	case string:
		if fallback.String() == v {
			return fallback
		}
		return model.ParseDocumentID(v)
	case model.DocumentID:
		return v
	}
	return fallback
}

func updated(res UpdateResultInterface) *model.UpdateResult {
	return &model.UpdateResult{Acknowledged: true, MatchedCount: res.Matched(), ModifiedCount: res.Modified()}
}

func deleted(res DeleteResultInterface) *model.DeleteResult {
	return &model.DeleteResult{Acknowledged: true, DeletedCount: res.Deleted()}
}

var (
	_ repository.MenuRepository   = (*MenuRepository)(nil)
	_ repository.ReviewRepository = (*ReviewRepository)(nil)
)
