package mongodb

import (
	"context"
	"fmt"

	"bistro-boss/internal/bistro/domain/model"
	"bistro-boss/internal/bistro/domain/repository"
	"bistro-boss/internal/shared/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PaymentRepository implements repository.PaymentRepository. It also deletes from the
// carts collection when a payment is recorded.
type PaymentRepository struct {
	collection CollectionInterface
	carts      CollectionInterface
	tx         TransactionRunner
	logger     logger.Logger
}

// NewPaymentRepository creates the repository. tx may be nil, in which case a failed
// cart delete is compensated by deleting the payment again.
func NewPaymentRepository(collection, carts CollectionInterface, tx TransactionRunner, log logger.Logger) *PaymentRepository {
	if log == nil {
		log = logger.NewLogger()
	}
	return &PaymentRepository{collection: collection, carts: carts, tx: tx, logger: log}
}

func (r *PaymentRepository) FindByEmail(ctx context.Context, email string) ([]*model.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := r.collection.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find payments: %w", err)
	}
	return decodeAll[model.Payment](ctx, cur)
}

func (r *PaymentRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count payments: %w", err)
	}
	return n, nil
}

func (r *PaymentRepository) Revenue(ctx context.Context) (float64, error) {
	pipeline := bson.A{
		bson.M{"$group": bson.M{"_id": nil, "totalRevenue": bson.M{"$sum": "$price"}}},
	}
	cur, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	defer cur.Close(ctx)

	var total float64
	if cur.Next(ctx) {
		var row struct {
			TotalRevenue float64 `bson:"totalRevenue"`
		}
		if err := cur.Decode(&row); err != nil {
			return 0, fmt.Errorf("failed to decode revenue: %w", err)
		}
		total = row.TotalRevenue
	}
	if err := cur.Err(); err != nil {
		return 0, fmt.Errorf("cursor error: %w", err)
	}
	return total, nil
}

func (r *PaymentRepository) Record(ctx context.Context, payment *model.Payment) (*model.PaymentResult, error) {
	if payment.ID.IsZero() {
		payment.ID = model.NewDocumentID()
	}

	if r.tx != nil {
		var result *model.PaymentResult
		err := r.tx.WithTransaction(ctx, func(txCtx context.Context) error {
			var err error
			result, err = r.insertAndClear(txCtx, payment)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("payment transaction failed: %w", err)
		}
		return result, nil
	}

	inserted, err := r.collection.InsertOne(ctx, payment)
	if err != nil {
		return nil, fmt.Errorf("failed to insert payment: %w", err)
	}
	cleared, err := r.clearCarts(ctx, payment.CartIDs)
	if err != nil {
		if _, undoErr := r.collection.DeleteOne(ctx, idFilter(payment.ID)); undoErr != nil {
			r.logger.WithContext(ctx).WithFields(map[string]interface{}{
				"payment_id": payment.ID.String(),
				"cart_ids":   payment.CartIDs,
			}).Errorf("payment recorded but carts not cleared and compensation failed: %v", undoErr)
		}
		return nil, err
	}
	return &model.PaymentResult{
		PaymentResult: model.Inserted(insertedDocumentID(inserted, payment.ID)),
		DeleteResult:  cleared,
	}, nil
}

func (r *PaymentRepository) insertAndClear(ctx context.Context, payment *model.Payment) (*model.PaymentResult, error) {
	inserted, err := r.collection.InsertOne(ctx, payment)
	if err != nil {
		return nil, fmt.Errorf("failed to insert payment: %w", err)
	}
	cleared, err := r.clearCarts(ctx, payment.CartIDs)
	if err != nil {
		return nil, err
	}
	return &model.PaymentResult{
		PaymentResult: model.Inserted(insertedDocumentID(inserted, payment.ID)),
		DeleteResult:  cleared,
	}, nil
}

func (r *PaymentRepository) clearCarts(ctx context.Context, rawIDs []string) (*model.DeleteResult, error) {
	ids := model.ParseDocumentIDs(rawIDs)
	if len(ids) == 0 {
		return &model.DeleteResult{Acknowledged: true}, nil
	}
	res, err := r.carts.DeleteMany(ctx, idsFilter(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to delete paid carts: %w", err)
	}
	return deleted(res), nil
}

var _ repository.PaymentRepository = (*PaymentRepository)(nil)
