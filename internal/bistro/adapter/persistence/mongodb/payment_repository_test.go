package mongodb

import (
	"context"
	"errors"
	"testing"

	"bistro-boss/internal/bistro/domain/model"
	"bistro-boss/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func returnPaymentID(ctx context.Context, doc interface{}) interface{} {
	return doc.(*model.Payment).ID.Value()
}

func TestPaymentRecord_DeletesListedCarts(t *testing.T) {
	payments, carts := &mockCollection{}, &mockCollection{}
	repo := NewPaymentRepository(payments, carts, nil, logger.NewLoggerWithConfig("error", "text"))
	oid := primitive.NewObjectID()

	payments.On("InsertOne", mock.Anything, mock.AnythingOfType("*model.Payment")).Return(returnPaymentID, nil)
	carts.On("DeleteMany", mock.Anything, bson.M{"_id": bson.M{"$in": bson.A{oid, oid.Hex(), "id2"}}}).Return(deleteResult(2), nil)

	res, err := repo.Record(context.Background(), &model.Payment{Price: 42, CartIDs: []string{oid.Hex(), "id2"}})

	require.NoError(t, err)
	assert.True(t, res.PaymentResult.Acknowledged)
	assert.NotNil(t, res.PaymentResult.InsertedID)
	assert.Equal(t, int64(2), res.DeleteResult.DeletedCount)
	carts.AssertExpectations(t)
}

func TestPaymentRecord_NoCarts(t *testing.T) {
	payments, carts := &mockCollection{}, &mockCollection{}
	repo := NewPaymentRepository(payments, carts, nil, logger.NewLoggerWithConfig("error", "text"))
	payments.On("InsertOne", mock.Anything, mock.Anything).Return(returnPaymentID, nil)

	res, err := repo.Record(context.Background(), &model.Payment{Price: 5})

	require.NoError(t, err)
	assert.Equal(t, &model.DeleteResult{Acknowledged: true}, res.DeleteResult)
	carts.AssertNotCalled(t, "DeleteMany", mock.Anything, mock.Anything)
}

func TestPaymentRecord_CompensatesWhenCartDeleteFails(t *testing.T) {
	payments, carts := &mockCollection{}, &mockCollection{}
	repo := NewPaymentRepository(payments, carts, nil, logger.NewLoggerWithConfig("error", "text"))
	payment := &model.Payment{Price: 42, CartIDs: []string{"id1"}}

	payments.On("InsertOne", mock.Anything, mock.Anything).Return(returnPaymentID, nil)
	carts.On("DeleteMany", mock.Anything, mock.Anything).Return(nil, errors.New("network"))
	payments.On("DeleteOne", mock.Anything, mock.Anything).Return(deleteResult(1), nil)

	_, err := repo.Record(context.Background(), payment)

	require.Error(t, err)
	payments.AssertCalled(t, "DeleteOne", mock.Anything, bson.M{"_id": payment.ID.Value()})
}

func TestPaymentRecord_UsesTransaction(t *testing.T) {
	payments, carts := &mockCollection{}, &mockCollection{}
	tx := &fakeTransactionRunner{}
	repo := NewPaymentRepository(payments, carts, tx, logger.NewLoggerWithConfig("error", "text"))

	payments.On("InsertOne", mock.Anything, mock.Anything).Return(returnPaymentID, nil)
	carts.On("DeleteMany", mock.Anything, mock.Anything).Return(deleteResult(1), nil)

	res, err := repo.Record(context.Background(), &model.Payment{Price: 1, CartIDs: []string{"c"}})

	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, int64(1), res.DeleteResult.DeletedCount)
}

func TestPaymentRecord_TransactionAbortSkipsCompensation(t *testing.T) {
	payments, carts := &mockCollection{}, &mockCollection{}
	repo := NewPaymentRepository(payments, carts, &fakeTransactionRunner{}, logger.NewLoggerWithConfig("error", "text"))

	payments.On("InsertOne", mock.Anything, mock.Anything).Return(returnPaymentID, nil)
	carts.On("DeleteMany", mock.Anything, mock.Anything).Return(nil, errors.New("write conflict"))

	_, err := repo.Record(context.Background(), &model.Payment{Price: 1, CartIDs: []string{"c"}})

	require.Error(t, err)
	payments.AssertNotCalled(t, "DeleteOne", mock.Anything, mock.Anything)
}
