package mongodb

import (
	"context"
	"errors"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mockCollection implements CollectionInterface with testify expectations
type mockCollection struct {
	mock.Mock
}

func (m *mockCollection) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCollection) InsertOne(ctx context.Context, doc interface{}) (interface{}, error) {
	args := m.Called(ctx, doc)
	if fn, ok := args.Get(0).(func(context.Context, interface{}) interface{}); ok {
		return fn(ctx, doc), args.Error(1)
	}
	return args.Get(0), args.Error(1)
}

func (m *mockCollection) FindOne(ctx context.Context, filter interface{}) SingleResultInterface {
	args := m.Called(ctx, filter)
	return args.Get(0).(SingleResultInterface)
}

func (m *mockCollection) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (UpdateResultInterface, error) {
	args := m.Called(ctx, filter, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(UpdateResultInterface), args.Error(1)
}

func (m *mockCollection) DeleteOne(ctx context.Context, filter interface{}) (DeleteResultInterface, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(DeleteResultInterface), args.Error(1)
}

func (m *mockCollection) DeleteMany(ctx context.Context, filter interface{}) (DeleteResultInterface, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(DeleteResultInterface), args.Error(1)
}

func (m *mockCollection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (CursorInterface, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(CursorInterface), args.Error(1)
}

func (m *mockCollection) Aggregate(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) (CursorInterface, error) {
	args := m.Called(ctx, pipeline)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(CursorInterface), args.Error(1)
}

// mockSingleResult decodes a document through bson, or returns err
type mockSingleResult struct {
	doc interface{}
	err error
}

func (r *mockSingleResult) Decode(v interface{}) error {
	if r.err != nil {
		return r.err
	}
	data, err := bson.Marshal(r.doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(data, v)
}

func notFound() *mockSingleResult {
	return &mockSingleResult{err: mongo.ErrNoDocuments}
}

// mockCursor iterates over documents through bson
type mockCursor struct {
	docs   []interface{}
	pos    int
	err    error
	closed bool
}

func newMockCursor(docs ...interface{}) *mockCursor {
	return &mockCursor{docs: docs, pos: -1}
}

func (c *mockCursor) Next(ctx context.Context) bool {
	if c.pos+1 >= len(c.docs) {
		return false
	}
	c.pos++
	return true
}

func (c *mockCursor) Decode(val interface{}) error {
	if c.pos < 0 || c.pos >= len(c.docs) {
		return errors.New("cursor not positioned")
	}
	data, err := bson.Marshal(c.docs[c.pos])
	if err != nil {
		return err
	}
	return bson.Unmarshal(data, val)
}

func (c *mockCursor) Close(ctx context.Context) error {
	c.closed = true
	return nil
}

func (c *mockCursor) Err() error { return c.err }

type updateResult struct{ matched, modified int64 }

func (u updateResult) Matched() int64  { return u.matched }
func (u updateResult) Modified() int64 { return u.modified }

type deleteResult int64

func (d deleteResult) Deleted() int64 { return int64(d) }

// fakeTransactionRunner runs fn inline and records whether it was used
type fakeTransactionRunner struct {
	calls int
	err   error
}

func (f *fakeTransactionRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}
