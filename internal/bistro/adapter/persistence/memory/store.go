package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"bistro-boss/internal/bistro/domain/model"
	"bistro-boss/internal/bistro/domain/repository"
)

// Store is an in-process repository.Store. Every collection keeps insertion order and
// one mutex guards them all, so Record is atomic.
type Store struct {
	mu       sync.RWMutex
	menu     []*model.MenuItem
	reviews  []*model.Review
	users    []*model.User
	carts    []*model.CartItem
	payments []*model.Payment
	now      func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// Seed loads menu items and reviews, assigning ids where missing.
func (s *Store) Seed(menu []*model.MenuItem, reviews []*model.Review) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range menu {
		cp := *m
		if cp.ID.IsZero() {
			cp.ID = model.NewDocumentID()
		}
		s.menu = append(s.menu, &cp)
	}
	for _, r := range reviews {
		cp := *r
		if cp.ID.IsZero() {
			cp.ID = model.NewDocumentID()
		}
		s.reviews = append(s.reviews, &cp)
	}
}

func (s *Store) Menu() repository.MenuRepository       { return menuRepo{s} }
func (s *Store) Reviews() repository.ReviewRepository  { return reviewRepo{s} }
func (s *Store) Users() repository.UserRepository      { return userRepo{s} }
func (s *Store) Carts() repository.CartRepository      { return cartRepo{s} }
func (s *Store) Payments() repository.PaymentRepository { return paymentRepo{s} }

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

// indexOf returns the position of the first element whose id matches, or -1.
func indexOf[T any](items []*T, id model.DocumentID, idOf func(*T) model.DocumentID) int {
	for i, it := range items {
		if idOf(it).Matches(id) {
			return i
		}
	}
	return -1
}

func clone[T any](items []*T) []*T {
	out := make([]*T, 0, len(items))
	for _, it := range items {
		cp := *it
		out = append(out, &cp)
	}
	return out
}

type menuRepo struct{ s *Store }

func menuID(m *model.MenuItem) model.DocumentID { return m.ID }

func (r menuRepo) FindAll(ctx context.Context) ([]*model.MenuItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return clone(r.s.menu), nil
}

func (r menuRepo) FindByID(ctx context.Context, id model.DocumentID) (*model.MenuItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if i := indexOf(r.s.menu, id, menuID); i >= 0 {
		cp := *r.s.menu[i]
		return &cp, nil
	}
	return nil, nil
}

func (r menuRepo) Insert(ctx context.Context, item *model.MenuItem) (*model.InsertResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if item.ID.IsZero() {
		item.ID = model.NewDocumentID()
	}
	cp := *item
	r.s.menu = append(r.s.menu, &cp)
	return model.Inserted(item.ID), nil
}

func (r menuRepo) Update(ctx context.Context, id model.DocumentID, update model.MenuUpdate) (*model.UpdateResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := indexOf(r.s.menu, id, menuID)
	if i < 0 {
		return &model.UpdateResult{Acknowledged: true}, nil
	}
	before := *r.s.menu[i]
	update.Apply(r.s.menu[i])
	res := &model.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if before != *r.s.menu[i] {
		res.ModifiedCount = 1
	}
	return res, nil
}

func (r menuRepo) Delete(ctx context.Context, id model.DocumentID) (*model.DeleteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := indexOf(r.s.menu, id, menuID)
	if i < 0 {
		return &model.DeleteResult{Acknowledged: true}, nil
	}
	r.s.menu = append(r.s.menu[:i], r.s.menu[i+1:]...)
	return &model.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

func (r menuRepo) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.menu)), nil
}

type reviewRepo struct{ s *Store }

func (r reviewRepo) FindAll(ctx context.Context) ([]*model.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return clone(r.s.reviews), nil
}

type userRepo struct{ s *Store }

func userID(u *model.User) model.DocumentID { return u.ID }

func (r userRepo) FindAll(ctx context.Context) ([]*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return clone(r.s.users), nil
}

func (r userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r userRepo) Insert(ctx context.Context, user *model.User) (*model.InsertResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return nil, repository.ErrDuplicateEmail
		}
	}
	if user.ID.IsZero() {
		user.ID = model.NewDocumentID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.s.now().UTC()
	}
	cp := *user
	r.s.users = append(r.s.users, &cp)
	return model.Inserted(user.ID), nil
}

func (r userRepo) SetRole(ctx context.Context, id model.DocumentID, role string) (*model.UpdateResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := indexOf(r.s.users, id, userID)
	if i < 0 {
		return &model.UpdateResult{Acknowledged: true}, nil
	}
	res := &model.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if r.s.users[i].Role != role {
		r.s.users[i].Role = role
		res.ModifiedCount = 1
	}
	return res, nil
}

func (r userRepo) Delete(ctx context.Context, id model.DocumentID) (*model.DeleteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := indexOf(r.s.users, id, userID)
	if i < 0 {
		return &model.DeleteResult{Acknowledged: true}, nil
	}
	r.s.users = append(r.s.users[:i], r.s.users[i+1:]...)
	return &model.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

func (r userRepo) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.users)), nil
}

func (r userRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, u := range r.s.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type cartRepo struct{ s *Store }

func cartID(c *model.CartItem) model.DocumentID { return c.ID }

func (r cartRepo) FindByEmail(ctx context.Context, email string) ([]*model.CartItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*model.CartItem, 0)
	for _, c := range r.s.carts {
		if c.Email == email {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r cartRepo) Insert(ctx context.Context, item *model.CartItem) (*model.InsertResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if item.ID.IsZero() {
		item.ID = model.NewDocumentID()
	}
	cp := *item
	r.s.carts = append(r.s.carts, &cp)
	return model.Inserted(item.ID), nil
}

func (r cartRepo) UpdateQuantity(ctx context.Context, id model.DocumentID, quantity int) (*model.UpdateResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := indexOf(r.s.carts, id, cartID)
	if i < 0 {
		return &model.UpdateResult{Acknowledged: true}, nil
	}
	res := &model.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if r.s.carts[i].Quantity != quantity {
		r.s.carts[i].Quantity = quantity
		res.ModifiedCount = 1
	}
	return res, nil
}

func (r cartRepo) Delete(ctx context.Context, id model.DocumentID) (*model.DeleteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.deleteCarts([]model.DocumentID{id}), nil
}

func matchesAny(id model.DocumentID, ids []model.DocumentID) bool {
	for _, candidate := range ids {
		if candidate.Matches(id) {
			return true
		}
	}
	return false
}

// deleteCarts must be called with the write lock held.
func (s *Store) deleteCarts(ids []model.DocumentID) *model.DeleteResult {
	kept := s.carts[:0]
	var n int64
	for _, c := range s.carts {
		if matchesAny(c.ID, ids) {
			n++
			continue
		}
		kept = append(kept, c)
	}
	s.carts = kept
	return &model.DeleteResult{Acknowledged: true, DeletedCount: n}
}

type paymentRepo struct{ s *Store }

func (r paymentRepo) FindByEmail(ctx context.Context, email string) ([]*model.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*model.Payment, 0)
	for _, p := range r.s.payments {
		if p.Email == email {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r paymentRepo) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.payments)), nil
}

func (r paymentRepo) Revenue(ctx context.Context) (float64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var total float64
	for _, p := range r.s.payments {
		total += p.Price
	}
	return total, nil
}

func (r paymentRepo) Record(ctx context.Context, payment *model.Payment) (*model.PaymentResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if payment.ID.IsZero() {
		payment.ID = model.NewDocumentID()
	}
	cp := *payment
	r.s.payments = append(r.s.payments, &cp)
	return &model.PaymentResult{
		PaymentResult: model.Inserted(payment.ID),
		DeleteResult:  r.s.deleteCarts(model.ParseDocumentIDs(payment.CartIDs)),
	}, nil
}

var _ repository.Store = (*Store)(nil)
