package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"getscience-be/internal/entity"
	"getscience-be/internal/repository/contract"
	"getscience-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository struct {
	mu     sync.RWMutex
	users  map[uuid.UUID]entity.User
	tokens map[uuid.UUID]entity.EmailVerificationToken
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:  make(map[uuid.UUID]entity.User),
		tokens: make(map[uuid.UUID]entity.EmailVerificationToken),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.Id == uuid.Nil {
		user.Id = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("duplicate email %s", user.Email)
		}
	}
	r.users[user.Id] = *user
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.Id] = *user
	return nil
}

func (r *UserRepository) match(u entity.User, f filters) bool {
	if f.id != nil && u.Id != *f.id {
		return false
	}
	if len(f.ids) > 0 && !containsID(f.ids, u.Id) {
		return false
	}
	if f.email != nil && u.Email != *f.email {
		return false
	}
	if f.status != nil && string(u.Status) != *f.status {
		return false
	}
	return true
}

func (r *UserRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f := collect(specs...)
	for _, u := range r.users {
		if r.match(u, f) {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f := collect(specs...)
	var result []*entity.User
	for _, u := range r.users {
		if r.match(u, f) {
			out := u
			result = append(result, &out)
		}
	}
	sortByCreatedAt(result, func(u *entity.User) time.Time { return u.CreatedAt }, f.orderDesc)
	return page(result, f), nil
}

func (r *UserRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

func (r *UserRepository) CreateEmailVerificationToken(ctx context.Context, token *entity.EmailVerificationToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token.Id == uuid.Nil {
		token.Id = uuid.New()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	r.tokens[token.Id] = *token
	return nil
}

func (r *UserRepository) FindEmailVerificationToken(ctx context.Context, specs ...specification.Specification) (*entity.EmailVerificationToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f := collect(specs...)
	for _, t := range r.tokens {
		if f.userID != nil && t.UserId != *f.userID {
			continue
		}
		if f.token != nil && t.Token != *f.token {
			continue
		}
		out := t
		return &out, nil
	}
	return nil, nil
}

func (r *UserRepository) DeleteEmailVerificationTokensByUserId(ctx context.Context, userId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, t := range r.tokens {
		if t.UserId == userId {
			delete(r.tokens, id)
		}
	}
	return nil
}

var _ contract.UserRepository = (*UserRepository)(nil)
