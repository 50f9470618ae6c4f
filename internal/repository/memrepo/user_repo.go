package memrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fsdevblog/groph-finapi/internal/domain"
	"github.com/fsdevblog/groph-finapi/internal/repository/repoargs"
)

// UserRepository хранит юзеров в памяти. Используется как тестовый дублер
// pgrepo.UserRepository, контракт по ошибкам тот же.
type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (u *UserRepository) CreateUser(_ context.Context, user repoargs.CreateUser) (*domain.User, error) {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	for _, existing := range u.store.users {
		if existing.Email == user.Email {
			return nil, fmt.Errorf("[memrepo] creating user: %w", domain.ErrDuplicateKey)
		}
	}

	now := time.Now()
	created := domain.User{
		ID:                uuid.New(),
		CreatedAt:         now,
		UpdatedAt:         now,
		Name:              user.Name,
		Email:             user.Email,
		EncryptedPassword: user.Password,
	}
	u.store.users = append(u.store.users, created)
	return &created, nil
}

func (u *UserRepository) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	for _, user := range u.store.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, fmt.Errorf("[memrepo] finding user by email %s: %w", email, domain.ErrRecordNotFound)
}

func (u *UserRepository) FindUserByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	for _, user := range u.store.users {
		if user.ID == id {
			return &user, nil
		}
	}
	return nil, fmt.Errorf("[memrepo] finding user by id %s: %w", id, domain.ErrRecordNotFound)
}

// FindUserByIDForUpdate в памяти не отличается от FindUserByID: изоляцию
// обеспечивает мьютекс UnitOfWork.
func (u *UserRepository) FindUserByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return u.FindUserByID(ctx, id)
}
