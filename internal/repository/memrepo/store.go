package memrepo

import (
	"context"
	"sync"

	"github.com/fsdevblog/groph-finapi/internal/domain"
	"github.com/fsdevblog/groph-finapi/pkg/uow"
)

// Store разделяемое состояние in-memory репозиториев.
type Store struct {
	mu         sync.Mutex
	users      []domain.User
	statements []domain.Statement
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) snapshot() ([]domain.User, []domain.Statement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]domain.User, len(s.users))
	copy(users, s.users)
	statements := make([]domain.Statement, len(s.statements))
	copy(statements, s.statements)
	return users, statements
}

func (s *Store) restore(users []domain.User, statements []domain.Statement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = users
	s.statements = statements
}

// UnitOfWork in-memory реализация uow.UOW. Do сериализуется глобальным мьютексом,
// при ошибке fn состояние откатывается к снимку на момент начала.
type UnitOfWork struct {
	store        *Store
	txMu         sync.Mutex
	repositories map[uow.RepositoryName]uow.RepositoryFactory
}

func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{
		store:        store,
		repositories: make(map[uow.RepositoryName]uow.RepositoryFactory),
	}
}

// Register регистрирует фабрику репозитория. In-memory репозитории не привязываются
// к соединению, DBTX аргумент фабрики игнорируется.
func (u *UnitOfWork) Register(name uow.RepositoryName, factory uow.RepositoryFactory) error {
	if _, ok := u.repositories[name]; ok {
		return uow.ErrRepositoryAlreadyRegistered
	}
	u.repositories[name] = factory
	return nil
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(context.Context, uow.TX) error) error {
	u.txMu.Lock()
	defer u.txMu.Unlock()

	users, statements := u.store.snapshot()
	if err := fn(ctx, u); err != nil {
		u.store.restore(users, statements)
		return err
	}
	return nil
}

// Get реализация uow.TX поверх того же набора репозиториев.
func (u *UnitOfWork) Get(name uow.RepositoryName) (uow.Repository, error) {
	if factory, ok := u.repositories[name]; ok {
		return factory(nil), nil
	}
	return nil, uow.ErrRepositoryNotRegistered
}

func (u *UnitOfWork) GetRepository(name uow.RepositoryName) (uow.Repository, error) {
	return u.Get(name)
}
