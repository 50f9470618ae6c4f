package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/fsdevblog/groph-finapi/internal/domain"
	"github.com/fsdevblog/groph-finapi/internal/repository/repoargs"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	ComparePassword(password string, hashedPassword string) bool
}

type UserRepository interface {
	CreateUser(ctx context.Context, user repoargs.CreateUser) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// FindUserByIDForUpdate блокирует строку юзера до конца текущей транзакции.
	// Вне транзакции ведет себя как FindUserByID.
	FindUserByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type StatementRepository interface {
	Create(ctx context.Context, statement repoargs.StatementCreate) (*domain.Statement, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Statement, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Statement, error)
	GetUserBalance(ctx context.Context, userID uuid.UUID) (*repoargs.BalanceAggregation, error)
}
