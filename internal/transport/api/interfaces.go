package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/fsdevblog/groph-finapi/internal/domain"
	"github.com/fsdevblog/groph-finapi/internal/service"
)

// UserServicer интерфейс исключительно для моков.
type UserServicer interface {
	Register(ctx context.Context, args service.RegisterUserArgs) (*domain.User, string, error)
	Login(ctx context.Context, args service.LoginUserArgs) (*domain.User, string, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

type StatementServicer interface {
	CreateStatement(ctx context.Context, args service.CreateStatementArgs) (*domain.Statement, error)
	Transfer(ctx context.Context, args service.TransferArgs) ([]domain.Statement, error)
}

type BalanceServicer interface {
	GetUserBalance(ctx context.Context, userID uuid.UUID) (*service.UserBalance, error)
	GetStatement(ctx context.Context, userID uuid.UUID, statementID uuid.UUID) (*domain.Statement, error)
}
