package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/groph-finapi/internal/domain"
	"github.com/fsdevblog/groph-finapi/internal/repository/repoargs"
	"github.com/fsdevblog/groph-finapi/pkg/uow"
)

type BalanceService struct {
	uow      uow.UOW
	userRepo UserRepository
	stmtRepo StatementRepository
}

func NewBalanceService(u uow.UOW) (*BalanceService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr
	}
	stmtRepo, stmtRepoErr := uow.GetRepositoryAs[StatementRepository](
		u,
		uow.RepositoryName(repoargs.StatementRepoName),
	)
	if stmtRepoErr != nil {
		return nil, stmtRepoErr
	}
	return &BalanceService{
		uow:      u,
		userRepo: userRepo,
		stmtRepo: stmtRepo,
	}, nil
}

type UserBalance struct {
	Balance    decimal.Decimal
	Statements []domain.Statement
}

// GetUserBalance возвращает текущий баланс юзера и полную историю операций
// в порядке создания. Баланс считается заново по всем операциям:
// поступления (deposit, transfer_received) минус списания (withdraw, transfer_sent).
func (b *BalanceService) GetUserBalance(ctx context.Context, userID uuid.UUID) (*UserBalance, error) {
	if _, userErr := b.userRepo.FindUserByID(ctx, userID); userErr != nil {
		if errors.Is(userErr, domain.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("getting balance: %w", userErr)
	}

	agg, aggErr := b.stmtRepo.GetUserBalance(ctx, userID)
	if aggErr != nil {
		return nil, fmt.Errorf("getting balance: %w", aggErr)
	}
	statements, stmtsErr := b.stmtRepo.GetByUserID(ctx, userID)
	if stmtsErr != nil {
		return nil, fmt.Errorf("getting balance: %w", stmtsErr)
	}

	return &UserBalance{
		Balance:    agg.Balance(),
		Statements: statements,
	}, nil
}

// GetStatement возвращает одну операцию юзера. Чужая запись неотличима от
// несуществующей: в обоих случаях возвращается domain.ErrStatementNotFound.
func (b *BalanceService) GetStatement(
	ctx context.Context,
	userID uuid.UUID,
	statementID uuid.UUID,
) (*domain.Statement, error) {
	if _, userErr := b.userRepo.FindUserByID(ctx, userID); userErr != nil {
		if errors.Is(userErr, domain.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("getting statement: %w", userErr)
	}

	statement, stmtErr := b.stmtRepo.FindByID(ctx, statementID)
	if stmtErr != nil {
		if errors.Is(stmtErr, domain.ErrRecordNotFound) {
			return nil, domain.ErrStatementNotFound
		}
		return nil, fmt.Errorf("getting statement: %w", stmtErr)
	}
	if statement.UserID != userID {
		return nil, domain.ErrStatementNotFound
	}
	return statement, nil
}
