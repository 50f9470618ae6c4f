package memrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/groph-finapi/internal/domain"
	"github.com/fsdevblog/groph-finapi/internal/repository/repoargs"
)

// StatementRepository хранит операции в памяти в порядке создания.
type StatementRepository struct {
	store *Store
}

func NewStatementRepository(store *Store) *StatementRepository {
	return &StatementRepository{store: store}
}

func (s *StatementRepository) Create(
	_ context.Context,
	statement repoargs.StatementCreate,
) (*domain.Statement, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	created := domain.Statement{
		ID:          uuid.New(),
		CreatedAt:   time.Now(),
		UserID:      statement.UserID,
		SenderID:    statement.SenderID,
		Amount:      statement.Amount,
		Description: statement.Description,
		Type:        statement.Type,
	}
	s.store.statements = append(s.store.statements, created)
	return &created, nil
}

func (s *StatementRepository) FindByID(_ context.Context, id uuid.UUID) (*domain.Statement, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for _, statement := range s.store.statements {
		if statement.ID == id {
			return &statement, nil
		}
	}
	return nil, fmt.Errorf("[memrepo] finding statement by id %s: %w", id, domain.ErrRecordNotFound)
}

func (s *StatementRepository) GetByUserID(_ context.Context, userID uuid.UUID) ([]domain.Statement, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	var statements []domain.Statement
	for _, statement := range s.store.statements {
		if statement.UserID == userID {
			statements = append(statements, statement)
		}
	}
	return statements, nil
}

func (s *StatementRepository) GetUserBalance(
	_ context.Context,
	userID uuid.UUID,
) (*repoargs.BalanceAggregation, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	agg := repoargs.BalanceAggregation{
		CreditAmount: decimal.Zero,
		DebitAmount:  decimal.Zero,
	}
	for _, statement := range s.store.statements {
		if statement.UserID != userID {
			continue
		}
		if statement.IsCredit() {
			agg.CreditAmount = agg.CreditAmount.Add(statement.Amount)
		} else {
			agg.DebitAmount = agg.DebitAmount.Add(statement.Amount)
		}
	}
	return &agg, nil
}
