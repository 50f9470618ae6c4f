package pgrepo

import (
	"context"

	"github.com/google/uuid"

	"github.com/fsdevblog/groph-finapi/internal/domain"
	"github.com/fsdevblog/groph-finapi/internal/repository/repoargs"
	"github.com/fsdevblog/groph-finapi/pkg/uow"
)

type StatementRepository struct {
	db uow.DBTX
}

func NewStatementRepository(db uow.DBTX) *StatementRepository {
	return &StatementRepository{db: db}
}

const createStatementSQL = `
INSERT INTO statements (user_id, sender_id, amount, description, type)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at, user_id, sender_id, amount, description, type`

func (s *StatementRepository) Create(
	ctx context.Context,
	statement repoargs.StatementCreate,
) (*domain.Statement, error) {
	row := s.db.QueryRow(ctx, createStatementSQL,
		statement.UserID,
		statement.SenderID,
		statement.Amount,
		statement.Description,
		statement.Type,
	)
	created, err := scanStatement(row)
	if err != nil {
		return nil, convertErr(err, "creating statement")
	}
	return created, nil
}

const findStatementByIDSQL = `
SELECT id, created_at, user_id, sender_id, amount, description, type
FROM statements
WHERE id = $1`

// FindByID возвращает domain.ErrRecordNotFound если запись не найдена.
func (s *StatementRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Statement, error) {
	row := s.db.QueryRow(ctx, findStatementByIDSQL, id)
	statement, err := scanStatement(row)
	if err != nil {
		return nil, convertErr(err, "finding statement by id %s", id)
	}
	return statement, nil
}

const statementsByUserIDSQL = `
SELECT id, created_at, user_id, sender_id, amount, description, type
FROM statements
WHERE user_id = $1
ORDER BY created_at, id`

// GetByUserID возвращает всю историю операций юзера в порядке создания.
func (s *StatementRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Statement, error) {
	rows, err := s.db.Query(ctx, statementsByUserIDSQL, userID)
	if err != nil {
		return nil, convertErr(err, "statements by user id %s", userID)
	}
	defer rows.Close()

	var statements []domain.Statement
	for rows.Next() {
		statement, scanErr := scanStatement(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning statement")
		}
		statements = append(statements, *statement)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "statements by user id %s", userID)
	}
	return statements, nil
}

const balanceByUserIDSQL = `
SELECT
    COALESCE(SUM(amount) FILTER (WHERE type IN ('deposit', 'transfer_received')), 0),
    COALESCE(SUM(amount) FILTER (WHERE type IN ('withdraw', 'transfer_sent')), 0)
FROM statements
WHERE user_id = $1`

// GetUserBalance агрегирует суммы операций юзера по направлениям. Баланс пересчитывается
// на каждом чтении, счетчик нигде не хранится.
func (s *StatementRepository) GetUserBalance(
	ctx context.Context,
	userID uuid.UUID,
) (*repoargs.BalanceAggregation, error) {
	var agg repoargs.BalanceAggregation
	err := s.db.QueryRow(ctx, balanceByUserIDSQL, userID).Scan(&agg.CreditAmount, &agg.DebitAmount)
	if err != nil {
		return nil, convertErr(err, "getting balance sum by user id %s", userID)
	}
	return &agg, nil
}

func scanStatement(row rowScanner) (*domain.Statement, error) {
	var statement domain.Statement
	err := row.Scan(
		&statement.ID,
		&statement.CreatedAt,
		&statement.UserID,
		&statement.SenderID,
		&statement.Amount,
		&statement.Description,
		&statement.Type,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &statement, nil
}
