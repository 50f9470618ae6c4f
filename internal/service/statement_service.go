package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/groph-finapi/internal/domain"
	"github.com/fsdevblog/groph-finapi/internal/repository/repoargs"
	"github.com/fsdevblog/groph-finapi/pkg/uow"
)

type StatementService struct {
	uow uow.UOW
}

func NewStatementService(u uow.UOW) (*StatementService, error) {
	// Репозитории берутся только внутри транзакции, но регистрация проверяется
	// на старте, чтобы ошибка конфигурации не всплыла на первом запросе.
	if _, err := u.GetRepository(uow.RepositoryName(repoargs.UserRepoName)); err != nil {
		return nil, err //nolint:wrapcheck
	}
	if _, err := u.GetRepository(uow.RepositoryName(repoargs.StatementRepoName)); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &StatementService{uow: u}, nil
}

type CreateStatementArgs struct {
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Description string
	Type        domain.OperationType
}

// CreateStatement проводит операцию deposit или withdraw. Для withdraw проверка
// баланса и вставка записи выполняются в одной транзакции под блокировкой строки
// юзера, поэтому два конкурентных списания не могут совместно увести баланс в минус.
// Возможные бизнес-ошибки: domain.ErrInvalidAmount, domain.ErrUserNotFound,
// domain.ErrNotEnoughBalance.
func (s *StatementService) CreateStatement(
	ctx context.Context,
	args CreateStatementArgs,
) (*domain.Statement, error) {
	if args.Type != domain.OperationDeposit && args.Type != domain.OperationWithdraw {
		return nil, fmt.Errorf("creating statement: unsupported operation type %q", args.Type)
	}
	if !args.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	var created *domain.Statement
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		userRepo, stmtRepo, reposErr := getTxRepos(tx)
		if reposErr != nil {
			return reposErr
		}

		if _, userErr := userRepo.FindUserByIDForUpdate(c, args.UserID); userErr != nil {
			if errors.Is(userErr, domain.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return userErr //nolint:wrapcheck
		}

		if args.Type == domain.OperationWithdraw {
			agg, balanceErr := stmtRepo.GetUserBalance(c, args.UserID)
			if balanceErr != nil {
				return balanceErr //nolint:wrapcheck
			}
			if args.Amount.GreaterThan(agg.Balance()) {
				return domain.ErrNotEnoughBalance
			}
		}

		var createErr error
		created, createErr = stmtRepo.Create(c, repoargs.StatementCreate{
			UserID:      args.UserID,
			Amount:      args.Amount,
			Description: args.Description,
			Type:        args.Type,
		})
		return createErr //nolint:wrapcheck
	})

	if txErr != nil {
		if isBusinessErr(txErr) {
			return nil, txErr
		}
		return nil, fmt.Errorf("creating statement: %w", txErr)
	}
	return created, nil
}

type TransferArgs struct {
	SenderID    uuid.UUID
	RecipientID uuid.UUID
	Amount      decimal.Decimal
	Description string
}

// Transfer атомарно создает пару связанных записей: списание у отправителя
// (transfer_sent) и зачисление у получателя (transfer_received). Обе записи несут
// sender_id отправителя, по нему перевод восстанавливается с любой стороны.
// Либо создаются обе записи, либо ни одной.
//
// Порядок бизнес-ошибок: ErrSenderNotFound, затем ErrRecipientNotFound,
// затем ErrNotEnoughBalance.
func (s *StatementService) Transfer(ctx context.Context, args TransferArgs) ([]domain.Statement, error) {
	if !args.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	var pair []domain.Statement
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		userRepo, stmtRepo, reposErr := getTxRepos(tx)
		if reposErr != nil {
			return reposErr
		}

		if lockErr := lockTransferParties(c, userRepo, args.SenderID, args.RecipientID); lockErr != nil {
			return lockErr
		}

		agg, balanceErr := stmtRepo.GetUserBalance(c, args.SenderID)
		if balanceErr != nil {
			return balanceErr //nolint:wrapcheck
		}
		if args.Amount.GreaterThan(agg.Balance()) {
			return domain.ErrNotEnoughBalance
		}

		senderID := args.SenderID
		debit, debitErr := stmtRepo.Create(c, repoargs.StatementCreate{
			UserID:      args.SenderID,
			SenderID:    &senderID,
			Amount:      args.Amount,
			Description: args.Description,
			Type:        domain.OperationTransferSent,
		})
		if debitErr != nil {
			return debitErr //nolint:wrapcheck
		}
		credit, creditErr := stmtRepo.Create(c, repoargs.StatementCreate{
			UserID:      args.RecipientID,
			SenderID:    &senderID,
			Amount:      args.Amount,
			Description: args.Description,
			Type:        domain.OperationTransferReceived,
		})
		if creditErr != nil {
			return creditErr //nolint:wrapcheck
		}

		pair = []domain.Statement{*debit, *credit}
		return nil
	})

	if txErr != nil {
		if isBusinessErr(txErr) {
			return nil, txErr
		}
		return nil, fmt.Errorf("transferring: %w", txErr)
	}
	return pair, nil
}

// lockTransferParties блокирует строки обоих участников перевода. Блокировки берутся
// в детерминированном порядке id, чтобы встречные переводы не взаимоблокировались.
// Приоритет ошибок: сначала отправитель, потом получатель.
func lockTransferParties(ctx context.Context, userRepo UserRepository, senderID, recipientID uuid.UUID) error {
	ids := []uuid.UUID{senderID, recipientID}
	if strings.Compare(ids[0].String(), ids[1].String()) > 0 {
		ids[0], ids[1] = ids[1], ids[0]
	}
	if senderID == recipientID {
		ids = ids[:1]
	}

	lockErrs := make(map[uuid.UUID]error, len(ids))
	for _, id := range ids {
		if _, err := userRepo.FindUserByIDForUpdate(ctx, id); err != nil {
			lockErrs[id] = err
		}
	}

	for _, party := range []struct {
		id       uuid.UUID
		notFound error
	}{
		{id: senderID, notFound: domain.ErrSenderNotFound},
		{id: recipientID, notFound: domain.ErrRecipientNotFound},
	} {
		if err, ok := lockErrs[party.id]; ok {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return party.notFound
			}
			return err
		}
	}
	return nil
}

func getTxRepos(tx uow.TX) (UserRepository, StatementRepository, error) {
	userRepo, userErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
	if userErr != nil {
		return nil, nil, userErr //nolint:wrapcheck
	}
	stmtRepo, stmtErr := uow.GetAs[StatementRepository](tx, uow.RepositoryName(repoargs.StatementRepoName))
	if stmtErr != nil {
		return nil, nil, stmtErr //nolint:wrapcheck
	}
	return userRepo, stmtRepo, nil
}

func isBusinessErr(err error) bool {
	for _, target := range []error{
		domain.ErrUserNotFound,
		domain.ErrSenderNotFound,
		domain.ErrRecipientNotFound,
		domain.ErrNotEnoughBalance,
		domain.ErrStatementNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
