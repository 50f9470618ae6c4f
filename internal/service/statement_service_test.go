package service

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/groph-finapi/internal/domain"
	"github.com/fsdevblog/groph-finapi/internal/repository/memrepo"
	"github.com/fsdevblog/groph-finapi/internal/repository/repoargs"
	"github.com/fsdevblog/groph-finapi/pkg/uow"
)

// Сервис операций тестируется на memrepo: проверяются денежные инварианты
// целиком, вместе с откатом транзакции, а не отдельные вызовы репозитория.
type StatementServiceTestSuite struct {
	suite.Suite
	store          *memrepo.Store
	statementSvs   *StatementService
	balanceSvs     *BalanceService
	userRepository *memrepo.UserRepository
}

func TestStatementServiceSuite(t *testing.T) {
	suite.Run(t, new(StatementServiceTestSuite))
}

func (s *StatementServiceTestSuite) SetupTest() {
	s.store = memrepo.NewStore()
	unitOfWork := memrepo.NewUnitOfWork(s.store)

	s.Require().NoError(unitOfWork.Register(
		uow.RepositoryName(repoargs.UserRepoName),
		func(uow.DBTX) uow.Repository { return memrepo.NewUserRepository(s.store) },
	))
	s.Require().NoError(unitOfWork.Register(
		uow.RepositoryName(repoargs.StatementRepoName),
		func(uow.DBTX) uow.Repository { return memrepo.NewStatementRepository(s.store) },
	))

	statementSvs, stmtErr := NewStatementService(unitOfWork)
	s.Require().NoError(stmtErr)
	s.statementSvs = statementSvs

	balanceSvs, balanceErr := NewBalanceService(unitOfWork)
	s.Require().NoError(balanceErr)
	s.balanceSvs = balanceSvs

	s.userRepository = memrepo.NewUserRepository(s.store)
}

func (s *StatementServiceTestSuite) createUser() *domain.User {
	user, err := s.userRepository.CreateUser(s.T().Context(), repoargs.CreateUser{
		Name:     gofakeit.Name(),
		Email:    gofakeit.Email(),
		Password: "hashed",
	})
	s.Require().NoError(err)
	return user
}

func (s *StatementServiceTestSuite) balance(userID uuid.UUID) decimal.Decimal {
	balance, err := s.balanceSvs.GetUserBalance(s.T().Context(), userID)
	s.Require().NoError(err)
	return balance.Balance
}

func (s *StatementServiceTestSuite) deposit(userID uuid.UUID, amount string) *domain.Statement {
	statement, err := s.statementSvs.CreateStatement(s.T().Context(), CreateStatementArgs{
		UserID: userID,
		Amount: decimal.RequireFromString(amount),
		Type:   domain.OperationDeposit,
	})
	s.Require().NoError(err)
	return statement
}

func (s *StatementServiceTestSuite) TestDepositWithdrawFlow() {
	user := s.createUser()

	s.deposit(user.ID, "500")

	s.True(s.balance(user.ID).Equal(decimal.RequireFromString("500")))

	_, withdrawErr := s.statementSvs.CreateStatement(s.T().Context(), CreateStatementArgs{
		UserID:      user.ID,
		Amount:      decimal.RequireFromString("400"),
		Description: "rent",
		Type:        domain.OperationWithdraw,
	})
	s.Require().NoError(withdrawErr)

	result, err := s.balanceSvs.GetUserBalance(s.T().Context(), user.ID)
	s.Require().NoError(err)
	s.True(result.Balance.Equal(decimal.RequireFromString("100")))
	s.Require().Len(result.Statements, 2)

	// История отдается в порядке создания.
	s.Equal(domain.OperationDeposit, result.Statements[0].Type)
	s.Equal(domain.OperationWithdraw, result.Statements[1].Type)
	s.Equal("rent", result.Statements[1].Description)
}

func (s *StatementServiceTestSuite) TestWithdrawNotEnoughBalance() {
	user := s.createUser()
	s.deposit(user.ID, "500")

	_, err := s.statementSvs.CreateStatement(s.T().Context(), CreateStatementArgs{
		UserID: user.ID,
		Amount: decimal.RequireFromString("600"),
		Type:   domain.OperationWithdraw,
	})
	s.Require().ErrorIs(err, domain.ErrNotEnoughBalance)

	// Отклоненное списание не оставляет следов.
	result, balanceErr := s.balanceSvs.GetUserBalance(s.T().Context(), user.ID)
	s.Require().NoError(balanceErr)
	s.True(result.Balance.Equal(decimal.RequireFromString("500")))
	s.Len(result.Statements, 1)
}

func (s *StatementServiceTestSuite) TestWithdrawExactBalance() {
	user := s.createUser()
	s.deposit(user.ID, "250.50")

	// Списание ровно всего баланса допустимо, на копейку больше — нет.
	_, overErr := s.statementSvs.CreateStatement(s.T().Context(), CreateStatementArgs{
		UserID: user.ID,
		Amount: decimal.RequireFromString("250.51"),
		Type:   domain.OperationWithdraw,
	})
	s.Require().ErrorIs(overErr, domain.ErrNotEnoughBalance)

	_, exactErr := s.statementSvs.CreateStatement(s.T().Context(), CreateStatementArgs{
		UserID: user.ID,
		Amount: decimal.RequireFromString("250.50"),
		Type:   domain.OperationWithdraw,
	})
	s.Require().NoError(exactErr)
	s.True(s.balance(user.ID).IsZero())
}

func (s *StatementServiceTestSuite) TestCreateStatementValidation() {
	user := s.createUser()

	cases := []struct {
		name    string
		userID  uuid.UUID
		amount  string
		opType  domain.OperationType
		wantErr error
	}{
		{name: "zero amount", userID: user.ID, amount: "0", opType: domain.OperationDeposit, wantErr: domain.ErrInvalidAmount},
		{name: "negative amount", userID: user.ID, amount: "-10", opType: domain.OperationDeposit, wantErr: domain.ErrInvalidAmount},
		{name: "unknown user", userID: uuid.New(), amount: "10", opType: domain.OperationDeposit, wantErr: domain.ErrUserNotFound},
		{name: "unknown user withdraw", userID: uuid.New(), amount: "10", opType: domain.OperationWithdraw, wantErr: domain.ErrUserNotFound},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			_, err := s.statementSvs.CreateStatement(s.T().Context(), CreateStatementArgs{
				UserID: t.userID,
				Amount: decimal.RequireFromString(t.amount),
				Type:   t.opType,
			})
			s.Require().ErrorIs(err, t.wantErr)
		})
	}

	// Переводные типы через CreateStatement не проводятся.
	_, err := s.statementSvs.CreateStatement(s.T().Context(), CreateStatementArgs{
		UserID: user.ID,
		Amount: decimal.RequireFromString("10"),
		Type:   domain.OperationTransferSent,
	})
	s.Require().Error(err)
}

func (s *StatementServiceTestSuite) TestTransfer() {
	sender := s.createUser()
	recipient := s.createUser()
	s.deposit(sender.ID, "300")

	pair, err := s.statementSvs.Transfer(s.T().Context(), TransferArgs{
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Amount:      decimal.RequireFromString("120"),
		Description: "lunch",
	})
	s.Require().NoError(err)
	s.Require().Len(pair, 2)

	debit, credit := pair[0], pair[1]
	s.Equal(domain.OperationTransferSent, debit.Type)
	s.Equal(sender.ID, debit.UserID)
	s.Equal(domain.OperationTransferReceived, credit.Type)
	s.Equal(recipient.ID, credit.UserID)

	// Обе записи несут id отправителя: перевод восстановим с любой стороны.
	s.Require().NotNil(debit.SenderID)
	s.Require().NotNil(credit.SenderID)
	s.Equal(sender.ID, *debit.SenderID)
	s.Equal(sender.ID, *credit.SenderID)

	s.True(s.balance(sender.ID).Equal(decimal.RequireFromString("180")))
	s.True(s.balance(recipient.ID).Equal(decimal.RequireFromString("120")))
}

func (s *StatementServiceTestSuite) TestTransferNotEnoughBalance() {
	sender := s.createUser()
	recipient := s.createUser()
	s.deposit(sender.ID, "50")

	_, err := s.statementSvs.Transfer(s.T().Context(), TransferArgs{
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Amount:      decimal.RequireFromString("100"),
	})
	s.Require().ErrorIs(err, domain.ErrNotEnoughBalance)

	// Несостоявшийся перевод не виден ни одной из сторон.
	senderResult, senderErr := s.balanceSvs.GetUserBalance(s.T().Context(), sender.ID)
	s.Require().NoError(senderErr)
	s.True(senderResult.Balance.Equal(decimal.RequireFromString("50")))
	s.Len(senderResult.Statements, 1)

	recipientResult, recipientErr := s.balanceSvs.GetUserBalance(s.T().Context(), recipient.ID)
	s.Require().NoError(recipientErr)
	s.True(recipientResult.Balance.IsZero())
	s.Empty(recipientResult.Statements)
}

func (s *StatementServiceTestSuite) TestTransferErrPriority() {
	sender := s.createUser()
	s.deposit(sender.ID, "100")

	cases := []struct {
		name        string
		senderID    uuid.UUID
		recipientID uuid.UUID
		wantErr     error
	}{
		{name: "unknown sender", senderID: uuid.New(), recipientID: sender.ID, wantErr: domain.ErrSenderNotFound},
		{name: "unknown recipient", senderID: sender.ID, recipientID: uuid.New(), wantErr: domain.ErrRecipientNotFound},
		// Когда неизвестны оба, ошибка отправителя важнее.
		{name: "both unknown", senderID: uuid.New(), recipientID: uuid.New(), wantErr: domain.ErrSenderNotFound},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			_, err := s.statementSvs.Transfer(s.T().Context(), TransferArgs{
				SenderID:    t.senderID,
				RecipientID: t.recipientID,
				Amount:      decimal.RequireFromString("10"),
			})
			s.Require().ErrorIs(err, t.wantErr)
		})
	}
}

func (s *StatementServiceTestSuite) TestTransferInvalidAmount() {
	sender := s.createUser()
	recipient := s.createUser()

	for _, amount := range []string{"0", "-5"} {
		_, err := s.statementSvs.Transfer(s.T().Context(), TransferArgs{
			SenderID:    sender.ID,
			RecipientID: recipient.ID,
			Amount:      decimal.RequireFromString(amount),
		})
		s.Require().ErrorIs(err, domain.ErrInvalidAmount)
	}
}
