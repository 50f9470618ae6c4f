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

type BalanceServiceTestSuite struct {
	suite.Suite
	store          *memrepo.Store
	balanceSvs     *BalanceService
	statementSvs   *StatementService
	userRepository *memrepo.UserRepository
}

func TestBalanceServiceSuite(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}

func (s *BalanceServiceTestSuite) SetupTest() {
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

	balanceSvs, balanceErr := NewBalanceService(unitOfWork)
	s.Require().NoError(balanceErr)
	s.balanceSvs = balanceSvs

	statementSvs, stmtErr := NewStatementService(unitOfWork)
	s.Require().NoError(stmtErr)
	s.statementSvs = statementSvs

	s.userRepository = memrepo.NewUserRepository(s.store)
}

func (s *BalanceServiceTestSuite) createUser() *domain.User {
	user, err := s.userRepository.CreateUser(s.T().Context(), repoargs.CreateUser{
		Name:     gofakeit.Name(),
		Email:    gofakeit.Email(),
		Password: "hashed",
	})
	s.Require().NoError(err)
	return user
}

func (s *BalanceServiceTestSuite) TestGetUserBalanceEmpty() {
	user := s.createUser()

	result, err := s.balanceSvs.GetUserBalance(s.T().Context(), user.ID)
	s.Require().NoError(err)
	s.True(result.Balance.IsZero())
	s.Empty(result.Statements)
}

func (s *BalanceServiceTestSuite) TestGetUserBalanceUnknownUser() {
	result, err := s.balanceSvs.GetUserBalance(s.T().Context(), uuid.New())
	s.Require().ErrorIs(err, domain.ErrUserNotFound)
	s.Nil(result)
}

// Суммы хранятся как decimal, поэтому 0.1+0.1+0.1-0.3 дает ровно ноль,
// без двоичной погрешности float.
func (s *BalanceServiceTestSuite) TestGetUserBalanceDecimalExact() {
	user := s.createUser()

	for range 3 {
		_, err := s.statementSvs.CreateStatement(s.T().Context(), CreateStatementArgs{
			UserID: user.ID,
			Amount: decimal.RequireFromString("0.1"),
			Type:   domain.OperationDeposit,
		})
		s.Require().NoError(err)
	}
	_, err := s.statementSvs.CreateStatement(s.T().Context(), CreateStatementArgs{
		UserID: user.ID,
		Amount: decimal.RequireFromString("0.3"),
		Type:   domain.OperationWithdraw,
	})
	s.Require().NoError(err)

	result, balanceErr := s.balanceSvs.GetUserBalance(s.T().Context(), user.ID)
	s.Require().NoError(balanceErr)
	s.True(result.Balance.IsZero())
	s.Len(result.Statements, 4)
}

func (s *BalanceServiceTestSuite) TestGetStatement() {
	owner := s.createUser()
	stranger := s.createUser()

	statement, createErr := s.statementSvs.CreateStatement(s.T().Context(), CreateStatementArgs{
		UserID:      owner.ID,
		Amount:      decimal.RequireFromString("42"),
		Description: "salary",
		Type:        domain.OperationDeposit,
	})
	s.Require().NoError(createErr)

	cases := []struct {
		name        string
		userID      uuid.UUID
		statementID uuid.UUID
		wantErr     error
	}{
		{name: "owner sees own statement", userID: owner.ID, statementID: statement.ID},
		// Чужая запись неотличима от несуществующей.
		{name: "foreign statement", userID: stranger.ID, statementID: statement.ID, wantErr: domain.ErrStatementNotFound},
		{name: "unknown statement", userID: owner.ID, statementID: uuid.New(), wantErr: domain.ErrStatementNotFound},
		{name: "unknown user", userID: uuid.New(), statementID: statement.ID, wantErr: domain.ErrUserNotFound},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			found, err := s.balanceSvs.GetStatement(s.T().Context(), t.userID, t.statementID)

			if t.wantErr != nil {
				s.Require().ErrorIs(err, t.wantErr)
				s.Nil(found)
				return
			}
			s.Require().NoError(err)
			s.Equal(statement.ID, found.ID)
			s.Equal("salary", found.Description)
		})
	}
}
