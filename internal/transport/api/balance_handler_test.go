package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/groph-finapi/internal/domain"
	"github.com/fsdevblog/groph-finapi/internal/logger"
	"github.com/fsdevblog/groph-finapi/internal/service"
	"github.com/fsdevblog/groph-finapi/internal/service/tokens"
	"github.com/fsdevblog/groph-finapi/internal/transport/api/mocks"
	"github.com/fsdevblog/groph-finapi/internal/transport/api/testutils"
	"github.com/gin-gonic/gin"
)

type BalanceHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockBalanceService *mocks.MockBalanceServicer
	jwtSecret          []byte
}

func TestBalanceHandlerSuite(t *testing.T) {
	suite.Run(t, new(BalanceHandlerTestSuite))
}

func (s *BalanceHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())

	s.mockBalanceService = mocks.NewMockBalanceServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")

	s.router = New(RouterArgs{
		Logger:         logger.New(os.Stdout),
		BalanceService: s.mockBalanceService,
		JWTSecretKey:   s.jwtSecret,
	})
}

func (s *BalanceHandlerTestSuite) TestIndex() {
	userID := uuid.New()
	jwtToken, tokenErr := tokens.GenerateUserJWT(userID, time.Hour, s.jwtSecret)
	s.Require().NoError(tokenErr)

	statements := []domain.Statement{
		{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UserID:    userID,
			Amount:    decimal.RequireFromString("500"),
			Type:      domain.OperationDeposit,
		}, {
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UserID:    userID,
			Amount:    decimal.RequireFromString("150.25"),
			Type:      domain.OperationWithdraw,
		},
	}

	s.mockBalanceService.EXPECT().
		GetUserBalance(gomock.Any(), userID).
		Return(&service.UserBalance{
			Balance:    decimal.RequireFromString("349.75"),
			Statements: statements,
		}, nil).Times(1)

	cases := []struct {
		name       string
		jwtToken   string
		wantStatus int
	}{
		{name: "all ok", jwtToken: jwtToken, wantStatus: http.StatusOK},
		{name: "not authorized", wantStatus: http.StatusUnauthorized},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			var reqOpts []func(*testutils.RequestOptions)
			if t.jwtToken != "" {
				reqOpts = append(reqOpts, testutils.WithHeader("Authorization", fmt.Sprintf("Bearer %s", t.jwtToken)))
			}

			res := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodGet,
				URL:    RouteGroup + BalanceRoute,
			}, reqOpts...)
			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()

			s.Require().Equal(t.wantStatus, res.StatusCode)

			if t.wantStatus != http.StatusOK {
				return
			}
			var body BalanceResponse
			s.Require().NoError(json.NewDecoder(res.Body).Decode(&body))
			s.InEpsilon(349.75, body.Balance, 0.0001)
			s.Require().Len(body.Statements, 2)
			s.Equal(domain.OperationDeposit, body.Statements[0].Type)
			s.Equal(domain.OperationWithdraw, body.Statements[1].Type)
		})
	}
}
