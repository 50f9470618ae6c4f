package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/groph-finapi/internal/domain"
)

type BalanceHandler struct {
	svs BalanceServicer
}

func NewBalanceHandler(svs BalanceServicer) *BalanceHandler {
	return &BalanceHandler{
		svs: svs,
	}
}

type BalanceResponse struct {
	Balance    float64             `json:"balance"`
	Statements []StatementResponse `json:"statements"`
}

// Index GET RouteGroup + BalanceRoute. Баланс и вся история операций текущего юзера.
func (b *BalanceHandler) Index(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	balance, err := b.svs.GetUserBalance(reqCtx, currentUserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = c.AbortWithError(http.StatusNotFound, err).SetType(gin.ErrorTypePublic)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	statements := make([]StatementResponse, len(balance.Statements))
	for i := range balance.Statements {
		statements[i] = newStatementResponse(&balance.Statements[i])
	}

	c.JSON(http.StatusOK, &BalanceResponse{
		Balance:    balance.Balance.InexactFloat64(),
		Statements: statements,
	})
}
