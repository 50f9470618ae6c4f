package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/groph-finapi/internal/domain"
	"github.com/fsdevblog/groph-finapi/internal/service"
)

type StatementsHandler struct {
	stmtSvs    StatementServicer
	balanceSvs BalanceServicer
}

func NewStatementsHandler(stmtSvs StatementServicer, balanceSvs BalanceServicer) *StatementsHandler {
	return &StatementsHandler{
		stmtSvs:    stmtSvs,
		balanceSvs: balanceSvs,
	}
}

type StatementParams struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `binding:"max=255" json:"description"`
}

type StatementResponse struct {
	ID          uuid.UUID            `json:"id"`
	UserID      uuid.UUID            `json:"user_id"`
	SenderID    *uuid.UUID           `json:"sender_id,omitempty"`
	Amount      float64              `json:"amount"`
	Description string               `json:"description"`
	Type        domain.OperationType `json:"type"`
	CreatedAt   time.Time            `json:"created_at"`
}

func newStatementResponse(statement *domain.Statement) StatementResponse {
	return StatementResponse{
		ID:          statement.ID,
		UserID:      statement.UserID,
		SenderID:    statement.SenderID,
		Amount:      statement.Amount.InexactFloat64(),
		Description: statement.Description,
		Type:        statement.Type,
		CreatedAt:   statement.CreatedAt,
	}
}

// Deposit POST RouteGroup + DepositRoute.
func (h *StatementsHandler) Deposit(c *gin.Context) {
	h.createStatement(c, domain.OperationDeposit)
}

// Withdraw POST RouteGroup + WithdrawRoute. При недостатке средств вернется 402.
func (h *StatementsHandler) Withdraw(c *gin.Context) {
	h.createStatement(c, domain.OperationWithdraw)
}

func (h *StatementsHandler) createStatement(c *gin.Context, opType domain.OperationType) {
	currentUserID := getUserIDFromContext(c)

	var params StatementParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	statement, err := h.stmtSvs.CreateStatement(ctx, service.CreateStatementArgs{
		UserID:      currentUserID,
		Amount:      params.Amount,
		Description: params.Description,
		Type:        opType,
	})
	if err != nil {
		h.abortWithBusinessErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, newStatementResponse(statement))
}

// Transfer POST RouteGroup + TransferRoute. Отправитель - текущий юзер,
// получатель - из параметра пути.
func (h *StatementsHandler) Transfer(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	recipientID, parseErr := uuid.Parse(c.Param("recipient_id"))
	if parseErr != nil {
		c.AbortWithStatus(http.StatusUnprocessableEntity)
		return
	}

	var params StatementParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	pair, err := h.stmtSvs.Transfer(ctx, service.TransferArgs{
		SenderID:    currentUserID,
		RecipientID: recipientID,
		Amount:      params.Amount,
		Description: params.Description,
	})
	if err != nil {
		h.abortWithBusinessErr(c, err)
		return
	}

	response := make([]StatementResponse, len(pair))
	for i := range pair {
		response[i] = newStatementResponse(&pair[i])
	}
	c.JSON(http.StatusCreated, response)
}

// Show GET RouteGroup + StatementRoute. Чужая операция неотличима от несуществующей: 404.
func (h *StatementsHandler) Show(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	statementID, parseErr := uuid.Parse(c.Param("statement_id"))
	if parseErr != nil {
		c.AbortWithStatus(http.StatusUnprocessableEntity)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	statement, err := h.balanceSvs.GetStatement(ctx, currentUserID, statementID)
	if err != nil {
		h.abortWithBusinessErr(c, err)
		return
	}

	c.JSON(http.StatusOK, newStatementResponse(statement))
}

func (h *StatementsHandler) abortWithBusinessErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotEnoughBalance):
		c.AbortWithStatus(http.StatusPaymentRequired)
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrSenderNotFound),
		errors.Is(err, domain.ErrRecipientNotFound),
		errors.Is(err, domain.ErrStatementNotFound):
		_ = c.AbortWithError(http.StatusNotFound, err).SetType(gin.ErrorTypePublic)
	default:
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
	}
}
