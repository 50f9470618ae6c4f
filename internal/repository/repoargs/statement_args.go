package repoargs

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/groph-finapi/internal/domain"
)

type StatementCreate struct {
	UserID      uuid.UUID
	SenderID    *uuid.UUID
	Amount      decimal.Decimal
	Description string
	Type        domain.OperationType
}

// BalanceAggregation суммы по направлениям операций юзера.
// CreditAmount - поступления (deposit, transfer_received),
// DebitAmount - списания (withdraw, transfer_sent).
type BalanceAggregation struct {
	CreditAmount decimal.Decimal
	DebitAmount  decimal.Decimal
}

// Balance возвращает итоговый баланс: поступления минус списания.
func (b BalanceAggregation) Balance() decimal.Decimal {
	return b.CreditAmount.Sub(b.DebitAmount)
}
