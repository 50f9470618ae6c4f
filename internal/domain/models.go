package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type User struct {
	ID                uuid.UUID
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Name              string
	Email             string
	EncryptedPassword string
}

// Statement неизменяемая запись журнала операций. Записи только добавляются,
// обновления и удаления в бизнес-логике не существует.
type Statement struct {
	ID          uuid.UUID
	CreatedAt   time.Time
	UserID      uuid.UUID
	SenderID    *uuid.UUID
	Amount      decimal.Decimal
	Description string
	Type        OperationType
}

// IsCredit сообщает, увеличивает ли операция баланс юзера.
func (s *Statement) IsCredit() bool {
	return s.Type == OperationDeposit || s.Type == OperationTransferReceived
}
