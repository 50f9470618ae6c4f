package domain

type OperationType string

const (
	OperationDeposit          OperationType = "deposit"
	OperationWithdraw         OperationType = "withdraw"
	OperationTransferSent     OperationType = "transfer_sent"
	OperationTransferReceived OperationType = "transfer_received"
)
