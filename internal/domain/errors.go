package domain

import "errors"

// Ошибки слоя репозитория.
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrUnknown        = errors.New("unknown error")
)

// Бизнес-ошибки. Детерминированные исходы операций, транспортный слой
// мапит их в http статусы как есть.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrSenderNotFound     = errors.New("sender not found")
	ErrRecipientNotFound  = errors.New("recipient not found")
	ErrStatementNotFound  = errors.New("statement not found")
	ErrNotEnoughBalance   = errors.New("not enough balance")
	ErrInvalidAmount      = errors.New("amount must be positive")
)
