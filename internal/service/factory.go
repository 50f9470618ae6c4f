package service

import (
	"fmt"

	"github.com/fsdevblog/groph-finapi/pkg/uow"
)

type AppServices struct {
	UserService      *UserService
	StatementService *StatementService
	BalanceService   *BalanceService
}

func Factory(unitOfWork uow.UOW, jwtSecret []byte, psswd PasswordHasher) (*AppServices, error) {
	userService, userServiceErr := NewUserService(unitOfWork, jwtSecret, psswd)
	if userServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", userServiceErr.Error())
	}

	statementService, statementServiceErr := NewStatementService(unitOfWork)
	if statementServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", statementServiceErr.Error())
	}

	balanceService, balanceServiceErr := NewBalanceService(unitOfWork)
	if balanceServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", balanceServiceErr.Error())
	}

	return &AppServices{
		UserService:      userService,
		StatementService: statementService,
		BalanceService:   balanceService,
	}, nil
}
