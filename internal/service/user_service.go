package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fsdevblog/groph-finapi/internal/domain"
	"github.com/fsdevblog/groph-finapi/internal/repository/repoargs"
	"github.com/fsdevblog/groph-finapi/internal/service/tokens"
	"github.com/fsdevblog/groph-finapi/pkg/uow"
)

const JWTTokenExpire = 24 * time.Hour

type UserService struct {
	uow            uow.UOW
	userRepo       UserRepository
	psswd          PasswordHasher
	jwtTokenSecret []byte
}

func NewUserService(u uow.UOW, jwtTokenSecret []byte, psswd PasswordHasher) (*UserService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr
	}
	return &UserService{
		uow:            u,
		userRepo:       userRepo,
		psswd:          psswd,
		jwtTokenSecret: jwtTokenSecret,
	}, nil
}

type RegisterUserArgs struct {
	Name     string
	Email    string
	Password string
}

// Register создает юзера и сразу аутентифицирует его. Возвращает созданного юзера,
// jwt токен и ошибку. При занятом email вернется ошибка domain.ErrDuplicateKey.
func (s *UserService) Register(ctx context.Context, args RegisterUserArgs) (*domain.User, string, error) {
	password, hashErr := s.psswd.HashPassword(args.Password)
	if hashErr != nil {
		return nil, "", fmt.Errorf("registering user: %s", hashErr.Error())
	}

	var user *domain.User
	var token string
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}
		var userErr error
		user, userErr = userRepo.CreateUser(c, repoargs.CreateUser{
			Name:     args.Name,
			Email:    args.Email,
			Password: password,
		})
		if userErr != nil {
			return userErr //nolint:wrapcheck
		}

		var tokenErr error
		token, tokenErr = tokens.GenerateUserJWT(user.ID, JWTTokenExpire, s.jwtTokenSecret)
		return tokenErr //nolint:wrapcheck
	})

	if txErr != nil {
		return nil, "", fmt.Errorf("registering user: %w", txErr)
	}
	return user, token, nil
}

type LoginUserArgs struct {
	Email    string
	Password string
}

// Login аутентифицирует юзера по паре email/пароль и выпускает jwt токен.
// Неизвестный email и неверный пароль неразличимы для вызывающего: в обоих
// случаях возвращается domain.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, args LoginUserArgs) (*domain.User, string, error) {
	user, findErr := s.userRepo.FindUserByEmail(ctx, args.Email)
	if findErr != nil {
		if errors.Is(findErr, domain.ErrRecordNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("logging in: %w", findErr)
	}

	if !s.psswd.ComparePassword(args.Password, user.EncryptedPassword) {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, tokenErr := tokens.GenerateUserJWT(user.ID, JWTTokenExpire, s.jwtTokenSecret)
	if tokenErr != nil {
		return nil, "", fmt.Errorf("logging in: %s", tokenErr.Error())
	}
	return user, token, nil
}

// GetProfile возвращает юзера по id или domain.ErrUserNotFound.
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("getting profile: %w", err)
	}
	return user, nil
}
