package pgrepo

import (
	"context"

	"github.com/google/uuid"

	"github.com/fsdevblog/groph-finapi/internal/domain"
	"github.com/fsdevblog/groph-finapi/internal/repository/repoargs"
	"github.com/fsdevblog/groph-finapi/pkg/uow"
)

type UserRepository struct {
	db uow.DBTX
}

func NewUserRepository(db uow.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const createUserSQL = `
INSERT INTO users (name, email, encrypted_password)
VALUES ($1, $2, $3)
RETURNING id, created_at, updated_at, name, email, encrypted_password`

// CreateUser создает юзера. При конфликте email возвращает domain.ErrDuplicateKey,
// во всех остальных случаях - domain.ErrUnknown.
func (u *UserRepository) CreateUser(ctx context.Context, user repoargs.CreateUser) (*domain.User, error) {
	row := u.db.QueryRow(ctx, createUserSQL, user.Name, user.Email, user.Password)
	created, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "creating user")
	}
	return created, nil
}

const findUserByEmailSQL = `
SELECT id, created_at, updated_at, name, email, encrypted_password
FROM users
WHERE email = $1`

// FindUserByEmail ищет юзера по точному совпадению email (регистрозависимо).
// Возвращает domain.ErrRecordNotFound если запись не найдена.
func (u *UserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := u.db.QueryRow(ctx, findUserByEmailSQL, email)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by email %s", email)
	}
	return user, nil
}

const findUserByIDSQL = `
SELECT id, created_at, updated_at, name, email, encrypted_password
FROM users
WHERE id = $1`

// FindUserByID возвращает domain.ErrRecordNotFound если запись не найдена.
func (u *UserRepository) FindUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := u.db.QueryRow(ctx, findUserByIDSQL, id)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by id %s", id)
	}
	return user, nil
}

const findUserByIDForUpdateSQL = findUserByIDSQL + `
FOR UPDATE`

// FindUserByIDForUpdate то же что FindUserByID, но блокирует строку юзера до конца
// транзакции. Сериализует конкурентные списания по одному юзеру.
func (u *UserRepository) FindUserByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := u.db.QueryRow(ctx, findUserByIDForUpdateSQL, id)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "locking user by id %s", id)
	}
	return user, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Name,
		&user.Email,
		&user.EncryptedPassword,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &user, nil
}
