package pgrepo

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fsdevblog/groph-finapi/internal/domain"
)

const (
	uniqueViolationCode = "23505"
)

// convertErr приводит ошибку pgx к доменному виду:
//   - pgx.ErrNoRows -> domain.ErrRecordNotFound;
//   - нарушение уникального индекса -> domain.ErrDuplicateKey;
//   - все остальное -> domain.ErrUnknown с оригинальным сообщением.
func convertErr(err error, format string, formatArgs ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, formatArgs...)

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("[repository/%s] %w", msg, domain.ErrRecordNotFound)
	}

	errType := domain.ErrUnknown
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		errType = domain.ErrDuplicateKey
	}

	return fmt.Errorf("[repository/%s] %w: %s", msg, errType, err.Error())
}
