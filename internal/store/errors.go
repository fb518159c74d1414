package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/mcreview/mcreview-backend/internal/domain"
)

const pgUniqueViolation = "23505"

// mapDBError translates driver errors into the domain taxonomy so callers
// never branch on gorm or pgx types.
func mapDBError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Wrap(domain.CodeNotFound, op, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return domain.Wrap(domain.CodeConflict, op, err)
	}
	var domErr *domain.Error
	if errors.As(err, &domErr) {
		return err
	}
	return domain.Wrap(domain.CodeInternal, op, err)
}
