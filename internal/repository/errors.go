package repository

import (
	"errors"
	"fmt"

	domainRepo "docconnect/internal/domain/repository"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation       = "23505"
	pgInsufficientPrivilege = "42501"
)

// translate maps PostgreSQL error codes onto the store-neutral sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %w", domainRepo.ErrDuplicate, err)
		case pgInsufficientPrivilege:
			return fmt.Errorf("%w: %w", domainRepo.ErrPermissionDenied, err)
		}
	}
	return err
}
