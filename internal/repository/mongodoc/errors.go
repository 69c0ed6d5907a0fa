package mongodoc

import (
	"errors"
	"fmt"

	domainRepo "docconnect/internal/domain/repository"

	"go.mongodb.org/mongo-driver/mongo"
)

const mongoUnauthorized = 13

func translate(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %w", domainRepo.ErrDuplicate, err)
	}
	if hasErrorCode(err, mongoUnauthorized) {
		return fmt.Errorf("%w: %w", domainRepo.ErrPermissionDenied, err)
	}
	return err
}

func hasErrorCode(err error, code int) bool {
	var se mongo.ServerError
	if errors.As(err, &se) {
		return se.HasErrorCode(code)
	}
	return false
}
