package usecase

import (
	"context"
	"errors"

	"docconnect/internal/domain/repository"
	"docconnect/internal/infrastructure/reporting"
)

var (
	// ErrPermissionDenied is returned when the document store refuses a write.
	ErrPermissionDenied = errors.New("permission denied")
	ErrProfileNotFound  = errors.New("profile not found")
	ErrDoctorNotFound   = errors.New("doctor not found")
	ErrInvalidDate      = errors.New("invalid date format, use YYYY-MM-DD")
	ErrDateInPast       = errors.New("date must not be in the past")
)

const dateLayout = "2006-01-02"

const (
	userProfilePath   = "user_profiles/"
	doctorProfilePath = "doctor_profiles/"
)

// writeError reports a refused document write and maps it to ErrPermissionDenied.
// Other errors pass through unchanged.
func writeError(ctx context.Context, reporter reporting.Reporter, path string, data repository.Fields, err error) error {
	if !errors.Is(err, repository.ErrPermissionDenied) {
		return err
	}
	reporter.ReportPermissionError(ctx, &reporting.PermissionError{
		Operation:           "write",
		Path:                path,
		RequestResourceData: data,
		Err:                 err,
	})
	return ErrPermissionDenied
}
