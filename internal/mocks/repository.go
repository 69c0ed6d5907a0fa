package mocks

import (
	"context"

	"docconnect/internal/domain/entity"
	"docconnect/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Transactor runs fn inline; Err makes every transaction fail before fn runs.
type Transactor struct {
	Calls int
	Err   error
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	if t.Err != nil {
		return t.Err
	}
	return fn(ctx)
}

type IdentityRepository struct {
	mock.Mock
}

func (m *IdentityRepository) Create(ctx context.Context, identity *entity.Identity) error {
	args := m.Called(ctx, identity)
	return args.Error(0)
}

func (m *IdentityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Identity, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*entity.Identity), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *IdentityRepository) FindByEmail(ctx context.Context, email string) (*entity.Identity, error) {
	args := m.Called(ctx, email)
	if v := args.Get(0); v != nil {
		return v.(*entity.Identity), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *IdentityRepository) FindByProviderSubject(ctx context.Context, method entity.SignInMethod, subject string) (*entity.Identity, error) {
	args := m.Called(ctx, method, subject)
	if v := args.Get(0); v != nil {
		return v.(*entity.Identity), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *IdentityRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type UserProfileRepository struct {
	mock.Mock
}

func (m *UserProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.UserProfile, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*entity.UserProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserProfileRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.UserProfile, error) {
	args := m.Called(ctx, ids)
	if v := args.Get(0); v != nil {
		return v.([]entity.UserProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserProfileRepository) FindByRole(ctx context.Context, role entity.Role, status entity.VerificationStatus) ([]entity.UserProfile, error) {
	args := m.Called(ctx, role, status)
	if v := args.Get(0); v != nil {
		return v.([]entity.UserProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserProfileRepository) Merge(ctx context.Context, id uuid.UUID, fields repository.Fields) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

type DoctorProfileRepository struct {
	mock.Mock
}

func (m *DoctorProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.(*entity.DoctorProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DoctorProfileRepository) FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]entity.DoctorProfile, error) {
	args := m.Called(ctx, userIDs)
	if v := args.Get(0); v != nil {
		return v.([]entity.DoctorProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DoctorProfileRepository) Merge(ctx context.Context, userID uuid.UUID, fields repository.Fields) error {
	args := m.Called(ctx, userID, fields)
	return args.Error(0)
}

type AuditLogRepository struct {
	mock.Mock
}

func (m *AuditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditLogRepository) FindAll(ctx context.Context, action string, limit, offset int) ([]entity.AuditLog, int64, error) {
	args := m.Called(ctx, action, limit, offset)
	if v := args.Get(0); v != nil {
		return v.([]entity.AuditLog), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

type AppointmentRepository struct {
	mock.Mock
}

func (m *AppointmentRepository) FindAll(ctx context.Context) ([]entity.Appointment, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]entity.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AppointmentRepository) FindByID(ctx context.Context, id string) (*entity.Appointment, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*entity.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AppointmentRepository) FindByDoctorID(ctx context.Context, doctorID string) ([]entity.Appointment, error) {
	args := m.Called(ctx, doctorID)
	if v := args.Get(0); v != nil {
		return v.([]entity.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AppointmentRepository) FindByPatientID(ctx context.Context, patientID string) ([]entity.Appointment, error) {
	args := m.Called(ctx, patientID)
	if v := args.Get(0); v != nil {
		return v.([]entity.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}
