package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"docconnect/internal/domain/entity"
	domainRepo "docconnect/internal/domain/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestUserProfileRepository_FindByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserProfileRepository(db)
	id := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "role", "first_name", "last_name", "username", "email", "verification_status", "created_at", "updated_at"}).
		AddRow(id.String(), "doctor", "Emily", "Carter", "", "emily@example.com", "pending", time.Now(), time.Now())
	mock.ExpectQuery(`SELECT \* FROM "user_profiles" WHERE id = \$1`).WillReturnRows(rows)

	profile, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, entity.RoleDoctor, profile.Role)
	assert.Equal(t, entity.VerificationPending, profile.VerificationStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserProfileRepository_FindByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserProfileRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "user_profiles"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	profile, err := repo.FindByID(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, profile)
}

func TestUserProfileRepository_FindByID_Error(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserProfileRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "user_profiles"`).WillReturnError(errors.New("permission denied"))

	profile, err := repo.FindByID(context.Background(), uuid.New())
	assert.Error(t, err)
	assert.Nil(t, profile)
}

func TestUserProfileRepository_Merge(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserProfileRepository(db)

	mock.ExpectExec(`INSERT INTO "user_profiles" .* ON CONFLICT \("id"\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Merge(context.Background(), uuid.New(), domainRepo.Fields{
		entity.FieldRole:      entity.RolePatient,
		entity.FieldFirstName: "John",
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserProfileRepository_MergeNothing(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserProfileRepository(db)

	assert.NoError(t, repo.Merge(context.Background(), uuid.New(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoctorProfileRepository_FindByUserID_MigratesLegacyNPI(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDoctorProfileRepository(db)
	id := uuid.New()

	rows := sqlmock.NewRows([]string{"user_id", "full_name", "medical_council_id", "npi_number", "manual_verification_required", "consultation_fee"}).
		AddRow(id.String(), "Dr. Marcus Reed", "", "1234567890", false, "0")
	mock.ExpectQuery(`SELECT \* FROM "doctor_profiles" WHERE user_id = \$1`).WillReturnRows(rows)

	profile, err := repo.FindByUserID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "1234567890", profile.MedicalCouncilID)
	assert.True(t, profile.HasSubmittedCredentials())
}

// jsonArg matches a bound JSON column value.
type jsonArg string

func (a jsonArg) Match(v driver.Value) bool {
	switch b := v.(type) {
	case []byte:
		return string(b) == string(a)
	case string:
		return b == string(a)
	}
	return false
}

func TestDoctorProfileRepository_MergeEmptyAvailability(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDoctorProfileRepository(db)

	mock.ExpectExec(`INSERT INTO "doctor_profiles" .* ON CONFLICT \("user_id"\) DO UPDATE SET`).
		WithArgs(jsonArg("{}"), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Merge(context.Background(), uuid.New(), domainRepo.Fields{
		entity.FieldAvailability: entity.Availability{},
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactor_CommitsBatch(t *testing.T) {
	db, mock := setupMockDB(t)
	users := NewUserProfileRepository(db)
	doctors := NewDoctorProfileRepository(db)
	tx := NewTransactor(db)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "user_profiles"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "doctor_profiles"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		if err := users.Merge(ctx, id, domainRepo.Fields{entity.FieldVerificationStatus: entity.VerificationPending}); err != nil {
			return err
		}
		return doctors.Merge(ctx, id, domainRepo.Fields{entity.FieldMedicalCouncilID: "MC-1"})
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	db, mock := setupMockDB(t)
	users := NewUserProfileRepository(db)
	doctors := NewDoctorProfileRepository(db)
	tx := NewTransactor(db)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "user_profiles"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "doctor_profiles"`).WillReturnError(errors.New("insufficient privilege"))
	mock.ExpectRollback()

	err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		if err := users.Merge(ctx, id, domainRepo.Fields{entity.FieldRole: entity.RoleDoctor}); err != nil {
			return err
		}
		return doctors.Merge(ctx, id, domainRepo.Fields{entity.FieldMedicalCouncilID: "MC-1"})
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdentityRepository_MarkEmailVerified(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewIdentityRepository(db)

	mock.ExpectExec(`UPDATE "identities" SET "email_verified"=\$1`).WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkEmailVerified(context.Background(), uuid.New()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
