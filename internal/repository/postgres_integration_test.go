//go:build integration

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"docconnect/config"
	"docconnect/internal/domain/entity"
	domainRepo "docconnect/internal/domain/repository"
	"docconnect/internal/infrastructure/database"
	"docconnect/internal/repository"
	"docconnect/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

func startPostgres(t *testing.T) *gorm.DB {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "docconnect",
				"POSTGRES_PASSWORD": "docconnect",
				"POSTGRES_DB":       "docconnect",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	db, err := database.NewPostgresConnection(config.DBConfig{
		Host:     host,
		Port:     port.Port(),
		User:     "docconnect",
		Password: "docconnect",
		Name:     "docconnect",
		TimeZone: "UTC",
	}, "test")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	require.NoError(t, database.RunMigrations(db, logger.Discard()))
	return db
}

func TestPostgresRepositories(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()

	identities := repository.NewIdentityRepository(db)
	users := repository.NewUserProfileRepository(db)
	doctors := repository.NewDoctorProfileRepository(db)
	auditLogs := repository.NewAuditLogRepository(db)
	transactor := repository.NewTransactor(db)

	t.Run("identity emails are unique", func(t *testing.T) {
		identity := &entity.Identity{ID: uuid.New(), Email: "emily@example.com", SignInMethod: entity.SignInMethodPassword}
		require.NoError(t, identities.Create(ctx, identity))

		found, err := identities.FindByEmail(ctx, "emily@example.com")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, identity.ID, found.ID)
		assert.False(t, found.EmailVerified)

		require.NoError(t, identities.MarkEmailVerified(ctx, identity.ID))
		found, err = identities.FindByID(ctx, identity.ID)
		require.NoError(t, err)
		assert.True(t, found.EmailVerified)

		err = identities.Create(ctx, &entity.Identity{ID: uuid.New(), Email: "emily@example.com", SignInMethod: entity.SignInMethodGoogle})
		assert.ErrorIs(t, err, domainRepo.ErrDuplicate)

		missing, err := identities.FindByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("merge keeps unnamed fields", func(t *testing.T) {
		id := uuid.New()
		require.NoError(t, users.Merge(ctx, id, domainRepo.Fields{
			entity.FieldEmail: "arjun@example.com",
			entity.FieldRole:  string(entity.RoleDoctor),
		}))
		require.NoError(t, users.Merge(ctx, id, domainRepo.Fields{
			entity.FieldFirstName: "Arjun",
			entity.FieldLastName:  "Rao",
		}))

		profile, err := users.FindByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, profile)
		assert.Equal(t, entity.RoleDoctor, profile.Role)
		assert.Equal(t, "arjun@example.com", profile.Email)
		assert.Equal(t, "Arjun", profile.FirstName)
	})

	t.Run("transaction rolls back both documents", func(t *testing.T) {
		id := uuid.New()
		err := transactor.WithinTransaction(ctx, func(ctx context.Context) error {
			if err := users.Merge(ctx, id, domainRepo.Fields{entity.FieldRole: string(entity.RoleDoctor)}); err != nil {
				return err
			}
			if err := doctors.Merge(ctx, id, domainRepo.Fields{entity.FieldMedicalCouncilID: "MCI-1001"}); err != nil {
				return err
			}
			return errors.New("abort")
		})
		require.Error(t, err)

		profile, err := users.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, profile)
		doctor, err := doctors.FindByUserID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, doctor)
	})

	t.Run("audit logs filter by action", func(t *testing.T) {
		actor := uuid.New()
		require.NoError(t, auditLogs.Create(ctx, &entity.AuditLog{UserID: &actor, Action: "doctor_review", Metadata: entity.JSON{"status": "approved"}}))
		require.NoError(t, auditLogs.Create(ctx, &entity.AuditLog{UserID: &actor, Action: "credential_submit"}))

		logs, total, err := auditLogs.FindAll(ctx, "doctor_review", 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, logs, 1)
		assert.Equal(t, "doctor_review", logs[0].Action)
	})
}
