package usecase

import (
	"context"
	"errors"
	"strings"

	"docconnect/internal/converter"
	"docconnect/internal/delivery/dto"
	"docconnect/internal/domain/entity"
	"docconnect/internal/domain/onboarding"
	"docconnect/internal/domain/repository"
	"docconnect/internal/infrastructure/reporting"
	"docconnect/internal/infrastructure/storage"
	"docconnect/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrLicenseFileRequired    = errors.New("license document is required")
	ErrLicenseFileTooLarge    = errors.New("license document is too large")
	ErrUnsupportedLicenseType = errors.New("license document must be a PDF, JPEG or PNG")
	ErrCredentialsLocked      = errors.New("credentials can no longer be changed")
)

var allowedLicenseTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

// LicenseUploader accepts license documents for background storage.
type LicenseUploader interface {
	Enqueue(job service.LicenseUploadJob) error
}

type CredentialUsecase interface {
	// Submit records the credentials, turning the user into a pending doctor,
	// and hands the license file to the background uploader.
	Submit(ctx context.Context, userID uuid.UUID, req *dto.SubmitCredentialsRequest, file *dto.LicenseFile) (*dto.CredentialStatusResponse, error)
	Status(ctx context.Context, userID uuid.UUID) (*dto.CredentialStatusResponse, error)
}

type credentialUsecase struct {
	log          *logrus.Logger
	transactor   repository.Transactor
	userRepo     repository.UserProfileRepository
	doctorRepo   repository.DoctorProfileRepository
	uploader     LicenseUploader
	auditService service.AuditService
	reporter     reporting.Reporter
	maxFileBytes int64
}

func NewCredentialUsecase(
	log *logrus.Logger,
	transactor repository.Transactor,
	userRepo repository.UserProfileRepository,
	doctorRepo repository.DoctorProfileRepository,
	uploader LicenseUploader,
	auditService service.AuditService,
	reporter reporting.Reporter,
	maxFileBytes int64,
) CredentialUsecase {
	return &credentialUsecase{
		log:          log,
		transactor:   transactor,
		userRepo:     userRepo,
		doctorRepo:   doctorRepo,
		uploader:     uploader,
		auditService: auditService,
		reporter:     reporter,
		maxFileBytes: maxFileBytes,
	}
}

func (u *credentialUsecase) Submit(ctx context.Context, userID uuid.UUID, req *dto.SubmitCredentialsRequest, file *dto.LicenseFile) (*dto.CredentialStatusResponse, error) {
	if err := u.checkFile(file); err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find profile by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrProfileNotFound
	}
	if user.IsAdmin() || (user.IsDoctor() && user.VerificationStatus != "" && user.VerificationStatus != entity.VerificationPending) {
		return nil, ErrCredentialsLocked
	}

	objectName := storage.LicenseObjectName(userID, file.Filename)

	userFields := repository.Fields{
		entity.FieldRole:               entity.RoleDoctor,
		entity.FieldVerificationStatus: entity.VerificationPending,
	}
	doctorFields := repository.Fields{
		entity.FieldFullName:                   strings.TrimSpace(req.FullName),
		entity.FieldStateOfRegistration:        strings.TrimSpace(req.StateOfRegistration),
		entity.FieldMedicalCouncilID:           strings.TrimSpace(req.MedicalCouncilID),
		entity.FieldLicenseDocument:            objectName,
		entity.FieldLicenseUploadStatus:        entity.LicenseUploadPending,
		entity.FieldManualVerificationRequired: false,
	}

	// Both documents change together so the next resolve sees the doctor under review.
	err = u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.userRepo.Merge(ctx, userID, userFields); err != nil {
			return writeError(ctx, u.reporter, userProfilePath+userID.String(), userFields, err)
		}
		if err := u.doctorRepo.Merge(ctx, userID, doctorFields); err != nil {
			return writeError(ctx, u.reporter, doctorProfilePath+userID.String(), doctorFields, err)
		}
		return u.auditService.LogEvent(ctx, &userID, entity.AuditActionCredentialsSubmit, entity.JSON{
			"medical_council_id":    doctorFields[entity.FieldMedicalCouncilID],
			"state_of_registration": doctorFields[entity.FieldStateOfRegistration],
			"license_document":      objectName,
		})
	})
	if err != nil {
		if !errors.Is(err, ErrPermissionDenied) {
			u.log.Warnf("Failed to submit credentials: %+v", err)
		}
		return nil, err
	}

	u.enqueueUpload(ctx, userID, objectName, file)

	return u.Status(ctx, userID)
}

func (u *credentialUsecase) Status(ctx context.Context, userID uuid.UUID) (*dto.CredentialStatusResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find profile by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrProfileNotFound
	}

	doctor, err := u.doctorRepo.FindByUserID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile by ID: %+v", err)
		return nil, err
	}

	return &dto.CredentialStatusResponse{
		VerificationStatus: string(user.VerificationStatus),
		Stage:              string(onboarding.Classify(user, doctor)),
		Submitted:          doctor.HasSubmittedCredentials(),
		Doctor:             converter.DoctorProfileToResponse(doctor),
	}, nil
}

func (u *credentialUsecase) checkFile(file *dto.LicenseFile) error {
	if file == nil || len(file.Data) == 0 || strings.TrimSpace(file.Filename) == "" {
		return ErrLicenseFileRequired
	}
	if u.maxFileBytes > 0 && int64(len(file.Data)) > u.maxFileBytes {
		return ErrLicenseFileTooLarge
	}
	contentType := strings.ToLower(strings.TrimSpace(strings.Split(file.ContentType, ";")[0]))
	if !allowedLicenseTypes[contentType] {
		return ErrUnsupportedLicenseType
	}
	return nil
}

// enqueueUpload never fails the submission. A job that cannot be queued is
// marked failed so the status endpoint shows it.
func (u *credentialUsecase) enqueueUpload(ctx context.Context, userID uuid.UUID, objectName string, file *dto.LicenseFile) {
	err := u.uploader.Enqueue(service.LicenseUploadJob{
		UserID:      userID,
		ObjectName:  objectName,
		ContentType: file.ContentType,
		Data:        file.Data,
	})
	if err == nil {
		return
	}

	u.log.Warnf("Failed to enqueue license upload for %s: %+v", userID, err)
	u.reporter.ReportError(ctx, err, map[string]string{
		"component": "license_upload",
		"user_id":   userID.String(),
	})

	fields := repository.Fields{entity.FieldLicenseUploadStatus: entity.LicenseUploadFailed}
	if err := u.doctorRepo.Merge(ctx, userID, fields); err != nil {
		u.log.Warnf("Failed to mark license upload failed: %+v", writeError(ctx, u.reporter, doctorProfilePath+userID.String(), fields, err))
	}
}
