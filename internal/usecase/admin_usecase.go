package usecase

import (
	"context"
	"errors"

	"docconnect/internal/converter"
	"docconnect/internal/delivery/dto"
	"docconnect/internal/domain/entity"
	"docconnect/internal/domain/onboarding"
	"docconnect/internal/domain/repository"
	"docconnect/internal/infrastructure/reporting"
	"docconnect/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrEmptyReview   = errors.New("review must change manual_verification_required or verification_status")
	ErrInvalidStatus = errors.New("status must be pending, verified or rejected")

	// ErrCredentialsMissing rejects a manual-review change for a doctor who has not submitted credentials.
	ErrCredentialsMissing = errors.New("doctor has not submitted credentials")
)

// AdminUsecase is the review side of doctor verification.
type AdminUsecase interface {
	ListDoctors(ctx context.Context, status string) (*dto.AdminDoctorListResponse, error)
	ReviewDoctor(ctx context.Context, adminID, doctorID uuid.UUID, req *dto.ReviewDoctorRequest) (*dto.AdminDoctorResponse, error)
}

type adminUsecase struct {
	log          *logrus.Logger
	transactor   repository.Transactor
	userRepo     repository.UserProfileRepository
	doctorRepo   repository.DoctorProfileRepository
	auditService service.AuditService
	reporter     reporting.Reporter
}

func NewAdminUsecase(
	log *logrus.Logger,
	transactor repository.Transactor,
	userRepo repository.UserProfileRepository,
	doctorRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
	reporter reporting.Reporter,
) AdminUsecase {
	return &adminUsecase{
		log:          log,
		transactor:   transactor,
		userRepo:     userRepo,
		doctorRepo:   doctorRepo,
		auditService: auditService,
		reporter:     reporter,
	}
}

func (u *adminUsecase) ListDoctors(ctx context.Context, status string) (*dto.AdminDoctorListResponse, error) {
	verification := entity.VerificationStatus(status)
	switch verification {
	case "", entity.VerificationPending, entity.VerificationVerified, entity.VerificationRejected:
	default:
		return nil, ErrInvalidStatus
	}

	users, err := u.userRepo.FindByRole(ctx, entity.RoleDoctor, verification)
	if err != nil {
		u.log.Warnf("Failed to find doctors by status: %+v", err)
		return nil, err
	}

	ids := make([]uuid.UUID, len(users))
	for i := range users {
		ids[i] = users[i].ID
	}
	var profiles []entity.DoctorProfile
	if len(ids) > 0 {
		profiles, err = u.doctorRepo.FindByUserIDs(ctx, ids)
		if err != nil {
			u.log.Warnf("Failed to find doctor profiles: %+v", err)
			return nil, err
		}
	}
	byUser := make(map[uuid.UUID]*entity.DoctorProfile, len(profiles))
	for i := range profiles {
		byUser[profiles[i].UserID] = &profiles[i]
	}

	doctors := make([]dto.AdminDoctorResponse, len(users))
	for i := range users {
		doctors[i] = adminDoctorResponse(&users[i], byUser[users[i].ID])
	}
	return &dto.AdminDoctorListResponse{Doctors: doctors, Total: len(doctors)}, nil
}

func (u *adminUsecase) ReviewDoctor(ctx context.Context, adminID, doctorID uuid.UUID, req *dto.ReviewDoctorRequest) (*dto.AdminDoctorResponse, error) {
	if req.ManualVerificationRequired == nil && req.VerificationStatus == nil {
		return nil, ErrEmptyReview
	}

	user, err := u.userRepo.FindByID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find profile by ID: %+v", err)
		return nil, err
	}
	if !user.IsDoctor() {
		return nil, ErrDoctorNotFound
	}
	doctor, err := u.doctorRepo.FindByUserID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile by ID: %+v", err)
		return nil, err
	}
	if req.ManualVerificationRequired != nil && !doctor.HasSubmittedCredentials() {
		return nil, ErrCredentialsMissing
	}

	oldValue := entity.JSON{
		entity.FieldVerificationStatus:         user.VerificationStatus,
		entity.FieldManualVerificationRequired: doctor != nil && doctor.ManualVerificationRequired,
		"stage":                                onboarding.Classify(user, doctor),
	}

	userFields := repository.Fields{}
	if req.VerificationStatus != nil {
		userFields[entity.FieldVerificationStatus] = entity.VerificationStatus(*req.VerificationStatus)
	}
	doctorFields := repository.Fields{}
	if req.ManualVerificationRequired != nil {
		doctorFields[entity.FieldManualVerificationRequired] = *req.ManualVerificationRequired
	}

	err = u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if len(userFields) > 0 {
			if err := u.userRepo.Merge(ctx, doctorID, userFields); err != nil {
				return writeError(ctx, u.reporter, userProfilePath+doctorID.String(), userFields, err)
			}
		}
		if len(doctorFields) > 0 {
			if err := u.doctorRepo.Merge(ctx, doctorID, doctorFields); err != nil {
				return writeError(ctx, u.reporter, doctorProfilePath+doctorID.String(), doctorFields, err)
			}
		}
		newValue := entity.JSON{"note": req.Note}
		for k, v := range userFields {
			newValue[k] = v
		}
		for k, v := range doctorFields {
			newValue[k] = v
		}
		return u.auditService.LogUpdate(ctx, &adminID, entity.AuditActionDoctorReview, "doctor", doctorID.String(), oldValue, newValue)
	})
	if err != nil {
		if !errors.Is(err, ErrPermissionDenied) {
			u.log.Warnf("Failed to review doctor: %+v", err)
		}
		return nil, err
	}

	user, err = u.userRepo.FindByID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to reload profile: %+v", err)
		return nil, err
	}
	doctor, err = u.doctorRepo.FindByUserID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to reload doctor profile: %+v", err)
		return nil, err
	}

	resp := adminDoctorResponse(user, doctor)
	return &resp, nil
}

func adminDoctorResponse(user *entity.UserProfile, doctor *entity.DoctorProfile) dto.AdminDoctorResponse {
	return dto.AdminDoctorResponse{
		Profile: *converter.UserProfileToResponse(user),
		Doctor:  converter.DoctorProfileToResponse(doctor),
		Stage:   string(onboarding.Classify(user, doctor)),
	}
}
