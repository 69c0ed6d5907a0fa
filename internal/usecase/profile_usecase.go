package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"

	"docconnect/internal/converter"
	"docconnect/internal/delivery/dto"
	"docconnect/internal/domain/entity"
	"docconnect/internal/domain/onboarding"
	"docconnect/internal/domain/repository"
	"docconnect/internal/infrastructure/reporting"
	"docconnect/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrRoleRequired           = errors.New("please select a role")
	ErrNameRequired           = errors.New("please enter your first and last name")
	ErrUsernameRequired       = errors.New("username is required to complete a doctor profile")
	ErrRoleChangeNotAllowed   = errors.New("role cannot be changed once set")
	ErrInvalidConsultationFee = errors.New("consultation fee must be a non-negative amount")
	ErrNotDoctor              = errors.New("only doctors can update professional details")
)

type ProfileUsecase interface {
	GetCompletion(ctx context.Context, userID uuid.UUID) (*dto.ProfileCompletionResponse, error)
	CompleteProfile(ctx context.Context, userID uuid.UUID, req *dto.CompleteProfileRequest) (*dto.UserProfileResponse, error)
	GetSettings(ctx context.Context, userID uuid.UUID) (*dto.SettingsResponse, error)
	UpdateSettings(ctx context.Context, userID uuid.UUID, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
}

type profileUsecase struct {
	log          *logrus.Logger
	transactor   repository.Transactor
	identityRepo repository.IdentityRepository
	userRepo     repository.UserProfileRepository
	doctorRepo   repository.DoctorProfileRepository
	auditService service.AuditService
	reporter     reporting.Reporter
	adminEmails  map[string]bool
}

func NewProfileUsecase(
	log *logrus.Logger,
	transactor repository.Transactor,
	identityRepo repository.IdentityRepository,
	userRepo repository.UserProfileRepository,
	doctorRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
	reporter reporting.Reporter,
	adminEmails []string,
) ProfileUsecase {
	admins := make(map[string]bool, len(adminEmails))
	for _, email := range adminEmails {
		admins[normalizeEmail(email)] = true
	}
	return &profileUsecase{
		log:          log,
		transactor:   transactor,
		identityRepo: identityRepo,
		userRepo:     userRepo,
		doctorRepo:   doctorRepo,
		auditService: auditService,
		reporter:     reporter,
		adminEmails:  admins,
	}
}

func (u *profileUsecase) GetCompletion(ctx context.Context, userID uuid.UUID) (*dto.ProfileCompletionResponse, error) {
	profile, doctor, err := u.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ProfileCompletionResponse{
		Profile:        converter.UserProfileToResponse(profile),
		RequiredFields: []string{},
	}
	if !profile.HasRole() {
		resp.RequiredFields = []string{"role", "first_name", "last_name"}
		return resp, nil
	}

	stage := onboarding.Classify(profile, doctor)
	resp.Stage = string(stage)
	if stage == onboarding.StageDoctorApprovedNeedsProfile {
		resp.RequiredFields = []string{"username"}
	}
	return resp, nil
}

// CompleteProfile covers both uses of the complete-profile form: choosing a
// role after signup, and a doctor adding a username and professional details
// once credentials are approved.
func (u *profileUsecase) CompleteProfile(ctx context.Context, userID uuid.UUID, req *dto.CompleteProfileRequest) (*dto.UserProfileResponse, error) {
	identity, err := u.identityRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find identity by ID: %+v", err)
		return nil, err
	}
	if identity == nil {
		return nil, ErrUserNotFound
	}

	profile, doctor, err := u.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	userFields := repository.Fields{}
	var doctorFields repository.Fields

	switch {
	case !profile.HasRole():
		if req.Role == "" {
			return nil, ErrRoleRequired
		}
		firstName, lastName := strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName)
		if firstName == "" || lastName == "" {
			return nil, ErrNameRequired
		}

		role := entity.Role(req.Role)
		if u.adminEmails[normalizeEmail(identity.Email)] {
			role = entity.RoleAdmin
		}
		userFields[entity.FieldRole] = role
		userFields[entity.FieldFirstName] = firstName
		userFields[entity.FieldLastName] = lastName
		userFields[entity.FieldEmail] = identity.Email
		if role == entity.RoleDoctor {
			userFields[entity.FieldVerificationStatus] = entity.VerificationPending
		}
		if req.Username != "" {
			userFields[entity.FieldUsername] = req.Username
		}

	default:
		if req.Role != "" && entity.Role(req.Role) != profile.Role {
			return nil, ErrRoleChangeNotAllowed
		}
		if onboarding.Classify(profile, doctor) == onboarding.StageDoctorApprovedNeedsProfile && req.Username == "" {
			return nil, ErrUsernameRequired
		}
		setNonEmpty(userFields, entity.FieldFirstName, req.FirstName)
		setNonEmpty(userFields, entity.FieldLastName, req.LastName)
		setNonEmpty(userFields, entity.FieldUsername, req.Username)

		if profile.IsDoctor() {
			doctorFields, err = professionalFields(req.Specialization, req.ExperienceYears, req.Bio, req.ConsultationFee)
			if err != nil {
				return nil, err
			}
		}
	}

	if err := u.write(ctx, userID, userFields, doctorFields, entity.AuditActionProfileComplete); err != nil {
		return nil, err
	}

	updated, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to reload profile: %+v", err)
		return nil, err
	}
	return converter.UserProfileToResponse(updated), nil
}

func (u *profileUsecase) GetSettings(ctx context.Context, userID uuid.UUID) (*dto.SettingsResponse, error) {
	profile, doctor, err := u.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return &dto.SettingsResponse{
		Profile: *converter.UserProfileToResponse(profile),
		Doctor:  converter.DoctorProfileToResponse(doctor),
	}, nil
}

func (u *profileUsecase) UpdateSettings(ctx context.Context, userID uuid.UUID, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	profile, _, err := u.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	userFields := repository.Fields{}
	if req.FirstName != nil {
		userFields[entity.FieldFirstName] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		userFields[entity.FieldLastName] = strings.TrimSpace(*req.LastName)
	}
	if req.Username != nil {
		userFields[entity.FieldUsername] = *req.Username
	}

	var doctorFields repository.Fields
	if req.Specialization != nil || req.ExperienceYears != nil || req.Bio != nil || req.ConsultationFee != nil {
		if !profile.IsDoctor() {
			return nil, ErrNotDoctor
		}
		doctorFields, err = professionalFields(deref(req.Specialization), req.ExperienceYears, deref(req.Bio), deref(req.ConsultationFee))
		if err != nil {
			return nil, err
		}
	}

	if err := u.write(ctx, userID, userFields, doctorFields, entity.AuditActionProfileUpdate); err != nil {
		return nil, err
	}

	return u.GetSettings(ctx, userID)
}

func (u *profileUsecase) load(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, *entity.DoctorProfile, error) {
	profile, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find profile by ID: %+v", err)
		return nil, nil, err
	}
	if !profile.IsDoctor() {
		return profile, nil, nil
	}

	doctor, err := u.doctorRepo.FindByUserID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile by ID: %+v", err)
		return nil, nil, err
	}
	return profile, doctor, nil
}

// write merges both documents in one transaction and audits the change.
func (u *profileUsecase) write(ctx context.Context, userID uuid.UUID, userFields, doctorFields repository.Fields, action string) error {
	if len(userFields) == 0 && len(doctorFields) == 0 {
		return nil
	}

	err := u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if len(userFields) > 0 {
			if err := u.userRepo.Merge(ctx, userID, userFields); err != nil {
				return writeError(ctx, u.reporter, userProfilePath+userID.String(), userFields, err)
			}
		}
		if len(doctorFields) > 0 {
			if err := u.doctorRepo.Merge(ctx, userID, doctorFields); err != nil {
				return writeError(ctx, u.reporter, doctorProfilePath+userID.String(), doctorFields, err)
			}
		}
		return u.auditService.LogEvent(ctx, &userID, action, entity.JSON{
			"user_fields":   fieldNames(userFields),
			"doctor_fields": fieldNames(doctorFields),
		})
	})
	if err != nil && !errors.Is(err, ErrPermissionDenied) {
		u.log.Warnf("Failed to write profile: %+v", err)
	}
	return err
}

func professionalFields(specialization string, experienceYears *int, bio, fee string) (repository.Fields, error) {
	fields := repository.Fields{}
	setNonEmpty(fields, entity.FieldSpecialization, specialization)
	setNonEmpty(fields, entity.FieldBio, bio)
	if experienceYears != nil {
		fields[entity.FieldExperienceYears] = *experienceYears
	}
	if fee != "" {
		amount, err := decimal.NewFromString(fee)
		if err != nil || amount.IsNegative() {
			return nil, ErrInvalidConsultationFee
		}
		fields[entity.FieldConsultationFee] = amount.Round(2)
	}
	return fields, nil
}

func setNonEmpty(fields repository.Fields, key, value string) {
	if v := strings.TrimSpace(value); v != "" {
		fields[key] = v
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func fieldNames(fields repository.Fields) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
