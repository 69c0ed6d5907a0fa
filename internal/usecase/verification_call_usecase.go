package usecase

import (
	"context"
	"errors"
	"time"

	"docconnect/internal/delivery/dto"
	"docconnect/internal/domain/availability"
	"docconnect/internal/domain/entity"
	"docconnect/internal/domain/onboarding"
	"docconnect/internal/domain/repository"
	"docconnect/internal/infrastructure/reporting"
	"docconnect/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrVerificationCallNotAvailable = errors.New("verification call is not available at this stage")
	ErrInvalidCallSlot              = errors.New("verification calls are offered every 30 minutes from 15:00 to 18:00")
)

type VerificationCallUsecase interface {
	GetSlots(ctx context.Context, userID uuid.UUID) (*dto.VerificationCallSlotsResponse, error)
	Schedule(ctx context.Context, userID uuid.UUID, req *dto.ScheduleVerificationCallRequest) (*dto.VerificationCallResponse, error)
}

type verificationCallUsecase struct {
	log          *logrus.Logger
	transactor   repository.Transactor
	userRepo     repository.UserProfileRepository
	doctorRepo   repository.DoctorProfileRepository
	auditService service.AuditService
	reporter     reporting.Reporter
	location     *time.Location
	now          func() time.Time
}

// NewVerificationCallUsecase interprets call dates and times in loc.
func NewVerificationCallUsecase(
	log *logrus.Logger,
	transactor repository.Transactor,
	userRepo repository.UserProfileRepository,
	doctorRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
	reporter reporting.Reporter,
	loc *time.Location,
) VerificationCallUsecase {
	if loc == nil {
		loc = time.UTC
	}
	return &verificationCallUsecase{
		log:          log,
		transactor:   transactor,
		userRepo:     userRepo,
		doctorRepo:   doctorRepo,
		auditService: auditService,
		reporter:     reporter,
		location:     loc,
		now:          time.Now,
	}
}

func (u *verificationCallUsecase) GetSlots(ctx context.Context, userID uuid.UUID) (*dto.VerificationCallSlotsResponse, error) {
	doctor, err := u.doctorRepo.FindByUserID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile by ID: %+v", err)
		return nil, err
	}

	resp := &dto.VerificationCallSlotsResponse{Slots: availability.VerificationCallSlots()}
	if doctor != nil {
		resp.Scheduled = doctor.VerificationCallAt
	}
	return resp, nil
}

func (u *verificationCallUsecase) Schedule(ctx context.Context, userID uuid.UUID, req *dto.ScheduleVerificationCallRequest) (*dto.VerificationCallResponse, error) {
	if !availability.Contains(availability.VerificationCallSlots(), req.Time) {
		return nil, ErrInvalidCallSlot
	}
	at, err := time.ParseInLocation(dateLayout+" 15:04", req.Date+" "+req.Time, u.location)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if !at.After(u.now()) {
		return nil, ErrDateInPast
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find profile by ID: %+v", err)
		return nil, err
	}
	doctor, err := u.doctorRepo.FindByUserID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile by ID: %+v", err)
		return nil, err
	}
	if user == nil || onboarding.Classify(user, doctor) != onboarding.StageDoctorAwaitingCall {
		return nil, ErrVerificationCallNotAvailable
	}

	at = at.UTC()
	fields := repository.Fields{entity.FieldVerificationCallAt: at}
	err = u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.doctorRepo.Merge(ctx, userID, fields); err != nil {
			return writeError(ctx, u.reporter, doctorProfilePath+userID.String(), fields, err)
		}
		return u.auditService.LogEvent(ctx, &userID, entity.AuditActionVerificationCall, entity.JSON{
			"scheduled_at": at.Format(time.RFC3339),
		})
	})
	if err != nil {
		if !errors.Is(err, ErrPermissionDenied) {
			u.log.Warnf("Failed to schedule verification call: %+v", err)
		}
		return nil, err
	}

	return &dto.VerificationCallResponse{ScheduledAt: at}, nil
}
