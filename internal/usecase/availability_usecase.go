package usecase

import (
	"context"
	"errors"
	"time"

	"docconnect/internal/delivery/dto"
	"docconnect/internal/domain/availability"
	"docconnect/internal/domain/entity"
	"docconnect/internal/domain/repository"
	"docconnect/internal/infrastructure/reporting"
	"docconnect/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrSlotNotFound = errors.New("slot not found")

type AvailabilityUsecase interface {
	GetAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityResponse, error)
	// GenerateSlots previews the slots for a window; nothing is saved.
	GenerateSlots(ctx context.Context, req *dto.GenerateSlotsRequest) (*dto.DaySlotsResponse, error)
	// SaveDay replaces the slots of one date. An empty list clears the date.
	SaveDay(ctx context.Context, doctorID uuid.UUID, date string, req *dto.SaveSlotsRequest) (*dto.DaySlotsResponse, error)
	RemoveSlot(ctx context.Context, doctorID uuid.UUID, date, slot string) (*dto.DaySlotsResponse, error)
}

type availabilityUsecase struct {
	log          *logrus.Logger
	transactor   repository.Transactor
	doctorRepo   repository.DoctorProfileRepository
	auditService service.AuditService
	reporter     reporting.Reporter
}

func NewAvailabilityUsecase(
	log *logrus.Logger,
	transactor repository.Transactor,
	doctorRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
	reporter reporting.Reporter,
) AvailabilityUsecase {
	return &availabilityUsecase{
		log:          log,
		transactor:   transactor,
		doctorRepo:   doctorRepo,
		auditService: auditService,
		reporter:     reporter,
	}
}

func (u *availabilityUsecase) GetAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityResponse, error) {
	current, err := u.current(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return availabilityResponse(current), nil
}

func (u *availabilityUsecase) GenerateSlots(ctx context.Context, req *dto.GenerateSlotsRequest) (*dto.DaySlotsResponse, error) {
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return nil, ErrInvalidDate
	}
	slots, err := availability.GenerateSlots(req.StartTime, req.EndTime, req.DurationMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.DaySlotsResponse{Date: req.Date, Slots: slots}, nil
}

func (u *availabilityUsecase) SaveDay(ctx context.Context, doctorID uuid.UUID, date string, req *dto.SaveSlotsRequest) (*dto.DaySlotsResponse, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}
	for _, slot := range req.Slots {
		if _, err := availability.ParseClock(slot); err != nil {
			return nil, err
		}
	}

	current, err := u.current(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	slots := availability.MergeSlots(nil, req.Slots)
	if len(slots) == 0 {
		delete(current, date)
	} else {
		current[date] = slots
	}

	if err := u.save(ctx, doctorID, current, entity.JSON{"date": date, "slots": slots}); err != nil {
		return nil, err
	}
	return &dto.DaySlotsResponse{Date: date, Slots: slots}, nil
}

func (u *availabilityUsecase) RemoveSlot(ctx context.Context, doctorID uuid.UUID, date, slot string) (*dto.DaySlotsResponse, error) {
	current, err := u.current(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	remaining, ok := availability.RemoveSlot(current[date], slot)
	if !ok {
		return nil, ErrSlotNotFound
	}
	if len(remaining) == 0 {
		delete(current, date)
	} else {
		current[date] = remaining
	}

	if err := u.save(ctx, doctorID, current, entity.JSON{"date": date, "removed": slot}); err != nil {
		return nil, err
	}
	return &dto.DaySlotsResponse{Date: date, Slots: remaining}, nil
}

// current returns a copy of the stored availability that is safe to modify.
func (u *availabilityUsecase) current(ctx context.Context, doctorID uuid.UUID) (entity.Availability, error) {
	profile, err := u.doctorRepo.FindByUserID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile by ID: %+v", err)
		return nil, err
	}

	out := entity.Availability{}
	if profile == nil {
		return out, nil
	}
	for date, slots := range profile.Availability {
		out[date] = append([]string(nil), slots...)
	}
	return out, nil
}

func (u *availabilityUsecase) save(ctx context.Context, doctorID uuid.UUID, next entity.Availability, change entity.JSON) error {
	fields := repository.Fields{entity.FieldAvailability: next}

	err := u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.doctorRepo.Merge(ctx, doctorID, fields); err != nil {
			return writeError(ctx, u.reporter, doctorProfilePath+doctorID.String(), fields, err)
		}
		return u.auditService.LogEvent(ctx, &doctorID, entity.AuditActionAvailabilityUpdate, change)
	})
	if err != nil && !errors.Is(err, ErrPermissionDenied) {
		u.log.Warnf("Failed to save availability: %+v", err)
	}
	return err
}

func availabilityResponse(a entity.Availability) *dto.AvailabilityResponse {
	out := make(map[string][]string, len(a))
	for date, slots := range a {
		if len(slots) > 0 {
			out[date] = slots
		}
	}
	return &dto.AvailabilityResponse{Availability: out, Dates: a.Dates()}
}
