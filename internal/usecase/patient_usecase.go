package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"

	"docconnect/internal/converter"
	"docconnect/internal/delivery/dto"
	"docconnect/internal/domain/entity"
	"docconnect/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrPatientNotFound = errors.New("patient not found")

type PatientUsecase interface {
	// ListPatients returns the doctor's roster, filtered by name or email.
	ListPatients(ctx context.Context, doctorID uuid.UUID, query string) (*dto.PatientListResponse, error)
	// GetPatient is limited to patients connected to the doctor through an appointment.
	GetPatient(ctx context.Context, doctorID uuid.UUID, patientID string) (*dto.PatientDetailResponse, error)
}

type patientUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserProfileRepository
}

func NewPatientUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserProfileRepository,
) PatientUsecase {
	return &patientUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
	}
}

func (u *patientUsecase) ListPatients(ctx context.Context, doctorID uuid.UUID, query string) (*dto.PatientListResponse, error) {
	appointments, err := u.appointmentRepo.FindByDoctorID(ctx, doctorID.String())
	if err != nil {
		u.log.Warnf("Failed to find appointments by doctor: %+v", err)
		return nil, err
	}
	entity.SortAppointmentsDesc(appointments)

	roster, err := u.roster(ctx, appointments)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	patients := make([]dto.PatientResponse, 0, len(roster))
	for _, p := range roster {
		if q == "" || strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Email), q) {
			patients = append(patients, p)
		}
	}
	sort.SliceStable(patients, func(i, j int) bool {
		return strings.ToLower(patients[i].Name) < strings.ToLower(patients[j].Name)
	})

	return &dto.PatientListResponse{Patients: patients, Total: len(patients)}, nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, doctorID uuid.UUID, patientID string) (*dto.PatientDetailResponse, error) {
	appointments, err := u.appointmentRepo.FindByDoctorID(ctx, doctorID.String())
	if err != nil {
		u.log.Warnf("Failed to find appointments by doctor: %+v", err)
		return nil, err
	}

	history := make([]entity.Appointment, 0, len(appointments))
	for _, a := range appointments {
		if a.PatientID == patientID {
			history = append(history, a)
		}
	}
	if len(history) == 0 {
		return nil, ErrPatientNotFound
	}
	entity.SortAppointmentsDesc(history)

	roster, err := u.roster(ctx, history)
	if err != nil {
		return nil, err
	}

	return &dto.PatientDetailResponse{
		Patient: roster[0],
		History: converter.AppointmentsToResponses(history, nil),
	}, nil
}

// roster collapses appointments, already sorted newest first, into one entry
// per patient. Stored profiles supply names and emails where they exist.
func (u *patientUsecase) roster(ctx context.Context, appointments []entity.Appointment) ([]dto.PatientResponse, error) {
	byID := map[string]*dto.PatientResponse{}
	var order []string
	var ids []uuid.UUID

	for _, a := range appointments {
		p, ok := byID[a.PatientID]
		if !ok {
			p = &dto.PatientResponse{ID: a.PatientID, Name: a.PatientName, LastAppointment: a.Date}
			byID[a.PatientID] = p
			order = append(order, a.PatientID)
			if id, err := uuid.Parse(a.PatientID); err == nil {
				ids = append(ids, id)
			}
		}
		p.AppointmentCount++
	}

	if len(ids) > 0 {
		profiles, err := u.userRepo.FindByIDs(ctx, ids)
		if err != nil {
			u.log.Warnf("Failed to find patient profiles: %+v", err)
			return nil, err
		}
		for _, profile := range profiles {
			p := byID[profile.ID.String()]
			if p == nil {
				continue
			}
			if name := profile.DisplayName(); name != "" {
				p.Name = name
			}
			p.Email = profile.Email
		}
	}

	out := make([]dto.PatientResponse, len(order))
	for i, id := range order {
		out[i] = *byID[id]
	}
	return out, nil
}
