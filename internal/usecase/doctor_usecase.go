package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"docconnect/internal/converter"
	"docconnect/internal/delivery/dto"
	"docconnect/internal/domain/entity"
	"docconnect/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type DoctorUsecase interface {
	// Search lists verified doctors whose name or specialization contains
	// query, split by whether the patient already has an appointment with them.
	Search(ctx context.Context, patientID uuid.UUID, query string) (*dto.DoctorSearchResponse, error)
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	GetAvailability(ctx context.Context, doctorID uuid.UUID, date string) (*dto.DaySlotsResponse, error)
}

type doctorUsecase struct {
	log             *logrus.Logger
	userRepo        repository.UserProfileRepository
	doctorRepo      repository.DoctorProfileRepository
	appointmentRepo repository.AppointmentRepository
}

func NewDoctorUsecase(
	log *logrus.Logger,
	userRepo repository.UserProfileRepository,
	doctorRepo repository.DoctorProfileRepository,
	appointmentRepo repository.AppointmentRepository,
) DoctorUsecase {
	return &doctorUsecase{
		log:             log,
		userRepo:        userRepo,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
	}
}

func (u *doctorUsecase) Search(ctx context.Context, patientID uuid.UUID, query string) (*dto.DoctorSearchResponse, error) {
	doctors, err := verifiedDoctors(ctx, u.userRepo, u.doctorRepo)
	if err != nil {
		u.log.Warnf("Failed to list verified doctors: %+v", err)
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindByPatientID(ctx, patientID.String())
	if err != nil {
		u.log.Warnf("Failed to find appointments by patient: %+v", err)
		return nil, err
	}
	connectedIDs := make(map[string]bool, len(appointments))
	for _, a := range appointments {
		connectedIDs[a.DoctorID] = true
	}

	var connected, others []*entity.Doctor
	for _, d := range doctors {
		if !matchesDoctor(d, query) {
			continue
		}
		if connectedIDs[d.ID.String()] {
			connected = append(connected, d)
		} else {
			others = append(others, d)
		}
	}

	return &dto.DoctorSearchResponse{
		Connected: converter.DoctorsToResponses(connected),
		Others:    converter.DoctorsToResponses(others),
		Total:     len(connected) + len(others),
	}, nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := findVerifiedDoctor(ctx, u.userRepo, u.doctorRepo, doctorID)
	if err != nil {
		return nil, err
	}
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetAvailability(ctx context.Context, doctorID uuid.UUID, date string) (*dto.DaySlotsResponse, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}

	doctor, err := findVerifiedDoctor(ctx, u.userRepo, u.doctorRepo, doctorID)
	if err != nil {
		return nil, err
	}

	slots := doctor.Availability[date]
	if slots == nil {
		slots = []string{}
	}
	return &dto.DaySlotsResponse{Date: date, Slots: slots}, nil
}

// matchesDoctor is a case-insensitive substring match on name or specialization.
func matchesDoctor(d *entity.Doctor, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(d.Name), q) || strings.Contains(strings.ToLower(d.Specialization), q)
}

// verifiedDoctors composes the public read model for every verified doctor, sorted by name.
func verifiedDoctors(ctx context.Context, userRepo repository.UserProfileRepository, doctorRepo repository.DoctorProfileRepository) ([]*entity.Doctor, error) {
	users, err := userRepo.FindByRole(ctx, entity.RoleDoctor, entity.VerificationVerified)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, len(users))
	for i := range users {
		ids[i] = users[i].ID
	}
	profiles, err := doctorRepo.FindByUserIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byUser := make(map[uuid.UUID]*entity.DoctorProfile, len(profiles))
	for i := range profiles {
		byUser[profiles[i].UserID] = &profiles[i]
	}

	doctors := make([]*entity.Doctor, 0, len(users))
	for i := range users {
		if d := entity.NewDoctor(&users[i], byUser[users[i].ID]); d != nil {
			doctors = append(doctors, d)
		}
	}
	sort.SliceStable(doctors, func(i, j int) bool {
		return strings.ToLower(doctors[i].Name) < strings.ToLower(doctors[j].Name)
	})
	return doctors, nil
}

// findVerifiedDoctor returns ErrDoctorNotFound unless id is a verified doctor.
func findVerifiedDoctor(ctx context.Context, userRepo repository.UserProfileRepository, doctorRepo repository.DoctorProfileRepository, id uuid.UUID) (*entity.Doctor, error) {
	user, err := userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsVerifiedDoctor() {
		return nil, ErrDoctorNotFound
	}

	profile, err := doctorRepo.FindByUserID(ctx, id)
	if err != nil {
		return nil, err
	}
	return entity.NewDoctor(user, profile), nil
}

// doctorNames maps doctor ids, as stored on appointments, to display names.
// Unknown or malformed ids are skipped.
func doctorNames(ctx context.Context, userRepo repository.UserProfileRepository, doctorRepo repository.DoctorProfileRepository, appointments []entity.Appointment) (map[string]string, error) {
	seen := map[uuid.UUID]bool{}
	var ids []uuid.UUID
	for _, a := range appointments {
		id, err := uuid.Parse(a.DoctorID)
		if err != nil || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return map[string]string{}, nil
	}

	users, err := userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	profiles, err := doctorRepo.FindByUserIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(ids))
	for _, user := range users {
		names[user.ID.String()] = user.DisplayName()
	}
	for _, profile := range profiles {
		if profile.FullName != "" {
			names[profile.UserID.String()] = profile.FullName
		}
	}
	return names, nil
}
