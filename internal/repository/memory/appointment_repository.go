package memory

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"docconnect/internal/domain/entity"
	domainRepo "docconnect/internal/domain/repository"
)

//go:embed appointments.json
var defaultAppointments []byte

type appointmentRepository struct {
	mu           sync.RWMutex
	appointments []entity.Appointment
	byID         map[string]int
}

// NewAppointmentRepository loads the catalogue from seedFile, or from the
// embedded fixture when seedFile is empty.
func NewAppointmentRepository(seedFile string) (domainRepo.AppointmentRepository, error) {
	data := defaultAppointments
	if seedFile != "" {
		raw, err := os.ReadFile(seedFile)
		if err != nil {
			return nil, fmt.Errorf("read appointments seed: %w", err)
		}
		data = raw
	}
	return NewAppointmentRepositoryFromJSON(data)
}

func NewAppointmentRepositoryFromJSON(data []byte) (domainRepo.AppointmentRepository, error) {
	var appointments []entity.Appointment
	if err := json.Unmarshal(data, &appointments); err != nil {
		return nil, fmt.Errorf("decode appointments seed: %w", err)
	}

	byID := make(map[string]int, len(appointments))
	for i, a := range appointments {
		if _, dup := byID[a.ID]; dup {
			return nil, fmt.Errorf("duplicate appointment id %q", a.ID)
		}
		byID[a.ID] = i
	}

	return &appointmentRepository{appointments: appointments, byID: byID}, nil
}

func (r *appointmentRepository) FindAll(ctx context.Context) ([]entity.Appointment, error) {
	return r.filter(func(*entity.Appointment) bool { return true }), nil
}

func (r *appointmentRepository) FindByID(ctx context.Context, id string) (*entity.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	a := r.appointments[i]
	return &a, nil
}

func (r *appointmentRepository) FindByDoctorID(ctx context.Context, doctorID string) ([]entity.Appointment, error) {
	return r.filter(func(a *entity.Appointment) bool { return a.DoctorID == doctorID }), nil
}

func (r *appointmentRepository) FindByPatientID(ctx context.Context, patientID string) ([]entity.Appointment, error) {
	return r.filter(func(a *entity.Appointment) bool { return a.PatientID == patientID }), nil
}

// filter returns copies so callers cannot mutate the catalogue.
func (r *appointmentRepository) filter(keep func(*entity.Appointment) bool) []entity.Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Appointment, 0, len(r.appointments))
	for i := range r.appointments {
		if keep(&r.appointments[i]) {
			out = append(out, r.appointments[i])
		}
	}
	return out
}
