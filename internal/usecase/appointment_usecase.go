package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"docconnect/internal/converter"
	"docconnect/internal/delivery/dto"
	"docconnect/internal/domain/entity"
	"docconnect/internal/domain/repository"
	"docconnect/internal/infrastructure/llm"
	"docconnect/internal/infrastructure/monitoring"
	"docconnect/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrSlotUnavailable     = errors.New("the selected time is not available")
)

// BookingStatusRequested is reported for a validated booking; bookings are not stored.
const BookingStatusRequested = "requested"

// consultationTranscript stands in for the call recording until real
// transcription exists.
const consultationTranscript = `Patient: Good morning, Doctor. I've been having some chest pain lately.
Doctor: I see. Can you describe the pain? Is it sharp, dull, a pressure?
Patient: It's more like a pressure, right in the center of my chest. It seems to happen when I walk up hills.
Doctor: How long does it last?
Patient: About 5 minutes, and it goes away when I rest.
Doctor: Any other symptoms? Shortness of breath, dizziness?
Patient: Sometimes I feel a bit short of breath with it. No dizziness.
Doctor: Okay. Based on your symptoms, I'm concerned about angina. I'd like to schedule an ECG and a stress test to evaluate your heart. We'll also check your cholesterol levels. In the meantime, I'm prescribing you a medication to help with the symptoms.`

type AppointmentUsecase interface {
	ListAppointments(ctx context.Context, userID uuid.UUID) (*dto.AppointmentGroupsResponse, error)
	ListConsultations(ctx context.Context, userID uuid.UUID) (*dto.ConsultationListResponse, error)
	GetConsultation(ctx context.Context, userID uuid.UUID, appointmentID string) (*dto.ConsultationResponse, error)
	Summarize(ctx context.Context, userID uuid.UUID, appointmentID string, req *dto.SummarizeRequest) (*dto.SummaryResponse, error)
	// Book validates a booking request against the doctor's availability and
	// records it in the audit log. Nothing is persisted.
	Book(ctx context.Context, patientID, doctorID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.BookingResponse, error)
}

type appointmentUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserProfileRepository
	doctorRepo      repository.DoctorProfileRepository
	summarizer      llm.Summarizer
	auditService    service.AuditService
	metrics         *monitoring.Metrics
	now             func() time.Time
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserProfileRepository,
	doctorRepo repository.DoctorProfileRepository,
	summarizer llm.Summarizer,
	auditService service.AuditService,
	metrics *monitoring.Metrics,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		doctorRepo:      doctorRepo,
		summarizer:      summarizer,
		auditService:    auditService,
		metrics:         metrics,
		now:             time.Now,
	}
}

func (u *appointmentUsecase) ListAppointments(ctx context.Context, userID uuid.UUID) (*dto.AppointmentGroupsResponse, error) {
	appointments, names, err := u.forUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.AppointmentGroupsResponse{
		Upcoming:  []dto.AppointmentResponse{},
		Completed: []dto.AppointmentResponse{},
		Cancelled: []dto.AppointmentResponse{},
	}
	for i := range appointments {
		a := converter.AppointmentToResponse(&appointments[i], names)
		switch appointments[i].Status {
		case entity.AppointmentUpcoming:
			resp.Upcoming = append(resp.Upcoming, a)
		case entity.AppointmentCompleted:
			resp.Completed = append(resp.Completed, a)
		case entity.AppointmentCancelled:
			resp.Cancelled = append(resp.Cancelled, a)
		}
	}
	// Soonest upcoming first; history newest first.
	sort.SliceStable(resp.Upcoming, func(i, j int) bool {
		return resp.Upcoming[i].Date+resp.Upcoming[i].Time < resp.Upcoming[j].Date+resp.Upcoming[j].Time
	})
	return resp, nil
}

func (u *appointmentUsecase) ListConsultations(ctx context.Context, userID uuid.UUID) (*dto.ConsultationListResponse, error) {
	appointments, names, err := u.forUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	completed := make([]entity.Appointment, 0, len(appointments))
	for _, a := range appointments {
		if a.IsCompleted() {
			completed = append(completed, a)
		}
	}
	return &dto.ConsultationListResponse{
		Consultations: converter.AppointmentsToResponses(completed, names),
		Total:         len(completed),
	}, nil
}

func (u *appointmentUsecase) GetConsultation(ctx context.Context, userID uuid.UUID, appointmentID string) (*dto.ConsultationResponse, error) {
	appointment, err := u.findForUser(ctx, userID, appointmentID)
	if err != nil {
		return nil, err
	}

	names, err := doctorNames(ctx, u.userRepo, u.doctorRepo, []entity.Appointment{*appointment})
	if err != nil {
		u.log.Warnf("Failed to resolve doctor names: %+v", err)
		return nil, err
	}

	return &dto.ConsultationResponse{
		Appointment: converter.AppointmentToResponse(appointment, names),
		Transcript:  consultationTranscript,
	}, nil
}

func (u *appointmentUsecase) Summarize(ctx context.Context, userID uuid.UUID, appointmentID string, req *dto.SummarizeRequest) (*dto.SummaryResponse, error) {
	if _, err := u.findForUser(ctx, userID, appointmentID); err != nil {
		return nil, err
	}

	summary, err := u.summarizer.Summarize(ctx, req.Transcript)
	if err != nil {
		if errors.Is(err, llm.ErrInvalidTranscript) {
			u.metrics.RecordSummaryRequest("invalid")
		} else {
			u.metrics.RecordSummaryRequest("failed")
		}
		return nil, err
	}

	u.metrics.RecordSummaryRequest("success")
	return &dto.SummaryResponse{Summary: summary}, nil
}

func (u *appointmentUsecase) Book(ctx context.Context, patientID, doctorID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.BookingResponse, error) {
	day, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	today := u.now().UTC().Truncate(24 * time.Hour)
	if day.Before(today) {
		return nil, ErrDateInPast
	}

	doctor, err := findVerifiedDoctor(ctx, u.userRepo, u.doctorRepo, doctorID)
	if err != nil {
		if !errors.Is(err, ErrDoctorNotFound) {
			u.log.Warnf("Failed to find doctor: %+v", err)
		}
		return nil, err
	}
	if !doctor.Availability.HasSlot(req.Date, req.Time) {
		return nil, ErrSlotUnavailable
	}

	if err := u.auditService.LogEvent(ctx, &patientID, entity.AuditActionAppointmentRequest, entity.JSON{
		"doctor_id": doctorID.String(),
		"date":      req.Date,
		"time":      req.Time,
	}); err != nil {
		u.log.Warnf("Failed to audit booking: %+v", err)
	}

	u.log.WithFields(logrus.Fields{
		"patient_id": patientID,
		"doctor_id":  doctorID,
		"date":       req.Date,
		"time":       req.Time,
	}).Info("Appointment requested")

	return &dto.BookingResponse{
		DoctorID:   doctor.ID,
		DoctorName: doctor.Name,
		Date:       req.Date,
		Time:       req.Time,
		Status:     BookingStatusRequested,
	}, nil
}

// forUser returns the appointments the user takes part in, newest first,
// with the doctor names they reference.
func (u *appointmentUsecase) forUser(ctx context.Context, userID uuid.UUID) ([]entity.Appointment, map[string]string, error) {
	all, err := u.appointmentRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, nil, err
	}

	id := userID.String()
	mine := make([]entity.Appointment, 0, len(all))
	for _, a := range all {
		if a.InvolvesUser(id) {
			mine = append(mine, a)
		}
	}
	entity.SortAppointmentsDesc(mine)

	names, err := doctorNames(ctx, u.userRepo, u.doctorRepo, mine)
	if err != nil {
		u.log.Warnf("Failed to resolve doctor names: %+v", err)
		return nil, nil, err
	}
	return mine, names, nil
}

// findForUser hides appointments the user is not part of behind ErrAppointmentNotFound.
func (u *appointmentUsecase) findForUser(ctx context.Context, userID uuid.UUID, appointmentID string) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil || !appointment.InvolvesUser(userID.String()) {
		return nil, ErrAppointmentNotFound
	}
	return appointment, nil
}
