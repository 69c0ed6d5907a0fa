package usecase

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"docconnect/internal/converter"
	"docconnect/internal/delivery/dto"
	"docconnect/internal/domain/entity"
	"docconnect/internal/domain/onboarding"
	"docconnect/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidScanURL        = errors.New("could not read a link from the scanned code")
	ErrUnsupportedScanTarget = errors.New("scanned code does not point to a doctor profile")
)

const supportEmail = "support@faylocare.app"

var faqs = []dto.FAQ{
	{
		Question: "How do I book an appointment?",
		Answer:   "To book an appointment, go to the 'Doctors' page, find a doctor you'd like to see, view their profile, and click the 'Book an Appointment' button. You can then select an available date and time slot.",
	},
	{
		Question: "How can I view my upcoming appointments?",
		Answer:   "You can view all your upcoming appointments on your 'Dashboard' or by navigating to the 'Appointments' page and selecting the 'Upcoming' tab.",
	},
	{
		Question: "How do I join a video consultation?",
		Answer:   "For your upcoming appointments, a 'Join Call' button will appear on the dashboard and the appointments list shortly before the scheduled time. Click this button to enter the virtual consultation room.",
	},
	{
		Question: "Where can I find the summary of my past consultations?",
		Answer:   "Navigate to the 'Consultations' page. Here you will find a list of all completed consultations. Click 'View Summary' to see the details and the AI-generated notes.",
	},
	{
		Question: "How do I cancel or reschedule an appointment?",
		Answer:   "Currently, to cancel or reschedule, please contact our support team. We are working on adding self-service cancellation and rescheduling features.",
	},
}

// DashboardUsecase serves the pages every signed-in user can reach.
type DashboardUsecase interface {
	// GetDashboard renders the dashboard for an already resolved session.
	GetDashboard(ctx context.Context, session *Session) (*dto.DashboardResponse, error)
	GetHelp(ctx context.Context) *dto.HelpResponse
	// Scan turns the text of a scanned QR code into an in-app doctor path.
	Scan(ctx context.Context, req *dto.ScanRequest) (*dto.ScanResponse, error)
}

type dashboardUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserProfileRepository
	doctorRepo      repository.DoctorProfileRepository
	now             func() time.Time
}

func NewDashboardUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserProfileRepository,
	doctorRepo repository.DoctorProfileRepository,
) DashboardUsecase {
	return &dashboardUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		doctorRepo:      doctorRepo,
		now:             time.Now,
	}
}

func (u *dashboardUsecase) GetDashboard(ctx context.Context, session *Session) (*dto.DashboardResponse, error) {
	resp := &dto.DashboardResponse{Decision: converter.DecisionToResponse(session.Decision)}

	switch session.Decision.Stage {
	case onboarding.StagePatient:
		patient, err := u.patientDashboard(ctx, session.UserID().String())
		if err != nil {
			return nil, err
		}
		resp.Patient = patient
	case onboarding.StageDoctorVerified:
		doctor, err := u.doctorDashboard(ctx, session.UserID().String())
		if err != nil {
			return nil, err
		}
		resp.Doctor = doctor
	}
	return resp, nil
}

func (u *dashboardUsecase) patientDashboard(ctx context.Context, patientID string) (*dto.PatientDashboard, error) {
	appointments, err := u.appointmentRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find appointments by patient: %+v", err)
		return nil, err
	}

	names, err := doctorNames(ctx, u.userRepo, u.doctorRepo, appointments)
	if err != nil {
		u.log.Warnf("Failed to resolve doctor names: %+v", err)
		return nil, err
	}

	var upcoming []entity.Appointment
	completed := 0
	for _, a := range appointments {
		switch {
		case a.IsUpcoming():
			upcoming = append(upcoming, a)
		case a.IsCompleted():
			completed++
		}
	}
	entity.SortAppointmentsDesc(upcoming)
	// soonest first
	for i, j := 0, len(upcoming)-1; i < j; i, j = i+1, j-1 {
		upcoming[i], upcoming[j] = upcoming[j], upcoming[i]
	}

	dash := &dto.PatientDashboard{
		Upcoming:       converter.AppointmentsToResponses(upcoming, names),
		CompletedCount: completed,
	}
	if len(upcoming) > 0 {
		dash.NextAppointmentID = upcoming[0].ID
	}
	return dash, nil
}

func (u *dashboardUsecase) doctorDashboard(ctx context.Context, doctorID string) (*dto.DoctorDashboard, error) {
	appointments, err := u.appointmentRepo.FindByDoctorID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find appointments by doctor: %+v", err)
		return nil, err
	}

	today := u.now().Format(dateLayout)
	var todays []entity.Appointment
	patients := map[string]bool{}
	upcoming := 0
	for _, a := range appointments {
		patients[a.PatientID] = true
		if a.IsUpcoming() {
			upcoming++
		}
		if a.Date == today && !a.IsCancelled() {
			todays = append(todays, a)
		}
	}
	entity.SortAppointmentsDesc(todays)

	return &dto.DoctorDashboard{
		Today:             converter.AppointmentsToResponses(todays, nil),
		TotalAppointments: len(appointments),
		UpcomingCount:     upcoming,
		PatientCount:      len(patients),
	}, nil
}

func (u *dashboardUsecase) GetHelp(ctx context.Context) *dto.HelpResponse {
	return &dto.HelpResponse{FAQs: faqs, SupportEmail: supportEmail}
}

func (u *dashboardUsecase) Scan(ctx context.Context, req *dto.ScanRequest) (*dto.ScanResponse, error) {
	parsed, err := url.Parse(strings.TrimSpace(req.URL))
	if err != nil || parsed.Path == "" {
		return nil, ErrInvalidScanURL
	}
	if !strings.HasPrefix(parsed.Path, onboarding.RouteDoctors+"/") {
		return nil, ErrUnsupportedScanTarget
	}
	return &dto.ScanResponse{Path: parsed.Path}, nil
}
