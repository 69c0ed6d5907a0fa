package http

import (
	"net/http"

	"docconnect/internal/delivery/http/handler"
	"docconnect/internal/delivery/http/middleware"
	"docconnect/internal/domain/entity"
	"docconnect/internal/domain/onboarding"

	"github.com/gorilla/mux"
)

type Handlers struct {
	Auth             *handler.AuthHandler
	Session          *handler.SessionHandler
	Profile          *handler.ProfileHandler
	Credential       *handler.CredentialHandler
	Dashboard        *handler.DashboardHandler
	Doctor           *handler.DoctorHandler
	Appointment      *handler.AppointmentHandler
	Patient          *handler.PatientHandler
	Availability     *handler.AvailabilityHandler
	VerificationCall *handler.VerificationCallHandler
	Admin            *handler.AdminHandler
	AuditLog         *handler.AuditLogHandler
}

type Middlewares struct {
	Auth       *middleware.AuthMiddleware
	Navigation *middleware.NavigationMiddleware
	CORS       *middleware.CORSMiddleware
	// Metrics wraps every request; nil disables it.
	Metrics func(http.Handler) http.Handler
}

type Router struct {
	router      *mux.Router
	handlers    Handlers
	middlewares Middlewares
	metrics     http.Handler
	uploads     http.Handler
}

// NewRouter wires the API. metricsHandler serves /metrics and uploadsHandler
// serves /uploads/ for the local license store; either may be nil.
func NewRouter(handlers Handlers, middlewares Middlewares, metricsHandler, uploadsHandler http.Handler) *Router {
	return &Router{
		router:      mux.NewRouter(),
		handlers:    handlers,
		middlewares: middlewares,
		metrics:     metricsHandler,
		uploads:     uploadsHandler,
	}
}

func (r *Router) Setup() *mux.Router {
	h := r.handlers
	guard := r.middlewares.Navigation.Guard

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/signup", h.Auth.Signup).Methods(http.MethodPost)
	auth.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", h.Auth.RefreshToken).Methods(http.MethodPost)
	auth.HandleFunc("/google/start", h.Auth.GoogleStart).Methods(http.MethodGet)
	auth.HandleFunc("/google/callback", h.Auth.GoogleCallback).Methods(http.MethodGet)
	auth.HandleFunc("/verify-email/confirm", h.Auth.ConfirmEmail).Methods(http.MethodGet)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.middlewares.Auth.Authenticate)
	authProtected.HandleFunc("/logout", h.Auth.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", h.Auth.GetCurrentUser).Methods(http.MethodGet)
	authProtected.HandleFunc("/verify-email/resend", h.Auth.ResendVerificationEmail).Methods(http.MethodPost)

	// Navigation resolves for anonymous callers too
	session := api.PathPrefix("/session").Subrouter()
	session.Use(r.middlewares.Auth.Identify)
	session.HandleFunc("/resolve", h.Session.Resolve).Methods(http.MethodGet)

	// Everything below is guarded by the logical route it backs
	app := api.NewRoute().Subrouter()
	app.Use(r.middlewares.Auth.Identify)

	route := func(path, logical string, fn http.HandlerFunc, methods ...string) {
		app.Handle(path, guard(logical)(fn)).Methods(methods...)
	}

	route("/profile/complete", onboarding.RouteCompleteProfile, h.Profile.GetCompletion, http.MethodGet)
	route("/profile/complete", onboarding.RouteCompleteProfile, h.Profile.CompleteProfile, http.MethodPost)
	route("/settings", onboarding.RouteSettings, h.Profile.GetSettings, http.MethodGet)
	route("/settings", onboarding.RouteSettings, h.Profile.UpdateSettings, http.MethodPut)

	route("/credentials", onboarding.RouteVerifyCredentials, h.Credential.Submit, http.MethodPost)
	// every onboarding stage may check its progress from the dashboard
	route("/credentials/status", onboarding.RouteDashboard, h.Credential.Status, http.MethodGet)

	route("/dashboard", onboarding.RouteDashboard, h.Dashboard.GetDashboard, http.MethodGet)
	route("/help", onboarding.RouteHelp, h.Dashboard.GetHelp, http.MethodGet)
	route("/scan", onboarding.RouteScan, h.Dashboard.Scan, http.MethodPost)

	route("/doctors", onboarding.RouteDoctors, h.Doctor.Search, http.MethodGet)
	route("/doctors/{id}", onboarding.RouteDoctors, h.Doctor.GetDoctor, http.MethodGet)
	route("/doctors/{id}/availability", onboarding.RouteDoctors, h.Doctor.GetAvailability, http.MethodGet)
	route("/book/{id}", onboarding.RouteBook, h.Appointment.Book, http.MethodPost)

	route("/appointments", onboarding.RouteAppointments, h.Appointment.ListAppointments, http.MethodGet)
	route("/consultations", onboarding.RouteConsultations, h.Appointment.ListConsultations, http.MethodGet)
	route("/consultation/{id}", onboarding.RouteConsultation, h.Appointment.GetConsultation, http.MethodGet)
	route("/consultation/{id}/summary", onboarding.RouteConsultation, h.Appointment.Summarize, http.MethodPost)

	route("/patients", onboarding.RoutePatients, h.Patient.ListPatients, http.MethodGet)
	route("/patients/{id}", onboarding.RoutePatients, h.Patient.GetPatient, http.MethodGet)

	route("/availability", onboarding.RouteAvailability, h.Availability.GetAvailability, http.MethodGet)
	route("/availability/generate", onboarding.RouteAvailability, h.Availability.GenerateSlots, http.MethodPost)
	route("/availability/{date}", onboarding.RouteAvailability, h.Availability.SaveDay, http.MethodPut)
	route("/availability/{date}/{time}", onboarding.RouteAvailability, h.Availability.RemoveSlot, http.MethodDelete)

	route("/verification-call/slots", onboarding.RouteScheduleVerificationCall, h.VerificationCall.GetSlots, http.MethodGet)
	route("/verification-call", onboarding.RouteScheduleVerificationCall, h.VerificationCall.Schedule, http.MethodPost)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.middlewares.Auth.Authenticate)
	admin.Use(guard(onboarding.RouteAdmin))
	admin.Use(middleware.RequireRole(entity.RoleAdmin))
	admin.HandleFunc("/doctors", h.Admin.ListDoctors).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}/verification", h.Admin.ReviewDoctor).Methods(http.MethodPut)
	admin.HandleFunc("/audit-logs", h.AuditLog.GetAllAuditLogs).Methods(http.MethodGet)

	if r.metrics != nil {
		r.router.Handle("/metrics", r.metrics).Methods(http.MethodGet)
	}
	if r.uploads != nil {
		r.router.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", r.uploads))
	}

	// Add CORS middleware
	r.router.Use(r.middlewares.CORS.Handle)
	if r.middlewares.Metrics != nil {
		r.router.Use(r.middlewares.Metrics)
	}

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
