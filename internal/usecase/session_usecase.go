package usecase

import (
	"context"

	"docconnect/internal/domain/entity"
	"docconnect/internal/domain/onboarding"
	"docconnect/internal/domain/repository"
	"docconnect/internal/infrastructure/monitoring"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "docconnect/usecase"

// Session is everything one navigation decision was derived from.
type Session struct {
	Identity *entity.Identity
	Profile  *entity.UserProfile
	Doctor   *entity.DoctorProfile
	Decision onboarding.Decision
}

// UserID returns the identity id, or uuid.Nil for an anonymous session.
func (s *Session) UserID() uuid.UUID {
	if s == nil || s.Identity == nil {
		return uuid.Nil
	}
	return s.Identity.ID
}

type SessionUsecase interface {
	// Resolve reads the identity and its documents afresh and decides whether
	// route may render. A failed read resolves to the login redirect; the
	// returned error is non-nil only when ctx is done.
	Resolve(ctx context.Context, identityID *uuid.UUID, route string) (*Session, error)
}

type sessionUsecase struct {
	log          *logrus.Logger
	identityRepo repository.IdentityRepository
	userRepo     repository.UserProfileRepository
	doctorRepo   repository.DoctorProfileRepository
	metrics      *monitoring.Metrics
	tracer       trace.Tracer
	requireEmail bool
}

func NewSessionUsecase(
	log *logrus.Logger,
	identityRepo repository.IdentityRepository,
	userRepo repository.UserProfileRepository,
	doctorRepo repository.DoctorProfileRepository,
	metrics *monitoring.Metrics,
	requireEmailVerification bool,
) SessionUsecase {
	return &sessionUsecase{
		log:          log,
		identityRepo: identityRepo,
		userRepo:     userRepo,
		doctorRepo:   doctorRepo,
		metrics:      metrics,
		tracer:       otel.Tracer(tracerName),
		requireEmail: requireEmailVerification,
	}
}

func (u *sessionUsecase) Resolve(ctx context.Context, identityID *uuid.UUID, route string) (*Session, error) {
	ctx, span := u.tracer.Start(ctx, "SessionUsecase.Resolve", trace.WithAttributes(attribute.String("route", route)))
	defer span.End()

	session := &Session{}
	in := onboarding.GuardInput{RequireEmailVerification: u.requireEmail}

	if identityID != nil {
		in.LookupErr = u.load(ctx, *identityID, session)
		if in.LookupErr != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				span.SetStatus(codes.Error, ctxErr.Error())
				return nil, ctxErr
			}
			u.log.Warnf("Failed to load session documents for %s: %+v", *identityID, in.LookupErr)
			u.metrics.RecordProfileLookupFailure()
			span.RecordError(in.LookupErr)
		}
	}
	in.Identity = session.Identity
	in.Profile = session.Profile

	session.Decision = onboarding.Resolve(route, in, session.Doctor)

	span.SetAttributes(
		attribute.String("outcome", string(session.Decision.Outcome)),
		attribute.String("stage", string(session.Decision.Stage)),
		attribute.Bool("allowed", session.Decision.Allowed),
	)
	u.metrics.RecordNavigationDecision(string(session.Decision.Outcome), string(session.Decision.Stage), session.Decision.Allowed)

	return session, nil
}

// load performs one read per document. The doctor profile is read only for doctors.
func (u *sessionUsecase) load(ctx context.Context, id uuid.UUID, session *Session) error {
	identity, err := u.identityRepo.FindByID(ctx, id)
	if err != nil || identity == nil {
		return err
	}
	session.Identity = identity

	profile, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	session.Profile = profile

	if profile.IsDoctor() {
		doctor, err := u.doctorRepo.FindByUserID(ctx, id)
		if err != nil {
			return err
		}
		session.Doctor = doctor
	}
	return nil
}
