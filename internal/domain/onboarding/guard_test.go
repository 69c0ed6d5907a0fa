package onboarding

import (
	"errors"
	"testing"

	"docconnect/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestGuard(t *testing.T) {
	verified := &entity.Identity{SignInMethod: entity.SignInMethodPassword, EmailVerified: true}
	unverified := &entity.Identity{SignInMethod: entity.SignInMethodPassword}
	federated := &entity.Identity{SignInMethod: entity.SignInMethodGoogle}
	withRole := &entity.UserProfile{Role: entity.RolePatient}

	tests := []struct {
		name string
		in   GuardInput
		want Outcome
	}{
		{"anonymous", GuardInput{RequireEmailVerification: true}, OutcomeUnauthenticated},
		{"lookup failure", GuardInput{Identity: verified, LookupErr: errors.New("permission denied"), RequireEmailVerification: true}, OutcomeUnauthenticated},
		{"unconfirmed email wins over lookup failure", GuardInput{Identity: unverified, LookupErr: errors.New("permission denied"), RequireEmailVerification: true}, OutcomeEmailUnverified},
		{"lookup failure without enforcement", GuardInput{Identity: unverified, LookupErr: errors.New("permission denied")}, OutcomeUnauthenticated},
		{"password email unverified", GuardInput{Identity: unverified, Profile: withRole, RequireEmailVerification: true}, OutcomeEmailUnverified},
		{"verification not enforced", GuardInput{Identity: unverified, Profile: withRole}, OutcomeReady},
		{"federated skips email check", GuardInput{Identity: federated, Profile: withRole, RequireEmailVerification: true}, OutcomeReady},
		{"no profile", GuardInput{Identity: verified, RequireEmailVerification: true}, OutcomeProfileIncomplete},
		{"profile without role", GuardInput{Identity: federated, Profile: &entity.UserProfile{FirstName: "Ann"}, RequireEmailVerification: true}, OutcomeProfileIncomplete},
		{"ready", GuardInput{Identity: verified, Profile: withRole, RequireEmailVerification: true}, OutcomeReady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Guard(tt.in))
		})
	}
}

func TestOutcomeRedirect(t *testing.T) {
	assert.Equal(t, RouteLogin, OutcomeUnauthenticated.Redirect())
	assert.Equal(t, RouteVerifyEmail, OutcomeEmailUnverified.Redirect())
	assert.Equal(t, RouteCompleteProfile, OutcomeProfileIncomplete.Redirect())
	assert.Empty(t, OutcomeReady.Redirect())
}
