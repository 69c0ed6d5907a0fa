package mailer

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
)

// Mailer delivers transactional email.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, token string) error
}

// logMailer writes the verification link to the log instead of sending it.
type logMailer struct {
	log     *logrus.Logger
	baseURL string
}

func NewLogMailer(log *logrus.Logger, baseURL string) Mailer {
	return &logMailer{log: log, baseURL: baseURL}
}

func (m *logMailer) SendVerificationEmail(ctx context.Context, to, token string) error {
	link := VerificationLink(m.baseURL, token)
	m.log.WithFields(logrus.Fields{
		"to":   to,
		"link": link,
	}).Info("Verification email queued")
	return nil
}

func VerificationLink(baseURL, token string) string {
	return fmt.Sprintf("%s/verify-email?token=%s", baseURL, url.QueryEscape(token))
}
