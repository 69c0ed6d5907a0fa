package reporting

import (
	"context"
	"fmt"
	"time"

	"docconnect/config"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// PermissionError describes a document write the store refused.
type PermissionError struct {
	Operation           string                 `json:"operation"`
	Path                string                 `json:"path"`
	RequestResourceData map[string]interface{} `json:"requestResourceData,omitempty"`
	Err                 error                  `json:"-"`
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: %s %s", e.Operation, e.Path)
}

func (e *PermissionError) Unwrap() error {
	return e.Err
}

type Reporter interface {
	ReportPermissionError(ctx context.Context, perr *PermissionError)
	ReportError(ctx context.Context, err error, tags map[string]string)
	Flush(timeout time.Duration)
}

// New returns a sentry reporter when a DSN is configured, a log reporter otherwise.
func New(cfg config.SentryConfig, log *logrus.Logger) (Reporter, error) {
	if cfg.DSN == "" {
		return NewLogReporter(log), nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
	}); err != nil {
		return nil, fmt.Errorf("sentry.Init: %w", err)
	}
	return NewSentryReporter(sentry.CurrentHub(), log), nil
}

type sentryReporter struct {
	hub *sentry.Hub
	log *logrus.Logger
}

func NewSentryReporter(hub *sentry.Hub, log *logrus.Logger) Reporter {
	return &sentryReporter{hub: hub, log: log}
}

func (r *sentryReporter) ReportPermissionError(ctx context.Context, perr *PermissionError) {
	hub := r.hubFor(ctx)
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("operation", perr.Operation)
		scope.SetTag("path", perr.Path)
		scope.SetContext("permission_error", sentry.Context{
			"operation":           perr.Operation,
			"path":                perr.Path,
			"requestResourceData": perr.RequestResourceData,
		})
		hub.CaptureException(perr)
	})
	logPermissionError(r.log, perr)
}

func (r *sentryReporter) ReportError(ctx context.Context, err error, tags map[string]string) {
	hub := r.hubFor(ctx)
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		hub.CaptureException(err)
	})
	r.log.WithFields(tagFields(tags)).Errorf("Reported error: %+v", err)
}

func (r *sentryReporter) Flush(timeout time.Duration) {
	r.hub.Flush(timeout)
}

func (r *sentryReporter) hubFor(ctx context.Context) *sentry.Hub {
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		return hub
	}
	return r.hub
}

type logReporter struct {
	log *logrus.Logger
}

func NewLogReporter(log *logrus.Logger) Reporter {
	return &logReporter{log: log}
}

func (r *logReporter) ReportPermissionError(ctx context.Context, perr *PermissionError) {
	logPermissionError(r.log, perr)
}

func (r *logReporter) ReportError(ctx context.Context, err error, tags map[string]string) {
	r.log.WithFields(tagFields(tags)).Errorf("Reported error: %+v", err)
}

func (r *logReporter) Flush(time.Duration) {}

func logPermissionError(log *logrus.Logger, perr *PermissionError) {
	log.WithFields(logrus.Fields{
		"operation":           perr.Operation,
		"path":                perr.Path,
		"requestResourceData": perr.RequestResourceData,
	}).Error("Document write denied")
}

func tagFields(tags map[string]string) logrus.Fields {
	fields := make(logrus.Fields, len(tags))
	for k, v := range tags {
		fields[k] = v
	}
	return fields
}
