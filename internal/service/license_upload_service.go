package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"docconnect/config"
	"docconnect/internal/domain/entity"
	"docconnect/internal/domain/repository"
	"docconnect/internal/infrastructure/monitoring"
	"docconnect/internal/infrastructure/reporting"
	"docconnect/internal/infrastructure/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// =============================================================================
// Errors
// =============================================================================

var (
	ErrUploadQueueFull      = errors.New("license upload queue is full")
	ErrUploadServiceStopped = errors.New("license upload service is stopped")
)

// =============================================================================
// Constants
// =============================================================================

const (
	// Timeout for a single store round trip
	uploadAttemptTimeout = 30 * time.Second

	// Timeout for patching the doctor profile after the upload settles
	uploadPatchTimeout = 10 * time.Second
)

// =============================================================================
// Types
// =============================================================================

// LicenseUploadJob is one license document waiting to be stored.
type LicenseUploadJob struct {
	UserID      uuid.UUID
	ObjectName  string
	ContentType string
	Data        []byte
}

// LicenseUploadService stores license documents off the request path.
//
// A job is retried with linear backoff up to MaxAttempts. On success the
// doctor profile gets the object URL and status uploaded; on final failure the
// status becomes failed and the error is reported.
//
// Stop drains the queue: jobs accepted before Stop are still attempted, with
// backoff skipped.
type LicenseUploadService struct {
	store      storage.Store
	doctorRepo repository.DoctorProfileRepository
	reporter   reporting.Reporter
	metrics    *monitoring.Metrics
	log        *logrus.Logger

	maxAttempts int
	retryDelay  time.Duration

	queue chan LicenseUploadJob

	// Graceful shutdown
	mu       sync.RWMutex
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// =============================================================================
// Constructor
// =============================================================================

// NewLicenseUploadService starts the worker goroutine. Call Stop() during
// graceful shutdown.
func NewLicenseUploadService(
	cfg config.UploadConfig,
	store storage.Store,
	doctorRepo repository.DoctorProfileRepository,
	reporter reporting.Reporter,
	metrics *monitoring.Metrics,
	log *logrus.Logger,
) *LicenseUploadService {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	queueSize := cfg.QueueSize
	if queueSize < 1 {
		queueSize = 1
	}

	svc := &LicenseUploadService{
		store:       store,
		doctorRepo:  doctorRepo,
		reporter:    reporter,
		metrics:     metrics,
		log:         log,
		maxAttempts: maxAttempts,
		retryDelay:  cfg.RetryDelay,
		queue:       make(chan LicenseUploadJob, queueSize),
		stopChan:    make(chan struct{}),
	}

	svc.wg.Add(1)
	go svc.workerLoop()

	return svc
}

// =============================================================================
// Lifecycle Methods
// =============================================================================

// Stop waits for queued uploads to settle. Safe to call multiple times.
func (s *LicenseUploadService) Stop() {
	s.mu.Lock()
	first := s.stopped.CompareAndSwap(false, true)
	s.mu.Unlock()

	if first {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("LicenseUploadService stopped")
	}
}

// =============================================================================
// Public Methods
// =============================================================================

// Enqueue hands the job to the worker without blocking.
func (s *LicenseUploadService) Enqueue(job LicenseUploadJob) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.stopped.Load() {
		return ErrUploadServiceStopped
	}

	select {
	case s.queue <- job:
		s.log.WithFields(logrus.Fields{
			"user_id": job.UserID,
			"object":  job.ObjectName,
		}).Debug("License upload queued")
		return nil
	default:
		return ErrUploadQueueFull
	}
}

// =============================================================================
// Private Helper Methods
// =============================================================================

func (s *LicenseUploadService) workerLoop() {
	defer s.wg.Done()

	for {
		select {
		case job := <-s.queue:
			s.process(job)
		case <-s.stopChan:
			s.drain()
			return
		}
	}
}

func (s *LicenseUploadService) drain() {
	for {
		select {
		case job := <-s.queue:
			s.process(job)
		default:
			return
		}
	}
}

func (s *LicenseUploadService) process(job LicenseUploadJob) {
	var lastErr error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		url, err := s.upload(job)
		if err == nil {
			s.markUploaded(job, url)
			return
		}
		lastErr = err

		if attempt < s.maxAttempts {
			s.metrics.RecordLicenseUpload("retry")
			s.log.Warnf("Failed to upload license for %s (attempt %d/%d): %+v", job.UserID, attempt, s.maxAttempts, err)
			s.backoff(attempt)
		}
	}

	s.markFailed(job, lastErr)
}

func (s *LicenseUploadService) upload(job LicenseUploadJob) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), uploadAttemptTimeout)
	defer cancel()

	id, err := s.store.Put(ctx, job.ObjectName, job.Data, job.ContentType)
	if err != nil {
		return "", err
	}
	return s.store.URL(ctx, id)
}

// backoff sleeps retryDelay*attempt, or not at all once Stop was called.
func (s *LicenseUploadService) backoff(attempt int) {
	if s.retryDelay <= 0 {
		return
	}
	timer := time.NewTimer(s.retryDelay * time.Duration(attempt))
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-s.stopChan:
	}
}

func (s *LicenseUploadService) markUploaded(job LicenseUploadJob, url string) {
	ctx, cancel := context.WithTimeout(context.Background(), uploadPatchTimeout)
	defer cancel()

	fields := repository.Fields{
		entity.FieldLicenseDocument:     url,
		entity.FieldLicenseUploadStatus: entity.LicenseUploadUploaded,
	}
	if err := s.doctorRepo.Merge(ctx, job.UserID, fields); err != nil {
		s.reportPatchError(ctx, job, fields, err)
		return
	}

	s.metrics.RecordLicenseUpload("uploaded")
	s.log.WithField("user_id", job.UserID).Info("License document uploaded")
}

func (s *LicenseUploadService) markFailed(job LicenseUploadJob, cause error) {
	ctx, cancel := context.WithTimeout(context.Background(), uploadPatchTimeout)
	defer cancel()

	s.metrics.RecordLicenseUpload("failed")
	s.log.Errorf("Failed to upload license for %s after %d attempts: %+v", job.UserID, s.maxAttempts, cause)
	s.reporter.ReportError(ctx, fmt.Errorf("license upload: %w", cause), map[string]string{
		"component": "license_upload",
		"user_id":   job.UserID.String(),
	})

	fields := repository.Fields{
		entity.FieldLicenseUploadStatus: entity.LicenseUploadFailed,
	}
	if err := s.doctorRepo.Merge(ctx, job.UserID, fields); err != nil {
		s.reportPatchError(ctx, job, fields, err)
	}
}

func (s *LicenseUploadService) reportPatchError(ctx context.Context, job LicenseUploadJob, fields repository.Fields, err error) {
	if errors.Is(err, repository.ErrPermissionDenied) {
		s.reporter.ReportPermissionError(ctx, &reporting.PermissionError{
			Operation:           "update",
			Path:                "doctor_profiles/" + job.UserID.String(),
			RequestResourceData: fields,
			Err:                 err,
		})
		return
	}
	s.log.Warnf("Failed to update license status for %s: %+v", job.UserID, err)
	s.reporter.ReportError(ctx, err, map[string]string{"component": "license_upload"})
}
