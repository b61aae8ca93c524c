package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/gema-assessment-intake/internal/dto"
	"github.com/noah-isme/gema-assessment-intake/internal/observability"
	"github.com/noah-isme/gema-assessment-intake/internal/relay"
	"github.com/noah-isme/gema-assessment-intake/internal/repository"
)

// ErrStoreFailed indicates the submission could not be written to local storage.
var ErrStoreFailed = errors.New("failed to store assessment")

// AssessmentService runs the intake pipeline for a single submission.
type AssessmentService interface {
	Submit(ctx context.Context, req dto.AssessmentRequest) (dto.AssessmentAccepted, error)
}

// AssessmentOption customises an assessment service.
type AssessmentOption func(*assessmentService)

// WithClock overrides the time source used for filenames and defaulted sentAt values.
func WithClock(now func() time.Time) AssessmentOption {
	return func(s *assessmentService) {
		if now != nil {
			s.now = now
		}
	}
}

type assessmentService struct {
	store     repository.AssessmentRepository
	relays    []relay.Relayer
	validator *validator.Validate
	logger    zerolog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewAssessmentService constructs the intake service. Relays run in the given order after
// the submission is stored.
func NewAssessmentService(store repository.AssessmentRepository, relays []relay.Relayer, validate *validator.Validate, logger zerolog.Logger, opts ...AssessmentOption) AssessmentService {
	if validate == nil {
		validate = NewValidator()
	}

	s := &assessmentService{
		store:     store,
		relays:    relays,
		validator: validate,
		logger:    logger.With().Str("component", "assessment_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/gema-assessment-intake/internal/service/assessment"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *assessmentService) Submit(ctx context.Context, req dto.AssessmentRequest) (dto.AssessmentAccepted, error) {
	ctx, span := s.tracer.Start(ctx, "assessment.submit")
	defer span.End()

	if err := s.validator.Struct(req); err != nil {
		validationErr := firstValidationError(err)
		span.RecordError(validationErr)
		span.SetStatus(codes.Error, "validation failed")
		observability.AssessmentSubmissions().WithLabelValues(observability.OutcomeRejected).Inc()
		return dto.AssessmentAccepted{}, validationErr
	}

	receivedAt := s.now().UTC()
	submission := dto.NewAssessmentSubmission(req, receivedAt.Format(time.RFC3339))
	filename := SubmissionFilename(receivedAt, submission.StudentName)
	span.SetAttributes(
		attribute.String("assessment.file", filename),
		attribute.Int("assessment.responses", len(submission.Responses)),
	)

	payload, err := json.MarshalIndent(submission, "", "  ")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "serialization failed")
		observability.AssessmentSubmissions().WithLabelValues(observability.OutcomeError).Inc()
		return dto.AssessmentAccepted{}, fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}

	path, err := s.store.Save(ctx, filename, payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		observability.AssessmentSubmissions().WithLabelValues(observability.OutcomeError).Inc()
		return dto.AssessmentAccepted{}, fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}

	response := dto.AssessmentAccepted{OK: true, File: filename}
	observability.AssessmentSubmissions().WithLabelValues(observability.OutcomeAccepted).Inc()
	s.logger.Info().Str("file", filename).Str("path", path).Int("responses", len(submission.Responses)).Msg("assessment stored")

	for _, relayer := range s.relays {
		s.observeRelay(span, filename, relayer.Relay(ctx, payload))
	}

	span.SetStatus(codes.Ok, "stored")
	return response, nil
}

// observeRelay is the only consumer of relay results.
func (s *assessmentService) observeRelay(span trace.Span, filename string, result relay.Result) {
	observability.RelayAttempts().WithLabelValues(result.Target, string(result.Status)).Inc()
	if result.Status != relay.StatusSkipped {
		observability.RelayDuration().WithLabelValues(result.Target).Observe(result.Duration.Seconds())
	}

	span.AddEvent("assessment.relay", trace.WithAttributes(
		attribute.String("relay.target", result.Target),
		attribute.String("relay.status", string(result.Status)),
	))

	logger := s.logger
	switch result.Status {
	case relay.StatusRelayed:
		logger.Info().
			Str("file", filename).
			Str("target", result.Target).
			Int("status_code", result.StatusCode).
			Str("remote_key", result.RemoteKey).
			Dur("duration", result.Duration).
			Msg("assessment relayed")
	case relay.StatusSkipped:
		logger.Debug().Str("file", filename).Str("target", result.Target).Str("reason", result.Reason).Msg("assessment relay skipped")
	default:
		logger.Warn().
			Err(result.Err).
			Str("file", filename).
			Str("target", result.Target).
			Int("status_code", result.StatusCode).
			Dur("duration", result.Duration).
			Msg("assessment relay failed")
	}
}
