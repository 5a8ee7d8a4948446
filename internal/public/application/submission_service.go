package application

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/reviewly/api/internal/domain"
)

const instrumentationName = "github.com/reviewly/api/internal/public/application"

// DefaultDuplicateWindow is how long an address stays blocked after a review.
const DefaultDuplicateWindow = 24 * time.Hour

// submissionService implements SubmissionService.
type submissionService struct {
	reviews ReviewRepository
	staff   StaffRepository
	window  time.Duration
	now     func() time.Time
	tracer  trace.Tracer
	counter metric.Int64Counter
}

// NewSubmissionService wires the gate. A zero window uses DefaultDuplicateWindow and a nil
// clock uses time.Now.
func NewSubmissionService(reviews ReviewRepository, staff StaffRepository, window time.Duration, now func() time.Time) (SubmissionService, error) {
	if window <= 0 {
		window = DefaultDuplicateWindow
	}
	if now == nil {
		now = time.Now
	}
	counter, err := otel.Meter(instrumentationName).Int64Counter(
		"reviews.submissions",
		metric.WithDescription("Review submissions by outcome"),
	)
	if err != nil {
		return nil, err
	}
	return &submissionService{
		reviews: reviews,
		staff:   staff,
		window:  window,
		now:     now,
		tracer:  otel.Tracer(instrumentationName),
		counter: counter,
	}, nil
}

func (s *submissionService) IsBlocked(ctx context.Context, address string) (bool, error) {
	return s.reviews.ExistsFromAddressSince(ctx, address, s.now().Add(-s.window))
}

// Submit checks, in order: address window, scores, staff existence. Nothing is written on failure.
// The check and the insert are not atomic; two concurrent submissions from one address may both pass.
func (s *submissionService) Submit(ctx context.Context, submission domain.Submission, address string) (*domain.Review, error) {
	ctx, span := s.tracer.Start(ctx, "review submission")
	defer span.End()
	span.SetAttributes(attribute.String("staff.id", submission.StaffID))

	review, err := s.submit(ctx, submission, address)
	outcome := "accepted"
	switch {
	case errors.Is(err, domain.ErrDuplicateSubmission):
		outcome = "blocked"
	case err != nil:
		outcome = "rejected"
	}
	span.SetAttributes(attribute.String("outcome", outcome))
	s.counter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	return review, err
}

func (s *submissionService) submit(ctx context.Context, submission domain.Submission, address string) (*domain.Review, error) {
	now := s.now()
	blocked, err := s.reviews.ExistsFromAddressSince(ctx, address, now.Add(-s.window))
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, domain.ErrDuplicateSubmission
	}

	review, err := domain.NewReview(submission, address, now)
	if err != nil {
		return nil, err
	}

	if _, err := s.staff.FindByID(ctx, submission.StaffID); err != nil {
		return nil, err
	}

	if err := s.reviews.Create(ctx, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *submissionService) ListByStaff(ctx context.Context, staffID string, paging Paging) ([]domain.Review, int64, error) {
	return s.reviews.FindByStaff(ctx, staffID, paging)
}
