package application

import (
	"context"
	"time"

	"github.com/reviewly/api/internal/domain"
)

// StaffRepository abstracts read access to staff records.
type StaffRepository interface {
	FindActive(ctx context.Context) ([]domain.StaffMember, error)
	FindByID(ctx context.Context, id string) (*domain.StaffMember, error)
}

// ReviewRepository handles the public review reads/writes.
type ReviewRepository interface {
	ExistsFromAddressSince(ctx context.Context, address string, since time.Time) (bool, error)
	Create(ctx context.Context, review *domain.Review) error
	FindByStaff(ctx context.Context, staffID string, paging Paging) ([]domain.Review, int64, error)
	RatingsByStaff(ctx context.Context, staffIDs []string) (map[string]domain.StaffRating, error)
}

// Paging controls pagination.
type Paging struct {
	Page  int
	Limit int
}

// Skip returns the number of records before the requested page.
func (p Paging) Skip() int64 {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	return int64((p.Page - 1) * p.Limit)
}

// StaffQueryService describes the public staff reads. Ratings are computed live.
type StaffQueryService interface {
	ListActive(ctx context.Context) ([]domain.RatedStaff, error)
	Detail(ctx context.Context, id string, includeInactive bool) (*domain.RatedStaff, error)
}

// SubmissionService is the gate in front of review persistence. It blocks an address for the
// duplicate window after each accepted review.
type SubmissionService interface {
	IsBlocked(ctx context.Context, address string) (bool, error)
	Submit(ctx context.Context, submission domain.Submission, address string) (*domain.Review, error)
	ListByStaff(ctx context.Context, staffID string, paging Paging) ([]domain.Review, int64, error)
}
