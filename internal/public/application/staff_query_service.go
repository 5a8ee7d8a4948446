package application

import (
	"context"

	"github.com/reviewly/api/internal/domain"
)

// staffQueryService implements StaffQueryService.
type staffQueryService struct {
	staff   StaffRepository
	reviews ReviewRepository
}

// NewStaffQueryService creates a new StaffQueryService.
func NewStaffQueryService(staff StaffRepository, reviews ReviewRepository) StaffQueryService {
	return &staffQueryService{staff: staff, reviews: reviews}
}

func (s *staffQueryService) ListActive(ctx context.Context) ([]domain.RatedStaff, error) {
	members, err := s.staff.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return rateStaff(ctx, s.reviews, members)
}

func (s *staffQueryService) Detail(ctx context.Context, id string, includeInactive bool) (*domain.RatedStaff, error) {
	member, err := s.staff.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !member.Active && !includeInactive {
		return nil, domain.ErrNotFound
	}
	rated, err := rateStaff(ctx, s.reviews, []domain.StaffMember{*member})
	if err != nil {
		return nil, err
	}
	return &rated[0], nil
}

// ratingSource returns the live rating of each requested staff id.
type ratingSource interface {
	RatingsByStaff(ctx context.Context, staffIDs []string) (map[string]domain.StaffRating, error)
}

// rateStaff enriches members with their live rating. Members without reviews get a zero rating.
func rateStaff(ctx context.Context, source ratingSource, members []domain.StaffMember) ([]domain.RatedStaff, error) {
	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	ratings := map[string]domain.StaffRating{}
	if len(ids) > 0 {
		var err error
		ratings, err = source.RatingsByStaff(ctx, ids)
		if err != nil {
			return nil, err
		}
	}
	return domain.WithRatings(members, ratings), nil
}
