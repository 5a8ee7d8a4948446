package application

import (
	"context"

	"github.com/reviewly/api/internal/domain"
)

// RecentReviewCount is the number of latest reviews on the dashboard.
const RecentReviewCount = 5

// reviewService implements ReviewService.
type reviewService struct {
	reviews ReviewRepository
	staff   StaffRepository
}

// NewReviewService creates a ReviewService.
func NewReviewService(reviews ReviewRepository, staff StaffRepository) ReviewService {
	return &reviewService{reviews: reviews, staff: staff}
}

func (s *reviewService) List(ctx context.Context, filter ReviewFilter, paging Paging) ([]ReviewListItem, int64, error) {
	reviews, total, err := s.reviews.Find(ctx, filter, paging)
	if err != nil {
		return nil, 0, err
	}
	items, err := s.resolve(ctx, reviews)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *reviewService) Delete(ctx context.Context, id string) error {
	return s.reviews.Delete(ctx, id)
}

func (s *reviewService) Overall(ctx context.Context) (OverallStats, error) {
	all, err := s.reviews.FindForStats(ctx, "")
	if err != nil {
		return OverallStats{}, err
	}
	active, err := s.staff.CountActive(ctx)
	if err != nil {
		return OverallStats{}, err
	}
	recent, err := s.reviews.Recent(ctx, RecentReviewCount)
	if err != nil {
		return OverallStats{}, err
	}
	items, err := s.resolve(ctx, recent)
	if err != nil {
		return OverallStats{}, err
	}
	return OverallStats{
		Summary:       domain.Aggregate(all),
		ActiveStaff:   active,
		RecentReviews: items,
	}, nil
}

// resolve joins each review with its staff member in one lookup.
func (s *reviewService) resolve(ctx context.Context, reviews []domain.Review) ([]ReviewListItem, error) {
	ids := make([]string, 0, len(reviews))
	seen := make(map[string]struct{}, len(reviews))
	for _, r := range reviews {
		if _, ok := seen[r.StaffID]; ok {
			continue
		}
		seen[r.StaffID] = struct{}{}
		ids = append(ids, r.StaffID)
	}

	members := map[string]domain.StaffMember{}
	if len(ids) > 0 {
		var err error
		if members, err = s.staff.FindByIDs(ctx, ids); err != nil {
			return nil, err
		}
	}

	items := make([]ReviewListItem, 0, len(reviews))
	for _, r := range reviews {
		item := ReviewListItem{Review: r}
		if m, ok := members[r.StaffID]; ok {
			member := m
			item.Staff = &member
		}
		items = append(items, item)
	}
	return items, nil
}
