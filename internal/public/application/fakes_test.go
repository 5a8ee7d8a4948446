package application_test

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/reviewly/api/internal/domain"
	"github.com/reviewly/api/internal/public/application"
)

type memStaff struct {
	members map[string]domain.StaffMember
}

func newMemStaff(members ...domain.StaffMember) *memStaff {
	s := &memStaff{members: map[string]domain.StaffMember{}}
	for _, m := range members {
		s.members[m.ID] = m
	}
	return s
}

func (s *memStaff) FindActive(_ context.Context) ([]domain.StaffMember, error) {
	out := make([]domain.StaffMember, 0)
	for _, m := range s.members {
		if m.Active {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStaff) FindByID(_ context.Context, id string) (*domain.StaffMember, error) {
	m, ok := s.members[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}

type memReviews struct {
	mu      sync.Mutex
	reviews []domain.Review
	seq     int
}

func (r *memReviews) ExistsFromAddressSince(_ context.Context, address string, since time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rv := range r.reviews {
		if rv.IPAddress == address && !rv.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memReviews) Create(_ context.Context, review *domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	review.ID = "r" + strconv.Itoa(r.seq)
	r.reviews = append(r.reviews, *review)
	return nil
}

func (r *memReviews) FindByStaff(_ context.Context, staffID string, paging application.Paging) ([]domain.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]domain.Review, 0)
	for i := len(r.reviews) - 1; i >= 0; i-- {
		if r.reviews[i].StaffID == staffID {
			matched = append(matched, r.reviews[i])
		}
	}
	total := int64(len(matched))
	start := int(paging.Skip())
	if start > len(matched) {
		start = len(matched)
	}
	end := start + paging.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *memReviews) RatingsByStaff(_ context.Context, staffIDs []string) (map[string]domain.StaffRating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, rv := range r.reviews {
		sums[rv.StaffID] += rv.Rating
		counts[rv.StaffID]++
	}
	out := map[string]domain.StaffRating{}
	for _, id := range staffIDs {
		if counts[id] > 0 {
			out[id] = domain.StaffRating{Average: domain.MeanRating(sums[id], counts[id]), Count: counts[id]}
		}
	}
	return out, nil
}

func (r *memReviews) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reviews)
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }
