package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/reviewly/api/internal/domain"
)

const employeeCodeAttempts = 5

// staffService implements StaffService.
type staffService struct {
	staff   StaffRepository
	reviews ReviewRepository
	now     func() time.Time
}

// NewStaffService creates a StaffService. A nil clock uses time.Now.
func NewStaffService(staff StaffRepository, reviews ReviewRepository, now func() time.Time) StaffService {
	if now == nil {
		now = time.Now
	}
	return &staffService{staff: staff, reviews: reviews, now: now}
}

func (s *staffService) List(ctx context.Context) ([]domain.RatedStaff, error) {
	members, err := s.staff.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	ratings := map[string]domain.StaffRating{}
	if len(ids) > 0 {
		if ratings, err = s.reviews.RatingsByStaff(ctx, ids); err != nil {
			return nil, err
		}
	}
	return domain.WithRatings(members, ratings), nil
}

func (s *staffService) Create(ctx context.Context, cmd CreateStaffCommand) (*domain.StaffMember, error) {
	name, err := domain.NewStaffName(cmd.Name)
	if err != nil {
		return nil, err
	}
	gender, err := domain.NewGender(cmd.Gender)
	if err != nil {
		return nil, err
	}
	active := true
	if cmd.Active != nil {
		active = *cmd.Active
	}

	now := s.now()
	member := &domain.StaffMember{
		Name:      name,
		PhotoURL:  strings.TrimSpace(cmd.PhotoURL),
		Gender:    gender,
		Active:    active,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// employeeId carries a unique index; regenerate on collision.
	for attempt := 0; attempt < employeeCodeAttempts; attempt++ {
		member.EmployeeID = domain.NewEmployeeCode()
		err = s.staff.Create(ctx, member)
		if !errors.Is(err, domain.ErrAlreadyExists) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (s *staffService) Update(ctx context.Context, id string, cmd UpdateStaffCommand) (*domain.StaffMember, error) {
	var patch StaffPatch
	if cmd.Name != nil && strings.TrimSpace(*cmd.Name) != "" {
		name, err := domain.NewStaffName(*cmd.Name)
		if err != nil {
			return nil, err
		}
		patch.Name = &name
	}
	if cmd.PhotoURL != nil {
		photo := strings.TrimSpace(*cmd.PhotoURL)
		patch.PhotoURL = &photo
	}
	if cmd.Gender != nil && strings.TrimSpace(*cmd.Gender) != "" {
		gender, err := domain.NewGender(*cmd.Gender)
		if err != nil {
			return nil, err
		}
		patch.Gender = &gender
	}
	patch.Active = cmd.Active

	if patch.Empty() {
		return s.staff.FindByID(ctx, id)
	}
	return s.staff.Update(ctx, id, patch, s.now())
}

// Delete removes every review that references the member before the member itself,
// so a failed cascade leaves the member in place and the call can be retried.
func (s *staffService) Delete(ctx context.Context, id string) error {
	if _, err := s.staff.FindByID(ctx, id); err != nil {
		return err
	}
	if _, err := s.reviews.DeleteByStaff(ctx, id); err != nil {
		return err
	}
	return s.staff.Delete(ctx, id)
}

// Stats is recomputed from the live reviews; an unknown id yields an all-zero summary.
func (s *staffService) Stats(ctx context.Context, id string) (domain.Summary, error) {
	reviews, err := s.reviews.FindForStats(ctx, id)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Aggregate(reviews), nil
}
