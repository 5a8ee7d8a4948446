package application_test

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/reviewly/api/internal/admin/application"
	"github.com/reviewly/api/internal/domain"
)

type memStaff struct {
	members map[string]domain.StaffMember
	seq     int
	// collisions forces the next N creates to report a duplicate employee code.
	collisions int
}

func newMemStaff() *memStaff {
	return &memStaff{members: map[string]domain.StaffMember{}}
}

func (s *memStaff) FindAll(_ context.Context) ([]domain.StaffMember, error) {
	out := make([]domain.StaffMember, 0, len(s.members))
	for _, m := range s.members {
		out = append(out, m)
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

func (s *memStaff) FindByIDs(_ context.Context, ids []string) (map[string]domain.StaffMember, error) {
	out := map[string]domain.StaffMember{}
	for _, id := range ids {
		if m, ok := s.members[id]; ok {
			out[id] = m
		}
	}
	return out, nil
}

func (s *memStaff) Create(_ context.Context, member *domain.StaffMember) error {
	if s.collisions > 0 {
		s.collisions--
		return domain.ErrAlreadyExists
	}
	s.seq++
	member.ID = "s" + strconv.Itoa(s.seq)
	s.members[member.ID] = *member
	return nil
}

func (s *memStaff) Update(_ context.Context, id string, patch application.StaffPatch, now time.Time) (*domain.StaffMember, error) {
	m, ok := s.members[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Name != nil {
		m.Name = *patch.Name
	}
	if patch.PhotoURL != nil {
		m.PhotoURL = *patch.PhotoURL
	}
	if patch.Gender != nil {
		m.Gender = *patch.Gender
	}
	if patch.Active != nil {
		m.Active = *patch.Active
	}
	m.UpdatedAt = now
	s.members[id] = m
	return &m, nil
}

func (s *memStaff) Delete(_ context.Context, id string) error {
	if _, ok := s.members[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.members, id)
	return nil
}

func (s *memStaff) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, m := range s.members {
		if m.Active {
			n++
		}
	}
	return n, nil
}

type memReviews struct {
	reviews []domain.Review
	seq     int
	// deleteErr makes DeleteByStaff fail without touching anything.
	deleteErr error
}

func (r *memReviews) add(review domain.Review) domain.Review {
	r.seq++
	review.ID = "r" + strconv.Itoa(r.seq)
	r.reviews = append(r.reviews, review)
	return review
}

func (r *memReviews) Find(_ context.Context, filter application.ReviewFilter, paging application.Paging) ([]domain.Review, int64, error) {
	matched := make([]domain.Review, 0)
	for i := len(r.reviews) - 1; i >= 0; i-- {
		rv := r.reviews[i]
		if filter.StaffID != "" && rv.StaffID != filter.StaffID {
			continue
		}
		if filter.Stars != 0 && domain.StarBucket(rv.Rating) != filter.Stars {
			continue
		}
		matched = append(matched, rv)
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

func (r *memReviews) FindForStats(_ context.Context, staffID string) ([]domain.Review, error) {
	out := make([]domain.Review, 0)
	for _, rv := range r.reviews {
		if staffID == "" || rv.StaffID == staffID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *memReviews) Recent(_ context.Context, limit int) ([]domain.Review, error) {
	out := make([]domain.Review, 0, limit)
	for i := len(r.reviews) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.reviews[i])
	}
	return out, nil
}

func (r *memReviews) Delete(_ context.Context, id string) error {
	for i, rv := range r.reviews {
		if rv.ID == id {
			r.reviews = append(r.reviews[:i], r.reviews[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memReviews) DeleteByStaff(_ context.Context, staffID string) (int64, error) {
	if r.deleteErr != nil {
		return 0, r.deleteErr
	}
	kept := r.reviews[:0]
	var removed int64
	for _, rv := range r.reviews {
		if rv.StaffID == staffID {
			removed++
			continue
		}
		kept = append(kept, rv)
	}
	r.reviews = kept
	return removed, nil
}

func (r *memReviews) RatingsByStaff(_ context.Context, staffIDs []string) (map[string]domain.StaffRating, error) {
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

type memCustomers struct {
	customers map[string]domain.Customer
	seq       int
}

func newMemCustomers() *memCustomers {
	return &memCustomers{customers: map[string]domain.Customer{}}
}

func (c *memCustomers) FindAll(_ context.Context) ([]domain.Customer, error) {
	out := make([]domain.Customer, 0, len(c.customers))
	for _, cu := range c.customers {
		out = append(out, cu)
	}
	return out, nil
}

func (c *memCustomers) FindByID(_ context.Context, id string) (*domain.Customer, error) {
	cu, ok := c.customers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &cu, nil
}

func (c *memCustomers) Create(_ context.Context, customer *domain.Customer) error {
	c.seq++
	customer.ID = "c" + strconv.Itoa(c.seq)
	c.customers[customer.ID] = *customer
	return nil
}

func (c *memCustomers) Update(_ context.Context, id string, patch application.CustomerPatch, now time.Time) (*domain.Customer, error) {
	cu, ok := c.customers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Name != nil {
		cu.Name = *patch.Name
	}
	if patch.Document != nil {
		cu.Document = *patch.Document
	}
	if patch.Phone != nil {
		cu.Phone = *patch.Phone
	}
	if patch.Email != nil {
		cu.Email = *patch.Email
	}
	cu.UpdatedAt = now
	c.customers[id] = cu
	return &cu, nil
}

func (c *memCustomers) SetWeek(_ context.Context, id string, index int, state domain.WeekState, now time.Time) (*domain.Customer, error) {
	cu, ok := c.customers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if err := domain.ValidateWeekIndex(index); err != nil {
		return nil, err
	}
	states := domain.NormalizeWeekStates(append([]domain.WeekState(nil), cu.WeekStates...))
	states[index] = state
	cu.WeekStates = states
	cu.UpdatedAt = now
	c.customers[id] = cu
	return &cu, nil
}

func (c *memCustomers) Delete(_ context.Context, id string) error {
	if _, ok := c.customers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(c.customers, id)
	return nil
}

type memAccounts struct {
	accounts map[string]domain.Account
	seq      int
}

func newMemAccounts() *memAccounts {
	return &memAccounts{accounts: map[string]domain.Account{}}
}

func (a *memAccounts) Count(_ context.Context) (int64, error) {
	return int64(len(a.accounts)), nil
}

func (a *memAccounts) FindAll(_ context.Context) ([]domain.Account, error) {
	out := make([]domain.Account, 0, len(a.accounts))
	for _, acc := range a.accounts {
		out = append(out, acc)
	}
	return out, nil
}

func (a *memAccounts) FindByID(_ context.Context, id string) (*domain.Account, error) {
	acc, ok := a.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &acc, nil
}

func (a *memAccounts) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	for _, acc := range a.accounts {
		if acc.Username == username {
			found := acc
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (a *memAccounts) ExistsByUsernameOrEmail(_ context.Context, username, email, excludeID string) (bool, error) {
	for _, acc := range a.accounts {
		if acc.ID == excludeID {
			continue
		}
		if (username != "" && acc.Username == username) || (email != "" && acc.Email == email) {
			return true, nil
		}
	}
	return false, nil
}

func (a *memAccounts) Create(_ context.Context, account *domain.Account) error {
	a.seq++
	account.ID = "a" + strconv.Itoa(a.seq)
	a.accounts[account.ID] = *account
	return nil
}

func (a *memAccounts) Save(_ context.Context, account *domain.Account) error {
	if _, ok := a.accounts[account.ID]; !ok {
		return domain.ErrNotFound
	}
	a.accounts[account.ID] = *account
	return nil
}

func (a *memAccounts) Delete(_ context.Context, id string) error {
	if _, ok := a.accounts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(a.accounts, id)
	return nil
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type stubTokens struct{}

func (stubTokens) Issue(identity domain.Identity) (string, error) {
	return strings.Join([]string{identity.ID, identity.Username, string(identity.Role)}, "|"), nil
}
