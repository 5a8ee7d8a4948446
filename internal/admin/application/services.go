package application

import (
	"context"
	"time"

	"github.com/reviewly/api/internal/domain"
)

// StaffRepository exposes back-office operations on staff records.
type StaffRepository interface {
	FindAll(ctx context.Context) ([]domain.StaffMember, error)
	FindByID(ctx context.Context, id string) (*domain.StaffMember, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]domain.StaffMember, error)
	Create(ctx context.Context, member *domain.StaffMember) error
	Update(ctx context.Context, id string, patch StaffPatch, now time.Time) (*domain.StaffMember, error)
	Delete(ctx context.Context, id string) error
	CountActive(ctx context.Context) (int64, error)
}

// ReviewRepository exposes moderation and statistics reads on reviews.
type ReviewRepository interface {
	Find(ctx context.Context, filter ReviewFilter, paging Paging) ([]domain.Review, int64, error)
	FindForStats(ctx context.Context, staffID string) ([]domain.Review, error)
	Recent(ctx context.Context, limit int) ([]domain.Review, error)
	Delete(ctx context.Context, id string) error
	DeleteByStaff(ctx context.Context, staffID string) (int64, error)
	RatingsByStaff(ctx context.Context, staffIDs []string) (map[string]domain.StaffRating, error)
}

// CustomerRepository exposes CRUD for customer visit logs.
type CustomerRepository interface {
	FindAll(ctx context.Context) ([]domain.Customer, error)
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	Create(ctx context.Context, customer *domain.Customer) error
	Update(ctx context.Context, id string, patch CustomerPatch, now time.Time) (*domain.Customer, error)
	SetWeek(ctx context.Context, id string, index int, state domain.WeekState, now time.Time) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
}

// AccountRepository exposes CRUD for back-office accounts. It returns password hashes, which
// must not leave the service layer.
type AccountRepository interface {
	Count(ctx context.Context) (int64, error)
	FindAll(ctx context.Context) ([]domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email, excludeID string) (bool, error)
	Create(ctx context.Context, account *domain.Account) error
	Save(ctx context.Context, account *domain.Account) error
	Delete(ctx context.Context, id string) error
}

// PasswordHasher hashes and verifies plaintext passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer signs access tokens for an identity.
type TokenIssuer interface {
	Issue(identity domain.Identity) (string, error)
}

// ReviewFilter expresses moderation search criteria.
type ReviewFilter struct {
	StaffID string
	// Stars selects reviews whose rating rounds to this value; zero disables it.
	Stars int
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

// StaffPatch carries the fields present in a partial staff update.
type StaffPatch struct {
	Name     *string
	PhotoURL *string
	Gender   *domain.Gender
	Active   *bool
}

// Empty reports whether the patch changes nothing.
func (p StaffPatch) Empty() bool {
	return p.Name == nil && p.PhotoURL == nil && p.Gender == nil && p.Active == nil
}

// CustomerPatch carries the fields present in a partial customer update.
type CustomerPatch struct {
	Name     *string
	Document *string
	Phone    *string
	Email    *string
}

// Empty reports whether the patch changes nothing.
func (p CustomerPatch) Empty() bool {
	return p.Name == nil && p.Document == nil && p.Phone == nil && p.Email == nil
}

// StaffService describes back-office staff use-cases.
type StaffService interface {
	List(ctx context.Context) ([]domain.RatedStaff, error)
	Create(ctx context.Context, cmd CreateStaffCommand) (*domain.StaffMember, error)
	Update(ctx context.Context, id string, cmd UpdateStaffCommand) (*domain.StaffMember, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, id string) (domain.Summary, error)
}

// ReviewService describes review moderation and dashboard use-cases.
type ReviewService interface {
	List(ctx context.Context, filter ReviewFilter, paging Paging) ([]ReviewListItem, int64, error)
	Delete(ctx context.Context, id string) error
	Overall(ctx context.Context) (OverallStats, error)
}

// CustomerService describes customer visit-log use-cases.
type CustomerService interface {
	List(ctx context.Context) ([]domain.Customer, error)
	Detail(ctx context.Context, id string) (*domain.Customer, error)
	Create(ctx context.Context, cmd CustomerCommand) (*domain.Customer, error)
	Update(ctx context.Context, id string, cmd UpdateCustomerCommand) (*domain.Customer, error)
	SetWeek(ctx context.Context, id string, index int, state string) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
}

// AccountService describes authentication and account management use-cases.
type AccountService interface {
	Login(ctx context.Context, username, password string) (string, *domain.Account, error)
	Register(ctx context.Context, actor *domain.Identity, cmd CreateAccountCommand) (*domain.Account, error)
	Verify(ctx context.Context, identity domain.Identity) (*domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Detail(ctx context.Context, id string) (*domain.Account, error)
	Create(ctx context.Context, cmd CreateAccountCommand) (*domain.Account, error)
	Update(ctx context.Context, actor domain.Identity, id string, cmd UpdateAccountCommand) (*domain.Account, error)
	SetActive(ctx context.Context, actor domain.Identity, id string, active bool) (*domain.Account, error)
	Delete(ctx context.Context, actor domain.Identity, id string) error
}

// CreateStaffCommand contains inputs for creating staff.
type CreateStaffCommand struct {
	Name     string
	PhotoURL string
	Gender   string
	Active   *bool
}

// UpdateStaffCommand contains a partial staff update. Nil fields are left untouched.
type UpdateStaffCommand struct {
	Name     *string
	PhotoURL *string
	Gender   *string
	Active   *bool
}

// CustomerCommand contains inputs for creating customers.
type CustomerCommand struct {
	Name     string
	Document string
	Phone    string
	Email    string
}

// UpdateCustomerCommand contains a partial customer update.
type UpdateCustomerCommand struct {
	Name     *string
	Document *string
	Phone    *string
	Email    *string
}

// CreateAccountCommand contains inputs for new accounts. An empty Role defaults per use-case.
type CreateAccountCommand struct {
	Username string
	Email    string
	Password string
	Role     string
}

// UpdateAccountCommand contains a partial account update.
type UpdateAccountCommand struct {
	Username *string
	Email    *string
	Password *string
	Role     *string
	Active   *bool
}

// ReviewListItem is a review with its staff reference resolved. Staff is nil when the
// referenced member no longer exists.
type ReviewListItem struct {
	domain.Review
	Staff *domain.StaffMember
}

// OverallStats is the dashboard roll-up across every review.
type OverallStats struct {
	Summary       domain.Summary
	ActiveStaff   int64
	RecentReviews []ReviewListItem
}
