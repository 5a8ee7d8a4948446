package admin

import (
	"time"

	adminapp "github.com/reviewly/api/internal/admin/application"
	"github.com/reviewly/api/internal/domain"
	"github.com/reviewly/api/internal/interfaces/http/common"
)

type messageResponse struct {
	Message string `json:"message"`
}

// --- auth ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type accountCreateRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
}

func (req accountCreateRequest) command() adminapp.CreateAccountCommand {
	return adminapp.CreateAccountCommand{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}
}

type accountUpdateRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Active   *bool   `json:"active"`
}

// sessionUser is the compact user block returned with a token.
type sessionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func newSessionUser(a domain.Account) sessionUser {
	return sessionUser{ID: a.ID, Username: a.Username, Email: a.Email, Role: string(a.Role)}
}

type loginResponse struct {
	Token string      `json:"token"`
	User  sessionUser `json:"user"`
}

type verifyResponse struct {
	Status string      `json:"status"`
	User   sessionUser `json:"user"`
}

// accountView never carries the password hash.
type accountView struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newAccountView(a domain.Account) accountView {
	return accountView{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		Role:      string(a.Role),
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

type accountResponse struct {
	Message string      `json:"message,omitempty"`
	User    accountView `json:"user"`
}

type accountListResponse struct {
	Users []accountView `json:"users"`
	Total int           `json:"total"`
}

// --- staff ---

type staffCreateRequest struct {
	Name     string `json:"name" validate:"required"`
	PhotoURL string `json:"photoUrl"`
	Gender   string `json:"gender"`
	Active   *bool  `json:"active"`
}

type staffUpdateRequest struct {
	Name     *string `json:"name"`
	PhotoURL *string `json:"photoUrl"`
	Gender   *string `json:"gender"`
	Active   *bool   `json:"active"`
}

type staffResponse struct {
	Message  string           `json:"message"`
	Waitress common.StaffView `json:"waitress"`
}

// --- reviews ---

type staffRef struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	EmployeeID string `json:"employeeId,omitempty"`
}

// adminReviewView is the moderation form: staff resolved and the submitter address visible.
type adminReviewView struct {
	common.ReviewView
	IPAddress string `json:"ipAddress"`
}

func newAdminReviewView(item adminapp.ReviewListItem) adminReviewView {
	view := adminReviewView{ReviewView: common.NewReviewView(item.Review), IPAddress: item.IPAddress}
	if item.Staff != nil {
		view.Waitress = staffRef{ID: item.Staff.ID, Name: item.Staff.Name, EmployeeID: item.Staff.EmployeeID}
	} else {
		view.Waitress = nil
	}
	return view
}

func newAdminReviewViews(items []adminapp.ReviewListItem) []adminReviewView {
	out := make([]adminReviewView, 0, len(items))
	for _, item := range items {
		out = append(out, newAdminReviewView(item))
	}
	return out
}

type adminReviewListResponse struct {
	Reviews    []adminReviewView `json:"reviews"`
	Pagination common.Pagination `json:"pagination"`
}

type overallStatsResponse struct {
	common.SummaryView
	TotalWaitresses int64             `json:"totalWaitresses"`
	RecentReviews   []adminReviewView `json:"recentReviews"`
}

// --- customers ---

type customerCreateRequest struct {
	Name     string `json:"name" validate:"required"`
	Document string `json:"document"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

type customerUpdateRequest struct {
	Name     *string `json:"name"`
	Document *string `json:"document"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
}

type weekStateRequest struct {
	State string `json:"state" validate:"required"`
}

type customerView struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	Document   string    `json:"document,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Email      string    `json:"email,omitempty"`
	WeekStates []string  `json:"weekStates"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func newCustomerView(c domain.Customer) customerView {
	states := make([]string, 0, len(c.WeekStates))
	for _, s := range c.WeekStates {
		states = append(states, string(s))
	}
	return customerView{
		ID:         c.ID,
		Name:       c.Name,
		Document:   c.Document,
		Phone:      c.Phone,
		Email:      c.Email,
		WeekStates: states,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

type customerResponse struct {
	Message  string       `json:"message"`
	Customer customerView `json:"customer"`
}
