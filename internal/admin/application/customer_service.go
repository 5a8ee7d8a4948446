package application

import (
	"context"
	"time"

	"github.com/reviewly/api/internal/domain"
)

// customerService implements CustomerService.
type customerService struct {
	repo CustomerRepository
	now  func() time.Time
}

// NewCustomerService creates a CustomerService. A nil clock uses time.Now.
func NewCustomerService(repo CustomerRepository, now func() time.Time) CustomerService {
	if now == nil {
		now = time.Now
	}
	return &customerService{repo: repo, now: now}
}

func (s *customerService) List(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.FindAll(ctx)
}

func (s *customerService) Detail(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *customerService) Create(ctx context.Context, cmd CustomerCommand) (*domain.Customer, error) {
	details, err := domain.CustomerDetails{
		Name:     cmd.Name,
		Document: cmd.Document,
		Phone:    cmd.Phone,
		Email:    cmd.Email,
	}.Normalize()
	if err != nil {
		return nil, err
	}
	now := s.now()
	customer := &domain.Customer{
		Name:       details.Name,
		Document:   details.Document,
		Phone:      details.Phone,
		Email:      details.Email,
		WeekStates: domain.NewWeekStates(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) Update(ctx context.Context, id string, cmd UpdateCustomerCommand) (*domain.Customer, error) {
	var patch CustomerPatch
	if cmd.Name != nil {
		name, err := domain.NewCustomerName(*cmd.Name)
		if err != nil {
			return nil, err
		}
		patch.Name = &name
	}
	if cmd.Document != nil {
		document, err := domain.OptionalText("document", "El documento", *cmd.Document, domain.CustomerDocMax)
		if err != nil {
			return nil, err
		}
		patch.Document = &document
	}
	if cmd.Phone != nil {
		phone, err := domain.OptionalText("phone", "El teléfono", *cmd.Phone, domain.CustomerPhoneMax)
		if err != nil {
			return nil, err
		}
		patch.Phone = &phone
	}
	if cmd.Email != nil {
		email, err := domain.NormalizeEmail("email", *cmd.Email, false, domain.CustomerEmailMax)
		if err != nil {
			return nil, err
		}
		patch.Email = &email
	}
	if patch.Empty() {
		return nil, domain.NewValidationError("", "No hay datos para actualizar")
	}
	return s.repo.Update(ctx, id, patch, s.now())
}

func (s *customerService) SetWeek(ctx context.Context, id string, index int, state string) (*domain.Customer, error) {
	if err := domain.ValidateWeekIndex(index); err != nil {
		return nil, err
	}
	parsed, err := domain.ParseWeekState(state)
	if err != nil {
		return nil, err
	}
	return s.repo.SetWeek(ctx, id, index, parsed, s.now())
}

func (s *customerService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
