package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/reviewly/api/internal/domain"
)

// accountService implements AccountService.
type accountService struct {
	repo   AccountRepository
	hasher PasswordHasher
	tokens TokenIssuer
	now    func() time.Time
}

// NewAccountService creates an AccountService. A nil clock uses time.Now.
func NewAccountService(repo AccountRepository, hasher PasswordHasher, tokens TokenIssuer, now func() time.Time) AccountService {
	if now == nil {
		now = time.Now
	}
	return &accountService{repo: repo, hasher: hasher, tokens: tokens, now: now}
}

// Login verifies credentials and issues a token. Unknown users and wrong passwords are
// indistinguishable to the caller.
func (s *accountService) Login(ctx context.Context, username, password string) (string, *domain.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, domain.NewValidationError("", "Por favor ingrese usuario y contraseña")
	}

	account, err := s.repo.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if err := s.hasher.Compare(account.PasswordHash, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !account.Active {
		return "", nil, domain.ErrInactiveAccount
	}

	token, err := s.tokens.Issue(account.Identity())
	if err != nil {
		return "", nil, err
	}
	return token, account, nil
}

// Register is open while no account exists so the first admin can be created; afterwards
// only admins may use it.
func (s *accountService) Register(ctx context.Context, actor *domain.Identity, cmd CreateAccountCommand) (*domain.Account, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		if err := domain.Authorize(actor, domain.RoleAdmin); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(cmd.Role) == "" {
		cmd.Role = string(domain.RoleAdmin)
	}
	return s.create(ctx, cmd)
}

func (s *accountService) Verify(ctx context.Context, identity domain.Identity) (*domain.Account, error) {
	account, err := s.repo.FindByID(ctx, identity.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	if !account.Active {
		return nil, domain.ErrInactiveAccount
	}
	return account, nil
}

func (s *accountService) List(ctx context.Context) ([]domain.Account, error) {
	return s.repo.FindAll(ctx)
}

func (s *accountService) Detail(ctx context.Context, id string) (*domain.Account, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *accountService) Create(ctx context.Context, cmd CreateAccountCommand) (*domain.Account, error) {
	if strings.TrimSpace(cmd.Role) == "" {
		return nil, domain.NewValidationError("role", "Todos los campos son requeridos")
	}
	return s.create(ctx, cmd)
}

func (s *accountService) create(ctx context.Context, cmd CreateAccountCommand) (*domain.Account, error) {
	username, err := domain.NewUsername(cmd.Username)
	if err != nil {
		return nil, err
	}
	email, err := domain.NormalizeEmail("email", cmd.Email, true, domain.AccountMailMax)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(cmd.Password); err != nil {
		return nil, err
	}
	role, err := domain.ParseRole(cmd.Role)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByUsernameOrEmail(ctx, username, email, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAlreadyExists
	}

	hash, err := s.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, err
	}
	now := s.now()
	account := &domain.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Update applies a partial change. The caller may edit its own profile but may not
// deactivate itself or change its own role.
func (s *accountService) Update(ctx context.Context, actor domain.Identity, id string, cmd UpdateAccountCommand) (*domain.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var role *domain.Role
	if cmd.Role != nil && strings.TrimSpace(*cmd.Role) != "" {
		parsed, err := domain.ParseRole(*cmd.Role)
		if err != nil {
			return nil, err
		}
		role = &parsed
	}

	if actor.ID == account.ID {
		if cmd.Active != nil && !*cmd.Active {
			return nil, domain.ErrSelfLockout
		}
		if role != nil && *role != account.Role {
			return nil, domain.ErrSelfLockout
		}
	}

	var username, email string
	if cmd.Username != nil && strings.TrimSpace(*cmd.Username) != "" {
		if username, err = domain.NewUsername(*cmd.Username); err != nil {
			return nil, err
		}
	}
	if cmd.Email != nil && strings.TrimSpace(*cmd.Email) != "" {
		if email, err = domain.NormalizeEmail("email", *cmd.Email, true, domain.AccountMailMax); err != nil {
			return nil, err
		}
	}
	if username != "" || email != "" {
		exists, err := s.repo.ExistsByUsernameOrEmail(ctx, username, email, account.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrAlreadyExists
		}
	}

	if username != "" {
		account.Username = username
	}
	if email != "" {
		account.Email = email
	}
	if role != nil {
		account.Role = *role
	}
	if cmd.Active != nil {
		account.Active = *cmd.Active
	}
	if cmd.Password != nil && *cmd.Password != "" {
		if err := domain.ValidatePassword(*cmd.Password); err != nil {
			return nil, err
		}
		hash, err := s.hasher.Hash(*cmd.Password)
		if err != nil {
			return nil, err
		}
		account.PasswordHash = hash
	}
	account.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *accountService) SetActive(ctx context.Context, actor domain.Identity, id string, active bool) (*domain.Account, error) {
	if !active {
		if err := domain.EnsureNotSelf(actor, id); err != nil {
			return nil, err
		}
	}
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	account.Active = active
	account.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *accountService) Delete(ctx context.Context, actor domain.Identity, id string) error {
	if err := domain.EnsureNotSelf(actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
