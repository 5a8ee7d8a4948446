package application_test

import (
	"context"
	"strings"
	"testing"

	"github.com/reviewly/api/internal/admin/application"
	"github.com/reviewly/api/internal/auth"
	"github.com/reviewly/api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccounts(t *testing.T) (application.AccountService, *memAccounts, *domain.Account) {
	t.Helper()
	repo := newMemAccounts()
	svc := application.NewAccountService(repo, plainHasher{}, stubTokens{}, clock)
	admin, err := svc.Register(context.Background(), nil, application.CreateAccountCommand{
		Username: "owner",
		Email:    "Owner@Bar.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	return svc, repo, admin
}

func TestRegisterBootstrapThenAdminOnly(t *testing.T) {
	svc, repo, admin := newAccounts(t)
	ctx := context.Background()

	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.Equal(t, "owner@bar.com", admin.Email)
	assert.Equal(t, "hashed:secret1", repo.accounts[admin.ID].PasswordHash)

	cmd := application.CreateAccountCommand{Username: "second", Email: "s@bar.com", Password: "secret2"}
	_, err := svc.Register(ctx, nil, cmd)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	manager := &domain.Identity{ID: "x", Role: domain.RoleManager}
	_, err = svc.Register(ctx, manager, cmd)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	identity := admin.Identity()
	created, err := svc.Register(ctx, &identity, cmd)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, created.Role)
}

func TestCreateRejectsDuplicates(t *testing.T) {
	svc, _, _ := newAccounts(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, application.CreateAccountCommand{Username: "owner", Email: "x@bar.com", Password: "secret1", Role: "manager"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	_, err = svc.Create(ctx, application.CreateAccountCommand{Username: "other", Email: "OWNER@bar.com", Password: "secret1", Role: "manager"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	_, err = svc.Create(ctx, application.CreateAccountCommand{Username: "other", Email: "o@bar.com", Password: "secret1"})
	assert.True(t, domain.IsValidation(err))

	_, err = svc.Create(ctx, application.CreateAccountCommand{Username: "other", Email: "o@bar.com", Password: "123", Role: "manager"})
	assert.True(t, domain.IsValidation(err))
}

func TestLogin(t *testing.T) {
	svc, _, admin := newAccounts(t)
	ctx := context.Background()

	token, account, err := svc.Login(ctx, "owner", "secret1")
	require.NoError(t, err)
	assert.Equal(t, admin.ID+"|owner|admin", token)
	assert.Equal(t, admin.ID, account.ID)

	_, _, err = svc.Login(ctx, "owner", "wrong-pass")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody", "secret1")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "", "secret1")
	assert.True(t, domain.IsValidation(err))
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, _, admin := newAccounts(t)
	ctx := context.Background()
	other, err := svc.Create(ctx, application.CreateAccountCommand{Username: "mgr", Email: "m@bar.com", Password: "secret1", Role: "manager"})
	require.NoError(t, err)

	_, err = svc.SetActive(ctx, admin.Identity(), other.ID, false)
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "mgr", "secret1")
	assert.ErrorIs(t, err, domain.ErrInactiveAccount)

	_, err = svc.Verify(ctx, other.Identity())
	assert.ErrorIs(t, err, domain.ErrInactiveAccount)
}

func TestSelfLockoutProtection(t *testing.T) {
	svc, _, admin := newAccounts(t)
	ctx := context.Background()
	actor := admin.Identity()

	_, err := svc.SetActive(ctx, actor, admin.ID, false)
	assert.ErrorIs(t, err, domain.ErrSelfLockout)

	assert.ErrorIs(t, svc.Delete(ctx, actor, admin.ID), domain.ErrSelfLockout)

	inactive := false
	_, err = svc.Update(ctx, actor, admin.ID, application.UpdateAccountCommand{Active: &inactive})
	assert.ErrorIs(t, err, domain.ErrSelfLockout)

	demoted := "manager"
	_, err = svc.Update(ctx, actor, admin.ID, application.UpdateAccountCommand{Role: &demoted})
	assert.ErrorIs(t, err, domain.ErrSelfLockout)

	email := "new@bar.com"
	updated, err := svc.Update(ctx, actor, admin.ID, application.UpdateAccountCommand{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "new@bar.com", updated.Email)
	assert.True(t, updated.Active)
}

func TestUpdateOtherAccount(t *testing.T) {
	svc, repo, admin := newAccounts(t)
	ctx := context.Background()
	other, err := svc.Create(ctx, application.CreateAccountCommand{Username: "mgr", Email: "m@bar.com", Password: "secret1", Role: "manager"})
	require.NoError(t, err)

	role := "usuario"
	password := "newsecret"
	updated, err := svc.Update(ctx, admin.Identity(), other.ID, application.UpdateAccountCommand{Role: &role, Password: &password})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, updated.Role)
	assert.Equal(t, "hashed:newsecret", repo.accounts[other.ID].PasswordHash)

	taken := "owner"
	_, err = svc.Update(ctx, admin.Identity(), other.ID, application.UpdateAccountCommand{Username: &taken})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	require.NoError(t, svc.Delete(ctx, admin.Identity(), other.ID))
	_, err = svc.Detail(ctx, other.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPasswordOverBcryptLimitIsValidation(t *testing.T) {
	ctx := context.Background()
	svc := application.NewAccountService(newMemAccounts(), auth.BcryptHasher{Cost: 4}, stubTokens{}, clock)

	_, err := svc.Register(ctx, nil, application.CreateAccountCommand{
		Username: "owner",
		Email:    "owner@bar.com",
		Password: strings.Repeat("a", domain.PasswordMax+1),
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	admin, err := svc.Register(ctx, nil, application.CreateAccountCommand{
		Username: "owner",
		Email:    "owner@bar.com",
		Password: strings.Repeat("a", domain.PasswordMax),
	})
	require.NoError(t, err)

	long := strings.Repeat("ñ", 37)
	_, err = svc.Update(ctx, admin.Identity(), admin.ID, application.UpdateAccountCommand{Password: &long})
	assert.True(t, domain.IsValidation(err))
}
