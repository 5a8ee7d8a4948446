package application_test

import (
	"context"
	"testing"

	"github.com/reviewly/api/internal/admin/application"
	"github.com/reviewly/api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerCreateStartsNeutral(t *testing.T) {
	svc := application.NewCustomerService(newMemCustomers(), clock)

	customer, err := svc.Create(context.Background(), application.CustomerCommand{Name: "Luis", Email: "LUIS@Mail.com"})
	require.NoError(t, err)
	assert.Equal(t, "luis@mail.com", customer.Email)
	require.Len(t, customer.WeekStates, domain.WeeksPerYear)
	for _, s := range customer.WeekStates {
		assert.Equal(t, domain.WeekNeutral, s)
	}
}

func TestCustomerSetWeek(t *testing.T) {
	svc := application.NewCustomerService(newMemCustomers(), clock)
	ctx := context.Background()
	customer, err := svc.Create(ctx, application.CustomerCommand{Name: "Luis"})
	require.NoError(t, err)

	updated, err := svc.SetWeek(ctx, customer.ID, 51, "rojo")
	require.NoError(t, err)
	assert.Equal(t, domain.WeekFlagged, updated.WeekStates[51])
	assert.Len(t, updated.WeekStates, domain.WeeksPerYear)

	_, err = svc.SetWeek(ctx, customer.ID, 52, "rojo")
	assert.True(t, domain.IsValidation(err))

	_, err = svc.SetWeek(ctx, customer.ID, 3, "azul")
	assert.True(t, domain.IsValidation(err))

	_, err = svc.SetWeek(ctx, "missing", 3, "verde")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerUpdate(t *testing.T) {
	svc := application.NewCustomerService(newMemCustomers(), clock)
	ctx := context.Background()
	customer, err := svc.Create(ctx, application.CustomerCommand{Name: "Luis", Phone: "555"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, customer.ID, application.UpdateCustomerCommand{})
	assert.True(t, domain.IsValidation(err))

	phone := "777"
	updated, err := svc.Update(ctx, customer.ID, application.UpdateCustomerCommand{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "777", updated.Phone)
	assert.Equal(t, "Luis", updated.Name)
}

func TestCustomerDelete(t *testing.T) {
	svc := application.NewCustomerService(newMemCustomers(), clock)
	ctx := context.Background()
	customer, err := svc.Create(ctx, application.CustomerCommand{Name: "Luis"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, customer.ID))
	_, err = svc.Detail(ctx, customer.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
