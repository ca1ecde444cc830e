package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhinandan-jain01/nearmart/apperrors"
	"github.com/abhinandan-jain01/nearmart/models"
	"github.com/abhinandan-jain01/nearmart/token"
)

func newAuthFixture() (*AuthService, *fakeUsers, *token.Maker) {
	users := newFakeUsers()
	tokens := token.NewMaker("test-secret", time.Hour)
	service := NewAuthService(users, newFakeCustomers(), newFakeRetailers(), tokens)
	return service, users, tokens
}

func TestRegisterCustomer(t *testing.T) {
	service, _, tokens := newAuthFixture()

	user, customer, tok, err := service.RegisterCustomer(context.Background(), RegisterCustomerInput{
		FirstName: "Asha",
		LastName:  "Verma",
		Email:     "asha@example.com",
		Password:  "hunter2hunter2",
		Phone:     "9876543210",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "hunter2hunter2", user.Password, "password must be stored hashed")
	assert.Equal(t, user.Id, customer.UserId)
	assert.Equal(t, "Asha", customer.FirstName)

	claims, err := tokens.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, user.Id.Hex(), claims.UserID)
	assert.Equal(t, models.RoleCustomer, claims.Role)
}

func TestRegisterRetailer(t *testing.T) {
	service, _, _ := newAuthFixture()

	user, retailer, tok, err := service.RegisterRetailer(context.Background(), RegisterRetailerInput{
		BusinessName: "Corner Grocery",
		Email:        "shop@example.com",
		Password:     "hunter2hunter2",
		Phone:        "9876543210",
		BusinessType: "grocery",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleRetailer, user.Role)
	assert.Equal(t, user.Id, retailer.UserId)
	assert.True(t, retailer.IsActive)
	assert.NotEmpty(t, tok)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _, _ := newAuthFixture()

	input := RegisterCustomerInput{
		FirstName: "Asha", LastName: "Verma",
		Email: "asha@example.com", Password: "hunter2hunter2", Phone: "9876543210",
	}
	_, _, _, err := service.RegisterCustomer(context.Background(), input)
	require.NoError(t, err)

	_, _, _, err = service.RegisterCustomer(context.Background(), input)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindConflict))
}

func TestLogin(t *testing.T) {
	service, _, _ := newAuthFixture()
	_, _, _, err := service.RegisterCustomer(context.Background(), RegisterCustomerInput{
		FirstName: "Asha", LastName: "Verma",
		Email: "asha@example.com", Password: "hunter2hunter2", Phone: "9876543210",
	})
	require.NoError(t, err)

	user, tok, err := service.Login(context.Background(), "asha@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.NotEmpty(t, tok)
}

func TestLoginWrongPassword(t *testing.T) {
	service, _, _ := newAuthFixture()
	_, _, _, err := service.RegisterCustomer(context.Background(), RegisterCustomerInput{
		FirstName: "Asha", LastName: "Verma",
		Email: "asha@example.com", Password: "hunter2hunter2", Phone: "9876543210",
	})
	require.NoError(t, err)

	_, _, err = service.Login(context.Background(), "asha@example.com", "wrong password")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))
}

func TestLoginUnknownEmailLooksLikeBadPassword(t *testing.T) {
	service, _, _ := newAuthFixture()
	_, _, err := service.Login(context.Background(), "nobody@example.com", "whatever123")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))
	assert.Equal(t, "invalid credentials", err.Error())
}

func TestLoginDeactivatedAccount(t *testing.T) {
	service, users, _ := newAuthFixture()
	user, _, _, err := service.RegisterCustomer(context.Background(), RegisterCustomerInput{
		FirstName: "Asha", LastName: "Verma",
		Email: "asha@example.com", Password: "hunter2hunter2", Phone: "9876543210",
	})
	require.NoError(t, err)
	require.NoError(t, users.SetActive(context.Background(), user.Id, false))

	_, _, err = service.Login(context.Background(), "asha@example.com", "hunter2hunter2")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))
}
