package services

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/abhinandan-jain01/nearmart/apperrors"
	"github.com/abhinandan-jain01/nearmart/models"
	"github.com/abhinandan-jain01/nearmart/token"
)

type RegisterCustomerInput struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Phone     string `json:"phone" validate:"required"`
}

type RegisterRetailerInput struct {
	BusinessName string `json:"businessName" validate:"required"`
	Description  string `json:"description"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	Phone        string `json:"phone" validate:"required"`
	BusinessType string `json:"businessType" validate:"required,oneof=grocery electronics clothing pharmacy general"`
}

type AuthService struct {
	users     UserStore
	customers CustomerStore
	retailers RetailerStore
	tokens    *token.Maker
}

func NewAuthService(users UserStore, customers CustomerStore, retailers RetailerStore, tokens *token.Maker) *AuthService {
	return &AuthService{users: users, customers: customers, retailers: retailers, tokens: tokens}
}

// RegisterCustomer creates the identity record plus the customer profile and
// returns a signed token for immediate use.
func (s *AuthService) RegisterCustomer(ctx context.Context, input RegisterCustomerInput) (*models.User, *models.Customer, string, error) {
	user, err := s.createUser(ctx, input.Email, input.Password, models.RoleCustomer)
	if err != nil {
		return nil, nil, "", err
	}

	customer := &models.Customer{
		UserId:    user.Id,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
	}
	if err := s.customers.Insert(ctx, customer); err != nil {
		return nil, nil, "", err
	}

	tokenString, err := s.tokens.Generate(user.Id.Hex(), user.Role)
	if err != nil {
		return nil, nil, "", apperrors.Internal("error generating token", err)
	}
	return user, customer, tokenString, nil
}

func (s *AuthService) RegisterRetailer(ctx context.Context, input RegisterRetailerInput) (*models.User, *models.Retailer, string, error) {
	user, err := s.createUser(ctx, input.Email, input.Password, models.RoleRetailer)
	if err != nil {
		return nil, nil, "", err
	}

	retailer := &models.Retailer{
		UserId:       user.Id,
		BusinessName: input.BusinessName,
		Description:  input.Description,
		Phone:        input.Phone,
		BusinessType: input.BusinessType,
		IsActive:     true,
	}
	if err := s.retailers.Insert(ctx, retailer); err != nil {
		return nil, nil, "", err
	}

	tokenString, err := s.tokens.Generate(user.Id.Hex(), user.Role)
	if err != nil {
		return nil, nil, "", apperrors.Internal("error generating token", err)
	}
	return user, retailer, tokenString, nil
}

// Login verifies credentials without leaking whether the email exists.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return nil, "", apperrors.Unauthorized("invalid credentials")
		}
		return nil, "", err
	}
	if !user.IsActive {
		return nil, "", apperrors.Unauthorized("account is deactivated")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", apperrors.Unauthorized("invalid credentials")
	}

	tokenString, err := s.tokens.Generate(user.Id.Hex(), user.Role)
	if err != nil {
		return nil, "", apperrors.Internal("error generating token", err)
	}
	return user, tokenString, nil
}

func (s *AuthService) createUser(ctx context.Context, email, password, role string) (*models.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil && !apperrors.Is(err, apperrors.KindNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("error hashing password", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hashed),
		Role:     role,
		IsActive: true,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
