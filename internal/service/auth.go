package service

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/sbstocks/stocksim/internal/domain"
	"github.com/sbstocks/stocksim/internal/store"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// RegisterRequest represents the input for user registration.
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

// AuthService handles registration, login, and profile lookup. Every new
// account starts with the configured simulated balance and an empty
// portfolio.
type AuthService struct {
	users           *store.UserStore
	portfolios      *store.PortfolioStore
	startingBalance decimal.Decimal
	bcryptCost      int
}

// NewAuthService creates a new AuthService.
func NewAuthService(users *store.UserStore, portfolios *store.PortfolioStore, startingBalance decimal.Decimal, bcryptCost int) *AuthService {
	return &AuthService{
		users:           users,
		portfolios:      portfolios,
		startingBalance: startingBalance,
		bcryptCost:      bcryptCost,
	}
}

// Register validates the request, creates the user with the starting
// balance, and creates their empty portfolio.
func (s *AuthService) Register(req RegisterRequest) (*domain.User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, &domain.ValidationError{Message: "name is required"}
	}
	if len(name) > 50 {
		return nil, &domain.ValidationError{Message: "name cannot exceed 50 characters"}
	}

	email := strings.TrimSpace(req.Email)
	if !emailRegex.MatchString(email) {
		return nil, &domain.ValidationError{Message: "a valid email is required"}
	}

	if len(req.Password) < 6 {
		return nil, &domain.ValidationError{Message: "password must be at least 6 characters"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Balance:      s.startingBalance,
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	s.portfolios.Create(domain.NewPortfolio(user.ID))

	return user, nil
}

// Login verifies the credentials and returns the user. Unknown email and
// wrong password both return domain.ErrInvalidCredentials so the
// response does not reveal which was wrong.
func (s *AuthService) Login(email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(strings.TrimSpace(email))
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// GetUser returns the user with the given ID.
func (s *AuthService) GetUser(id string) (*domain.User, error) {
	return s.users.Get(id)
}
