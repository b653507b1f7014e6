package users

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tourdesk/internal/auth"
	"tourdesk/internal/domain"
	"tourdesk/internal/repository"
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

type SignUpInput struct {
	FullName     string `json:"fullName"`
	MobileNumber string `json:"mobileNumber"`
	Email        string `json:"email"`
	Password     string `json:"password"`
}

type UpdateProfileInput struct {
	FullName     string `json:"fullName"`
	MobileNumber string `json:"mobileNumber"`
}

type UserService struct {
	users  repository.UserRepository
	tokens *auth.Manager
}

func NewUserService(users repository.UserRepository, tokens *auth.Manager) *UserService {
	return &UserService{users: users, tokens: tokens}
}

// SignUp registers a user and returns the profile with a fresh token.
func (s *UserService) SignUp(ctx context.Context, in SignUpInput) (*domain.User, string, error) {
	if in.FullName == "" || in.MobileNumber == "" || in.Email == "" || in.Password == "" {
		return nil, "", fmt.Errorf("%w: all fields are required: fullName, mobileNumber, email, password", domain.ErrInvalidArgument)
	}
	if !emailPattern.MatchString(in.Email) {
		return nil, "", fmt.Errorf("%w: invalid email format", domain.ErrInvalidArgument)
	}
	if !mobilePattern.MatchString(in.MobileNumber) {
		return nil, "", fmt.Errorf("%w: invalid mobile number, must be 10 digits", domain.ErrInvalidArgument)
	}
	if len(in.Password) < 6 {
		return nil, "", fmt.Errorf("%w: password must be at least 6 characters long", domain.ErrInvalidArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		FullName:     strings.TrimSpace(in.FullName),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		MobileNumber: in.MobileNumber,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, "", fmt.Errorf("%w: an account with this email already exists", domain.ErrInvalidArgument)
		}
		return nil, "", err
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", domain.ErrInvalidArgument)
	}

	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", fmt.Errorf("%w: invalid email or password", domain.ErrUnauthenticated)
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("%w: invalid email or password", domain.ErrUnauthenticated)
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateProfile edits the live profile. Bookings keep their customer
// snapshot, so historical records are unaffected.
func (s *UserService) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.FullName != "" {
		user.FullName = strings.TrimSpace(in.FullName)
	}
	if in.MobileNumber != "" {
		if !mobilePattern.MatchString(in.MobileNumber) {
			return nil, fmt.Errorf("%w: invalid mobile number, must be 10 digits", domain.ErrInvalidArgument)
		}
		user.MobileNumber = in.MobileNumber
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}
