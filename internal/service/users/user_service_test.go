package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"tourdesk/internal/auth"
	"tourdesk/internal/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetManyByIDs(ctx context.Context, ids []string) (map[string]domain.User, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[string]domain.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestUserService(repo *MockUserRepository) *UserService {
	return NewUserService(repo, auth.NewManager("test-secret", time.Hour))
}

func validSignUp() SignUpInput {
	return SignUpInput{
		FullName:     "Asha Rao",
		MobileNumber: "9876543210",
		Email:        "Asha@Example.com",
		Password:     "secret1",
	}
}

func TestUserService_SignUp_Success(t *testing.T) {
	repo := &MockUserRepository{}
	service := newTestUserService(repo)

	ctx := context.Background()
	repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()

	user, token, err := service.SignUp(ctx, validSignUp())

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")))

	repo.AssertExpectations(t)
}

func TestUserService_SignUp_ValidationErrors(t *testing.T) {
	repo := &MockUserRepository{}
	service := newTestUserService(repo)
	ctx := context.Background()

	testCases := []struct {
		name        string
		mutate      func(*SignUpInput)
		expectedErr string
	}{
		{
			name:        "Missing full name",
			mutate:      func(in *SignUpInput) { in.FullName = "" },
			expectedErr: "all fields are required",
		},
		{
			name:        "Bad email",
			mutate:      func(in *SignUpInput) { in.Email = "not-an-email" },
			expectedErr: "invalid email format",
		},
		{
			name:        "Email with spaces",
			mutate:      func(in *SignUpInput) { in.Email = "a b@example.com" },
			expectedErr: "invalid email format",
		},
		{
			name:        "Short mobile",
			mutate:      func(in *SignUpInput) { in.MobileNumber = "12345" },
			expectedErr: "must be 10 digits",
		},
		{
			name:        "Mobile with letters",
			mutate:      func(in *SignUpInput) { in.MobileNumber = "98765abcde" },
			expectedErr: "must be 10 digits",
		},
		{
			name:        "Short password",
			mutate:      func(in *SignUpInput) { in.Password = "12345" },
			expectedErr: "at least 6 characters",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := validSignUp()
			tc.mutate(&in)

			user, token, err := service.SignUp(ctx, in)

			assert.Error(t, err)
			assert.Nil(t, user)
			assert.Empty(t, token)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
			assert.Contains(t, err.Error(), tc.expectedErr)
		})
	}

	repo.AssertNotCalled(t, "Create")
}

func TestUserService_SignUp_DuplicateEmail(t *testing.T) {
	repo := &MockUserRepository{}
	service := newTestUserService(repo)

	ctx := context.Background()
	repo.On("Create", ctx, mock.Anything).Return(domain.ErrAlreadyExists).Once()

	user, token, err := service.SignUp(ctx, validSignUp())

	assert.Error(t, err)
	assert.Nil(t, user)
	assert.Empty(t, token)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "already exists")
}

func TestUserService_Login_Success(t *testing.T) {
	repo := &MockUserRepository{}
	service := newTestUserService(repo)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	assert.NoError(t, err)

	stored := &domain.User{
		ID:           "user-1",
		Email:        "asha@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}

	ctx := context.Background()
	repo.On("GetByEmail", ctx, "asha@example.com").Return(stored, nil).Once()

	user, token, err := service.Login(ctx, " Asha@Example.com ", "secret1")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "user-1", user.ID)
	repo.AssertExpectations(t)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	repo := &MockUserRepository{}
	service := newTestUserService(repo)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	stored := &domain.User{ID: "user-1", Email: "asha@example.com", PasswordHash: string(hash)}

	ctx := context.Background()
	repo.On("GetByEmail", ctx, "asha@example.com").Return(stored, nil).Once()

	user, token, err := service.Login(ctx, "asha@example.com", "wrong")

	assert.Error(t, err)
	assert.Nil(t, user)
	assert.Empty(t, token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	repo := &MockUserRepository{}
	service := newTestUserService(repo)

	ctx := context.Background()
	repo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrNotFound).Once()

	_, _, err := service.Login(ctx, "ghost@example.com", "whatever")

	// Same error as a wrong password, so callers cannot probe for accounts.
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Contains(t, err.Error(), "invalid email or password")
}

func TestUserService_UpdateProfile(t *testing.T) {
	repo := &MockUserRepository{}
	service := newTestUserService(repo)

	ctx := context.Background()
	existing := &domain.User{ID: "user-1", FullName: "Old Name", MobileNumber: "9876543210"}

	repo.On("GetByID", ctx, "user-1").Return(existing, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	t.Run("Partial update keeps other fields", func(t *testing.T) {
		user, err := service.UpdateProfile(ctx, "user-1", UpdateProfileInput{FullName: "New Name"})
		assert.NoError(t, err)
		assert.Equal(t, "New Name", user.FullName)
		assert.Equal(t, "9876543210", user.MobileNumber)
	})

	t.Run("Invalid mobile rejected", func(t *testing.T) {
		user, err := service.UpdateProfile(ctx, "user-1", UpdateProfileInput{MobileNumber: "123"})
		assert.Error(t, err)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})
}
