package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/invoice_generator_app/internal/apperrors"
	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_generator_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_generator_app/internal/core/services"
	"github.com/SscSPs/invoice_generator_app/internal/dto"
	"github.com/SscSPs/invoice_generator_app/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
	FindUserByIDFn func(ctx context.Context, userID string) (*domain.User, error)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if m.FindUserByIDFn != nil {
		return m.FindUserByIDFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByProviderDetails(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, provider, providerUserID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

func hashed(suite *UserServiceTestSuite, password string) *string {
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	return &hash
}

// --- RegisterUser Tests ---
func (suite *UserServiceTestSuite) TestRegisterUser_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Name:     "  Asha Rao ",
		Email:    "Asha@Example.COM",
		Password: "secret123",
		Company:  &dto.CompanyPayload{Name: "Rao Studio", Logo: "RS"},
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "asha@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Email == "asha@example.com" &&
			user.Name == "Asha Rao" &&
			user.PasswordHash != nil && *user.PasswordHash != req.Password &&
			user.CreatedBy == user.UserID
	})).Return(nil).Once()

	user, err := suite.service.RegisterUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.Equal(domain.RoleUser, user.Role)
	suite.Equal(domain.ProviderLocal, user.AuthProvider)
	suite.True(user.IsActive)
	suite.Equal("Rao Studio", user.Company.Name)
	suite.True(utils.CheckPasswordHash(req.Password, *user.PasswordHash))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterUser_EmailTaken() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), Email: "taken@example.com"}
	suite.mockUserRepo.On("FindUserByEmail", ctx, "taken@example.com").Return(existing, nil).Once()

	user, err := suite.service.RegisterUser(ctx, dto.RegisterRequest{Name: "Dup", Email: "taken@example.com", Password: "secret123"})

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Equal(services.MsgUserExists, apperrors.Message(err, ""))
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestRegisterUser_SaveError() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "new@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(assert.AnError).Once()

	user, err := suite.service.RegisterUser(ctx, dto.RegisterRequest{Name: "New", Email: "new@example.com", Password: "secret123"})

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, assert.AnError)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- AuthenticateUser Tests ---
func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	stored := &domain.User{UserID: "u1", Email: "asha@example.com", PasswordHash: hashed(suite, "secret123"), IsActive: true}
	suite.mockUserRepo.On("FindUserByEmail", ctx, "asha@example.com").Return(stored, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.UserID == "u1" && user.LastLoginAt != nil
	})).Return(nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, " ASHA@example.com", "secret123")

	suite.Require().NoError(err)
	suite.Equal("u1", user.UserID)
	suite.NotNil(user.LastLoginAt)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_Failures() {
	ctx := context.Background()
	active := &domain.User{UserID: "u1", Email: "a@example.com", PasswordHash: hashed(suite, "right-pass"), IsActive: true}
	inactive := &domain.User{UserID: "u2", Email: "b@example.com", PasswordHash: hashed(suite, "right-pass")}
	oauthOnly := &domain.User{UserID: "u3", Email: "c@example.com", IsActive: true}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "a@example.com").Return(active, nil)
	suite.mockUserRepo.On("FindUserByEmail", ctx, "b@example.com").Return(inactive, nil)
	suite.mockUserRepo.On("FindUserByEmail", ctx, "c@example.com").Return(oauthOnly, nil)
	suite.mockUserRepo.On("FindUserByEmail", ctx, "missing@example.com").Return(nil, apperrors.ErrNotFound)

	tests := []struct {
		name     string
		email    string
		password string
		message  string
	}{
		{"unknown email", "missing@example.com", "right-pass", services.MsgInvalidCredentials},
		{"wrong password", "a@example.com", "wrong-pass", services.MsgInvalidCredentials},
		{"deactivated", "b@example.com", "right-pass", services.MsgAccountDisabled},
		{"no local password", "c@example.com", "right-pass", services.MsgInvalidCredentials},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			user, err := suite.service.AuthenticateUser(ctx, tt.email, tt.password)
			suite.Nil(user)
			suite.ErrorIs(err, apperrors.ErrUnauthorized)
			suite.Equal(tt.message, apperrors.Message(err, ""))
		})
	}
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

// --- GetUserByID Tests ---
func (suite *UserServiceTestSuite) TestGetUserByID_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	expectedUser := &domain.User{UserID: userID, Name: "Found User"}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(expectedUser, nil).Once()

	user, err := suite.service.GetUserByID(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(expectedUser, user)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.GetUserByID(ctx, userID)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestGetUserByID_RepoError() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, assert.AnError).Once()

	user, err := suite.service.GetUserByID(ctx, userID)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, assert.AnError)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
}

// --- UpdateProfile / ChangePassword Tests ---
func (suite *UserServiceTestSuite) TestUpdateProfile_AppliesProvidedFields() {
	ctx := context.Background()
	stored := &domain.User{UserID: "u1", Name: "Old", Email: "old@example.com"}
	suite.mockUserRepo.On("FindUserByID", ctx, "u1").Return(stored, nil).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "new@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	email := "New@Example.com"
	user, err := suite.service.UpdateProfile(ctx, "u1", dto.UpdateProfileRequest{
		Email:   &email,
		Company: &dto.CompanyPayload{Name: "Acme", Tagline: "We build", Logo: "AC"},
	})

	suite.Require().NoError(err)
	suite.Equal("Old", user.Name)
	suite.Equal("new@example.com", user.Email)
	suite.Equal(domain.CompanyProfile{Name: "Acme", Tagline: "We build", Logo: "AC"}, user.Company)
	suite.Equal("u1", user.LastUpdatedBy)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestChangePassword() {
	ctx := context.Background()
	stored := &domain.User{UserID: "u1", PasswordHash: hashed(suite, "old-pass")}
	suite.mockUserRepo.FindUserByIDFn = func(ctx context.Context, userID string) (*domain.User, error) {
		copied := *stored
		return &copied, nil
	}

	err := suite.service.ChangePassword(ctx, "u1", dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "new-pass"})
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Equal(services.MsgWrongPassword, apperrors.Message(err, ""))

	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.PasswordHash != nil && utils.CheckPasswordHash("new-pass", *user.PasswordHash)
	})).Return(nil).Once()

	err = suite.service.ChangePassword(ctx, "u1", dto.ChangePasswordRequest{CurrentPassword: "old-pass", NewPassword: "new-pass"})
	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- FindOrCreateGoogleUser Tests ---
func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_ExistingLink() {
	ctx := context.Background()
	linked := &domain.User{UserID: "u1", IsActive: true, AuthProvider: domain.ProviderGoogle, ProviderUserID: "g-1"}
	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, domain.ProviderGoogle, "g-1").Return(linked, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	user, err := suite.service.FindOrCreateGoogleUser(ctx, domain.GoogleUserInfo{ID: "g-1", Email: "a@example.com"})

	suite.Require().NoError(err)
	suite.Equal("u1", user.UserID)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_LinksVerifiedEmail() {
	ctx := context.Background()
	local := &domain.User{UserID: "u1", Email: "a@example.com", IsActive: true, AuthProvider: domain.ProviderLocal}
	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, domain.ProviderGoogle, "g-1").Return(nil, apperrors.ErrNotFound)
	suite.mockUserRepo.On("FindUserByEmail", ctx, "a@example.com").Return(local, nil)
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.ProviderUserID == "g-1" && user.AuthProvider == domain.ProviderGoogle
	})).Return(nil).Once()

	_, err := suite.service.FindOrCreateGoogleUser(ctx, domain.GoogleUserInfo{ID: "g-1", Email: "A@example.com", VerifiedEmail: false})
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	user, err := suite.service.FindOrCreateGoogleUser(ctx, domain.GoogleUserInfo{ID: "g-1", Email: "A@example.com", VerifiedEmail: true})
	suite.Require().NoError(err)
	suite.Equal("u1", user.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_CreatesUser() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, domain.ProviderGoogle, "g-9").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "new@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.AuthProvider == domain.ProviderGoogle && user.ProviderUserID == "g-9" && user.PasswordHash == nil
	})).Return(nil).Once()

	user, err := suite.service.FindOrCreateGoogleUser(ctx, domain.GoogleUserInfo{ID: "g-9", Email: "new@example.com", VerifiedEmail: true})

	suite.Require().NoError(err)
	suite.Equal("new", user.Name)
	suite.True(user.IsActive)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
