package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/invoice_generator_app/internal/apperrors"
	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	"github.com/SscSPs/invoice_generator_app/internal/core/generator"
	"github.com/SscSPs/invoice_generator_app/internal/dto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserHandlerTestSuite struct {
	routerSuite
}

func (s *UserHandlerTestSuite) SetupTest() {
	s.setupRouter(nil)
}

func testUser() *domain.User {
	return &domain.User{
		UserID:       "user-1",
		Name:         "Asha",
		Email:        "asha@example.com",
		Role:         domain.RoleUser,
		IsActive:     true,
		AuthProvider: domain.ProviderLocal,
	}
}

func (s *UserHandlerTestSuite) TestRegister() {
	user := testUser()
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	s.users.On("RegisterUser", mock.Anything, mock.MatchedBy(func(r dto.RegisterRequest) bool {
		return r.Email == "asha@example.com" && r.Name == "Asha"
	})).Return(user, nil).Once()
	s.tokens.On("GenerateAccessToken", mock.Anything, user).Return("signed-token", expires, nil).Once()

	w, env := s.do(http.MethodPost, "/api/users/register", map[string]string{
		"name": "Asha", "email": "asha@example.com", "password": "secret1",
	}, "")

	s.Equal(http.StatusCreated, w.Code)
	s.Equal("User registered successfully", env.Message)
	var auth dto.AuthResponse
	s.Require().NoError(json.Unmarshal(env.Data, &auth))
	s.Equal("signed-token", auth.Token)
	s.Equal("user-1", auth.User.ID)
	s.users.AssertExpectations(s.T())
	s.tokens.AssertExpectations(s.T())
}

func (s *UserHandlerTestSuite) TestRegister_ShortPassword() {
	w, _ := s.do(http.MethodPost, "/api/users/register", map[string]string{
		"name": "Asha", "email": "asha@example.com", "password": "123",
	}, "")

	s.Equal(http.StatusBadRequest, w.Code)
	s.users.AssertNotCalled(s.T(), "RegisterUser", mock.Anything, mock.Anything)
}

func (s *UserHandlerTestSuite) TestLogin_InvalidCredentials() {
	s.users.On("AuthenticateUser", mock.Anything, "asha@example.com", "wrong").
		Return(nil, apperrors.NewUnauthorizedError("Invalid email or password")).Once()

	w, env := s.do(http.MethodPost, "/api/users/login", map[string]string{
		"email": "asha@example.com", "password": "wrong",
	}, "")

	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Invalid email or password", env.Message)
	s.tokens.AssertNotCalled(s.T(), "GenerateAccessToken", mock.Anything, mock.Anything)
}

func (s *UserHandlerTestSuite) TestGetMe() {
	s.users.On("GetUserByID", mock.Anything, "user-1").Return(testUser(), nil).Once()

	w, env := s.do(http.MethodGet, "/api/users/me", nil, "user-1")

	s.Equal(http.StatusOK, w.Code)
	var got dto.UserResponse
	s.Require().NoError(json.Unmarshal(env.Data, &got))
	s.Equal("asha@example.com", got.Email)
}

func (s *UserHandlerTestSuite) TestGetMe_ExpiredToken() {
	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	s.Require().NoError(err)

	w, env := s.do(http.MethodGet, "/api/users/me", nil, "", "Authorization", "Bearer "+token)

	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Token has expired", env.Message)
	s.users.AssertNotCalled(s.T(), "GetUserByID", mock.Anything, mock.Anything)
}

func (s *UserHandlerTestSuite) TestChangePassword_Wrong() {
	s.users.On("ChangePassword", mock.Anything, "user-1", dto.ChangePasswordRequest{CurrentPassword: "old", NewPassword: "newpass"}).
		Return(apperrors.NewValidationError("Current password is incorrect")).Once()

	w, env := s.do(http.MethodPut, "/api/users/password", map[string]string{
		"currentPassword": "old", "newPassword": "newpass",
	}, "user-1")

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Current password is incorrect", env.Message)
}

func (s *UserHandlerTestSuite) TestHealth() {
	s.health.On("Check", mock.Anything).Return("mongodb", nil).Once()

	w, _ := s.do(http.MethodGet, "/api/health", nil, "")

	s.Equal(http.StatusOK, w.Code)
	var resp dto.HealthResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.True(resp.Success)
	s.Equal("Invoice Generator API is running", resp.Message)
	s.Equal("mongodb", resp.Database)
}

func (s *UserHandlerTestSuite) TestHealth_DatabaseDown() {
	s.health.On("Check", mock.Anything).Return("postgres", errors.New("connection refused")).Once()

	w, _ := s.do(http.MethodGet, "/api/health", nil, "")

	s.Equal(http.StatusServiceUnavailable, w.Code)
}

func (s *UserHandlerTestSuite) TestDraftQuotation() {
	draft := sampleDocument("")
	draft.Kind = domain.KindQuotation
	draft.Number = "QUO-2025-004"
	s.quotations.On("DraftQuotation", mock.Anything, "user-1", generator.Request{
		Description: "Online store with payments",
		Budget:      "25000-50000",
		ClientName:  "Acme",
	}).Return(draft, nil).Once()

	w, env := s.do(http.MethodPost, "/api/quotations/draft", map[string]string{
		"description": "Online store with payments",
		"budget":      "25000-50000",
		"clientName":  "Acme",
	}, "user-1")

	s.Equal(http.StatusOK, w.Code)
	var got dto.Document
	s.Require().NoError(json.Unmarshal(env.Data, &got))
	s.Equal("QUO-2025-004", got.Invoice.Number)
	s.Equal("quotation", got.Kind)
}

func (s *UserHandlerTestSuite) TestDraftQuotation_UnknownBudget() {
	w, _ := s.do(http.MethodPost, "/api/quotations/draft", map[string]string{
		"description": "Online store", "budget": "a lot",
	}, "user-1")

	s.Equal(http.StatusBadRequest, w.Code)
	s.quotations.AssertNotCalled(s.T(), "DraftQuotation", mock.Anything, mock.Anything, mock.Anything)
}

func (s *UserHandlerTestSuite) TestDraftQuotation_GeneratorTimeout() {
	s.quotations.On("DraftQuotation", mock.Anything, "user-1", mock.Anything).
		Return(nil, apperrors.NewGatewayTimeoutError("Quotation generator timed out")).Once()

	w, env := s.do(http.MethodPost, "/api/quotations/draft", map[string]string{"template": "web-dev"}, "user-1")

	s.Equal(http.StatusGatewayTimeout, w.Code)
	s.Equal("Quotation generator timed out", env.Message)
}

func TestUserHandler(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}
