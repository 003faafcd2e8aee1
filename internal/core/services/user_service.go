package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/invoice_generator_app/internal/apperrors"
	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_generator_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_generator_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_generator_app/internal/dto"
	"github.com/SscSPs/invoice_generator_app/internal/utils"
	"github.com/google/uuid"
)

// Messages returned to API clients.
const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgUserExists         = "User already exists with this email"
	MsgAccountDisabled    = "Account is deactivated"
	MsgWrongPassword      = "Current password is incorrect"
	MsgUserNotFound       = "User not found"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	clock    func() time.Time
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, clock: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(MsgUserNotFound)
		}
		s.LogError(ctx, err, "Failed to get user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	email := normalizeEmail(req.Email)
	if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return nil, apperrors.NewAppError(http.StatusBadRequest, MsgUserExists, apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up email")
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.clock()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: &hash,
		Role:         domain.RoleUser,
		IsActive:     true,
		AuthProvider: domain.ProviderLocal,
		LastLoginAt:  &now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if req.Company != nil {
		user.Company = domain.CompanyProfile(*req.Company)
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewAppError(http.StatusBadRequest, MsgUserExists, apperrors.ErrDuplicate)
		}
		s.LogError(ctx, err, "Failed to save user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email != user.Email {
			if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
				return nil, apperrors.NewAppError(http.StatusBadRequest, MsgUserExists, apperrors.ErrDuplicate)
			}
			user.Email = email
		}
	}
	if req.Company != nil {
		user.Company = domain.CompanyProfile(*req.Company)
	}
	user.LastUpdatedAt = s.clock()
	user.LastUpdatedBy = userID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewAppError(http.StatusBadRequest, MsgUserExists, apperrors.ErrDuplicate)
		}
		s.LogError(ctx, err, "Failed to update profile", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.PasswordHash == nil || !utils.CheckPasswordHash(req.CurrentPassword, *user.PasswordHash) {
		return apperrors.NewAppError(http.StatusBadRequest, MsgWrongPassword, apperrors.ErrValidation)
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = &hash
	user.LastUpdatedAt = s.clock()
	user.LastUpdatedBy = userID
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to change password", slog.String("user_id", userID))
		return fmt.Errorf("failed to change password: %w", err)
	}
	s.LogInfo(ctx, "Password changed", slog.String("user_id", userID))
	return nil
}

func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError(MsgInvalidCredentials)
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, err
	}
	if user.PasswordHash == nil || !utils.CheckPasswordHash(password, *user.PasswordHash) {
		return nil, apperrors.NewUnauthorizedError(MsgInvalidCredentials)
	}
	if !user.IsActive {
		return nil, apperrors.NewUnauthorizedError(MsgAccountDisabled)
	}

	s.touchLogin(ctx, user)
	return user, nil
}

// touchLogin records the login time. Failures are logged only.
func (s *userService) touchLogin(ctx context.Context, user *domain.User) {
	now := s.clock()
	user.LastLoginAt = &now
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to record last login", slog.String("user_id", user.UserID))
	}
}

func (s *userService) FindOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	if info.ID == "" || info.Email == "" {
		return nil, apperrors.NewUnauthorizedError("Google account is missing an email")
	}

	user, err := s.userRepo.FindUserByProviderDetails(ctx, domain.ProviderGoogle, info.ID)
	if err == nil {
		if !user.IsActive {
			return nil, apperrors.NewUnauthorizedError(MsgAccountDisabled)
		}
		s.touchLogin(ctx, user)
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up Google user")
		return nil, err
	}

	email := normalizeEmail(info.Email)
	user, err = s.userRepo.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		// Only a verified Google email may be linked to an existing account.
		if !info.VerifiedEmail {
			return nil, apperrors.NewUnauthorizedError("Google email is not verified")
		}
		if !user.IsActive {
			return nil, apperrors.NewUnauthorizedError(MsgAccountDisabled)
		}
		// The password, if any, keeps working after linking.
		user.AuthProvider = domain.ProviderGoogle
		user.ProviderUserID = info.ID
		s.touchLogin(ctx, user)
		s.LogInfo(ctx, "Linked Google account", slog.String("user_id", user.UserID))
		return user, nil
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to look up user by email")
		return nil, err
	}

	now := s.clock()
	name := strings.TrimSpace(info.Name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	newUser := domain.User{
		UserID:         uuid.NewString(),
		Name:           name,
		Email:          email,
		Role:           domain.RoleUser,
		IsActive:       true,
		AuthProvider:   domain.ProviderGoogle,
		ProviderUserID: info.ID,
		LastLoginAt:    &now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	newUser.CreatedBy = newUser.UserID
	newUser.LastUpdatedBy = newUser.UserID
	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		s.LogError(ctx, err, "Failed to create Google user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.LogInfo(ctx, "Created user from Google sign-in", slog.String("user_id", newUser.UserID))
	return &newUser, nil
}
