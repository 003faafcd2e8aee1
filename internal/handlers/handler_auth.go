package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_generator_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_generator_app/internal/dto"
	"github.com/SscSPs/invoice_generator_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles registration and password login.
type authHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
}

func newAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade) *authHandler {
	return &authHandler{userService: us, tokenService: ts}
}

// issueToken builds the auth response for user.
func issueToken(ctx context.Context, ts portssvc.TokenSvcFacade, user *domain.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := ts.GenerateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, ExpiresAt: expiresAt, User: dto.ToUserResponse(user)}, nil
}

// register godoc
// @Summary Register new user
// @Description Creates a local account and returns a JWT token.
// @Tags users
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.Response{data=dto.AuthResponse}
// @Failure 400 {object} dto.Response "Invalid input or email taken"
// @Failure 429 {object} dto.Response
// @Failure 500 {object} dto.Response
// @Router /users/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.RegisterUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}
	resp, err := issueToken(c.Request.Context(), h.tokenService, user)
	if err != nil {
		respondError(c, err, "Failed to generate token")
		return
	}

	logger.Info("User registered", slog.String("user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.OKWithMessage(resp, "User registered successfully"))
}

// login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT token.
// @Tags users
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.Response{data=dto.AuthResponse}
// @Failure 400 {object} dto.Response
// @Failure 401 {object} dto.Response
// @Failure 429 {object} dto.Response
// @Router /users/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}
	resp, err := issueToken(c.Request.Context(), h.tokenService, user)
	if err != nil {
		respondError(c, err, "Failed to generate token")
		return
	}
	c.JSON(http.StatusOK, dto.OKWithMessage(resp, "Login successful"))
}
