package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/invoice_generator_app/internal/apperrors"
	portssvc "github.com/SscSPs/invoice_generator_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_generator_app/internal/core/services"
	"github.com/SscSPs/invoice_generator_app/internal/dto"
	"github.com/SscSPs/invoice_generator_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// googleOAuthHandler handles Google sign-in.
type googleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
}

func newGoogleOAuthHandler(
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade,
	userService portssvc.UserSvcFacade,
	tokenService portssvc.TokenSvcFacade,
) *googleOAuthHandler {
	return &googleOAuthHandler{
		googleOAuthService: googleOAuthService,
		userService:        userService,
		tokenService:       tokenService,
	}
}

// loginURL godoc
// @Summary Google login URL
// @Description Returns the Google consent URL and the state value the client must keep.
// @Tags oauth
// @Produce json
// @Success 200 {object} dto.Response
// @Router /users/google/login-url [get]
func (h *googleOAuthHandler) loginURL(c *gin.Context) {
	ctx := c.Request.Context()
	state, err := h.googleOAuthService.GenerateStateString(ctx)
	if err != nil {
		respondError(c, err, "Failed to start Google sign-in")
		return
	}
	c.JSON(http.StatusOK, dto.OK(gin.H{"url": h.googleOAuthService.GetGoogleLoginURL(ctx, state), "state": state}))
}

// exchangeCode godoc
// @Summary Exchange authorization code for access token
// @Description Exchanges the Google authorization code, validates the ID token, signs in or creates the user and returns a JWT.
// @Tags oauth
// @Accept json
// @Produce json
// @Param code body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.Response{data=dto.AuthResponse}
// @Failure 400 {object} dto.Response "Invalid authorization code"
// @Failure 401 {object} dto.Response "Invalid Google ID token"
// @Failure 504 {object} dto.Response "Google unreachable"
// @Router /users/google/exchange-code [post]
func (h *googleOAuthHandler) exchangeCode(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		appErr := apperrors.NewGatewayTimeoutError("Failed to communicate with Google OAuth service.")
		lower := strings.ToLower(err.Error())
		if strings.Contains(lower, "invalid_grant") || strings.Contains(lower, "bad request") {
			appErr = apperrors.NewBadRequestError("Invalid or expired authorization code provided by Google.")
		}
		respondError(c, appErr, appErr.Message)
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		respondError(c, apperrors.NewInternalServerError("Failed to retrieve ID token from Google."), "Failed to retrieve ID token from Google.")
		return
	}

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		logger.WarnContext(ctx, "Google ID token validation failed", slog.String("error", err.Error()))
		respondError(c, apperrors.NewUnauthorizedError("Invalid Google ID token"), "Invalid Google ID token")
		return
	}

	user, err := h.userService.FindOrCreateGoogleUser(ctx, services.GoogleUserFromPayload(payload))
	if err != nil {
		respondError(c, err, "Failed to process user authentication")
		return
	}

	resp, err := issueToken(ctx, h.tokenService, user)
	if err != nil {
		respondError(c, err, "Failed to generate access token")
		return
	}
	logger.InfoContext(ctx, "User signed in with Google", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.OK(resp))
}
