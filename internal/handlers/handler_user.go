package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/invoice_generator_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_generator_app/internal/dto"
	"github.com/SscSPs/invoice_generator_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests about the signed in user.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{userService: us}
}

// RegisterUserRoutes registers the authenticated user routes.
func RegisterUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	rg.GET("/me", h.getMe)
	rg.PUT("/me", h.updateMe)
	rg.PUT("/password", h.updatePassword)
}

// getMe godoc
// @Summary Get current user
// @Tags users
// @Produce json
// @Success 200 {object} dto.Response{data=dto.UserResponse}
// @Failure 401 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /users/me [get]
func (h *userHandler) getMe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToUserResponse(user)))
}

// updateMe godoc
// @Summary Update current user
// @Description Updates name, email and company profile. Omitted fields are unchanged.
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} dto.Response{data=dto.UserResponse}
// @Failure 400 {object} dto.Response
// @Failure 401 {object} dto.Response
// @Security BearerAuth
// @Router /users/me [put]
func (h *userHandler) updateMe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to update profile")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Profile updated")
	c.JSON(http.StatusOK, dto.OKWithMessage(dto.ToUserResponse(user), "Profile updated successfully"))
}

// updatePassword godoc
// @Summary Change password
// @Tags users
// @Accept json
// @Produce json
// @Param password body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.Response
// @Failure 401 {object} dto.Response
// @Security BearerAuth
// @Router /users/password [put]
func (h *userHandler) updatePassword(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.userService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		respondError(c, err, "Failed to update password")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Password updated", slog.String("user_id", userID))
	c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Password updated successfully"})
}
