package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/invoice_generator_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_generator_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// getHealth godoc
// @Summary Show the status of server.
// @Description Reports whether the API and its database are reachable.
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func getHealth(health portssvc.HealthSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := dto.HealthResponse{
			Success:   true,
			Message:   "Invoice Generator API is running",
			Timestamp: time.Now().UTC(),
		}
		database, err := health.Check(c.Request.Context())
		resp.Database = database
		if err != nil {
			resp.Success = false
			resp.Message = "Database unreachable"
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
