package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/invoice_generator_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_generator_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type quotationHandler struct {
	quotationService portssvc.QuotationSvcFacade
}

// RegisterQuotationRoutes registers the quotation drafting route.
func RegisterQuotationRoutes(rg *gin.RouterGroup, qs portssvc.QuotationSvcFacade) {
	h := &quotationHandler{quotationService: qs}
	rg.POST("/quotations/draft", h.draftQuotation)
}

// draftQuotation godoc
// @Summary Draft a quotation
// @Description Generates quotation content from a project description or template. The draft is not saved.
// @Tags quotations
// @Accept json
// @Produce json
// @Param brief body dto.DraftQuotationRequest true "Project brief"
// @Success 200 {object} dto.Response{data=dto.Document}
// @Failure 400 {object} dto.Response
// @Failure 504 {object} dto.Response "Generator timed out"
// @Security BearerAuth
// @Router /quotations/draft [post]
func (h *quotationHandler) draftQuotation(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.DraftQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	doc, err := h.quotationService.DraftQuotation(c.Request.Context(), userID, req.ToRequest())
	if err != nil {
		respondError(c, err, "Failed to generate quotation")
		return
	}
	c.JSON(http.StatusOK, dto.OKWithMessage(dto.ToDocumentResponse(*doc, time.Now()), "Quotation generated successfully"))
}
