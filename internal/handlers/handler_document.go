package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_generator_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_generator_app/internal/dto"
	"github.com/SscSPs/invoice_generator_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// IdempotencyKeyHeader lets clients retry a create without duplicating it.
const IdempotencyKeyHeader = "Idempotency-Key"

// documentHandler handles quotation and invoice requests.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
	exportService   portssvc.ExportSvcFacade
	clock           func() time.Time
}

func newDocumentHandler(ds portssvc.DocumentSvcFacade, es portssvc.ExportSvcFacade) *documentHandler {
	return &documentHandler{documentService: ds, exportService: es, clock: time.Now}
}

// RegisterPublicDocumentRoutes registers the unauthenticated share routes.
func RegisterPublicDocumentRoutes(rg *gin.RouterGroup, ds portssvc.DocumentSvcFacade, es portssvc.ExportSvcFacade) {
	h := newDocumentHandler(ds, es)
	rg.GET("/invoices/public/:id", h.getPublicDocument)
	rg.GET("/invoices/public/:id/pdf", h.getPublicPDF)
}

// RegisterDocumentRoutes registers the owner scoped document routes. rg must
// sit behind the auth middleware.
func RegisterDocumentRoutes(rg *gin.RouterGroup, ds portssvc.DocumentSvcFacade, es portssvc.ExportSvcFacade) {
	h := newDocumentHandler(ds, es)
	invoices := rg.Group("/invoices")
	{
		invoices.GET("", h.listDocuments)
		invoices.GET("/stats", h.getStats)
		invoices.GET("/search/:query", h.searchDocuments)
		invoices.POST("", h.createDocument)
		invoices.GET("/:id", h.getDocument)
		invoices.PUT("/:id", h.updateDocument)
		invoices.PATCH("/:id/status", h.updateStatus)
		invoices.DELETE("/:id", h.deleteDocument)
		invoices.POST("/:id/convert", h.convertToInvoice)
		invoices.GET("/:id/pdf", h.getPDF)
	}
}

// listDocuments godoc
// @Summary List documents
// @Description Lists the caller's quotations and invoices, newest first by default.
// @Tags invoices
// @Produce json
// @Param status query string false "draft, sent, paid or cancelled"
// @Param kind query string false "quotation or invoice"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param sortBy query string false "Sort field, '-' prefix for descending" default(-createdAt)
// @Success 200 {object} dto.Response{data=[]dto.Document}
// @Failure 400 {object} dto.Response
// @Failure 401 {object} dto.Response
// @Security BearerAuth
// @Router /invoices [get]
func (h *documentHandler) listDocuments(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var params dto.ListDocumentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	query := params.ToQuery(userID)
	docs, total, err := h.documentService.ListDocuments(c.Request.Context(), query)
	if err != nil {
		respondError(c, err, "Failed to list invoices")
		return
	}
	c.JSON(http.StatusOK, dto.Response{
		Success:    true,
		Data:       dto.ToDocumentResponses(docs, h.clock()),
		Pagination: dto.NewPagination(query.Page, query.Limit, total),
	})
}

// getStats godoc
// @Summary Document statistics
// @Description Counts and grand totals grouped by status. Revenue counts paid documents only.
// @Tags invoices
// @Produce json
// @Success 200 {object} dto.Response{data=dto.StatsResponse}
// @Failure 401 {object} dto.Response
// @Security BearerAuth
// @Router /invoices/stats [get]
func (h *documentHandler) getStats(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	stats, err := h.documentService.GetStats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to load statistics")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToStatsResponse(stats)))
}

// searchDocuments godoc
// @Summary Search documents
// @Description Case-insensitive match on number, client name, client company and project name. At most 20 results.
// @Tags invoices
// @Produce json
// @Param query path string true "Search text"
// @Success 200 {object} dto.Response{data=[]dto.Document}
// @Failure 401 {object} dto.Response
// @Security BearerAuth
// @Router /invoices/search/{query} [get]
func (h *documentHandler) searchDocuments(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	docs, err := h.documentService.SearchDocuments(c.Request.Context(), userID, c.Param("query"))
	if err != nil {
		respondError(c, err, "Failed to search invoices")
		return
	}
	count := len(docs)
	c.JSON(http.StatusOK, dto.Response{Success: true, Data: dto.ToDocumentResponses(docs, h.clock()), Count: &count})
}

// createDocument godoc
// @Summary Create document
// @Description Validates, prices and stores a quotation or invoice. Totals are computed server side. Repeating a request with the same Idempotency-Key returns the original document.
// @Tags invoices
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Client generated key"
// @Param document body dto.Document true "Document"
// @Success 201 {object} dto.Response{data=dto.Document}
// @Success 200 {object} dto.Response{data=dto.Document} "Replayed create"
// @Failure 400 {object} dto.Response "Validation error or number already exists"
// @Failure 401 {object} dto.Response
// @Security BearerAuth
// @Router /invoices [post]
func (h *documentHandler) createDocument(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.Document
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	saved, created, err := h.documentService.CreateDocument(c.Request.Context(), userID, req.ToDomain(), c.GetHeader(IdempotencyKeyHeader))
	if err != nil {
		respondError(c, err, "Failed to create invoice")
		return
	}
	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	c.JSON(status, dto.OKWithMessage(dto.ToDocumentResponse(*saved, h.clock()), "Invoice created successfully"))
}

// getDocument godoc
// @Summary Get document
// @Tags invoices
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} dto.Response{data=dto.Document}
// @Failure 401 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *documentHandler) getDocument(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	doc, err := h.documentService.GetDocument(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToDocumentResponse(*doc, h.clock())))
}

// updateDocument godoc
// @Summary Update document
// @Description Replaces the document. Status changes must follow the lifecycle.
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param document body dto.Document true "Document"
// @Success 200 {object} dto.Response{data=dto.Document}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /invoices/{id} [put]
func (h *documentHandler) updateDocument(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.Document
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	// An omitted status keeps the stored one.
	updated, err := h.documentService.UpdateDocument(c.Request.Context(), userID, c.Param("id"), req.ToDomain())
	if err != nil {
		respondError(c, err, "Failed to update invoice")
		return
	}
	c.JSON(http.StatusOK, dto.OKWithMessage(dto.ToDocumentResponse(*updated, h.clock()), "Invoice updated successfully"))
}

// updateStatus godoc
// @Summary Change document status
// @Description Allowed: draft to sent or cancelled, sent to paid or cancelled.
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param status body dto.UpdateStatusRequest true "New status"
// @Success 200 {object} dto.Response{data=dto.Document}
// @Failure 400 {object} dto.Response "Invalid status or transition"
// @Failure 404 {object} dto.Response
// @Failure 409 {object} dto.Response "Status changed concurrently"
// @Security BearerAuth
// @Router /invoices/{id}/status [patch]
func (h *documentHandler) updateStatus(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	doc, err := h.documentService.UpdateStatus(c.Request.Context(), userID, c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err, "Failed to update status")
		return
	}
	c.JSON(http.StatusOK, dto.OKWithMessage(dto.ToDocumentResponse(*doc, h.clock()), fmt.Sprintf("Invoice marked as %s", doc.Status)))
}

// deleteDocument godoc
// @Summary Delete document
// @Tags invoices
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /invoices/{id} [delete]
func (h *documentHandler) deleteDocument(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.documentService.DeleteDocument(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete invoice")
		return
	}
	c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Invoice deleted successfully"})
}

// convertToInvoice godoc
// @Summary Convert quotation to invoice
// @Description Stores a new draft invoice built from the quotation. The quotation is unchanged.
// @Tags invoices
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 201 {object} dto.Response{data=dto.Document}
// @Failure 400 {object} dto.Response "Not a quotation"
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /invoices/{id}/convert [post]
func (h *documentHandler) convertToInvoice(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	inv, err := h.documentService.ConvertToInvoice(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to convert quotation")
		return
	}
	c.JSON(http.StatusCreated, dto.OKWithMessage(dto.ToDocumentResponse(*inv, h.clock()), "Invoice created successfully"))
}

// getPublicDocument godoc
// @Summary Get shared document
// @Description Read-only access without authentication.
// @Tags invoices
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} dto.Response{data=dto.Document}
// @Failure 404 {object} dto.Response
// @Router /invoices/public/{id} [get]
func (h *documentHandler) getPublicDocument(c *gin.Context) {
	doc, err := h.documentService.GetPublicDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToDocumentResponse(*doc, h.clock())))
}

// getPDF godoc
// @Summary Download document as PDF
// @Tags invoices
// @Produce application/pdf
// @Param id path string true "Document ID"
// @Success 200 {file} binary
// @Failure 404 {object} dto.Response
// @Failure 503 {object} dto.Response "PDF export disabled"
// @Security BearerAuth
// @Router /invoices/{id}/pdf [get]
func (h *documentHandler) getPDF(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	doc, err := h.documentService.GetDocument(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve invoice")
		return
	}
	h.writePDF(c, *doc)
}

// getPublicPDF godoc
// @Summary Download shared document as PDF
// @Tags invoices
// @Produce application/pdf
// @Param id path string true "Document ID"
// @Success 200 {file} binary
// @Failure 404 {object} dto.Response
// @Router /invoices/public/{id}/pdf [get]
func (h *documentHandler) getPublicPDF(c *gin.Context) {
	doc, err := h.documentService.GetPublicDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve invoice")
		return
	}
	h.writePDF(c, *doc)
}

func (h *documentHandler) writePDF(c *gin.Context, doc domain.Document) {
	if h.exportService == nil {
		c.JSON(http.StatusServiceUnavailable, dto.Fail("PDF export is not enabled"))
		return
	}
	pdf, err := h.exportService.ExportPDF(c.Request.Context(), doc)
	if err != nil {
		respondError(c, err, "Failed to export PDF")
		return
	}
	if pdf.ArchiveURL != "" {
		c.Header("X-Archive-URL", pdf.ArchiveURL)
	}
	filename := strings.ReplaceAll(pdf.Filename, `"`, "")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("PDF served", slog.String("document_id", doc.DocumentID))
	c.Data(http.StatusOK, "application/pdf", pdf.Content)
}
