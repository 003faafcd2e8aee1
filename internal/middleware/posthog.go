package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/invoice_generator_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/api/health": true,
}

// routeEvents names the document lifecycle events. Other routes are tracked
// under a name derived from their path.
var routeEvents = map[string]string{
	"POST /api/invoices":              "document_created",
	"PUT /api/invoices/:id":           "document_updated",
	"PATCH /api/invoices/:id/status":  "document_status_changed",
	"DELETE /api/invoices/:id":        "document_deleted",
	"POST /api/invoices/:id/convert":  "quotation_converted",
	"GET /api/invoices/:id/pdf":       "document_exported",
	"POST /api/quotations/draft":      "quotation_drafted",
	"GET /api/invoices/search/:query": "documents_searched",
}

// eventName is the event tracked for method and route, empty when the route
// is unknown.
func eventName(method, route string) string {
	if route == "" {
		return ""
	}
	if name, ok := routeEvents[method+" "+route]; ok {
		return name
	}
	// "/api/invoices/:id" -> "get_api_invoices_:id"
	return strings.ToLower(method) + "_" + strings.ReplaceAll(strings.TrimPrefix(route, "/"), "/", "_")
}

// PosthogMiddleware tracks successful authenticated requests. Properties carry
// the route and document id only; client details never leave the server.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}
		name := eventName(c.Request.Method, c.FullPath())
		if name == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"route":       c.FullPath(),
			"status_code": c.Writer.Status(),
		}
		if id := c.Param("id"); id != "" {
			props["document_id"] = id
		}
		posthogClient.Enqueue(userID, name, props)
	}
}
