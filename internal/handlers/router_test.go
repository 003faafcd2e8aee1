package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_generator_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_generator_app/internal/dto"
	"github.com/SscSPs/invoice_generator_app/internal/handlers"
	"github.com/SscSPs/invoice_generator_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
)

// envelope mirrors dto.Response with a raw payload.
type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Count      *int            `json:"count"`
	Pagination *dto.Pagination `json:"pagination"`
}

// routerSuite wires the full router against mocked services.
type routerSuite struct {
	suite.Suite
	router    *gin.Engine
	jwtSecret string

	documents  *MockDocumentService
	users      *MockUserService
	tokens     *MockTokenService
	quotations *MockQuotationService
	health     *MockHealthService
}

func (s *routerSuite) setupRouter(export portssvc.ExportSvcFacade) {
	gin.SetMode(gin.TestMode)
	s.jwtSecret = "test-secret-key-that-is-long-enough"
	s.documents = new(MockDocumentService)
	s.users = new(MockUserService)
	s.tokens = new(MockTokenService)
	s.quotations = new(MockQuotationService)
	s.health = new(MockHealthService)

	cfg := &config.Config{
		JWTSecret:     s.jwtSecret,
		AuthRateLimit: "1000-M",
		IsProduction:  true,
	}
	container := &portssvc.ServiceContainer{
		Document:     s.documents,
		User:         s.users,
		TokenService: s.tokens,
		Quotation:    s.quotations,
		Health:       s.health,
	}
	if export != nil {
		container.Export = export
	}
	s.router = gin.New()
	handlers.RegisterRoutes(s.router, cfg, container)
}

// generateTestToken creates a signed JWT for userID.
func (s *routerSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "invoice-generator-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		s.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

// do serves a request, authenticating as userID when it is not empty.
func (s *routerSuite) do(method, path string, body any, userID string, headers ...string) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+s.generateTestToken(userID))
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") != "application/pdf" {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func sampleDocument(id string) *domain.Document {
	return &domain.Document{
		DocumentID:  id,
		Kind:        domain.KindInvoice,
		Number:      "INV-2025-001",
		Status:      domain.StatusDraft,
		Client:      domain.Party{Name: "Acme"},
		AuditFields: domain.AuditFields{CreatedBy: "user-1"},
	}
}
