package gateway_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/invoice_generator_app/internal/apperrors"
	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	"github.com/SscSPs/invoice_generator_app/internal/core/services"
	"github.com/SscSPs/invoice_generator_app/internal/core/workspace"
	"github.com/SscSPs/invoice_generator_app/internal/dto"
	"github.com/SscSPs/invoice_generator_app/internal/gateway"
	"github.com/SscSPs/invoice_generator_app/internal/handlers"
	"github.com/SscSPs/invoice_generator_app/internal/platform/config"
	"github.com/SscSPs/invoice_generator_app/internal/repositories/memory"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// ClientTestSuite runs the client against the real router backed by the
// in-memory store.
type ClientTestSuite struct {
	suite.Suite
	server *httptest.Server
	client *gateway.Client
	ctx    context.Context
}

func (s *ClientTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		IsProduction:  true,
		JWTSecret:     "gateway-test-secret",
		JWTExpiry:     time.Hour,
		JWTIssuer:     "test",
		AuthRateLimit: "1000-M",
	}
	router := gin.New()
	handlers.RegisterRoutes(router, cfg, services.NewServiceContainer(cfg, memory.NewRepositoryProvider()))
	s.server = httptest.NewServer(router)
	s.client = gateway.New(s.server.URL + "/api")
	s.ctx = context.Background()
}

func (s *ClientTestSuite) TearDownTest() {
	s.server.Close()
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) register() {
	resp, err := s.client.Register(s.ctx, dto.RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "secret123"})
	s.Require().NoError(err)
	s.NotEmpty(resp.Token)
	s.Equal(resp.Token, s.client.Token())
}

func (s *ClientTestSuite) newWorkspace() *workspace.Workspace {
	ws := workspace.New(domain.KindInvoice)
	ws.SetClient(domain.Party{Name: "Ravi", Company: "Apna Advertising"})
	s.Require().NoError(ws.SetLineItem(0, "Design", "2", "500"))
	ws.SetTaxRate("18")
	return ws
}

func (s *ClientTestSuite) TestRegisterLoginMe() {
	s.register()

	s.client.SetToken("")
	_, err := s.client.Login(s.ctx, "asha@example.com", "wrong-password")
	s.True(errors.Is(err, apperrors.ErrUnauthorized))

	_, err = s.client.Login(s.ctx, "asha@example.com", "secret123")
	s.Require().NoError(err)

	me, err := s.client.Me(s.ctx)
	s.Require().NoError(err)
	s.Equal("Asha", me.Name)
}

func (s *ClientTestSuite) TestMe_WithoutToken() {
	_, err := s.client.Me(s.ctx)
	s.True(errors.Is(err, apperrors.ErrUnauthorized))
	var appErr *apperrors.AppError
	s.Require().True(errors.As(err, &appErr))
	s.Equal(http.StatusUnauthorized, appErr.Code)
}

func (s *ClientTestSuite) TestWorkspaceSave_CreatesThenUpdates() {
	s.register()
	ws := s.newWorkspace()

	created, err := ws.Save(s.ctx, s.client)
	s.Require().NoError(err)
	s.NotEmpty(created.DocumentID)
	s.Equal(ws.PersistedID(), created.DocumentID)

	ws.SetNotes("Thanks for your business")
	updated, err := ws.Save(s.ctx, s.client)
	s.Require().NoError(err)
	s.Equal(created.DocumentID, updated.DocumentID)

	got, err := s.client.GetDocument(s.ctx, created.DocumentID)
	s.Require().NoError(err)
	s.Equal("Thanks for your business", got.Notes)
	s.Equal("Ravi", got.Client.Name)
	s.True(decimal.NewFromInt(2).Equal(got.LineItems[0].Quantity))
	s.False(got.CreatedAt.IsZero())
}

func (s *ClientTestSuite) TestCreate_IdempotencyKeyReplays() {
	s.register()
	doc := s.newWorkspace().Working()

	first, err := s.client.CreateDocument(s.ctx, doc, "key-1")
	s.Require().NoError(err)
	second, err := s.client.CreateDocument(s.ctx, doc, "key-1")
	s.Require().NoError(err)
	s.Equal(first.DocumentID, second.DocumentID)

	docs, page, err := s.client.ListDocuments(s.ctx, gateway.ListOptions{})
	s.Require().NoError(err)
	s.Len(docs, 1)
	s.Equal(int64(1), page.Total)
}

func (s *ClientTestSuite) TestCreate_DuplicateNumber() {
	s.register()
	doc := s.newWorkspace().Working()

	_, err := s.client.CreateDocument(s.ctx, doc, "")
	s.Require().NoError(err)
	_, err = s.client.CreateDocument(s.ctx, doc, "")
	s.True(errors.Is(err, apperrors.ErrDuplicate))
}

func (s *ClientTestSuite) TestStatusStatsSearchPublicDelete() {
	s.register()
	saved, err := s.client.CreateDocument(s.ctx, s.newWorkspace().Working(), "")
	s.Require().NoError(err)

	sent, err := s.client.UpdateStatus(s.ctx, saved.DocumentID, domain.StatusSent)
	s.Require().NoError(err)
	s.Equal(domain.StatusSent, sent.Status)

	_, err = s.client.UpdateStatus(s.ctx, saved.DocumentID, domain.StatusDraft)
	s.True(errors.Is(err, apperrors.ErrValidation))

	paid, err := s.client.UpdateStatus(s.ctx, saved.DocumentID, domain.StatusPaid)
	s.Require().NoError(err)
	s.Equal(domain.StatusPaid, paid.Status)

	stats, err := s.client.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, stats.TotalInvoices)
	// 2 x 500 plus 18% tax
	s.True(decimal.NewFromInt(1180).Equal(stats.TotalRevenue), stats.TotalRevenue.String())

	found, err := s.client.Search(s.ctx, "apna")
	s.Require().NoError(err)
	s.Len(found, 1)

	s.client.SetToken("")
	public, err := s.client.GetPublic(s.ctx, saved.DocumentID)
	s.Require().NoError(err)
	s.Equal(saved.Number, public.Number)

	_, err = s.client.Login(s.ctx, "asha@example.com", "secret123")
	s.Require().NoError(err)
	s.Require().NoError(s.client.DeleteDocument(s.ctx, saved.DocumentID))

	_, err = s.client.GetDocument(s.ctx, saved.DocumentID)
	s.True(errors.Is(err, apperrors.ErrNotFound))
}

func (s *ClientTestSuite) TestListDocuments_FiltersByKind() {
	s.register()
	_, err := s.client.CreateDocument(s.ctx, s.newWorkspace().Working(), "")
	s.Require().NoError(err)

	docs, page, err := s.client.ListDocuments(s.ctx, gateway.ListOptions{Kind: domain.KindQuotation, Limit: 5})
	s.Require().NoError(err)
	s.Empty(docs)
	s.Equal(5, page.Limit)
}

func (s *ClientTestSuite) TestFailedSaveLeavesWorkspaceUnchanged() {
	ws := s.newWorkspace()
	before := ws.Working()

	_, err := ws.Save(s.ctx, s.client)
	s.True(errors.Is(err, apperrors.ErrUnauthorized))
	s.Empty(ws.PersistedID())
	s.Equal(before, ws.Working())
}

func TestClient_ServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := gateway.New(url).GetPublic(context.Background(), "x")
	if !errors.Is(err, apperrors.ErrUnavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
}

func TestClient_ServerErrorWithoutEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := gateway.New(srv.URL).Stats(context.Background())
	if !errors.Is(err, apperrors.ErrUnavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
}
