package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/invoice_generator_app/internal/core/services"
	"github.com/SscSPs/invoice_generator_app/internal/dto"
	"github.com/SscSPs/invoice_generator_app/internal/gateway"
	"github.com/SscSPs/invoice_generator_app/internal/handlers"
	"github.com/SscSPs/invoice_generator_app/internal/platform/config"
	"github.com/SscSPs/invoice_generator_app/internal/repositories/memory"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type DocgenTestSuite struct {
	suite.Suite
	dataDir string
	out     *bytes.Buffer
}

func (s *DocgenTestSuite) SetupTest() {
	s.dataDir = s.T().TempDir()
	s.out = new(bytes.Buffer)
	stdout = s.out
}

func (s *DocgenTestSuite) TearDownTest() {
	stdout = os.Stdout
}

func TestDocgenTestSuite(t *testing.T) {
	suite.Run(t, new(DocgenTestSuite))
}

// run executes a docgen command against the suite's data dir and returns
// its output.
func (s *DocgenTestSuite) run(args ...string) (string, error) {
	s.out.Reset()
	err := run(append([]string{"--datadir", s.dataDir}, args...))
	return s.out.String(), err
}

// issued runs a document command with --json and returns the new id.
func (s *DocgenTestSuite) issued(args ...string) string {
	out, err := s.run(append([]string{"--json"}, args...)...)
	s.Require().NoError(err, out)
	var doc struct {
		ID string `json:"id"`
	}
	s.Require().NoError(json.Unmarshal([]byte(out), &doc))
	s.Require().NotEmpty(doc.ID)
	return doc.ID
}

func (s *DocgenTestSuite) TestInvoiceHistorySearchStats() {
	out, err := s.run("invoice", "--client", "Ravi", "--company", "Apna Advertising",
		"--item", "Design: landing page:1:15000", "--item", "Development:2:12500", "--tax", "18")
	s.Require().NoError(err)
	s.Contains(out, "INV-")
	s.Contains(out, "Design: landing page")

	out, err = s.run("history")
	s.Require().NoError(err)
	s.Contains(out, "Ravi")

	out, err = s.run("history", "--filter", "quotations")
	s.Require().NoError(err)
	s.Contains(out, "No documents found")

	out, err = s.run("search", "apna")
	s.Require().NoError(err)
	s.Contains(out, "Ravi")

	out, err = s.run("--json", "stats")
	s.Require().NoError(err)
	var stats dto.StatsResponse
	s.Require().NoError(json.Unmarshal([]byte(out), &stats))
	s.Equal(1, stats.TotalInvoices)
	s.Require().Len(stats.StatusStats, 1)
	s.Equal("draft", stats.StatusStats[0].ID)
	// (15000 + 25000) * 1.18
	s.True(decimal.NewFromInt(47200).Equal(stats.StatusStats[0].Total), stats.StatusStats[0].Total.String())
}

func (s *DocgenTestSuite) TestInvoice_Validation() {
	_, err := s.run("invoice", "--client", "Ravi")
	s.Error(err)

	_, err = s.run("invoice", "--client", "Ravi", "--item", "no-amounts")
	s.Error(err)

	_, err = s.run("invoice", "--client", "", "--item", "Work:1:100")
	s.Error(err)

	out, err := s.run("history")
	s.Require().NoError(err)
	s.Contains(out, "No documents found")
}

func (s *DocgenTestSuite) TestInvoice_DuplicateNumberRejected() {
	_, err := s.run("invoice", "--client", "A", "--number", "INV-X-1", "--item", "Work:1:100")
	s.Require().NoError(err)
	_, err = s.run("invoice", "--client", "B", "--number", "INV-X-1", "--item", "Work:1:100")
	s.Error(err)
}

func (s *DocgenTestSuite) TestQuoteThenConvert() {
	quoteID := s.issued("quote", "--template", "web-dev", "--client", "Meera")

	invoiceID := s.issued("convert", quoteID)
	s.NotEqual(quoteID, invoiceID)

	out, err := s.run("history", "--filter", "invoices")
	s.Require().NoError(err)
	s.Contains(out, invoiceID)
	s.Contains(out, "Meera")

	_, err = s.run("convert", invoiceID)
	s.Error(err, "invoices cannot be converted")
}

func (s *DocgenTestSuite) TestQuote_RequiresDescription() {
	_, err := s.run("quote", "--client", "Meera")
	s.Error(err)
}

func (s *DocgenTestSuite) TestRenderHTML() {
	id := s.issued("invoice", "--client", "Ravi", "--item", "Work:1:100")
	path := filepath.Join(s.T().TempDir(), "invoice.html")

	out, err := s.run("render", "--html", path, id)
	s.Require().NoError(err)
	s.Contains(out, path)

	html, err := os.ReadFile(path)
	s.Require().NoError(err)
	s.Contains(string(html), "Ravi")

	_, err = s.run("render", "missing-id")
	s.Error(err)
}

func (s *DocgenTestSuite) TestLoginAndPush() {
	gin.SetMode(gin.TestMode)
	apiCfg := &config.Config{IsProduction: true, JWTSecret: "cli-secret", JWTExpiry: time.Hour, AuthRateLimit: "1000-M"}
	router := gin.New()
	handlers.RegisterRoutes(router, apiCfg, services.NewServiceContainer(apiCfg, memory.NewRepositoryProvider()))
	srv := httptest.NewServer(router)
	defer srv.Close()

	api := gateway.New(srv.URL + "/api")
	_, err := api.Register(s.T().Context(), dto.RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "secret123"})
	s.Require().NoError(err)

	id := s.issued("invoice", "--client", "Ravi", "--item", "Work:2:500")

	_, err = s.run("push", id)
	s.Error(err, "push requires a session")

	out, err := s.run("--server", srv.URL+"/api", "login", "--email", "asha@example.com", "--password", "secret123")
	s.Require().NoError(err)
	s.Contains(out, "Logged in as Asha")

	out, err = s.run("push", id)
	s.Require().NoError(err)
	s.Contains(out, "Pushed INV-")

	docs, _, err := api.ListDocuments(s.T().Context(), gateway.ListOptions{})
	s.Require().NoError(err)
	s.Require().Len(docs, 1)
	s.Equal("Ravi", docs[0].Client.Name)

	out, err = s.run("history")
	s.Require().NoError(err)
	s.Contains(out, docs[0].DocumentID)
	s.NotContains(out, id)
}

func TestParseItem(t *testing.T) {
	desc, qty, rate, err := parseItem("API: auth module:2:1500.50")
	require.NoError(t, err)
	assert.Equal(t, "API: auth module", desc)
	assert.Equal(t, "2", qty)
	assert.Equal(t, "1500.50", rate)

	_, _, _, err = parseItem("Work:1")
	assert.Error(t, err)
}
