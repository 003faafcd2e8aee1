package catalog_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/invoice_generator_app/internal/apperrors"
	"github.com/SscSPs/invoice_generator_app/internal/core/catalog"
	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CatalogTestSuite struct {
	suite.Suite
	cat  *catalog.Catalog
	base time.Time
}

func (s *CatalogTestSuite) SetupTest() {
	s.cat = catalog.New()
	s.base = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
}

func (s *CatalogTestSuite) add(id string, kind domain.DocumentKind, dayOffset int, status domain.DocumentStatus, total int64) domain.Document {
	doc := domain.Document{
		DocumentID: id,
		Kind:       kind,
		Number:     fmt.Sprintf("%s-%s", kind.NumberPrefix(), id),
		Date:       s.base.AddDate(0, 0, dayOffset),
		Client:     domain.Party{Name: "Client " + id},
		Status:     status,
		Pricing:    domain.PricingBreakdown{GrandTotal: decimal.NewFromInt(total)},
	}
	s.Require().NoError(s.cat.Add(doc))
	return doc
}

func ids(docs []domain.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.DocumentID
	}
	return out
}

func (s *CatalogTestSuite) TestList_OrdersByDateDescendingWithStableTies() {
	s.add("a", domain.KindQuotation, 0, domain.StatusDraft, 10)
	s.add("b", domain.KindInvoice, 2, domain.StatusDraft, 10)
	s.add("c", domain.KindQuotation, 2, domain.StatusDraft, 10)
	s.add("d", domain.KindInvoice, 1, domain.StatusDraft, 10)

	s.Equal([]string{"b", "c", "d", "a"}, ids(s.cat.List(domain.FilterAll)))
	s.Equal([]string{"c", "a"}, ids(s.cat.List(domain.FilterQuotations)))
	s.Equal([]string{"b", "d"}, ids(s.cat.List(domain.FilterInvoices)))
}

func (s *CatalogTestSuite) TestGet_UnknownID() {
	_, err := s.cat.Get("missing")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *CatalogTestSuite) TestGet_ReturnsCopy() {
	s.add("a", domain.KindInvoice, 0, domain.StatusDraft, 10)
	doc, err := s.cat.Get("a")
	s.Require().NoError(err)
	doc.Client.Name = "changed"

	again, _ := s.cat.Get("a")
	s.Equal("Client a", again.Client.Name)
}

func (s *CatalogTestSuite) TestAdd_DuplicateID() {
	s.add("a", domain.KindInvoice, 0, domain.StatusDraft, 10)
	err := s.cat.Add(domain.Document{DocumentID: "a"})
	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.Equal(1, s.cat.Len())
}

func (s *CatalogTestSuite) TestSearch_MatchesCompanyCaseInsensitively() {
	doc := domain.Document{
		DocumentID: "q1",
		Kind:       domain.KindQuotation,
		Number:     "QUO-2025-001",
		Date:       s.base,
		Client:     domain.Party{Name: "Ravi", Company: "Apna Advertising Pvt Ltd"},
	}
	s.Require().NoError(s.cat.Add(doc))
	s.add("other", domain.KindInvoice, 1, domain.StatusDraft, 5)

	found := s.cat.Search("apna")
	s.Require().Len(found, 1)
	s.Equal("q1", found[0].DocumentID)

	none := s.cat.Search("zzz")
	s.NotNil(none)
	s.Empty(none)
}

func (s *CatalogTestSuite) TestSearch_IsBounded() {
	for i := 0; i < 30; i++ {
		s.add(fmt.Sprintf("doc%02d", i), domain.KindInvoice, i, domain.StatusDraft, 1)
	}
	found := s.cat.Search("client")
	s.Len(found, domain.SearchLimit)
	s.Equal("doc29", found[0].DocumentID)
}

func (s *CatalogTestSuite) TestStats() {
	s.add("a", domain.KindInvoice, 0, domain.StatusPaid, 1000)
	s.add("b", domain.KindInvoice, 0, domain.StatusPaid, 500)
	s.add("c", domain.KindQuotation, 0, domain.StatusSent, 700)

	stats := s.cat.Stats()
	s.Equal(3, stats.TotalDocuments)
	s.True(decimal.NewFromInt(1500).Equal(stats.TotalRevenue))
	s.Equal(1, stats.ByStatus[domain.StatusSent].Count)
}

func (s *CatalogTestSuite) TestRemoveAndReplace() {
	s.add("a", domain.KindInvoice, 0, domain.StatusDraft, 1)
	s.add("b", domain.KindInvoice, 1, domain.StatusDraft, 1)
	s.Require().NoError(s.cat.Remove("a"))
	s.ErrorIs(s.cat.Remove("a"), apperrors.ErrNotFound)

	b, err := s.cat.Get("b")
	s.Require().NoError(err)
	b.Status = domain.StatusSent
	s.Require().NoError(s.cat.Replace(b))
	got, _ := s.cat.Get("b")
	s.Equal(domain.StatusSent, got.Status)
}

func TestCatalog(t *testing.T) {
	suite.Run(t, new(CatalogTestSuite))
}

func TestNextNumber(t *testing.T) {
	cat := catalog.New()
	assert.Equal(t, "QUO-2025-001", cat.NextNumber(domain.KindQuotation, 2025))

	require.NoError(t, cat.Add(domain.Document{DocumentID: "1", Kind: domain.KindQuotation, Number: "QUO-2025-002"}))
	// count+1 is taken, so the next free number is used
	assert.Equal(t, "QUO-2025-003", cat.NextNumber(domain.KindQuotation, 2025))
	assert.Equal(t, "INV-2025-001", cat.NextNumber(domain.KindInvoice, 2025))
}
