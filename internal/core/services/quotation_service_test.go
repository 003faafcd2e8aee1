package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/invoice_generator_app/internal/apperrors"
	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	"github.com/SscSPs/invoice_generator_app/internal/core/generator"
	"github.com/SscSPs/invoice_generator_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	content generator.Content
	err     error
	got     generator.Request
}

func (g *stubGenerator) Generate(ctx context.Context, req generator.Request) (generator.Content, error) {
	g.got = req
	return g.content, g.err
}

var defaultCompany = domain.CompanyProfile{Name: "PRANAYUV TECHNOLOGIES PVT LTD", Logo: "PV"}

func TestDraftQuotation_UsesSimulatedGenerator(t *testing.T) {
	ctx := context.Background()
	docs := new(MockDocumentRepository)
	users := new(MockUserRepository)
	docs.On("DocumentNumbers", ctx, ownerID, domain.KindQuotation).Return([]string{"QUO-2025-001", "QUO-2025-003"}, nil).Once()
	users.On("FindUserByID", ctx, ownerID).Return(&domain.User{UserID: ownerID}, nil).Once()

	svc := services.NewQuotationService(generator.NewSimulatedGenerator(), docs, users, defaultCompany)
	doc, err := svc.DraftQuotation(ctx, ownerID, generator.Request{
		Description: "Company website with a blog",
		ClientName:  "Acme",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.KindQuotation, doc.Kind)
	assert.Equal(t, defaultCompany, doc.Company)
	assert.Contains(t, doc.Number, "-004", "numbers still in use are skipped")
	assert.Equal(t, "Acme", doc.Client.Name)
	assert.NotEmpty(t, doc.LineItems)
	assert.True(t, doc.Pricing.GrandTotal.IsPositive())
	assert.Empty(t, doc.DocumentID)
	docs.AssertExpectations(t)
}

func TestDraftQuotation_PresetAndProfileCompany(t *testing.T) {
	ctx := context.Background()
	docs := new(MockDocumentRepository)
	users := new(MockUserRepository)
	docs.On("DocumentNumbers", ctx, ownerID, domain.KindQuotation).Return(nil, nil)
	profile := domain.CompanyProfile{Name: "Rao Studio", Logo: "RS"}
	users.On("FindUserByID", ctx, ownerID).Return(&domain.User{UserID: ownerID, Company: profile}, nil)

	gen := &stubGenerator{content: generator.Content{
		ProjectName: "AI Solution for Client",
		LineItems:   []generator.PricedItem{{Description: "Model", Amount: dec("1000")}},
	}}
	svc := services.NewQuotationService(gen, docs, users, defaultCompany)
	doc, err := svc.DraftQuotation(ctx, ownerID, generator.Request{Template: "ai-solution"})

	require.NoError(t, err)
	assert.Equal(t, profile, doc.Company)
	assert.Equal(t, generator.BudgetEnterprise, gen.got.Budget)
	assert.NotEmpty(t, gen.got.Description)
	assert.Equal(t, generator.DefaultClientName, doc.Client.Name)
	assert.True(t, dec("1000").Equal(doc.Pricing.GrandTotal))
}

func TestDraftQuotation_Errors(t *testing.T) {
	ctx := context.Background()
	docs := new(MockDocumentRepository)
	users := new(MockUserRepository)

	svc := services.NewQuotationService(&stubGenerator{}, docs, users, defaultCompany)
	_, err := svc.DraftQuotation(ctx, ownerID, generator.Request{Description: "  "})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	timeout := services.NewQuotationService(&stubGenerator{err: context.DeadlineExceeded}, docs, users, defaultCompany)
	_, err = timeout.DraftQuotation(ctx, ownerID, generator.Request{Description: "web app"})
	assert.ErrorIs(t, err, apperrors.ErrUnavailable)

	expired, cancel := context.WithDeadline(ctx, time.Now().Add(-time.Second))
	defer cancel()
	simulated := services.NewQuotationService(generator.NewSimulatedGenerator(), docs, users, defaultCompany)
	_, err = simulated.DraftQuotation(expired, ownerID, generator.Request{Description: "web app"})
	assert.Error(t, err)
	docs.AssertNotCalled(t, "DocumentNumbers", mock.Anything, mock.Anything, mock.Anything)
}
