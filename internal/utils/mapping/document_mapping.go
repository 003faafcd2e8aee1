package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	"github.com/SscSPs/invoice_generator_app/internal/core/pricing"
	"github.com/SscSPs/invoice_generator_app/internal/models"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ToDecimal128 converts an amount for storage in mongo.
func ToDecimal128(d decimal.Decimal) primitive.Decimal128 {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.NewDecimal128(0, 0)
	}
	return v
}

// FromDecimal128 converts a stored mongo amount. Unparseable values read as zero.
func FromDecimal128(v primitive.Decimal128) decimal.Decimal {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ToDocumentRecord converts a domain Document to its mongo record.
func ToDocumentRecord(d domain.Document) models.DocumentRecord {
	items := make([]models.LineItem, len(d.LineItems))
	for i, it := range d.LineItems {
		items[i] = models.LineItem{
			Description: it.Description,
			Quantity:    ToDecimal128(it.Quantity),
			Rate:        ToDecimal128(it.Rate),
			Total:       ToDecimal128(pricing.LineTotal(it)),
		}
	}
	return models.DocumentRecord{
		DocumentID:   d.DocumentID,
		Kind:         string(d.Kind),
		Number:       d.Number,
		Date:         d.Date,
		ValidUntil:   d.ValidUntil,
		DueDate:      d.DueDate,
		PaymentTerms: string(d.PaymentTerms),
		Company:      models.Company(d.Company),
		Client:       models.Party(d.Client),
		Project:      models.Project(d.Project),
		Items:        items,
		Pricing: models.Pricing{
			Mode:           string(d.Terms.Mode),
			DiscountRate:   ToDecimal128(d.Terms.DiscountRate),
			TaxRate:        ToDecimal128(d.Terms.TaxRate),
			PackageCost:    ToDecimal128(d.Terms.PackageCost),
			FlatDiscount:   ToDecimal128(d.Terms.FlatDiscount),
			DiscountName:   d.Terms.DiscountName,
			Subtotal:       ToDecimal128(d.Pricing.Subtotal),
			DiscountAmount: ToDecimal128(d.Pricing.DiscountAmount),
			TaxableAmount:  ToDecimal128(d.Pricing.TaxableAmount),
			TaxAmount:      ToDecimal128(d.Pricing.TaxAmount),
			GrandTotal:     ToDecimal128(d.Pricing.GrandTotal),
		},
		Status:           string(d.Status),
		Notes:            d.Notes,
		Tags:             d.Tags,
		SourceDocumentID: d.SourceDocumentID,
		IdempotencyKey:   d.IdempotencyKey,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDocument converts a mongo record to a domain Document.
func ToDomainDocument(m models.DocumentRecord) domain.Document {
	items := make([]domain.LineItem, len(m.Items))
	for i, it := range m.Items {
		items[i] = domain.LineItem{
			Description: it.Description,
			Quantity:    FromDecimal128(it.Quantity),
			Rate:        FromDecimal128(it.Rate),
		}
	}
	mode := domain.PricingMode(m.Pricing.Mode)
	return domain.Document{
		DocumentID:   m.DocumentID,
		Kind:         domain.DocumentKind(m.Kind),
		Number:       m.Number,
		Date:         m.Date,
		ValidUntil:   m.ValidUntil,
		DueDate:      m.DueDate,
		PaymentTerms: domain.PaymentTerms(m.PaymentTerms),
		Company:      domain.CompanyProfile(m.Company),
		Client:       domain.Party(m.Client),
		Project:      domain.Project(m.Project),
		LineItems:    items,
		Terms: domain.PricingTerms{
			Mode:         mode,
			DiscountRate: FromDecimal128(m.Pricing.DiscountRate),
			TaxRate:      FromDecimal128(m.Pricing.TaxRate),
			PackageCost:  FromDecimal128(m.Pricing.PackageCost),
			FlatDiscount: FromDecimal128(m.Pricing.FlatDiscount),
			DiscountName: m.Pricing.DiscountName,
		},
		Pricing: domain.PricingBreakdown{
			Mode:           mode,
			Subtotal:       FromDecimal128(m.Pricing.Subtotal),
			DiscountAmount: FromDecimal128(m.Pricing.DiscountAmount),
			TaxableAmount:  FromDecimal128(m.Pricing.TaxableAmount),
			TaxAmount:      FromDecimal128(m.Pricing.TaxAmount),
			GrandTotal:     FromDecimal128(m.Pricing.GrandTotal),
		},
		Status:           domain.DocumentStatus(m.Status),
		Notes:            m.Notes,
		Tags:             m.Tags,
		SourceDocumentID: m.SourceDocumentID,
		IdempotencyKey:   m.IdempotencyKey,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDocumentRow converts a domain Document to its postgres row.
func ToDocumentRow(d domain.Document) (models.DocumentRow, error) {
	body, err := json.Marshal(d)
	if err != nil {
		return models.DocumentRow{}, fmt.Errorf("failed to encode document %s: %w", d.DocumentID, err)
	}
	var key *string
	if d.IdempotencyKey != "" {
		k := d.IdempotencyKey
		key = &k
	}
	return models.DocumentRow{
		DocumentID:     d.DocumentID,
		Kind:           string(d.Kind),
		Number:         d.Number,
		Status:         string(d.Status),
		DocumentDate:   d.Date,
		ClientName:     d.Client.Name,
		ClientCompany:  d.Client.Company,
		ProjectName:    d.Project.Name,
		GrandTotal:     d.Pricing.GrandTotal,
		IdempotencyKey: key,
		Body:           body,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}, nil
}

// FromDocumentRow decodes a postgres row. Columns win over the JSON body for
// the fields that can change without a full rewrite.
func FromDocumentRow(row models.DocumentRow) (domain.Document, error) {
	var d domain.Document
	if err := json.Unmarshal(row.Body, &d); err != nil {
		return domain.Document{}, fmt.Errorf("failed to decode document %s: %w", row.DocumentID, err)
	}
	d.DocumentID = row.DocumentID
	d.Status = domain.DocumentStatus(row.Status)
	if row.IdempotencyKey != nil {
		d.IdempotencyKey = *row.IdempotencyKey
	}
	d.AuditFields = ToDomainAuditFields(row.AuditFields)
	return d, nil
}
