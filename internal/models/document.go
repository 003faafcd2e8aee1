package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Party is the client block as stored.
type Party struct {
	Name    string `json:"name" bson:"name"`
	Company string `json:"company,omitempty" bson:"company,omitempty"`
	Address string `json:"address,omitempty" bson:"address,omitempty"`
	Contact string `json:"contact,omitempty" bson:"contact,omitempty"`
	Email   string `json:"email,omitempty" bson:"email,omitempty"`
}

// Project is the engagement block as stored.
type Project struct {
	Name         string   `json:"name" bson:"name"`
	Summary      string   `json:"summary,omitempty" bson:"summary,omitempty"`
	Deliverables []string `json:"deliverables,omitempty" bson:"deliverables,omitempty"`
	Timeline     string   `json:"timeline,omitempty" bson:"timeline,omitempty"`
	Maintenance  string   `json:"maintenance,omitempty" bson:"maintenance,omitempty"`
	Terms        []string `json:"terms,omitempty" bson:"terms,omitempty"`
}

// LineItem is one stored row.
type LineItem struct {
	Description string               `bson:"description"`
	Quantity    primitive.Decimal128 `bson:"quantity"`
	Rate        primitive.Decimal128 `bson:"rate"`
	Total       primitive.Decimal128 `bson:"total"`
}

// Pricing stores the pricing inputs next to the derived breakdown so that
// aggregations can read grand totals directly.
type Pricing struct {
	Mode           string               `bson:"mode"`
	DiscountRate   primitive.Decimal128 `bson:"discountRate"`
	TaxRate        primitive.Decimal128 `bson:"taxRate"`
	PackageCost    primitive.Decimal128 `bson:"packageCost"`
	FlatDiscount   primitive.Decimal128 `bson:"flatDiscount"`
	DiscountName   string               `bson:"discountName,omitempty"`
	Subtotal       primitive.Decimal128 `bson:"subtotal"`
	DiscountAmount primitive.Decimal128 `bson:"discountAmount"`
	TaxableAmount  primitive.Decimal128 `bson:"taxableAmount"`
	TaxAmount      primitive.Decimal128 `bson:"taxAmount"`
	GrandTotal     primitive.Decimal128 `bson:"grandTotal"`
}

// DocumentRecord is a quotation or invoice as stored in the mongo
// "invoices" collection.
type DocumentRecord struct {
	DocumentID       string     `bson:"_id"`
	Kind             string     `bson:"kind"`
	Number           string     `bson:"number"`
	Date             time.Time  `bson:"date"`
	ValidUntil       *time.Time `bson:"validUntil,omitempty"`
	DueDate          *time.Time `bson:"dueDate,omitempty"`
	PaymentTerms     string     `bson:"paymentTerms,omitempty"`
	Company          Company    `bson:"company"`
	Client           Party      `bson:"client"`
	Project          Project    `bson:"project"`
	Items            []LineItem `bson:"items"`
	Pricing          Pricing    `bson:"pricing"`
	Status           string     `bson:"status"`
	Notes            string     `bson:"notes,omitempty"`
	Tags             []string   `bson:"tags,omitempty"`
	SourceDocumentID string     `bson:"sourceDocumentId,omitempty"`
	IdempotencyKey   string     `bson:"idempotencyKey,omitempty"`
	AuditFields      `bson:",inline"`
}

// DocumentRow is a quotation or invoice as stored in the postgres
// "documents" table. Searchable and sortable fields are columns; the full
// document travels in Body as JSON.
type DocumentRow struct {
	DocumentID     string          `db:"document_id"`
	Kind           string          `db:"kind"`
	Number         string          `db:"number"`
	Status         string          `db:"status"`
	DocumentDate   time.Time       `db:"document_date"`
	ClientName     string          `db:"client_name"`
	ClientCompany  string          `db:"client_company"`
	ProjectName    string          `db:"project_name"`
	GrandTotal     decimal.Decimal `db:"grand_total"`
	IdempotencyKey *string         `db:"idempotency_key"`
	Body           []byte          `db:"body"`
	AuditFields
}
