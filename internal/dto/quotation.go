package dto

import "github.com/SscSPs/invoice_generator_app/internal/core/generator"

// DraftQuotationRequest is the body of POST /api/quotations/draft. Either a
// description or a known template is required.
type DraftQuotationRequest struct {
	Description   string `json:"description" binding:"max=4000"`
	Budget        string `json:"budget" binding:"omitempty,oneof=5000-10000 10000-25000 25000-50000 50000-100000 100000+"`
	Template      string `json:"template" binding:"omitempty,oneof=web-dev mobile-app ai-solution consulting"`
	ClientName    string `json:"clientName"`
	ClientEmail   string `json:"clientEmail" binding:"omitempty,email"`
	ClientCompany string `json:"clientCompany"`
}

// ToRequest converts the payload for the generator.
func (r DraftQuotationRequest) ToRequest() generator.Request {
	return generator.Request{
		Description:   r.Description,
		Budget:        r.Budget,
		Template:      r.Template,
		ClientName:    r.ClientName,
		ClientEmail:   r.ClientEmail,
		ClientCompany: r.ClientCompany,
	}
}
