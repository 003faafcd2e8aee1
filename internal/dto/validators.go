package dto

import (
	"strings"
	"sync"

	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SortFields are the columns documents can be listed by.
var SortFields = map[string]struct{}{
	"createdAt":  {},
	"updatedAt":  {},
	"date":       {},
	"number":     {},
	"grandTotal": {},
}

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags used by the request
// types in this package. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("docstatus", func(fl validator.FieldLevel) bool {
			return domain.DocumentStatus(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("dockind", func(fl validator.FieldLevel) bool {
			return domain.DocumentKind(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("pricingmode", func(fl validator.FieldLevel) bool {
			return domain.PricingMode(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("paymentterms", func(fl validator.FieldLevel) bool {
			switch domain.PaymentTerms(fl.Field().String()) {
			case domain.TermsImmediate, domain.TermsNet15, domain.TermsNet30, domain.TermsNet60:
				return true
			}
			return false
		})
		_ = v.RegisterValidation("sortfield", func(fl validator.FieldLevel) bool {
			_, ok := SortFields[strings.TrimPrefix(fl.Field().String(), "-")]
			return ok
		})
	})
}
