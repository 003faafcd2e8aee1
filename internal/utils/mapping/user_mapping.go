package mapping

import (
	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	"github.com/SscSPs/invoice_generator_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	var providerUserID *string
	if d.ProviderUserID != "" {
		id := d.ProviderUserID
		providerUserID = &id
	}
	return models.User{
		UserID:         d.UserID,
		Name:           d.Name,
		Email:          d.Email,
		PasswordHash:   d.PasswordHash,
		Company:        models.Company(d.Company),
		Role:           string(d.Role),
		IsActive:       d.IsActive,
		LastLoginAt:    d.LastLoginAt,
		AuthProvider:   string(d.AuthProvider),
		ProviderUserID: providerUserID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	u := domain.User{
		UserID:       m.UserID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Company:      domain.CompanyProfile(m.Company),
		Role:         domain.UserRole(m.Role),
		IsActive:     m.IsActive,
		LastLoginAt:  m.LastLoginAt,
		AuthProvider: domain.AuthProvider(m.AuthProvider),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
	if m.ProviderUserID != nil {
		u.ProviderUserID = *m.ProviderUserID
	}
	if u.AuthProvider == "" {
		u.AuthProvider = domain.ProviderLocal
	}
	return u
}
