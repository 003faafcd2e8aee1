package domain

import "time"

// AuditFields holds creation and last-update metadata. CreatedBy doubles as
// the owner of a persisted document.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"updatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy,omitempty"`
}
