package models

import "time"

// AuditFields holds creation and last-update metadata shared by stored records.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at" bson:"createdAt"`
	CreatedBy     string    `db:"created_by" bson:"createdBy"`
	LastUpdatedAt time.Time `db:"last_updated_at" bson:"updatedAt"`
	LastUpdatedBy string    `db:"last_updated_by" bson:"lastUpdatedBy,omitempty"`
}

// Company is the issuer block as stored.
type Company struct {
	Name    string `json:"name" bson:"name"`
	Tagline string `json:"tagline,omitempty" bson:"tagline,omitempty"`
	Logo    string `json:"logo,omitempty" bson:"logo,omitempty"`
}
