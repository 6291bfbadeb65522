package domain

import "time"

// AuditFields holds the timestamps maintained for every persisted entity.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
