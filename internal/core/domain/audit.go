package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditAction identifies the operation an audit record describes.
type AuditAction string

const (
	AuditActionGLPost    AuditAction = "gl_post"
	AuditActionGLReverse AuditAction = "gl_reverse"
)

// AuditDetails carries the posting attributes worth keeping alongside
// the audit row.
type AuditDetails struct {
	Description string          `json:"description"`
	Reference   string          `json:"reference"`
	Amount      decimal.Decimal `json:"amount"`
	LineCount   int             `json:"lineCount"`
}

// AuditRecord is one row per posting attempt. Writing it is best
// effort: a failed audit write is logged but never fails the posting.
type AuditRecord struct {
	AuditID    string       `json:"auditID"`
	TenantID   string       `json:"tenantID"`
	ActorID    string       `json:"actorID"`
	Action     AuditAction  `json:"action"`
	EntityType string       `json:"entityType"` // model code of the business event
	EntityID   string       `json:"entityID"`   // resulting journal entry id
	Details    AuditDetails `json:"details"`
	CreatedAt  time.Time    `json:"createdAt"`
}
