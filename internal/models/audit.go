package models

import "time"

// AuditRecord is the audit_log table row. Details is stored as JSONB.
type AuditRecord struct {
	AuditID    string    `db:"audit_id"`
	TenantID   string    `db:"tenant_id"`
	ActorID    string    `db:"actor_id"`
	Action     string    `db:"action"`
	EntityType string    `db:"entity_type"`
	EntityID   string    `db:"entity_id"`
	Details    []byte    `db:"details"`
	CreatedAt  time.Time `db:"created_at"`
}
