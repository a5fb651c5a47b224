package models

import "time"

// AuditEntry records privileged mutations, currently admin role changes.
type AuditEntry struct {
	AuditID   string    `json:"auditId" bson:"auditId"`
	Action    string    `json:"action" bson:"action"`
	ActorID   string    `json:"actorId" bson:"actorId"`
	TargetID  string    `json:"targetId" bson:"targetId"`
	OldValue  string    `json:"oldValue,omitempty" bson:"oldValue,omitempty"`
	NewValue  string    `json:"newValue,omitempty" bson:"newValue,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
