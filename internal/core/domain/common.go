package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// NewAuditFields stamps creation and update fields with the same actor and time.
func NewAuditFields(userID string, now time.Time) AuditFields {
	return AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}

// Role is the role the authentication collaborator assigns to an actor.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleTreasurer Role = "TREASURER"
	RoleStaff     Role = "STAFF"
)

// Actor is the authenticated identity performing an operation.
type Actor struct {
	UserID string `json:"userID"`
	Role   Role   `json:"role"`
}

// IsElevated reports whether the actor may edit posted transactions and other users' records.
func (a Actor) IsElevated() bool {
	return a.Role == RoleAdmin || a.Role == RoleTreasurer
}
