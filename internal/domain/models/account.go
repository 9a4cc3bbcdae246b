// internal/domain/models/account.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role identifies which of the three account tiers an identity belongs to.
// The tiers are disjoint: each role lives in its own collection and an email
// may appear in at most one of them.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// Account status values. Only user accounts carry a status; admins and
// superadmins are always active.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Account represents a credential-bearing identity in one of the three
// variant collections (users, admins, superadmins). The variants share the
// common fields; Status, Subscribed, and PostIDs are meaningful only for the
// user variant and stay zero-valued elsewhere.
type Account struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"` // bcrypt hash, never plaintext
	Name     string             `bson:"name" json:"name"`
	Role     Role               `bson:"role" json:"role"`

	// User-variant fields.
	Status     string               `bson:"status,omitempty" json:"status,omitempty"`
	Subscribed bool                 `bson:"subscribed,omitempty" json:"subscribed,omitempty"`
	PostIDs    []primitive.ObjectID `bson:"posts,omitempty" json:"posts,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Active reports whether the account may act. Non-user roles have no status
// field and are always active.
func (a *Account) Active() bool {
	if a.Role != RoleUser {
		return true
	}
	return a.Status == StatusActive
}
