package models

import "time"

// Roles recognised across the marketplace.
const (
	RoleFarmer      = "farmer"
	RoleBuyer       = "buyer"
	RoleTransporter = "transporter"
	RoleAdmin       = "admin"
)

func ValidRole(role string) bool {
	switch role {
	case RoleFarmer, RoleBuyer, RoleTransporter, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	UserID          string    `json:"userid" bson:"userid"`
	Username        string    `json:"username" bson:"username"`
	Email           string    `json:"email" bson:"email"`
	Password        string    `json:"-" bson:"password"` // bcrypt hash, never serialized
	Role            string    `json:"role" bson:"role"`
	IsVerified      bool      `json:"isVerified" bson:"isVerified"`
	ProfileComplete bool      `json:"profileComplete" bson:"profileComplete"`
	Phone           string    `json:"phone,omitempty" bson:"phone,omitempty"`
	City            string    `json:"city,omitempty" bson:"city,omitempty"`
	Address         string    `json:"address,omitempty" bson:"address,omitempty"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updatedAt"`
	LastLogin       time.Time `json:"lastLogin,omitempty" bson:"lastLogin,omitempty"`
}

// UserProjection is the credential-free shape returned by token verification
// and the admin user list.
type UserProjection struct {
	UserID          string `json:"userid" bson:"userid"`
	Username        string `json:"username" bson:"username"`
	Email           string `json:"email" bson:"email"`
	Role            string `json:"role" bson:"role"`
	IsVerified      bool   `json:"isVerified" bson:"isVerified"`
	ProfileComplete bool   `json:"profileComplete" bson:"profileComplete"`
	City            string `json:"city,omitempty" bson:"city,omitempty"`
}
