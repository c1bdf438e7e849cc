package domain

import "time"

// Role classifies marketplace accounts.
type Role string

const (
	RoleClient Role = "CLIENT"
	RoleSeller Role = "SELLER"
	RoleAdmin  Role = "ADMIN"
)

// ValidRole reports whether a role may be chosen at registration. Admin
// accounts are provisioned out of band.
func ValidRole(r Role) bool {
	return r == RoleClient || r == RoleSeller
}

// User is the domain model for marketplace accounts.
type User struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	Role         Role      `bson:"role"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}
