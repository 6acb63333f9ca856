package models

// Role decides which screens a session may open
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// SessionIdentity is the minimal user record held for the duration of a session
type SessionIdentity struct {
	ID    string `bson:"user_id" json:"id"`
	Email string `bson:"email" json:"email"`
	Name  string `bson:"name" json:"name"`
	Role  Role   `bson:"role" json:"role"`
}

// IsAdmin reports whether the identity may manage the catalog
func (s SessionIdentity) IsAdmin() bool {
	return s.Role == RoleAdmin
}
