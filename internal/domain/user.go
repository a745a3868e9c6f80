package domain

import "time"

// User represents a system user.
type User struct {
	ID        string
	Username  string
	Name      string
	Role      Role
	CreatedAt time.Time
	Active    bool
}

// Role represents a user's access level.
type Role string

const (
	// RoleAdmin can record entries and query consolidations.
	RoleAdmin Role = "admin"

	// RoleViewer can only query consolidations and entries.
	RoleViewer Role = "viewer"
)

var validRoles = map[Role]bool{
	RoleAdmin:  true,
	RoleViewer: true,
}

// IsValid checks if the role is a known role.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanWrite checks if the role can create, update or delete entries.
func (r Role) CanWrite() bool {
	return r == RoleAdmin
}

// CanRead checks if the role can query resources.
func (r Role) CanRead() bool {
	return r.IsValid()
}
