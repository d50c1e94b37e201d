package models

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (u User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

type Admin struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	CreatedAt string `json:"created_at,omitempty"`
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
