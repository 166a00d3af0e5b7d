package domain

import "time"

// Role enumerates access levels inside a department.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleDeptHead Role = "dept_head"
	RoleUser     Role = "user"
)

// User is the domain model for department members who raise and track SLAs.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Department   string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
