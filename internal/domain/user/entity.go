package user

import "time"

type Role string

const (
	RoleAdmin Role = "admin" // Full access, including deletes
	RoleStaff Role = "staff" // Marks attendance and views reports
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleStaff
}

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
