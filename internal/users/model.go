package users

import "time"

// Role values. Admin is a configured credential pair and is never stored.
const (
	RoleStudent = "student"
	RoleMentor  = "mentor"
	RoleAdmin   = "admin"
)

type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Name           string    `json:"name"`
	Phone          string    `json:"phno"`
	Role           string    `json:"type"`
	PasswordHash   string    `json:"-"`
	AssignedMentor string    `json:"assignedMentor,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}
