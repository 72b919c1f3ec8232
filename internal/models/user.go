package models

import "strings"

type Role string

const (
	RoleStudent     Role = "student"
	RoleCoordinator Role = "coordinator"
)

// Valid reports whether the role is one of the fixed set the portal knows.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleCoordinator
}

// User is the identity snapshot returned by the auth endpoints. It is
// immutable for the lifetime of a session; a fresh login overwrites it.
type User struct {
	ID        int64  `json:"id"`
	StudentID string `json:"student_id"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// DisplayName returns the user's full name, falling back to the roll number
// when no name was provided at registration.
func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.StudentID
	}
	return name
}
