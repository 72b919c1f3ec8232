package models

import "time"

// StudentProfile is the public-facing profile record. The embedded user and
// the derived student_id/email/full_name fields are read-only on the wire;
// the rest can be changed by the owner through a profile update.
type StudentProfile struct {
	ID             int64     `json:"id"`
	User           User      `json:"user"`
	StudentID      string    `json:"student_id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	Bio            string    `json:"bio"`
	Department     string    `json:"department"`
	Year           string    `json:"year"`
	CGPA           string    `json:"cgpa,omitempty"`
	Phone          string    `json:"phone"`
	LinkedinURL    string    `json:"linkedin_url"`
	GithubURL      string    `json:"github_url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
