package validator

// LoginRequest carries the credentials for POST /auth/login/.
type LoginRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

// RegisterRequest carries the registration fields for POST /auth/register/.
// ConfirmPassword never leaves the client; it is checked before any network
// call and stripped from the wire payload.
type RegisterRequest struct {
	StudentID       string `json:"student_id" validate:"required,max=10"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"-" validate:"omitempty"`
	Role            string `json:"role" validate:"required,role"`
	FirstName       string `json:"first_name" validate:"omitempty,max=150"`
	LastName        string `json:"last_name" validate:"omitempty,max=150"`
}

// RefreshRequest carries the refresh token for POST /auth/refresh/ and
// POST /auth/logout/.
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// AchievementRequest is the multipart form body for creating or editing an
// achievement.
type AchievementRequest struct {
	Title           string `form:"title" validate:"required,max=200"`
	Description     string `form:"description" validate:"required"`
	Category        string `form:"category" validate:"required,category"`
	AchievementDate string `form:"achievement_date" validate:"omitempty,datestr"`
}

// VerifyRequest is the body for POST /achievements/list/{id}/verify/.
type VerifyRequest struct {
	Status            string `json:"status" validate:"required,oneof=verified rejected"`
	VerificationNotes string `json:"verification_notes" validate:"omitempty,max=2000"`
}

// ProfileUpdateRequest is the multipart form body for PATCH /profiles/{id}/.
type ProfileUpdateRequest struct {
	Bio         string `form:"bio" validate:"omitempty"`
	Department  string `form:"department" validate:"omitempty,max=25"`
	Year        string `form:"year" validate:"omitempty,max=4"`
	CGPA        string `form:"cgpa" validate:"omitempty"`
	Phone       string `form:"phone" validate:"omitempty,max=20"`
	LinkedinURL string `form:"linkedin_url" validate:"omitempty,url"`
	GithubURL   string `form:"github_url" validate:"omitempty,url"`
}
