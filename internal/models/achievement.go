package models

import "time"

type AchievementStatus string

const (
	StatusPending  AchievementStatus = "pending"
	StatusVerified AchievementStatus = "verified"
	StatusRejected AchievementStatus = "rejected"
)

type AchievementCategory string

const (
	CategoryAcademic   AchievementCategory = "academic"
	CategorySports     AchievementCategory = "sports"
	CategoryCultural   AchievementCategory = "cultural"
	CategoryTechnical  AchievementCategory = "technical"
	CategoryLeadership AchievementCategory = "leadership"
	CategoryCommunity  AchievementCategory = "community"
	CategoryResearch   AchievementCategory = "research"
	CategoryOther      AchievementCategory = "other"
)

// CategoryLabels maps category keys to the display labels used across the
// portal.
var CategoryLabels = map[AchievementCategory]string{
	CategoryAcademic:   "Academic Excellence",
	CategorySports:     "Sports & Athletics",
	CategoryCultural:   "Cultural Activities",
	CategoryTechnical:  "Technical Skills",
	CategoryLeadership: "Leadership",
	CategoryCommunity:  "Community Service",
	CategoryResearch:   "Research & Publications",
	CategoryOther:      "Other",
}

// Achievement is a student-submitted record. Status is owned by the remote
// service: records start pending and move to verified or rejected through a
// coordinator's verify action, never back.
type Achievement struct {
	ID                int64               `json:"id"`
	Student           int64               `json:"student"`
	StudentName       string              `json:"student_name"`
	StudentID         int64               `json:"student_id"`
	Title             string              `json:"title"`
	Description       string              `json:"description"`
	Category          AchievementCategory `json:"category"`
	Status            AchievementStatus   `json:"status"`
	ProofDocument     string              `json:"proof_document,omitempty"`
	AchievementDate   string              `json:"achievement_date,omitempty"`
	VerifiedBy        *int64              `json:"verified_by"`
	VerifiedByName    string              `json:"verified_by_name,omitempty"`
	VerificationNotes string              `json:"verification_notes"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// Editable reports whether the owning student may still change or delete the
// record. The remote service enforces this too; the client mirrors it to
// disable the controls up front.
func (a Achievement) Editable() bool {
	return a.Status == StatusPending
}
