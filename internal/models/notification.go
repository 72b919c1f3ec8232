package models

import "time"

// Notification tells a student that a coordinator acted on one of their
// achievements. Delivery is poll-based: the panel fetches the full list and
// flips the read flag through the mark_read endpoints.
type Notification struct {
	ID               int64     `json:"id"`
	User             int64     `json:"user"`
	Achievement      int64     `json:"achievement"`
	AchievementTitle string    `json:"achievement_title"`
	Message          string    `json:"message"`
	IsRead           bool      `json:"is_read"`
	CreatedAt        time.Time `json:"created_at"`
}

// UnreadCount returns how many notifications in the list are still unread.
func UnreadCount(list []Notification) int {
	n := 0
	for _, it := range list {
		if !it.IsRead {
			n++
		}
	}
	return n
}
