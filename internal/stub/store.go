package stub

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/FryoPie/Student-portal/internal/models"
)

// account pairs a user record with its password hash. Only the stub ever
// sees the hash.
type account struct {
	models.User
	PasswordHash []byte
}

// Store is the stub's in-memory state. Everything lives for the lifetime of
// the process; the stub is a development collaborator, not a database.
type Store struct {
	mu sync.RWMutex

	nextUserID         int64
	nextProfileID      int64
	nextAchievementID  int64
	nextNotificationID int64

	accounts      map[int64]*account
	byStudentID   map[string]int64
	byEmail       map[string]int64
	profiles      map[int64]*models.StudentProfile
	profileByUser map[int64]int64
	achievements  map[int64]*models.Achievement
	notifications map[int64]*models.Notification
	files         map[string][]byte
}

func NewStore() *Store {
	return &Store{
		accounts:      make(map[int64]*account),
		byStudentID:   make(map[string]int64),
		byEmail:       make(map[string]int64),
		profiles:      make(map[int64]*models.StudentProfile),
		profileByUser: make(map[int64]int64),
		achievements:  make(map[int64]*models.Achievement),
		notifications: make(map[int64]*models.Notification),
		files:         make(map[string][]byte),
	}
}

// ===== accounts =====

// CreateAccount registers a user and their auto-created profile. The bool
// results report student-id and email uniqueness respectively.
func (s *Store) CreateAccount(user models.User, hash []byte) (models.User, bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(user.StudentID)
	emailKey := strings.ToLower(user.Email)
	if _, taken := s.byStudentID[key]; taken {
		return models.User{}, false, true
	}
	if _, taken := s.byEmail[emailKey]; taken {
		return models.User{}, true, false
	}

	s.nextUserID++
	user.ID = s.nextUserID
	s.accounts[user.ID] = &account{User: user, PasswordHash: hash}
	s.byStudentID[key] = user.ID
	s.byEmail[emailKey] = user.ID

	now := time.Now().UTC()
	s.nextProfileID++
	profile := &models.StudentProfile{
		ID:        s.nextProfileID,
		User:      user,
		StudentID: user.StudentID,
		Email:     user.Email,
		FullName:  user.DisplayName(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.profiles[profile.ID] = profile
	s.profileByUser[user.ID] = profile.ID

	return user, true, true
}

func (s *Store) AccountByStudentID(studentID string) (*account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byStudentID[strings.ToLower(studentID)]
	if !ok {
		return nil, false
	}
	acc := *s.accounts[id]
	return &acc, true
}

func (s *Store) AccountByID(id int64) (*account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[id]
	if !ok {
		return nil, false
	}
	cp := *acc
	return &cp, true
}

// ===== profiles =====

func (s *Store) ProfileByID(id int64) (models.StudentProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return models.StudentProfile{}, false
	}
	return *p, true
}

func (s *Store) ProfileByUser(userID int64) (models.StudentProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pid, ok := s.profileByUser[userID]
	if !ok {
		return models.StudentProfile{}, false
	}
	return *s.profiles[pid], true
}

// UpdateProfile applies fn to the stored profile under the lock.
func (s *Store) UpdateProfile(id int64, fn func(*models.StudentProfile)) (models.StudentProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return models.StudentProfile{}, false
	}
	fn(p)
	p.UpdatedAt = time.Now().UTC()
	return *p, true
}

// ===== achievements =====

func (s *Store) CreateAchievement(a models.Achievement) models.Achievement {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextAchievementID++
	a.ID = s.nextAchievementID
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	s.achievements[a.ID] = &a
	return a
}

func (s *Store) AchievementByID(id int64) (models.Achievement, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.achievements[id]
	if !ok {
		return models.Achievement{}, false
	}
	return *a, true
}

// UpdateAchievement applies fn to the stored record under the lock.
func (s *Store) UpdateAchievement(id int64, fn func(*models.Achievement)) (models.Achievement, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.achievements[id]
	if !ok {
		return models.Achievement{}, false
	}
	fn(a)
	a.UpdatedAt = time.Now().UTC()
	return *a, true
}

func (s *Store) DeleteAchievement(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.achievements[id]; !ok {
		return false
	}
	delete(s.achievements, id)
	return true
}

// ListAchievements returns records matching the filter, newest first.
// Zero-valued filter fields match everything.
func (s *Store) ListAchievements(studentID int64, status models.AchievementStatus) []models.Achievement {
	s.mu.RLock()
	out := make([]models.Achievement, 0)
	for _, a := range s.achievements {
		if studentID != 0 && a.Student != studentID {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		out = append(out, *a)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// ===== notifications =====

func (s *Store) CreateNotification(userID, achievementID int64, title, message string) models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextNotificationID++
	n := &models.Notification{
		ID:               s.nextNotificationID,
		User:             userID,
		Achievement:      achievementID,
		AchievementTitle: title,
		Message:          message,
		CreatedAt:        time.Now().UTC(),
	}
	s.notifications[n.ID] = n
	return *n
}

func (s *Store) NotificationsFor(userID int64) []models.Notification {
	s.mu.RLock()
	out := make([]models.Notification, 0)
	for _, n := range s.notifications {
		if n.User == userID {
			out = append(out, *n)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// MarkRead flips one notification; it must belong to userID.
func (s *Store) MarkRead(id, userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok || n.User != userID {
		return false
	}
	n.IsRead = true
	return true
}

// MarkAllRead flips every notification owned by userID. Idempotent.
func (s *Store) MarkAllRead(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifications {
		if n.User == userID {
			n.IsRead = true
		}
	}
}

// ===== uploaded files =====

func (s *Store) PutFile(name string, data []byte) {
	s.mu.Lock()
	s.files[name] = data
	s.mu.Unlock()
}

func (s *Store) GetFile(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[name]
	return data, ok
}
