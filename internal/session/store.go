package session

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/FryoPie/Student-portal/internal/models"
)

// Durable storage layout: three independent entries under the state
// directory, all present or all absent.
const (
	accessTokenFile  = "access_token"
	refreshTokenFile = "refresh_token"
	userFile         = "user.json"
)

// Credential is the opaque token pair issued by the remote auth service.
type Credential struct {
	AccessToken  string
	RefreshToken string
}

// Session pairs a Credential with the User record captured at login time.
type Session struct {
	Credential Credential
	User       models.User
}

// Store owns the current session: a durable copy on disk plus an in-memory
// mirror that every other component reads. Only the auth controller may call
// Save and Clear.
type Store struct {
	dir    string
	logger *slog.Logger

	mu   sync.RWMutex
	sess *Session
}

func NewStore(dir string, logger *slog.Logger) *Store {
	return &Store{dir: dir, logger: logger}
}

// Load rehydrates the in-memory session from durable storage. A missing or
// unparsable entry is treated as "no session"; Load never fails.
func (s *Store) Load() {
	access, err := s.readEntry(accessTokenFile)
	if err != nil || access == "" {
		return
	}
	raw, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		return
	}
	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		s.logger.Warn("discarding unparsable stored session", "error", err)
		return
	}

	// The refresh token is best-effort: the session is usable without it.
	refresh, _ := s.readEntry(refreshTokenFile)

	s.mu.Lock()
	s.sess = &Session{
		Credential: Credential{AccessToken: access, RefreshToken: refresh},
		User:       user,
	}
	s.mu.Unlock()
}

// Save persists the credential and user record together and replaces the
// in-memory session. A subsequent Load observes the new values.
func (s *Store) Save(cred Credential, user models.User) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user record: %w", err)
	}

	if err := s.writeEntry(accessTokenFile, []byte(cred.AccessToken)); err != nil {
		return err
	}
	if err := s.writeEntry(refreshTokenFile, []byte(cred.RefreshToken)); err != nil {
		return err
	}
	if err := s.writeEntry(userFile, raw); err != nil {
		return err
	}

	s.mu.Lock()
	s.sess = &Session{Credential: cred, User: user}
	s.mu.Unlock()
	return nil
}

// Clear removes every entry from durable storage and empties the in-memory
// session. It always succeeds: a failed removal of an already-absent entry is
// not an error.
func (s *Store) Clear() {
	for _, name := range []string{accessTokenFile, refreshTokenFile, userFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to remove session entry", "entry", name, "error", err)
		}
	}
	s.mu.Lock()
	s.sess = nil
	s.mu.Unlock()
}

// Current returns a copy of the in-memory session, if one exists.
func (s *Store) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sess == nil {
		return Session{}, false
	}
	return *s.sess, true
}

func (s *Store) readEntry(name string) (string, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

// writeEntry writes via a temp file and rename so a crashed write cannot
// leave a truncated entry behind.
func (s *Store) writeEntry(name string, data []byte) error {
	path := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("write session entry %s: %w", name, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write session entry %s: %w", name, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write session entry %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write session entry %s: %w", name, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write session entry %s: %w", name, err)
	}
	return nil
}
