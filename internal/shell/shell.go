// Package shell is the navigation frame around the pages: the links shown
// for the current role, the unread-notification badge, and logout.
package shell

import (
	"context"

	"github.com/FryoPie/Student-portal/internal/api"
	"github.com/FryoPie/Student-portal/internal/auth"
	"github.com/FryoPie/Student-portal/internal/models"
)

// Link is one navigation entry.
type Link struct {
	Label string
	Path  string
}

type Shell struct {
	auth   *auth.Controller
	client *api.Client

	unread int
}

func New(authCtl *auth.Controller, client *api.Client) *Shell {
	return &Shell{auth: authCtl, client: client}
}

// NavLinks returns the entries visible to the current session: student pages
// for students, the review dashboard for coordinators, login/register for
// everyone else.
func (s *Shell) NavLinks() []Link {
	user, ok := s.auth.CurrentUser()
	if !ok {
		return []Link{
			{Label: "Login", Path: "/login"},
			{Label: "Register", Path: "/register"},
		}
	}
	if user.Role == models.RoleCoordinator {
		return []Link{
			{Label: "Coordinator Dashboard", Path: "/coordinator"},
		}
	}
	return []Link{
		{Label: "Dashboard", Path: "/dashboard"},
		{Label: "My Profile", Path: "/profile"},
		{Label: "Achievements", Path: "/achievements"},
	}
}

// RefreshBadge re-counts unread notifications. Skipped silently when no
// session exists.
func (s *Shell) RefreshBadge(ctx context.Context) error {
	if !s.auth.IsAuthenticated() {
		s.unread = 0
		return nil
	}
	var list []models.Notification
	if err := s.client.GetJSON(ctx, "/achievements/notifications/", &list); err != nil {
		return err
	}
	s.unread = models.UnreadCount(list)
	return nil
}

// Unread is the current badge value.
func (s *Shell) Unread() int { return s.unread }

// Logout tears the session down and returns the navigation target.
func (s *Shell) Logout() string {
	s.auth.Logout()
	s.unread = 0
	return "/login"
}
