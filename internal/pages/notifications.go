package pages

import (
	"context"
	"fmt"

	"github.com/FryoPie/Student-portal/internal/api"
	"github.com/FryoPie/Student-portal/internal/models"
)

// NotificationPanel is an on-demand fetch-and-render list: opening it pulls
// every notification for the session, and the mark-read actions re-fetch the
// list and ping the hosting shell so it can refresh its unread badge.
type NotificationPanel struct {
	client   *api.Client
	onUpdate func()

	Notifications []models.Notification
	Err           string
}

func NewNotificationPanel(client *api.Client, onUpdate func()) *NotificationPanel {
	if onUpdate == nil {
		onUpdate = func() {}
	}
	return &NotificationPanel{client: client, onUpdate: onUpdate}
}

// Open fetches the full notification list for the current session.
func (p *NotificationPanel) Open(ctx context.Context) error {
	var list []models.Notification
	if err := p.client.GetJSON(ctx, "/achievements/notifications/", &list); err != nil {
		p.Err = "Failed to fetch notifications"
		return err
	}
	p.Notifications = list
	p.Err = ""
	return nil
}

// MarkRead flips one notification to read, then re-fetches and notifies the
// shell.
func (p *NotificationPanel) MarkRead(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/achievements/notifications/%d/mark_read/", id)
	if err := p.client.PostJSON(ctx, path, nil, nil); err != nil {
		p.Err = "Failed to mark notification as read"
		return err
	}
	if err := p.Open(ctx); err != nil {
		return err
	}
	p.onUpdate()
	return nil
}

// MarkAllRead flips every notification to read. Calling it again is a no-op
// on the flags: everything is already read.
func (p *NotificationPanel) MarkAllRead(ctx context.Context) error {
	if err := p.client.PostJSON(ctx, "/achievements/notifications/mark_all_read/", nil, nil); err != nil {
		p.Err = "Failed to mark all notifications as read"
		return err
	}
	if err := p.Open(ctx); err != nil {
		return err
	}
	p.onUpdate()
	return nil
}

// Unread returns the number of unread notifications currently held.
func (p *NotificationPanel) Unread() int {
	return models.UnreadCount(p.Notifications)
}
