package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FryoPie/Student-portal/internal/pages"
)

func newNotificationsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Open the notification panel",
	}

	openPanel := func(cmd *cobra.Command) (*pages.NotificationPanel, error) {
		if !a.auth.IsAuthenticated() {
			return nil, fmt.Errorf("not logged in (redirected to /login)")
		}
		panel := pages.NewNotificationPanel(a.client, func() {
			_ = a.shell.RefreshBadge(cmd.Context())
		})
		if err := panel.Open(cmd.Context()); err != nil {
			return nil, fmt.Errorf("%s: %w", panel.Err, err)
		}
		return panel, nil
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			panel, err := openPanel(cmd)
			if err != nil {
				return err
			}
			if len(panel.Notifications) == 0 {
				fmt.Println("No notifications")
				return nil
			}
			for _, n := range panel.Notifications {
				marker := " "
				if !n.IsRead {
					marker = "*"
				}
				fmt.Printf("%s [%d] %s - %s\n", marker, n.ID, n.AchievementTitle, n.Message)
			}
			fmt.Printf("Unread: %d\n", panel.Unread())
			return nil
		},
	}

	var id int64
	read := &cobra.Command{
		Use:   "read",
		Short: "Mark one notification as read",
		RunE: func(cmd *cobra.Command, args []string) error {
			panel, err := openPanel(cmd)
			if err != nil {
				return err
			}
			if err := panel.MarkRead(cmd.Context(), id); err != nil {
				return fmt.Errorf("%s: %w", panel.Err, err)
			}
			fmt.Printf("Marked as read. Unread: %d\n", panel.Unread())
			return nil
		},
	}
	read.Flags().Int64Var(&id, "id", 0, "notification id")
	_ = read.MarkFlagRequired("id")

	readAll := &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		RunE: func(cmd *cobra.Command, args []string) error {
			panel, err := openPanel(cmd)
			if err != nil {
				return err
			}
			if err := panel.MarkAllRead(cmd.Context()); err != nil {
				return fmt.Errorf("%s: %w", panel.Err, err)
			}
			fmt.Printf("All marked as read. Unread: %d\n", panel.Unread())
			return nil
		},
	}

	cmd.AddCommand(list, read, readAll)
	return cmd
}
