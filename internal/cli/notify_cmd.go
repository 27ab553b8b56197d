package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/AkhandAgrawal/Bartr/internal/poll"
)

func newNotificationsCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "List your notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := a.subjectID()
			if err != nil {
				return err
			}

			if !watch {
				return printNotifications(cmd.Context(), a, id, nil)
			}

			seen := map[string]bool{}
			interval := time.Duration(cfg.Refresh.NotificationSeconds) * time.Second
			poll.Run(cmd.Context(), interval, func(ctx context.Context) {
				if err := printNotifications(ctx, a, id, seen); err != nil {
					log.Warn().Err(err).Msg("notification poll failed")
				}
			})
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep polling for new notifications")
	cmd.AddCommand(newNotificationsClearCmd())
	return cmd
}

func newNotificationsClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <notificationId>",
		Short: "Delete a notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.subjectID(); err != nil {
				return err
			}
			if err := a.notifications.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("cleared")
			return nil
		},
	}
}

// printNotifications lists notifications, skipping ids already in seen
// when watching. A nil seen map prints everything once.
func printNotifications(ctx context.Context, a *app, userID string, seen map[string]bool) error {
	notes, err := a.notifications.List(ctx, userID)
	if err != nil {
		return err
	}
	if seen == nil && len(notes) == 0 {
		fmt.Println("no notifications")
		return nil
	}
	for _, n := range notes {
		if seen != nil {
			if seen[n.ID] {
				continue
			}
			seen[n.ID] = true
		}
		fmt.Printf("%s  [%s] %s\n", n.ID, n.Type, n.Message)
	}
	return nil
}
