package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AkhandAgrawal/Bartr/internal/version"
)

// identitySource names the resolver source that currently supplies the
// subject id, mirroring the resolution priority.
func identitySource(a *app) string {
	if a.keycloak != nil && a.keycloak.SubjectID() != "" {
		return "delegated session"
	}
	if p := a.resolver.Profile(); p != nil && p.KeycloakID != "" {
		return "cached profile"
	}
	return "token claim"
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show client, session, and platform status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			fmt.Println(version.Info())
			fmt.Printf("config:       %s\n", paths.Config)
			fmt.Printf("credentials:  %s\n", paths.Credentials)
			fmt.Println()

			if id, err := a.subjectID(); err == nil {
				fmt.Printf("session:      logged in as %s (%s)\n", id, identitySource(a))
			} else {
				fmt.Println("session:      not logged in")
			}
			if a.keycloak != nil {
				fmt.Printf("keycloak:     %s (realm %s)\n", cfg.Keycloak.URL, cfg.Keycloak.Realm)
			} else {
				fmt.Println("keycloak:     not configured, using backend login")
			}
			fmt.Println()

			fmt.Printf("user service:          %s\n", cfg.Services.UserURL)
			fmt.Printf("matching service:      %s\n", cfg.Services.MatchingURL)
			fmt.Printf("chat service:          %s\n", cfg.Services.ChatURL)
			fmt.Printf("notification service:  %s\n", cfg.Services.NotificationURL)
			fmt.Println()

			// Landing-page counters. The services may be down; show
			// what we can reach.
			if n, err := a.users.ActiveUsersCount(cmd.Context()); err == nil {
				fmt.Printf("active users:  %d\n", n)
			}
			if n, err := a.matching.MatchesCount(cmd.Context()); err == nil {
				fmt.Printf("total matches: %d\n", n)
			}
			return nil
		},
	}
}
