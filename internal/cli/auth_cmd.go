package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AkhandAgrawal/Bartr/internal/api"
	"github.com/AkhandAgrawal/Bartr/internal/domain"
)

func newLoginCmd() *cobra.Command {
	var (
		username string
		password string
		useOIDC  bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return fmt.Errorf("--username and --password are required")
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()

			if useOIDC {
				if a.keycloak == nil {
					return fmt.Errorf("keycloak is not configured; set keycloak.url in %s", paths.Config)
				}
				if err := a.keycloak.Login(ctx, username, password); err != nil {
					return err
				}
			} else {
				resp, err := a.users.Login(ctx, username, password)
				if err != nil {
					return fmt.Errorf("login failed: %w", err)
				}
				if resp.Error != "" {
					return fmt.Errorf("login failed: %s", resp.ErrorDescription)
				}
				a.tokens.SetAccessToken(resp.AccessToken)
				if resp.RefreshToken != "" {
					a.tokens.SetRefreshToken(resp.RefreshToken)
				}
			}

			fmt.Println("logged in")
			loadOwnProfile(ctx, a)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.Flags().BoolVar(&useOIDC, "oidc", false, "authenticate directly against Keycloak instead of the backend")

	return cmd
}

// loadOwnProfile fetches and caches the signed-in user's profile. A
// missing profile is not an error: the account exists but setup is
// incomplete.
func loadOwnProfile(ctx context.Context, a *app) {
	id := a.resolver.Resolve()
	if id == "" {
		return
	}
	profile, err := a.users.ProfileByKeycloakID(ctx, id)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return
		}
		fmt.Println("no profile yet — run 'bartr profile update' to complete setup")
		return
	}
	a.resolver.SetProfile(&profile)
	if a.profiles != nil {
		a.profiles.Save(profile)
	}
	fmt.Printf("welcome back, %s %s (@%s)\n", profile.FirstName, profile.LastName, profile.UserName)
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear all stored session state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			a.tokens.ClearTokens()
			if a.keycloak != nil {
				a.keycloak.Logout()
			}
			a.resolver.SetProfile(nil)
			if a.profiles != nil {
				a.profiles.Clear()
			}
			fmt.Println("logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the resolved subject id and its source",
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
			fmt.Printf("%s (%s)\n", id, identitySource(a))
			if p := a.resolver.Profile(); p != nil {
				fmt.Printf("profile: %s %s (@%s)\n", p.FirstName, p.LastName, p.UserName)
			}
			return nil
		},
	}
}

func newSignupCmd() *cobra.Command {
	var req domain.SignupRequest

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.UserName == "" || req.Password == "" || req.Email == "" {
				return fmt.Errorf("--username, --password, and --email are required")
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			profile, err := a.users.Signup(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("signup failed: %w", err)
			}
			fmt.Printf("account created for @%s — run 'bartr login' to sign in\n", profile.UserName)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&req.Gender, "gender", "", "gender")
	cmd.Flags().StringVar(&req.UserName, "username", "", "account username")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Bio, "bio", "", "short bio")
	cmd.Flags().StringSliceVar(&req.SkillsOffered, "offers", nil, "skills you offer")
	cmd.Flags().StringSliceVar(&req.SkillsWanted, "wants", nil, "skills you want to learn")

	return cmd
}
