package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AkhandAgrawal/Bartr/internal/domain"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show and update profiles",
	}

	cmd.AddCommand(newProfileShowCmd())
	cmd.AddCommand(newProfileUpdateCmd())
	cmd.AddCommand(newProfileSearchCmd())
	return cmd
}

func newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [keycloakId]",
		Short: "Show your profile, or another user's by subject id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			id := ""
			if len(args) == 1 {
				id = args[0]
			} else {
				id, err = a.subjectID()
				if err != nil {
					return err
				}
			}

			profile, err := a.users.ProfileByKeycloakID(cmd.Context(), id)
			if err != nil {
				return err
			}
			printProfile(profile)

			// Keep the identity chain's second source fresh when
			// showing our own profile.
			if id == a.resolver.Resolve() {
				a.resolver.SetProfile(&profile)
				if a.profiles != nil {
					a.profiles.Save(profile)
				}
			}
			return nil
		},
	}
}

func printProfile(p domain.UserProfile) {
	fmt.Printf("%s %s (@%s)\n", p.FirstName, p.LastName, p.UserName)
	fmt.Printf("id:      %s\n", p.KeycloakID)
	fmt.Printf("email:   %s\n", p.Email)
	if p.Bio != "" {
		fmt.Printf("bio:     %s\n", p.Bio)
	}
	if len(p.SkillsOffered) > 0 {
		fmt.Printf("offers:  %s\n", joinSkills(p.SkillsOffered))
	}
	if len(p.SkillsWanted) > 0 {
		fmt.Printf("wants:   %s\n", joinSkills(p.SkillsWanted))
	}
}

func joinSkills(skills []domain.SkillEntry) string {
	names := make([]string, len(skills))
	for i, s := range skills {
		names[i] = s.Skill
	}
	return strings.Join(names, ", ")
}

func newProfileUpdateCmd() *cobra.Command {
	var req domain.UpdateRequest

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.subjectID(); err != nil {
				return err
			}

			profile, err := a.users.UpdateProfile(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("update failed: %w", err)
			}
			a.resolver.SetProfile(&profile)
			if a.profiles != nil {
				a.profiles.Save(profile)
			}
			fmt.Println("profile updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&req.Bio, "bio", "", "short bio")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringSliceVar(&req.SkillsOffered, "offers", nil, "skills you offer")
	cmd.Flags().StringSliceVar(&req.SkillsWanted, "wants", nil, "skills you want to learn")

	return cmd
}

func newProfileSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <skill>",
		Short: "Find users offering a skill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			profiles, err := a.users.ProfilesBySkill(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(profiles) == 0 {
				fmt.Println("no users found")
				return nil
			}
			for _, p := range profiles {
				fmt.Printf("%s  %s %s (@%s)\n", p.KeycloakID, p.FirstName, p.LastName, p.UserName)
			}
			return nil
		},
	}
}
