package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AkhandAgrawal/Bartr/internal/domain"
)

func newMatchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matches",
		Short: "Swipe on candidates and manage matches",
	}

	cmd.AddCommand(newMatchesTopCmd())
	cmd.AddCommand(newMatchesSwipeCmd())
	cmd.AddCommand(newMatchesHistoryCmd())
	cmd.AddCommand(newMatchesUnmatchCmd())
	return cmd
}

func newMatchesTopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "top",
		Short: "List candidate profiles to swipe on",
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

			candidates, err := a.matching.TopMatches(cmd.Context(), id)
			if err != nil {
				return err
			}
			if len(candidates) == 0 {
				fmt.Println("no candidates right now — check back later")
				return nil
			}
			for _, c := range candidates {
				fmt.Printf("%s  %s %s (@%s)\n", c.KeycloakID, c.FirstName, c.LastName, c.UserName)
				if len(c.SkillsOffered) > 0 {
					fmt.Printf("    offers: %s\n", strings.Join(c.SkillsOffered, ", "))
				}
				if len(c.SkillsWanted) > 0 {
					fmt.Printf("    wants:  %s\n", strings.Join(c.SkillsWanted, ", "))
				}
			}
			return nil
		},
	}
}

func newMatchesSwipeCmd() *cobra.Command {
	var pass bool

	cmd := &cobra.Command{
		Use:   "swipe <keycloakId>",
		Short: "Like a candidate (or pass with --pass)",
		Args:  cobra.ExactArgs(1),
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

			action := domain.SwipeRight
			if pass {
				action = domain.SwipeLeft
			}

			resp, err := a.matching.Swipe(cmd.Context(), domain.SwipeRequest{
				UserID:       id,
				SwipedUserID: args[0],
				Action:       action,
			})
			if err != nil {
				return fmt.Errorf("swipe failed: %w", err)
			}
			if resp.Matched {
				fmt.Printf("it's a match! start chatting with 'bartr chat watch %s'\n", args[0])
			} else {
				fmt.Println("swipe recorded")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&pass, "pass", false, "pass instead of like")
	return cmd
}

func newMatchesHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List your past matches",
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

			entries, err := a.matching.MatchHistory(cmd.Context(), id)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("no matches yet")
				return nil
			}
			for _, e := range entries {
				other := e.User1ID
				if other == id {
					other = e.User2ID
				}
				name := other
				if e.OtherUser != nil {
					name = fmt.Sprintf("%s %s (@%s)", e.OtherUser.FirstName, e.OtherUser.LastName, e.OtherUser.UserName)
					other = e.OtherUser.KeycloakID
				}
				fmt.Printf("%s  %s  matched %s\n", other, name, e.MatchedDate)
			}
			return nil
		},
	}
}

func newMatchesUnmatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unmatch <keycloakId>",
		Short: "Remove a match",
		Args:  cobra.ExactArgs(1),
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

			if err := a.matching.Unmatch(cmd.Context(), id, args[0]); err != nil {
				return fmt.Errorf("unmatch failed: %w", err)
			}
			fmt.Println("unmatched")
			return nil
		},
	}
}
