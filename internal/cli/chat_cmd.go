package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/AkhandAgrawal/Bartr/internal/domain"
	"github.com/AkhandAgrawal/Bartr/internal/poll"
)

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with your matches",
	}

	cmd.AddCommand(newChatListCmd())
	cmd.AddCommand(newChatHistoryCmd())
	cmd.AddCommand(newChatSendCmd())
	cmd.AddCommand(newChatWatchCmd())
	return cmd
}

func newChatListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List conversations with their latest message",
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

			convs, err := a.chatREST.Conversations(cmd.Context(), id)
			if err != nil {
				return err
			}
			if len(convs) == 0 {
				fmt.Println("no conversations yet")
				return nil
			}

			others := make([]string, 0, len(convs))
			for other := range convs {
				others = append(others, other)
			}
			sort.Strings(others)
			for _, other := range others {
				last := convs[other]
				prefix := "  "
				if last.SenderID == id {
					prefix = "> "
				}
				fmt.Printf("%s  %s%s\n", other, prefix, last.Content)
			}
			return nil
		},
	}
}

func newChatHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <keycloakId>",
		Short: "Show the conversation with one user",
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

			if err := a.history.LoadHistory(cmd.Context(), id, args[0]); err != nil {
				return err
			}
			printConversation(a, id, args[0], 0)
			return nil
		},
	}
}

func newChatSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <keycloakId> <message...>",
		Short: "Send a message to a match",
		Args:  cobra.MinimumNArgs(2),
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
			other := args[0]
			content := strings.Join(args[1:], " ")

			a.transport.Connect(id, a.resolver.Token())
			defer a.transport.Disconnect()
			if !waitConnected(cmd.Context(), a, 10*time.Second) {
				return fmt.Errorf("could not reach the chat service")
			}

			sendMessage(cmd.Context(), a, id, other, content)

			// Give the reload a chance to confirm the server copy.
			select {
			case <-time.After(2 * time.Second):
			case <-cmd.Context().Done():
			}
			fmt.Println("sent")
			return nil
		},
	}
}

func newChatWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <keycloakId>",
		Short: "Follow a conversation live and type to reply",
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
			other := args[0]
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			matched, err := a.chatREST.CheckMatch(ctx, id, other)
			if err != nil {
				log.Warn().Err(err).Msg("match check failed, continuing")
			} else if !matched {
				return fmt.Errorf("you are not matched with %s", other)
			}

			if err := a.history.LoadHistory(ctx, id, other); err != nil {
				log.Warn().Err(err).Msg("history load failed")
			}

			a.transport.Connect(id, a.resolver.Token())
			defer a.transport.Disconnect()

			shown := printConversation(a, id, other, 0)
			fmt.Println("-- type a message and press enter, ctrl-d to leave --")

			// Reader goroutine turns stdin lines into sends.
			go func() {
				scanner := bufio.NewScanner(os.Stdin)
				for scanner.Scan() {
					line := strings.TrimSpace(scanner.Text())
					if line == "" {
						continue
					}
					sendMessage(ctx, a, id, other, line)
				}
				cancel()
			}()

			interval := time.Duration(cfg.Refresh.ChatSeconds) * time.Second
			poll.Run(ctx, interval, func(context.Context) {
				shown = printConversation(a, id, other, shown)
			})
			return nil
		},
	}
}

// sendMessage appends the optimistic copy, pushes the frame, and
// schedules the post-send history reload that swaps in the server copy.
func sendMessage(ctx context.Context, a *app, selfID, otherID, content string) {
	msg := domain.Message{
		SenderID:   selfID,
		ReceiverID: otherID,
		Content:    content,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	a.conversations.Add(domain.ChatKey(selfID, otherID), msg)
	a.transport.SendMessage(msg)
	a.history.ReloadAfterSend(ctx, selfID, otherID)
}

// printConversation prints messages in the bucket past index from and
// returns the new count.
func printConversation(a *app, selfID, otherID string, from int) int {
	msgs := a.conversations.Messages(domain.ChatKey(selfID, otherID))
	for _, m := range msgs[from:] {
		who := m.SenderID
		if m.SenderID == selfID {
			who = "you"
		}
		stamp := ""
		if t := m.Time(); !t.IsZero() {
			stamp = t.Local().Format("15:04")
		}
		fmt.Printf("[%s] %s: %s\n", stamp, who, m.Content)
	}
	return len(msgs)
}

// waitConnected polls the transport state until connected or timeout.
func waitConnected(ctx context.Context, a *app, timeout time.Duration) bool {
	deadline := time.After(timeout)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		if a.transport.IsConnected() {
			return true
		}
		select {
		case <-tick.C:
		case <-deadline:
			return false
		case <-ctx.Done():
			return false
		}
	}
}
