package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"healthdash/internal/assistant"
	"healthdash/internal/client"
	"healthdash/internal/model"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the health assistant interactively",
		Run:   runChat,
	}

	RootCmd.AddCommand(cmd)
}

type chatter interface {
	open(ctx context.Context) (greeting string, err error)
	send(ctx context.Context, content string) (model.ChatMessage, error)
}

type remoteChat struct {
	client  *client.Client
	session string
}

func (r *remoteChat) open(ctx context.Context) (string, error) {
	s, err := r.client.CreateSession(ctx)
	if err != nil {
		return "", err
	}
	r.session = s.ID
	return lastContent(s), nil
}

func (r *remoteChat) send(ctx context.Context, content string) (model.ChatMessage, error) {
	return r.client.SendMessage(ctx, r.session, content)
}

type localChat struct {
	manager *assistant.Manager
	session string
}

func (l *localChat) open(ctx context.Context) (string, error) {
	s := l.manager.Create()
	l.session = s.ID
	return lastContent(s), nil
}

func (l *localChat) send(ctx context.Context, content string) (model.ChatMessage, error) {
	return l.manager.Ask(ctx, l.session, content)
}

func lastContent(s assistant.Session) string {
	if len(s.Messages) == 0 {
		return ""
	}
	return s.Messages[len(s.Messages)-1].Content
}

func runChat(cmd *cobra.Command, args []string) {
	var chat chatter
	if c, ok := remote(); ok {
		chat = &remoteChat{client: c}
	} else {
		chat = &localChat{manager: newApp(loadConfig(), false).assistant}
	}

	if err := chatLoop(cmd.Context(), chat, os.Stdin, os.Stdout); err != nil {
		exitErr("chat", err)
	}
}

// chatLoop reads one question per line until EOF or "exit".
func chatLoop(ctx context.Context, chat chatter, in io.Reader, out io.Writer) error {
	greeting, err := chat.open(ctx)
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	fmt.Fprintln(out, "assistant> "+greeting)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "you> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		reply, err := chat.send(ctx, line)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "assistant> "+reply.Content)
	}
}
