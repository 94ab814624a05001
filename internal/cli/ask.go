package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the health assistant a question",
		Args:  cobra.MinimumNArgs(1),
		Run:   runAsk,
	}

	RootCmd.AddCommand(cmd)
}

func runAsk(cmd *cobra.Command, args []string) {
	question := strings.Join(args, " ")

	if c, ok := remote(); ok {
		reply, err := c.Ask(cmd.Context(), question)
		if err != nil {
			exitErr("ask", err)
		}
		fmt.Println(reply.Content)
		return
	}

	a := newApp(loadConfig(), false)
	fmt.Println(a.generator.Answer(question, a.store.List()))
}
