// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bioscience-explorer/internal/assistant"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the research assistant a question",
	Long: `Ask answers a research question from a fixed table of canned answers.
The first rule whose trigger words appear in the question selects the
answer; anything else gets a general overview. Related publications are
listed below the answer.

Run without a question to see suggested prompts.`,
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, store, err := setup()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	question := strings.Join(args, " ")
	if strings.TrimSpace(question) == "" {
		fmt.Fprintln(w, "Try asking:")
		for _, q := range assistant.SuggestedQuestions() {
			fmt.Fprintf(w, "  - %s\n", q)
		}
		return nil
	}

	if noDelay, _ := cmd.Flags().GetBool("no-delay"); noDelay {
		cfg.Assistant.ResponseDelay = 0
	}
	if cfg.Assistant.ResponseDelay > 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "Thinking...")
	}

	reply, err := assistant.NewAsker(nil, store, cfg.Assistant).Ask(cmd.Context(), question)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return writeJSON(w, reply)
	}
	formatReply(w, reply)
	return nil
}

func formatReply(w io.Writer, reply assistant.Reply) {
	fmt.Fprintf(w, "%s\n\n", reply.Answer)
	fmt.Fprintf(w, "Confidence: %.0f%%\n", reply.Confidence*100)
	if len(reply.Publications) == 0 {
		return
	}
	fmt.Fprintln(w, "\nRelated publications:")
	for _, p := range reply.Publications {
		fmt.Fprintf(w, "  [%s] %s\n", p.ID, p.Title)
	}
}

func init() {
	askCmd.Flags().Bool("no-delay", false, "answer immediately, ignoring assistant.response_delay")
	askCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(askCmd)
}
