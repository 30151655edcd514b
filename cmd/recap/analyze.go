package main

import (
	"github.com/spf13/cobra"
)

var (
	analyzeAgent string
	analyzeJSON  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Score a transcript's sentiment and engagement",
	Long: `Runs sentiment and engagement analysis over a transcript and prints
the report.

The sentiment workflow has no default route; name an agent with --agent
or set agent.routes.sentiment in the config.

Examples:
  recap analyze --agent mood-reader standup.txt
  cat standup.txt | recap analyze --agent mood-reader --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeAgent, "agent", "", "Sentiment agent to invoke (overrides the config route)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the report as JSON")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	text, err := readTranscript(args)
	if err != nil {
		return err
	}

	session, err := buildSession(ctx)
	if err != nil {
		return err
	}
	session.SetTranscript(text)

	if err := session.Analyze(ctx, analyzeAgent); err != nil {
		return err
	}

	snap := session.Snapshot()
	if analyzeJSON {
		return printJSON(snap.Sentiment)
	}
	printSentiment(snap.Sentiment)
	return nil
}
