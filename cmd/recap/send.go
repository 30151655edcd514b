package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	sendChannels []string
	sendJSON     bool
)

var sendCmd = &cobra.Command{
	Use:   "send [file]",
	Short: "Summarize a transcript and deliver it to channels",
	Long: `Summarizes the transcript, hands the summary to the distributor agent
for the named channels, and reports how each delivery went.

Examples:
  recap send --channels slack,email standup.txt
  cat standup.txt | recap send --channels slack`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSend,
}

func init() {
	sendCmd.Flags().StringSliceVar(&sendChannels, "channels", nil, "Channels to deliver to (comma separated)")
	sendCmd.Flags().BoolVar(&sendJSON, "json", false, "Print the outcome as JSON")
	_ = sendCmd.MarkFlagRequired("channels")
}

func runSend(cmd *cobra.Command, args []string) error {
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
	if err := session.EnableChannels(sendChannels...); err != nil {
		return err
	}
	session.SetTranscript(text)

	if err := session.Summarize(ctx); err != nil {
		return err
	}
	snap := session.Snapshot()
	if !sendJSON {
		fmt.Println(snap.Summary.Text)
		fmt.Println()
	}

	if err := session.Distribute(ctx); err != nil {
		return err
	}

	snap = session.Snapshot()
	if sendJSON {
		return printJSON(snap.Outcome)
	}
	printOutcome(snap.Outcome, snap.Channels)
	return nil
}
