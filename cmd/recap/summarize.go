package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"recap/internal/studio"
	"recap/internal/transcript"
)

var (
	summarizeJSON  bool
	summarizeWatch bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [file]",
	Short: "Summarize a chat transcript",
	Long: `Reads a transcript from a file (or stdin) and prints the agent's
summary.

With --watch the file is re-summarized every time it settles after a
save, until interrupted.

Examples:
  recap summarize standup.txt
  pbpaste | recap summarize
  recap summarize --watch standup.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().BoolVar(&summarizeJSON, "json", false, "Print the summary as JSON")
	summarizeCmd.Flags().BoolVar(&summarizeWatch, "watch", false, "Re-summarize whenever the file changes")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	session, err := buildSession(ctx)
	if err != nil {
		return err
	}

	if summarizeWatch {
		if len(args) == 0 || args[0] == "-" {
			return fmt.Errorf("--watch needs a file to watch")
		}
		return watchSummarize(ctx, session, args[0])
	}

	text, err := readTranscript(args)
	if err != nil {
		return err
	}
	return summarizeOnce(ctx, session, text)
}

func summarizeOnce(ctx context.Context, session *studio.Session, text string) error {
	session.SetTranscript(text)

	stats := transcript.Analyze(text)
	logger.Info("summarizing transcript",
		zap.Int("words", stats.Words),
		zap.Int("messages", stats.Messages),
		zap.Int("participants", len(stats.Participants)))

	if err := session.Summarize(ctx); err != nil {
		return err
	}

	snap := session.Snapshot()
	if summarizeJSON {
		return printJSON(snap.Summary)
	}
	printSummary(snap.Summary)
	return nil
}

// watchSummarize re-runs the summary workflow each time the watched file
// settles. Edits that land mid-run are coalesced into one follow-up pass.
func watchSummarize(ctx context.Context, session *studio.Session, path string) error {
	runs := make(chan string, 1)
	w, err := transcript.NewWatcher(path, func(p string) {
		select {
		case runs <- p:
		default:
		}
	})
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	// First pass before any edit arrives.
	if err := summarizeFile(ctx, session, path); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	fmt.Fprintf(os.Stderr, "watching %s (Ctrl+C to stop)\n", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-runs:
			if err := summarizeFile(ctx, session, path); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				fmt.Fprintln(os.Stderr, err)
			}
		}
	}
}

func summarizeFile(ctx context.Context, session *studio.Session, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read transcript: %w", err)
	}
	return summarizeOnce(ctx, session, string(data))
}
