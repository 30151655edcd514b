package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"recap/internal/agent"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the agent configuration and probe each route",
	Long: `Validates the loaded configuration, then asks every configured agent
route for a one-word reply to confirm it is reachable. Routes are
probed concurrently; unconfigured routes are skipped.`,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	fmt.Printf("provider: %s\n", valueOr(cfg.Agent.Provider, "(none)"))
	fmt.Printf("base url: %s\n", valueOr(cfg.Agent.BaseURL, "(default)"))
	fmt.Printf("timeout:  %s\n", cfg.GetAgentTimeout())

	if err := cfg.Validate(); err != nil {
		fmt.Printf("config:   FAIL (%v)\n", err)
		return fmt.Errorf("configuration is not usable")
	}
	fmt.Println("config:   ok")

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	client, err := agent.New(ctx, cfg)
	if err != nil {
		return err
	}

	kinds := []string{"summarize", "distribute", "sentiment"}

	// Probe failures land in results, not in the group error, so one
	// unreachable agent does not cancel the other probes.
	results := make([]string, len(kinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		agentID := cfg.Route(kind)
		g.Go(func() error {
			if agentID == "" {
				results[i] = "skip (no agent configured)"
				return nil
			}
			started := time.Now()
			if _, err := client.Invoke(gctx, agentID, "Reply with the single word: ok"); err != nil {
				results[i] = fmt.Sprintf("FAIL (%v)", err)
				return nil
			}
			results[i] = fmt.Sprintf("ok (%s)", time.Since(started).Round(time.Millisecond))
			return nil
		})
	}
	_ = g.Wait()

	failed := false
	for i, kind := range kinds {
		fmt.Printf("route %-11s %-18s %s\n", kind, valueOr(cfg.Route(kind), "-"), results[i])
		if strings.HasPrefix(results[i], "FAIL") {
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("one or more agent routes failed")
	}
	return nil
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
