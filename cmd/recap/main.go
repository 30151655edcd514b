package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"recap/internal/agent"
	"recap/internal/channel"
	"recap/internal/config"
	"recap/internal/logging"
	"recap/internal/studio"
)

var (
	// Global flags
	cfgPath string
	verbose bool
	timeout time.Duration

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "recap",
	Short: "recap - paste a chat, get a summary worth sharing",
	Long: `recap turns a pasted chat transcript into a short summary, delivers it
to the channels you pick, and can score the conversation's sentiment and
engagement. The AI work runs on external agents; recap owns the state,
the prompts, and the reconciliation of what the agents report back.

Run without arguments to open the interactive studio.`,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAudit()
		logging.CloseAll()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStudio()
	},
}

func init() {
	// Assigned here rather than in the composite literal because the
	// function refers to rootCmd, which would be an initialization cycle.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		path := cfgPath
		if path == "" {
			path = config.DefaultPath()
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cmd.Flags().Changed("timeout") {
			cfg.Agent.Timeout = timeout.String()
		}

		// Category file logs and the audit trail are no-ops unless
		// debug_mode is on.
		if err := logging.Initialize(config.Workspace(path)); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
		if logging.IsDebugMode() {
			_ = logging.InitAudit()
		}
		logging.Boot("recap starting, command=%s", cmd.Name())
		logging.Get(logging.CategoryConfig).Info("config loaded from %s, provider=%s, channels=%d",
			path, cfg.Agent.Provider, len(cfg.Channels))

		// The studio owns the whole terminal; keep zap away from it.
		if cmd.Name() == rootCmd.Name() {
			logger = zap.NewNop()
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (default: .recap/config.yaml, else $HOME/.recap/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Per-request agent timeout")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(channelsCmd)
	rootCmd.AddCommand(doctorCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildSession wires a studio session from the loaded config.
func buildSession(ctx context.Context) (*studio.Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client, err := agent.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return studio.NewSession(studio.Options{
		Client:   client,
		Routes:   cfg.Agent.Routes,
		Timeout:  cfg.GetAgentTimeout(),
		Channels: channel.NewSet(cfg.Channels...),
		Logger:   logger,
	}), nil
}

// commandContext returns a context cancelled by SIGINT or SIGTERM.
func commandContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}

// readTranscript loads the transcript from the file argument, or from
// stdin when no file is given.
func readTranscript(args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read transcript: %w", err)
		}
		return string(data), nil
	}

	info, err := os.Stdin.Stat()
	if err == nil && info.Mode()&os.ModeCharDevice != 0 {
		return "", fmt.Errorf("no transcript: pass a file or pipe one on stdin")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
