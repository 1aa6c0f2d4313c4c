// Package cli implements the carprice command tree: training, artifact inspection,
// one-off predictions and the training history.
package cli

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"carprice/internal/logging"
)

// Config carries values shared by every subcommand.
type Config struct {
	LogLvl string
	Out    io.Writer
	Err    io.Writer

	log zerolog.Logger
}

// Execute runs the command tree with args and returns the first error.
func Execute(args []string, out, errOut io.Writer) error {
	root := NewRootCmd(&Config{LogLvl: envOr("CARPRICE_LOG_LEVEL", "info"), Out: out, Err: errOut})
	root.SetArgs(args)
	return root.Execute()
}

// NewRootCmd constructs the command tree wired to cfg.
func NewRootCmd(cfg *Config) *cobra.Command {
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Err == nil {
		cfg.Err = os.Stderr
	}
	root := &cobra.Command{
		Use:           "carprice",
		Short:         "Train and query the used-car price model",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(cfg.Out)
	root.SetErr(cfg.Err)

	// Persistent flags -> Config
	root.PersistentFlags().String("log-level", cfg.LogLvl, "Log level: debug|info|warn|error|off (defaults CARPRICE_LOG_LEVEL or info)")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if f := cmd.Flags().Lookup("log-level"); f != nil {
			if v := f.Value.String(); v != "" {
				cfg.LogLvl = v
			}
		}
		cfg.log, _ = logging.New(logging.Options{Level: cfg.LogLvl, Out: cfg.Err})
	}

	root.AddCommand(
		newTrainCmd(cfg),
		newInspectCmd(cfg),
		newPredictCmd(cfg),
		newHistoryCmd(cfg),
	)
	return root
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
