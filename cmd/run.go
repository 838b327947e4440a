package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"btstack/internal/config"
	"btstack/internal/stack"
	"btstack/pkg/logging"
)

func newRunCmd() *cobra.Command {
	var configPath string
	var minimal bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the stack and run until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}

			logging.Init(parseLogLevel(cfg.LogLevel), os.Stderr)

			st := stack.New(stack.Options{StoragePath: cfg.StoragePath})
			if minimal {
				st.StartMinimal()
			} else {
				st.StartFull(cfg.Features)
			}

			sigs := make(chan os.Signal, 1)
			signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
			sig := <-sigs
			logging.Info("Main", "Received %s, shutting down", sig)

			st.Stop()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a config file layered over the defaults")
	cmd.Flags().BoolVar(&minimal, "minimal", false, "start only the persistence module (low-power mode)")

	return cmd
}

func parseLogLevel(level string) logging.LogLevel {
	switch level {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}
