// Command talkschedule serves and manages the conference talk schedule.
//
// @title Talk Schedule API
// @version 1.0
// @description Browse, book and delete one-hour conference talks on a fixed daily slot roster.
// @BasePath /
package main

//go:generate swag init -d ../../ -g cmd/talkschedule/main.go -o ../../docs

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"talkschedule/config"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "talkschedule",
	Short: "Conference talk schedule server",
	Long: `talkschedule serves the talk schedule API: browse talks by day, book a talk into
a free roster slot and delete talks. Configuration comes from the environment
(and .env outside production).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger = config.NewLogger(cfg.Environment)
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
