// Package cli implements the training-journal CLI commands.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rcliao/training-journal/internal/config"
	"github.com/rcliao/training-journal/internal/ledger"
	"github.com/rcliao/training-journal/internal/store"
)

var (
	dataFile   string
	configPath string
	formatFlag string
	verbose    bool

	cfg *config.Config
	log *slog.Logger
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "training-journal",
	Short: "Strength training log",
	Long:  "Log strength-training sets (exercise, weight, repetitions) to a local JSON file, filter them, and summarize per exercise.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		c, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = c

		level := cfg.SlogLevel()
		if verbose {
			level = slog.LevelDebug
		}
		log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

		switch formatFlag {
		case "json", "text":
		default:
			return fmt.Errorf("unknown format %q (use json or text)", formatFlag)
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dataFile, "file", "d", "", "Store file (default: $TRAINING_JOURNAL_FILE or ~/.training-journal/training_log.json)")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $TRAINING_JOURNAL_CONFIG or ~/.training-journal/config.yaml)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
}

func getDataFile() string {
	if dataFile != "" {
		return dataFile
	}
	return cfg.DataFile
}

func getLedgerFile() string {
	return cfg.LedgerPath(getDataFile())
}

func openStore() *store.JSONStore {
	return store.NewJSONStore(getDataFile(), log)
}

func openLedger() (*ledger.Ledger, error) {
	return ledger.Open(getLedgerFile(), log)
}

func parseID(arg string) int {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		exitErr("id", fmt.Errorf("%w: %q is not a positive integer", store.ErrValidation, arg))
	}
	return id
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
