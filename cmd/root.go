package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/recall/internal/collection"
	"github.com/abhisek/recall/internal/config"
	"github.com/abhisek/recall/internal/output"
	"github.com/abhisek/recall/internal/store"
	"github.com/abhisek/recall/internal/study"
	"github.com/abhisek/recall/internal/studyerr"
)

var rootCmd = &cobra.Command{
	Use:   "recall",
	Short: "Spaced-repetition flashcards in the terminal",
	Long: `Recall studies a flashcard collection from the command line.
Without a subcommand it opens the interactive deck browser.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	Args:              exactArgs(0, "command"),
	PersistentPreRunE: loadConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil)
	},
}

// cfg is resolved before any command runs.
var cfg *config.Config

// closers run after the command finishes, in reverse order.
var closers []func() error

// stdout receives response envelopes.
var stdout io.Writer = os.Stdout

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	for i := len(closers) - 1; i >= 0; i-- {
		if cerr := closers[i](); cerr != nil {
			fmt.Fprintln(os.Stderr, "close:", cerr)
		}
	}
	closers = nil
	if err == nil {
		return 0
	}

	status, werr := output.NewWriter(stdout, currentFormat()).WriteError(err)
	if werr != nil {
		fmt.Fprintln(os.Stderr, werr)
	}
	return output.ExitCode(status)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("home", "", "Base directory holding profiles (default $XDG_DATA_HOME/recall)")
	flags.String("profile", config.DefaultProfile, "Profile whose collection is opened")
	flags.String("db", "", "Path to the collection file (overrides --home and --profile)")
	flags.String("format", string(output.FormatPrettyJSON), "Output format: pretty-json, json or text")
	flags.String("config", "", "Config file (default $XDG_CONFIG_HOME/recall/config.yaml)")
	flags.String("log-level", "warn", "Log level: debug, info, warn or error")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return studyerr.Invalid("flags", "", err.Error())
	})

	rootCmd.AddCommand(listDecksCmd)
	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(answerCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the layered configuration. An explicit --config file
// must exist; the default one is optional.
func loadConfig(cmd *cobra.Command, args []string) error {
	flags := cmd.Root().PersistentFlags()
	path, _ := flags.GetString("config")
	required := flags.Changed("config")
	if !required {
		if p := os.Getenv(config.EnvPrefix + "CONFIG"); p != "" {
			path, required = p, true
		} else if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}

	c, err := config.Load(flags, path, required)
	if err != nil {
		if errors.As(err, new(*studyerr.ValidationError)) {
			return err
		}
		return studyerr.Invalid("config", path, err.Error())
	}
	cfg = c
	return nil
}

// currentFormat is the configured output format, or the flag value when
// configuration failed to load.
func currentFormat() output.Format {
	name := string(output.FormatPrettyJSON)
	if cfg != nil {
		name = cfg.Format
	} else if f, err := rootCmd.PersistentFlags().GetString("format"); err == nil {
		name = f
	}
	f, err := output.ParseFormat(name)
	if err != nil {
		return output.FormatPrettyJSON
	}
	return f
}

func newWriter() *output.Writer {
	return output.NewWriter(stdout, currentFormat())
}

func newLogger() *slog.Logger {
	return cfg.NewLogger(os.Stderr)
}

// openCollection opens the configured collection file, creating it and its
// directory on first use.
func openCollection(logger *slog.Logger) (*collection.Service, error) {
	path, err := cfg.CollectionPath()
	if err != nil {
		return nil, studyerr.Collection("resolve collection path", err)
	}
	if err := store.EnsureDir(path); err != nil {
		return nil, studyerr.Collection("create collection directory", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, studyerr.Collection("open collection", err)
	}
	closers = append(closers, st.Close)
	logger.Debug("collection opened", "path", path)
	return collection.New(st, collection.WithLogger(logger)), nil
}

// openController opens the collection and wraps it in a study controller.
func openController() (*study.Controller, error) {
	logger := newLogger()
	svc, err := openCollection(logger)
	if err != nil {
		return nil, err
	}
	return study.New(svc, study.WithLogger(logger)), nil
}

// exactArgs is cobra.ExactArgs reporting a validation error.
func exactArgs(n int, name string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return studyerr.Invalid(name, "", fmt.Sprintf("expected %d argument(s), got %d", n, len(args)))
		}
		return nil
	}
}

// deckIDFlag returns the --deck-id value, or nil when it was not given.
func deckIDFlag(cmd *cobra.Command) *int64 {
	if !cmd.Flags().Changed("deck-id") {
		return nil
	}
	id, _ := cmd.Flags().GetInt64("deck-id")
	return &id
}
