package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/abdul-hamid-achik/oohttp/packages/core/config"
	"github.com/abdul-hamid-achik/oohttp/packages/output"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	configFlag  string
	envFileFlag string
	verboseFlag int // 0=warn, 1=-v info, 2=-vv debug
	noColorFlag bool
	outputFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "oohttp",
	Short: "Requests against a base URL. Only spell out what differs.",
	Long: `oohttp sends HTTP requests whose URLs are merged over a base URL.
A request URL like ":9800/items?page=2" borrows the protocol, hostname,
path, query and fragment it lacks from the configured base.

The url subcommands expose the same parser and merge rules directly.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		var ee *exitError
		if !errors.As(err, &ee) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(exitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", getEnvString("OOHTTP_CONFIG", ""), "Path to config file (env: OOHTTP_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&envFileFlag, "env-file", getEnvString("OOHTTP_ENV_FILE", ""), "Path to .env file for variable interpolation (env: OOHTTP_ENV_FILE)")
	rootCmd.PersistentFlags().CountVarP(&verboseFlag, "verbose", "v", "Verbose output (-v, -vv for more detail)")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", getEnvBool("OOHTTP_NO_COLOR", false), "Disable colored output (env: OOHTTP_NO_COLOR)")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", getEnvString("OOHTTP_OUTPUT", output.FormatConsole), "Output format: console, json (env: OOHTTP_OUTPUT)")

	rootCmd.AddCommand(versionCmd)
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

// setupLogger builds the CLI logger. OOHTTP_LOG_LEVEL takes precedence over
// the -v count.
func setupLogger(verbosity int, noColor bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:    true,
		DisableColors:    noColor,
		DisableTimestamp: verbosity < 2,
	})

	level, err := logrus.ParseLevel(getEnvString("OOHTTP_LOG_LEVEL", levelFor(verbosity)))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}

func levelFor(verbosity int) string {
	switch {
	case verbosity >= 2:
		return "debug"
	case verbosity == 1:
		return "info"
	default:
		return "warn"
	}
}

// displaySettings returns the verbosity and color choice for a run. Flags
// given on the command line win; otherwise the config file may turn on
// verbose output or turn off color.
func displaySettings(cmd *cobra.Command, cfg *config.Config) (verbosity int, noColor bool) {
	verbosity, noColor = verboseFlag, noColorFlag
	if cfg == nil {
		return verbosity, noColor
	}
	if !flagChanged(cmd, "verbose") && verbosity == 0 && cfg.GetVerbose() {
		verbosity = 1
	}
	if !flagChanged(cmd, "no-color") && cfg.GetNoColor() {
		noColor = true
	}
	return verbosity, noColor
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flag(name)
	return f != nil && f.Changed
}

func newFormatter(cmd *cobra.Command, cfg *config.Config) (output.Formatter, error) {
	verbosity, noColor := displaySettings(cmd, cfg)
	f, err := output.New(outputFlag, cmd.OutOrStdout(), verbosity > 0, noColor)
	if err != nil {
		return nil, exitWith(ExitUsageError, err)
	}
	return f, nil
}
