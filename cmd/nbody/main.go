package main

import (
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/san-kum/nbody/internal/config"
)

var (
	cfgFile  string
	dataDir  string
	logLevel string
	verbose  bool

	v      *viper.Viper
	cfg    *config.Config
	log    zerolog.Logger
	logOut io.Writer = os.Stderr
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

func main() {
	os.Exit(execute(os.Args[1:]))
}

// execute runs the command line and returns the process exit code. Errors are
// logged at the default level until the configuration has been read.
func execute(args []string) int {
	v = viper.New()
	cfg = nil
	log = newLogger(config.DefaultLogLevel)

	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "nbody",
		Short:         "softened N-body gravity simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./nbody.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "shorthand for --log-level debug")

	_ = v.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data"))
	_ = v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(
		newRunCmd(),
		newPresetsCmd(),
		newListCmd(),
		newShowCmd(),
		newPlotCmd(),
		newExportJSONCmd(),
		newExportSVGCmd(),
		newCompareCmd(),
		newBenchCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

// initConfig layers flags over NBODY_* environment over the config file
// over defaults.
func initConfig(cmd *cobra.Command) error {
	config.SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("nbody")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("NBODY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	readErr := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if readErr != nil && (cfgFile != "" || !errors.As(readErr, &notFound)) {
		return readErr
	}

	c, err := config.FromViper(v)
	if err != nil {
		return err
	}
	cfg = c

	log = newLogger(cfg.LogLevel)
	if readErr == nil {
		log.Debug().Str("file", v.ConfigFileUsed()).Msg("using config file")
	}
	return nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if verbose {
		lvl = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: logOut, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
