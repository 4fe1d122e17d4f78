package main

import (
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// app holds the settings shared by every subcommand.
type app struct {
	configFile string
	cfg        config
	logger     log.Logger
}

func rootCommand() *cobra.Command {
	a := &app{cfg: defaultConfig()}

	cmd := &cobra.Command{
		Use:   "wscanctl <command> [path ...]",
		Short: "Scan text files into tokens, lines and numbers",
		Long: `wscanctl reads whitespace-separated tokens and lines from files or stdin.

Paths are scanned in order, or concurrently with --concurrent. Settings may
come from a YAML file given with --config; flags override it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Usage()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Flags())
		},
	}

	fs := cmd.PersistentFlags()
	fs.StringVar(&a.configFile, "config", "", "YAML file with default settings")
	fs.Int("buffer-size", a.cfg.BufferSize, "Streaming buffer size in bytes")
	fs.String("encoding", a.cfg.Encoding, "Source encoding (utf-8, utf-16, latin1, any IANA name)")
	fs.Bool("ascii", a.cfg.ASCII, "Scan bytes instead of UTF-8 characters")
	fs.Bool("strict-ascii", a.cfg.StrictASCII, "With --ascii, reject bytes >= 0x80")
	fs.Bool("concurrent", a.cfg.Concurrent, "Scan several paths concurrently")
	fs.String("log.level", a.cfg.LogLevel, "Log level: debug, info, warn, error")

	cmd.AddCommand(
		tokensCommand(a),
		linesCommand(a),
		sumCommand(a),
		splitCommand(a),
	)
	return cmd
}

// setup loads the config file, applies flags that were set explicitly and
// builds the logger.
func (a *app) setup(fs *pflag.FlagSet) error {
	if a.configFile != "" {
		cfg, err := loadConfig(a.configFile)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if err := a.cfg.applyFlags(fs); err != nil {
		return err
	}
	if a.cfg.BufferSize <= 0 {
		return errors.Errorf("buffer size must be positive, got %d", a.cfg.BufferSize)
	}
	if _, err := lookupEncoding(a.cfg.Encoding); err != nil {
		return err
	}

	lvl, err := parseLevel(a.cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = level.NewFilter(logger, lvl)
	a.logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	return nil
}

func parseLevel(s string) (level.Option, error) {
	switch s {
	case "debug":
		return level.AllowDebug(), nil
	case "info", "":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	}
	return nil, errors.Errorf("unknown log level %q", s)
}
