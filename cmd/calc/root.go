package main

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/zephyrtronium/calc/internal/config"
)

// globalOptions are the flags shared by every command.
type globalOptions struct {
	LogLevel   string
	ConfigPath string
	Output     string

	// cfg is the loaded configuration with flag overrides applied.
	cfg *config.Config
}

// commands holds constructors for the subcommands of the root command. Each
// file defining a subcommand adds it in init.
var commands []func(opts *globalOptions, stdin io.Reader) *cobra.Command

const rootDescription = `Evaluate arithmetic expressions.

  Each argument is evaluated as an expression. With no arguments, expressions
  are read one per line from --in or standard input. Expressions beginning with
  a minus sign must follow "--".`

func newRootCommand(stdin io.Reader) *cobra.Command {
	opts := &globalOptions{}
	evalOpts := &evalOptions{}
	rootCmd := &cobra.Command{
		Use:           "calc [options] [EXPR...]",
		Short:         "Evaluate arithmetic expressions",
		Long:          rootDescription,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRunE(cmd, args, opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return evalRun(cmd, args, stdin, opts, evalOpts)
		},
		Example: `calc "1+(2*4+3)/3"
  calc --fmt %.3f "sqrt(2)"
  calc -- -5+3
  calc eval --echo "2^3^2"
  echo "sin(pi/2)" | calc`,
	}
	rootFlags(rootCmd.PersistentFlags(), opts)
	evalFlags(rootCmd.Flags(), evalOpts)
	for _, c := range commands {
		rootCmd.AddCommand(c(opts, stdin))
	}
	return rootCmd
}

func rootFlags(flags *pflag.FlagSet, opts *globalOptions) {
	flags.StringVar(&opts.LogLevel, "log-level", "warn", "Log messages above specified level ("+strings.Join(logLevels(), ", ")+")")
	flags.StringVar(&opts.ConfigPath, "config", "", "Path to a TOML config file (default $"+config.EnvVar+" or "+config.DefaultPath()+")")
	flags.StringVarP(&opts.Output, "output", "o", config.OutputText, "Output format (text or json)")
}

func logLevels() []string {
	r := make([]string, 0, len(logrus.AllLevels))
	for _, l := range logrus.AllLevels {
		r = append(r, l.String())
	}
	return r
}

// persistentPreRunE loads the config file and applies the global flags over
// it.
func persistentPreRunE(cmd *cobra.Command, args []string, opts *globalOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.LogLevel
	}
	if flags.Changed("output") {
		cfg.Output = opts.Output
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid options")
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	if cfg.Source != "" {
		logrus.Debugf("Loaded config file %s", cfg.Source)
	}
	logrus.Debugf("Called %s.PersistentPreRunE(%s)", cmd.Name(), strings.Join(args, " "))
	opts.cfg = cfg
	return nil
}
