package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/zephyrtronium/calc"
	"golang.org/x/term"
)

type evalOptions struct {
	In        string
	Format    string
	Echo      bool
	MaxRepeat int
	MaxDepth  int
}

const evalDescription = `Evaluate arithmetic expressions.

  Each argument is evaluated as an expression. With no arguments, expressions
  are read one per line from --in or standard input. This is also what calc
  does when given no command.`

func init() {
	commands = append(commands, newEvalCommand)
}

func newEvalCommand(gopts *globalOptions, stdin io.Reader) *cobra.Command {
	opts := &evalOptions{}
	evalCmd := &cobra.Command{
		Use:   "eval [options] [EXPR...]",
		Short: "Evaluate arithmetic expressions",
		Long:  evalDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return evalRun(cmd, args, stdin, gopts, opts)
		},
		Example: `calc eval "1+(2*4+3)/3"
  calc eval --in exprs.txt`,
	}
	evalFlags(evalCmd.Flags(), opts)
	return evalCmd
}

func evalFlags(flags *pflag.FlagSet, opts *evalOptions) {
	flags.StringVar(&opts.In, "in", "", "Read expressions from file, one per line (- for stdin)")
	flags.StringVar(&opts.Format, "fmt", "", "printf verb for results (default integer or shortest float)")
	flags.BoolVar(&opts.Echo, "echo", false, "Print parse trees before results")
	flags.IntVar(&opts.MaxRepeat, "max-repeat", calc.DefaultMaxRepeat, "Limit on consecutive operators at one precedence level")
	flags.IntVar(&opts.MaxDepth, "max-depth", calc.DefaultMaxDepth, "Limit on nested brackets")
}

func evalRun(cmd *cobra.Command, args []string, stdin io.Reader, gopts *globalOptions, opts *evalOptions) error {
	cfg := gopts.cfg
	flags := cmd.Flags()
	if flags.Changed("fmt") {
		cfg.Format = opts.Format
	}
	if flags.Changed("max-repeat") {
		cfg.MaxRepeat = opts.MaxRepeat
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = opts.MaxDepth
	}
	if cfg.MaxRepeat <= 0 {
		return errors.Errorf("--max-repeat must be positive, not %d", cfg.MaxRepeat)
	}
	if cfg.MaxDepth <= 0 {
		return errors.Errorf("--max-depth must be positive, not %d", cfg.MaxDepth)
	}
	if len(args) > 0 && opts.In != "" {
		return errors.New("--in cannot be used with expression arguments")
	}

	p := newPrinter(cmd.OutOrStdout(), cfg.Output, cfg.Format)
	popts := []calc.ParseOption{calc.MaxRepeat(cfg.MaxRepeat), calc.MaxDepth(cfg.MaxDepth)}
	var merr *multierror.Error
	eval := func(src string) error {
		tree, r, err := evaluate(src, opts.Echo, popts)
		if err != nil {
			logrus.Debugf("Evaluating %q failed with kind %v", src, calc.KindOf(err))
			merr = multierror.Append(merr, err)
		}
		return p.result(src, tree, r, err)
	}

	if len(args) > 0 {
		for _, src := range args {
			if err := eval(src); err != nil {
				return err
			}
		}
		return merr.ErrorOrNil()
	}

	in, prompt, closer, err := input(opts.In, stdin)
	if err != nil {
		return err
	}
	defer closer()
	scan := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprint(cmd.ErrOrStderr(), "> ")
		}
		if !scan.Scan() {
			break
		}
		src := scan.Text()
		if strings.TrimSpace(src) == "" {
			continue
		}
		if err := eval(src); err != nil {
			return err
		}
	}
	if err := scan.Err(); err != nil {
		return errors.Wrap(err, "reading expressions")
	}
	return merr.ErrorOrNil()
}

// evaluate parses and evaluates src once, returning its parse tree if echo
// is set. Errors are the same as from calc.Calculate.
func evaluate(src string, echo bool, popts []calc.ParseOption) (tree string, r float64, err error) {
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logrus.Debugf("Tokens of %q: %v", src, calc.Tokenize(src))
	}
	e, err := calc.ParseString(src, popts...)
	if err != nil {
		return "", 0, err
	}
	if echo || logrus.IsLevelEnabled(logrus.DebugLevel) {
		tree = e.String()
		logrus.Debugf("Parsed %q as %s", src, tree)
	}
	if !echo {
		tree = ""
	}
	r, err = e.Eval()
	if err != nil {
		return tree, 0, &calc.ExprError{Src: src, Err: err}
	}
	return tree, r, nil
}

// input opens the source of expressions. prompt reports whether the source
// is an interactive terminal.
func input(name string, stdin io.Reader) (r io.Reader, prompt bool, closer func(), err error) {
	if name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, false, nil, errors.Wrapf(err, "opening %s", name)
		}
		return f, false, func() { f.Close() }, nil
	}
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		prompt = true
	}
	return stdin, prompt, func() {}, nil
}
