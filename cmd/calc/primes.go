package main

import (
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/primes"
)

func init() {
	commands = append(commands, func(opts *globalOptions, _ io.Reader) *cobra.Command {
		return newPrimesCommand(opts)
	})
}

func newPrimesCommand(gopts *globalOptions) *cobra.Command {
	primesCmd := &cobra.Command{
		Use:   "primes",
		Short: "List prime numbers",
		Long:  "List prime numbers by trial division.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	firstCmd := &cobra.Command{
		Use:     "first COUNT",
		Aliases: []string{"get-first-primes"},
		Short:   "Print the first COUNT primes",
		Args:    cobra.ExactArgs(1),
		Example: `calc primes first 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := atoi("COUNT", args[0])
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout(), gopts.cfg.Output, "")
			if count < 0 {
				return p.message("Count must be a non-negative integer.")
			}
			return p.primes(primes.First(count))
		},
	}
	nthCmd := &cobra.Command{
		Use:     "nth N",
		Aliases: []string{"get-nth-prime"},
		Short:   "Print the Nth prime",
		Args:    cobra.ExactArgs(1),
		Example: `calc primes nth 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := atoi("N", args[0])
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout(), gopts.cfg.Output, "")
			v, ok := primes.Nth(n)
			if !ok {
				return p.message("N must be a positive integer.")
			}
			return p.prime(n, v)
		},
	}
	primesCmd.AddCommand(firstCmd, nthCmd)
	return primesCmd
}

// atoi converts a command argument to an integer.
func atoi(arg, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &calc.TypeError{Arg: arg, Text: s, Want: "an integer"}
	}
	return n, nil
}
