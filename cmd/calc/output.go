package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// printer writes command results in the selected output format.
type printer struct {
	w      io.Writer
	output string
	verb   string
}

func newPrinter(w io.Writer, output, verb string) *printer {
	return &printer{w: w, output: output, verb: verb}
}

// evalResult is the JSON record for one expression.
type evalResult struct {
	Expression string `json:"expression"`
	// Result is absent for errors and for infinite or NaN results, which
	// JSON cannot represent.
	Result *float64 `json:"result,omitempty"`
	Text   string   `json:"text,omitempty"`
	Tree   string   `json:"tree,omitempty"`
	Error  string   `json:"error,omitempty"`
	Kind   string   `json:"kind,omitempty"`
}

// result prints the outcome of evaluating src. In text mode errors are not
// printed here; the caller reports them.
func (p *printer) result(src, tree string, r float64, err error) error {
	if p.output == config.OutputJSON {
		rec := evalResult{Expression: src, Tree: tree}
		if err != nil {
			rec.Error = err.Error()
			rec.Kind = calc.KindOf(err).String()
		} else {
			rec.Text = formatResult(r, p.verb)
			if !math.IsInf(r, 0) && !math.IsNaN(r) {
				rec.Result = &r
			}
		}
		return json.NewEncoder(p.w).Encode(&rec)
	}
	if err != nil {
		return nil
	}
	if tree != "" {
		_, e := fmt.Fprintf(p.w, "%s : %s\n", tree, formatResult(r, p.verb))
		return e
	}
	_, e := fmt.Fprintln(p.w, formatResult(r, p.verb))
	return e
}

// primes prints a list of primes.
func (p *printer) primes(ps []int) error {
	if p.output == config.OutputJSON {
		return json.NewEncoder(p.w).Encode(ps)
	}
	s := make([]string, len(ps))
	for i, v := range ps {
		s[i] = strconv.Itoa(v)
	}
	_, err := fmt.Fprintln(p.w, strings.Join(s, " "))
	return err
}

// prime prints the nth prime.
func (p *printer) prime(n, v int) error {
	if p.output == config.OutputJSON {
		return json.NewEncoder(p.w).Encode(map[string]int{"n": n, "prime": v})
	}
	_, err := fmt.Fprintln(p.w, v)
	return err
}

// message prints a note to the user that is not an error.
func (p *printer) message(msg string) error {
	if p.output == config.OutputJSON {
		return json.NewEncoder(p.w).Encode(map[string]string{"message": msg})
	}
	_, err := fmt.Fprintln(p.w, msg)
	return err
}

// formatResult formats a result with a printf verb, or if verb is empty, as
// an integer when it has no fractional part and otherwise as the shortest
// decimal that reads back to the same value.
func formatResult(r float64, verb string) string {
	if verb != "" {
		return fmt.Sprintf(verb, r)
	}
	switch {
	case math.IsNaN(r):
		return "nan"
	case math.IsInf(r, 1):
		return "inf"
	case math.IsInf(r, -1):
		return "-inf"
	case r == 0:
		// Includes negative zero.
		return "0"
	case r == math.Trunc(r):
		return strconv.FormatFloat(r, 'f', 0, 64)
	default:
		return strconv.FormatFloat(r, 'g', -1, 64)
	}
}
