package main

import (
	"math"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("calc", func() {
	Context("with expression arguments", func() {
		It("prints results", func() {
			s := execCalc("1+3")
			Expect(s.code).To(Equal(0))
			Expect(s.stdout).To(Equal("4\n"))
			Expect(s.stderr).To(BeEmpty())
		})

		It("evaluates each argument in order", func() {
			s := execCalc("2^3^2", "sqrt(16)", "1/4", "((2+3)*4)")
			Expect(s.code).To(Equal(0))
			Expect(s.stdout).To(Equal("64\n4\n0.25\n20\n"))
		})

		It("accepts leading minus signs after --", func() {
			s := execCalc("--", "-5+3")
			Expect(s.code).To(Equal(0))
			Expect(s.stdout).To(Equal("-2\n"))
		})

		It("formats results with --fmt", func() {
			s := execCalc("--fmt", "%.3f", "sqrt(2)")
			Expect(s.code).To(Equal(0))
			Expect(s.stdout).To(Equal("1.414\n"))
		})

		It("prints parse trees with --echo", func() {
			s := execCalc("--echo", "2^3^2")
			Expect(s.code).To(Equal(0))
			Expect(s.stdout).To(Equal("([(2) ^ (3)] ^ [2]) : 64\n"))
		})

		It("prints infinities", func() {
			s := execCalc("1e500")
			Expect(s.code).To(Equal(0))
			Expect(s.stdout).To(Equal("inf\n"))
		})

		It("reports errors and fails", func() {
			s := execCalc("5/0")
			Expect(s.code).To(Equal(exitFailure))
			Expect(s.stdout).To(BeEmpty())
			Expect(s.stderr).To(ContainSubstring(`Error: evaluating "5/0": 2: division by zero`))
		})

		It("reports every failure and prints every success", func() {
			s := execCalc("1+1", "2 3", "unknown(5)", "3*3")
			Expect(s.code).To(Equal(exitFailure))
			Expect(s.stdout).To(Equal("2\n9\n"))
			Expect(s.stderr).To(ContainSubstring("missing operator"))
			Expect(s.stderr).To(ContainSubstring(`unknown function: "unknown"`))
			Expect(strings.Count(s.stderr, "Error:")).To(Equal(2))
		})

		It("rejects empty expressions", func() {
			s := execCalc("  ")
			Expect(s.code).To(Equal(exitFailure))
			Expect(s.stderr).To(ContainSubstring("Error: empty expression"))
		})

		It("limits repeated operators with --max-repeat", func() {
			Expect(execCalc("--max-repeat", "3", "1+1+1+1").code).To(Equal(0))
			s := execCalc("--max-repeat", "2", "1+1+1+1")
			Expect(s.code).To(Equal(exitFailure))
			Expect(s.stderr).To(ContainSubstring("expression too complex"))
		})

		It("rejects a non-positive --max-repeat", func() {
			s := execCalc("--max-repeat", "0", "1")
			Expect(s.code).To(Equal(exitGeneric))
			Expect(s.stderr).To(ContainSubstring("--max-repeat must be positive"))
		})

		It("logs tokens and its own arguments at debug level", func() {
			s := execCalc("--log-level", "debug", "1+3", "2*2")
			Expect(s.code).To(Equal(0))
			Expect(s.stdout).To(Equal("4\n4\n"))
			Expect(s.stderr).To(ContainSubstring("Tokens of"))
			Expect(s.stderr).To(ContainSubstring("PersistentPreRunE(1+3 2*2)"))
		})

		It("reports errors the same way with --echo", func() {
			s := execCalc("--echo", "5/0", "", "2 3", "1+1")
			Expect(s.code).To(Equal(exitFailure))
			Expect(s.stdout).To(Equal("([1] + [1]) : 2\n"))
			Expect(s.stderr).To(ContainSubstring(`Error: evaluating "5/0": 2: division by zero`))
			Expect(s.stderr).To(ContainSubstring("Error: empty expression"))
			Expect(s.stderr).To(ContainSubstring(`Error: evaluating "2 3": 3: missing operator before "3"`))
		})

		It("ignores tokens after a complete expression", func() {
			s := execCalc("2+3)", "2 sin(1)")
			Expect(s.code).To(Equal(0))
			Expect(s.stdout).To(Equal("5\n2\n"))
		})

		It("limits nesting with --max-depth", func() {
			Expect(execCalc("--max-depth", "2", "((1))").code).To(Equal(0))
			s := execCalc("--max-depth", "2", "(((1)))")
			Expect(s.code).To(Equal(exitFailure))
			Expect(s.stderr).To(ContainSubstring("more than 2 nested brackets"))
		})

		It("fails cleanly on very deep nesting", func() {
			src := strings.Repeat("(", 100000) + "1" + strings.Repeat(")", 100000)
			s := execCalc(src)
			Expect(s.code).To(Equal(exitFailure))
			Expect(s.stderr).To(ContainSubstring("nested brackets"))
		})
	})

	Context("eval", func() {
		It("evaluates arguments", func() {
			s := execCalc("eval", "1+2", "2^3^2")
			Expect(s.code).To(Equal(0))
			Expect(s.stdout).To(Equal("3\n64\n"))
			Expect(s.stderr).To(BeEmpty())
		})

		It("takes the same flags as calc", func() {
			s := execCalc("-o", "json", "eval", "--fmt", "%.2f", "--echo", "1/3")
			Expect(s.code).To(Equal(0))
			Expect(s.stdout).To(MatchJSON(`{"expression":"1/3","result":0.3333333333333333,"text":"0.33","tree":"([1] / [3])"}`))
		})

		It("reads standard input", func() {
			s := execCalcWithInput(strings.NewReader("sqrt(16)\n5/0\n"), "eval")
			Expect(s.code).To(Equal(exitFailure))
			Expect(s.stdout).To(Equal("4\n"))
			Expect(s.stderr).To(ContainSubstring("division by zero"))
		})

		It("uses limits from the config file", func() {
			path := writeFile(tempDir(), "calc.toml", "max_depth = 1\n")
			s := execCalc("--config", path, "eval", "((1))")
			Expect(s.code).To(Equal(exitFailure))
			Expect(s.stderr).To(ContainSubstring("more than 1 nested brackets"))
		})

		It("rejects a non-positive --max-depth", func() {
			s := execCalc("eval", "--max-depth", "0", "1")
			Expect(s.code).To(Equal(exitGeneric))
			Expect(s.stderr).To(ContainSubstring("--max-depth must be positive"))
		})
	})

	Context("reading expressions", func() {
		It("reads standard input line by line", func() {
			s := execCalcWithInput(strings.NewReader("1+3\n\n   \n5-2\n"))
			Expect(s.code).To(Equal(0))
			Expect(s.stdout).To(Equal("4\n3\n"))
			Expect(s.stderr).To(BeEmpty())
		})

		It("keeps going after a bad line", func() {
			s := execCalcWithInput(strings.NewReader("1/0\n2*3\n"))
			Expect(s.code).To(Equal(exitFailure))
			Expect(s.stdout).To(Equal("6\n"))
			Expect(s.stderr).To(ContainSubstring("division by zero"))
		})

		It("reads a file with --in", func() {
			path := writeFile(tempDir(), "exprs.txt", "sin(pi/2)\nfloor(2.5)*2\n")
			s := execCalc("--in", path)
			Expect(s.code).To(Equal(0))
			Expect(s.stdout).To(Equal("1\n4\n"))
		})

		It("fails on a missing --in file", func() {
			s := execCalc("--in", "/nonexistent/exprs.txt")
			Expect(s.code).To(Equal(exitGeneric))
			Expect(s.stderr).To(ContainSubstring("opening /nonexistent/exprs.txt"))
		})

		It("rejects --in with expression arguments", func() {
			s := execCalc("--in", "-", "1+1")
			Expect(s.code).To(Equal(exitGeneric))
			Expect(s.stderr).To(ContainSubstring("--in cannot be used with expression arguments"))
		})
	})

	Context("with JSON output", func() {
		It("prints a record per expression", func() {
			s := execCalc("-o", "json", "1+3", "1e500")
			Expect(s.code).To(Equal(0))
			lines := strings.Split(strings.TrimSpace(s.stdout), "\n")
			Expect(lines).To(HaveLen(2))
			Expect(lines[0]).To(MatchJSON(`{"expression":"1+3","result":4,"text":"4"}`))
			Expect(lines[1]).To(MatchJSON(`{"expression":"1e500","text":"inf"}`))
		})

		It("includes errors and their kinds", func() {
			s := execCalc("--output", "json", "5/0")
			Expect(s.code).To(Equal(exitFailure))
			Expect(s.stdout).To(MatchJSON(`{"expression":"5/0","error":"evaluating \"5/0\": 2: division by zero","kind":"DivisionByZero"}`))
		})

		It("includes trees with --echo", func() {
			s := execCalc("-o", "json", "--echo", "1+2")
			Expect(s.code).To(Equal(0))
			Expect(s.stdout).To(MatchJSON(`{"expression":"1+2","result":3,"text":"3","tree":"([1] + [2])"}`))
		})

		It("rejects unknown formats", func() {
			s := execCalc("-o", "xml", "1")
			Expect(s.code).To(Equal(exitGeneric))
			Expect(s.stderr).To(ContainSubstring("invalid options"))
		})
	})

	Context("with a config file", func() {
		It("uses settings from --config", func() {
			path := writeFile(tempDir(), "calc.toml", "output = \"json\"\nformat = \"%.2f\"\n")
			s := execCalc("--config", path, "1/3")
			Expect(s.code).To(Equal(0))
			Expect(s.stdout).To(MatchJSON(`{"expression":"1/3","result":0.3333333333333333,"text":"0.33"}`))
		})

		It("uses the file named by the environment", func() {
			path := writeFile(tempDir(), "calc.toml", "max_repeat = 1\n")
			setenv("CALC_CONFIG", path)
			Expect(execCalc("1+1").code).To(Equal(0))
			s := execCalc("1+1+1")
			Expect(s.code).To(Equal(exitFailure))
			Expect(s.stderr).To(ContainSubstring("expression too complex"))
		})

		It("lets flags override the file", func() {
			path := writeFile(tempDir(), "calc.toml", "output = \"json\"\nmax_repeat = 1\n")
			s := execCalc("--config", path, "-o", "text", "--max-repeat", "5", "1+1+1")
			Expect(s.code).To(Equal(0))
			Expect(s.stdout).To(Equal("3\n"))
		})

		It("fails on an invalid file", func() {
			path := writeFile(tempDir(), "calc.toml", "colour = \"red\"\n")
			s := execCalc("--config", path, "1")
			Expect(s.code).To(Equal(exitGeneric))
			Expect(s.stderr).To(ContainSubstring("unknown keys"))
		})

		It("fails on a missing file", func() {
			s := execCalc("--config", "/nonexistent/calc.toml", "1")
			Expect(s.code).To(Equal(exitGeneric))
			Expect(s.stderr).To(ContainSubstring("reading config file"))
		})
	})

	It("fails on unknown flags", func() {
		s := execCalc("--bogus")
		Expect(s.code).To(Equal(exitGeneric))
		Expect(s.stderr).To(ContainSubstring("unknown flag"))
	})
})

var _ = Describe("calc primes", func() {
	It("lists the first primes", func() {
		s := execCalc("primes", "first", "10")
		Expect(s.code).To(Equal(0))
		Expect(s.stdout).To(Equal("2 3 5 7 11 13 17 19 23 29\n"))
	})

	It("lists no primes for zero", func() {
		s := execCalc("primes", "first", "0")
		Expect(s.code).To(Equal(0))
		Expect(s.stdout).To(Equal("\n"))
	})

	It("explains a negative count", func() {
		s := execCalc("primes", "first", "--", "-1")
		Expect(s.code).To(Equal(0))
		Expect(s.stdout).To(Equal("Count must be a non-negative integer.\n"))
	})

	It("prints the nth prime", func() {
		for n, p := range map[string]string{"1": "2", "5": "11", "10": "29"} {
			s := execCalc("primes", "nth", n)
			Expect(s.code).To(Equal(0))
			Expect(s.stdout).To(Equal(p + "\n"))
		}
	})

	It("explains a non-positive n", func() {
		s := execCalc("primes", "nth", "0")
		Expect(s.code).To(Equal(0))
		Expect(s.stdout).To(Equal("N must be a positive integer.\n"))
	})

	It("rejects non-integers", func() {
		s := execCalc("primes", "nth", "five")
		Expect(s.code).To(Equal(exitFailure))
		Expect(s.stderr).To(ContainSubstring(`Error: N must be an integer, not "five"`))

		s = execCalc("primes", "first", "2.5")
		Expect(s.code).To(Equal(exitFailure))
		Expect(s.stderr).To(ContainSubstring(`Error: COUNT must be an integer, not "2.5"`))
	})

	It("accepts the long command names", func() {
		Expect(execCalc("primes", "get-first-primes", "3").stdout).To(Equal("2 3 5\n"))
		Expect(execCalc("primes", "get-nth-prime", "10").stdout).To(Equal("29\n"))
	})

	It("requires exactly one argument", func() {
		s := execCalc("primes", "nth")
		Expect(s.code).To(Equal(exitGeneric))
	})

	Context("with JSON output", func() {
		It("prints lists as arrays", func() {
			s := execCalc("-o", "json", "primes", "first", "3")
			Expect(s.code).To(Equal(0))
			Expect(s.stdout).To(MatchJSON(`[2,3,5]`))
		})

		It("prints the nth prime as an object", func() {
			s := execCalc("-o", "json", "primes", "nth", "5")
			Expect(s.code).To(Equal(0))
			Expect(s.stdout).To(MatchJSON(`{"n":5,"prime":11}`))
		})

		It("prints messages as objects", func() {
			s := execCalc("-o", "json", "primes", "nth", "0")
			Expect(s.stdout).To(MatchJSON(`{"message":"N must be a positive integer."}`))
		})
	})
})

var _ = DescribeTable("formatResult",
	func(r float64, verb, want string) {
		Expect(formatResult(r, verb)).To(Equal(want))
	},
	Entry("integer", 4.0, "", "4"),
	Entry("negative zero", math.Copysign(0, -1), "", "0"),
	Entry("fraction", 0.25, "", "0.25"),
	Entry("large integer", 1e20, "", "100000000000000000000"),
	Entry("verb", 2.0/3, "%.2f", "0.67"),
)
