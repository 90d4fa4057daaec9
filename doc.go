// Package calc implements a floating-point calculator for infix expressions.
//
// Expressions use the operators + - * / ^, round brackets, the constants pi
// and e, and the functions sin, cos, tan, sqrt, log (base 10), ln, exp, abs,
// ceil, and floor, each called as name(expr). The grammar, from least to most
// binding, is
//
//	Sum     = Term { ('+' | '-') Term }
//	Term    = Power { ('*' | '/') Power }
//	Power   = Unary { '^' Unary }
//	Unary   = '-' Unary | Primary
//	Primary = number | '(' Sum ')' | funcname '(' Sum ')'
//
// Note that exponentiation associates to the left: "2^3^2" is "(2^3)^2".
// A minus sign at the start of an expression or after an operator or open
// bracket is folded into a following number, so "-2^2" is 4.
//
// Every error returned by the package reports a Kind, so callers can
// classify failures with KindOf instead of inspecting messages.
package calc
