package calc

import (
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is a lexeme of an expression.
type Token struct {
	// Text is the token's text. For a constant, it is the constant's value.
	Text string
	// Kind is the token's kind.
	Kind TokenKind
	// Pos is the 1-based rune column where the token starts in the source.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the kind of a token.
type TokenKind int8

const (
	TokenNone TokenKind = iota
	// TokenNum is a number, possibly negative. Constants become numbers.
	TokenNum
	// TokenOp is one of the Operators.
	TokenOp
	// TokenOpen is an open bracket.
	TokenOpen
	// TokenClose is a close bracket.
	TokenClose
	// TokenFunc is a function name.
	TokenFunc
	// TokenIdent is any other lexeme. The parser rejects it.
	TokenIdent
)

func (k TokenKind) String() string {
	switch k {
	case TokenNone:
		return "None"
	case TokenNum:
		return "Num"
	case TokenOp:
		return "Op"
	case TokenOpen:
		return "Open"
	case TokenClose:
		return "Close"
	case TokenFunc:
		return "Func"
	case TokenIdent:
		return "Ident"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/^"

// OpenBracket and CloseBracket group expressions.
const (
	OpenBracket  = "("
	CloseBracket = ")"
)

var (
	funcwords  = wordsRE(Funcs())
	constwords = wordsRE(Consts())
)

// words matches any of a set of names occurring as whole words. Word runes
// are Unicode letters, numbers, and underscore, so a name glued to "é" or
// "π" is not a match.
type words struct {
	re *regexp.Regexp
}

// wordsRE compiles a matcher for names. Longer names are tried first so that
// no name shadows another it is a prefix of.
func wordsRE(names []string) words {
	q := make([]string, len(names))
	for i, name := range names {
		q[i] = regexp.QuoteMeta(name)
	}
	sort.SliceStable(q, func(i, j int) bool { return len(q[i]) > len(q[j]) })
	return words{re: regexp.MustCompile(`(?:` + strings.Join(q, "|") + `)`)}
}

// find returns the byte ranges of whole-word matches in s.
func (w words) find(s string) [][]int {
	var r [][]int
	for _, m := range w.re.FindAllStringIndex(s, -1) {
		// A rejected match can't hide an accepted one inside it, because names
		// are made of word runes and so have no boundary within them.
		if before, _ := utf8.DecodeLastRuneInString(s[:m[0]]); m[0] > 0 && isword(before) {
			continue
		}
		if after, _ := utf8.DecodeRuneInString(s[m[1]:]); m[1] < len(s) && isword(after) {
			continue
		}
		r = append(r, m)
	}
	return r
}

// replace replaces each whole-word match in s with the result of f.
func (w words) replace(s string, f func(string) string) string {
	ms := w.find(s)
	if len(ms) == 0 {
		return s
	}
	var b strings.Builder
	last := 0
	for _, m := range ms {
		b.WriteString(s[last:m[0]])
		b.WriteString(f(s[m[0]:m[1]]))
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

func isword(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Tokenize splits an expression into tokens. Operators and brackets are
// always tokens of their own. Other text is split on whitespace, function
// names occurring as whole words are split out, and constants occurring as
// whole words are replaced with their values. A minus sign at the start of
// the input or after an operator or open bracket is folded into a following
// number.
//
// Empty or whitespace-only input produces no tokens.
func Tokenize(src string) []Token {
	var raw []Token
	var chunk strings.Builder
	start := 0
	flush := func() {
		if chunk.Len() > 0 {
			raw = splitChunk(raw, chunk.String(), start)
			chunk.Reset()
		}
	}
	col := 0
	for _, r := range src {
		col++
		switch {
		case unicode.IsSpace(r):
			flush()
		case strings.ContainsRune(Operators, r):
			flush()
			raw = append(raw, Token{Text: string(r), Kind: TokenOp, Pos: col})
		case r == '(':
			flush()
			raw = append(raw, Token{Text: OpenBracket, Kind: TokenOpen, Pos: col})
		case r == ')':
			flush()
			raw = append(raw, Token{Text: CloseBracket, Kind: TokenClose, Pos: col})
		default:
			if chunk.Len() == 0 {
				start = col
			}
			chunk.WriteRune(r)
		}
	}
	flush()
	return foldSigns(raw)
}

// splitChunk appends the tokens of a run of text containing no whitespace,
// operators, or brackets, starting at column pos.
func splitChunk(toks []Token, s string, pos int) []Token {
	col := func(off int) int {
		return pos + utf8.RuneCountInString(s[:off])
	}
	last := 0
	for _, m := range funcwords.find(s) {
		if m[0] > last {
			toks = append(toks, lexeme(s[last:m[0]], col(last)))
		}
		toks = append(toks, Token{Text: s[m[0]:m[1]], Kind: TokenFunc, Pos: col(m[0])})
		last = m[1]
	}
	if last < len(s) {
		toks = append(toks, lexeme(s[last:], col(last)))
	}
	return toks
}

// lexeme classifies a piece of a chunk that is not a function name, after
// substituting constants.
func lexeme(s string, pos int) Token {
	s = constwords.replace(s, func(name string) string {
		return constText(globalconsts[name])
	})
	if _, ok := parsenum(s); ok {
		return Token{Text: s, Kind: TokenNum, Pos: pos}
	}
	return Token{Text: s, Kind: TokenIdent, Pos: pos}
}

// foldSigns merges sign-prefix minus tokens into the numbers that follow
// them. A minus is a sign when it is first or follows an operator or open
// bracket. A sign followed by something other than a number stays an
// operator for the parser to treat as negation.
func foldSigns(raw []Token) []Token {
	if len(raw) == 0 {
		return nil
	}
	toks := make([]Token, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		t := raw[i]
		if t.Kind == TokenOp && t.Text == "-" && i+1 < len(raw) && raw[i+1].Kind == TokenNum && signpos(toks) {
			v, ok := parsenum(raw[i+1].Text)
			if !ok {
				panic("calc: number token does not parse: " + raw[i+1].String())
			}
			toks = append(toks, Token{Text: fmtnum(-v), Kind: TokenNum, Pos: t.Pos})
			i++
			continue
		}
		toks = append(toks, t)
	}
	return toks
}

// signpos returns whether a minus following toks is a sign.
func signpos(toks []Token) bool {
	if len(toks) == 0 {
		return true
	}
	switch last := toks[len(toks)-1]; last.Kind {
	case TokenOp, TokenOpen:
		return true
	default:
		return false
	}
}

// parsenum parses the text of a number. Numbers too large for a float64 are
// infinite rather than errors.
func parsenum(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return v, true
}
