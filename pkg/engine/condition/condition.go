// Package condition evaluates authored transition expressions against the
// session variable context.
//
// The language is deliberately closed: comparison, boolean and arithmetic
// operators over literals and variable references. There are no function
// calls and no access to anything outside the supplied variable map, so an
// authored expression can never execute code.
package condition

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Eval parses and evaluates an expression such as "age >= 18 && plan == 'premium'"
// against vars. The result must be a boolean; anything else is an error.
func Eval(expr string, vars map[string]string) (bool, error) {
	p := &parser{tokens: lex(expr), vars: vars}
	v, err := p.parseOr()
	if err != nil {
		return false, err
	}
	if !p.atEnd() {
		return false, fmt.Errorf("unexpected token %q", p.peek().text)
	}
	if v.kind != kindBool {
		return false, fmt.Errorf("expression %q does not evaluate to a boolean", expr)
	}
	return v.b, nil
}

type valueKind int

const (
	kindNumber valueKind = iota
	kindString
	kindBool
)

type value struct {
	kind valueKind
	n    float64
	s    string
	b    bool
}

func numberValue(n float64) value { return value{kind: kindNumber, n: n} }
func stringValue(s string) value  { return value{kind: kindString, s: s} }
func boolValue(b bool) value      { return value{kind: kindBool, b: b} }

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokNumber
	tokString
	tokOp
	tokLParen
	tokRParen
	tokEOF
	tokErr
)

type token struct {
	kind tokenKind
	text string
}

func lex(input string) []token {
	var tokens []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			tokens = append(tokens, token{tokLParen, "("})
			i++
		case c == ')':
			tokens = append(tokens, token{tokRParen, ")"})
			i++
		case c == '\'' || c == '"':
			quote := c
			j := i + 1
			for j < len(input) && input[j] != quote {
				j++
			}
			if j >= len(input) {
				tokens = append(tokens, token{tokErr, "unterminated string"})
				return tokens
			}
			tokens = append(tokens, token{tokString, input[i+1 : j]})
			i = j + 1
		case strings.ContainsRune("=!<>&|+-*/%", rune(c)):
			// Longest-match two-char operators first.
			if i+1 < len(input) {
				two := input[i : i+2]
				switch two {
				case "==", "!=", "<=", ">=", "&&", "||":
					tokens = append(tokens, token{tokOp, two})
					i += 2
					continue
				}
			}
			tokens = append(tokens, token{tokOp, string(c)})
			i++
		case c >= '0' && c <= '9' || c == '.':
			j := i
			for j < len(input) && (input[j] >= '0' && input[j] <= '9' || input[j] == '.') {
				j++
			}
			tokens = append(tokens, token{tokNumber, input[i:j]})
			i = j
		case unicode.IsLetter(rune(c)) || c == '_':
			j := i
			for j < len(input) && (unicode.IsLetter(rune(input[j])) || unicode.IsDigit(rune(input[j])) || input[j] == '_') {
				j++
			}
			tokens = append(tokens, token{tokIdent, input[i:j]})
			i = j
		default:
			tokens = append(tokens, token{tokErr, fmt.Sprintf("unexpected character %q", c)})
			return tokens
		}
	}
	tokens = append(tokens, token{tokEOF, ""})
	return tokens
}

type parser struct {
	tokens []token
	pos    int
	vars   map[string]string
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) atEnd() bool { return p.peek().kind == tokEOF }

func (p *parser) acceptOp(ops ...string) (string, bool) {
	t := p.peek()
	if t.kind != tokOp {
		return "", false
	}
	for _, op := range ops {
		if t.text == op {
			p.next()
			return op, true
		}
	}
	return "", false
}

func (p *parser) acceptKeyword(words ...string) (string, bool) {
	t := p.peek()
	if t.kind != tokIdent {
		return "", false
	}
	for _, w := range words {
		if strings.EqualFold(t.text, w) {
			p.next()
			return w, true
		}
	}
	return "", false
}

func (p *parser) parseOr() (value, error) {
	left, err := p.parseAnd()
	if err != nil {
		return value{}, err
	}
	for {
		if _, ok := p.acceptOp("||"); !ok {
			if _, ok := p.acceptKeyword("or"); !ok {
				return left, nil
			}
		}
		right, err := p.parseAnd()
		if err != nil {
			return value{}, err
		}
		lb, rb, err := bothBool(left, right)
		if err != nil {
			return value{}, err
		}
		left = boolValue(lb || rb)
	}
}

func (p *parser) parseAnd() (value, error) {
	left, err := p.parseNot()
	if err != nil {
		return value{}, err
	}
	for {
		if _, ok := p.acceptOp("&&"); !ok {
			if _, ok := p.acceptKeyword("and"); !ok {
				return left, nil
			}
		}
		right, err := p.parseNot()
		if err != nil {
			return value{}, err
		}
		lb, rb, err := bothBool(left, right)
		if err != nil {
			return value{}, err
		}
		left = boolValue(lb && rb)
	}
}

func (p *parser) parseNot() (value, error) {
	if _, ok := p.acceptOp("!"); ok {
		v, err := p.parseNot()
		if err != nil {
			return value{}, err
		}
		if v.kind != kindBool {
			return value{}, fmt.Errorf("operator ! requires a boolean operand")
		}
		return boolValue(!v.b), nil
	}
	if _, ok := p.acceptKeyword("not"); ok {
		v, err := p.parseNot()
		if err != nil {
			return value{}, err
		}
		if v.kind != kindBool {
			return value{}, fmt.Errorf("operator not requires a boolean operand")
		}
		return boolValue(!v.b), nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (value, error) {
	left, err := p.parseSum()
	if err != nil {
		return value{}, err
	}
	op, ok := p.acceptOp("==", "!=", "<=", ">=", "<", ">")
	if !ok {
		return left, nil
	}
	right, err := p.parseSum()
	if err != nil {
		return value{}, err
	}
	return compare(op, left, right)
}

func (p *parser) parseSum() (value, error) {
	left, err := p.parseTerm()
	if err != nil {
		return value{}, err
	}
	for {
		op, ok := p.acceptOp("+", "-")
		if !ok {
			return left, nil
		}
		right, err := p.parseTerm()
		if err != nil {
			return value{}, err
		}
		ln, rn, err := bothNumbers(op, left, right)
		if err != nil {
			return value{}, err
		}
		if op == "+" {
			left = numberValue(ln + rn)
		} else {
			left = numberValue(ln - rn)
		}
	}
}

func (p *parser) parseTerm() (value, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return value{}, err
	}
	for {
		op, ok := p.acceptOp("*", "/", "%")
		if !ok {
			return left, nil
		}
		right, err := p.parsePrimary()
		if err != nil {
			return value{}, err
		}
		ln, rn, err := bothNumbers(op, left, right)
		if err != nil {
			return value{}, err
		}
		switch op {
		case "*":
			left = numberValue(ln * rn)
		case "/":
			if rn == 0 {
				return value{}, fmt.Errorf("division by zero")
			}
			left = numberValue(ln / rn)
		case "%":
			if rn == 0 {
				return value{}, fmt.Errorf("division by zero")
			}
			left = numberValue(float64(int64(ln) % int64(rn)))
		}
	}
}

func (p *parser) parsePrimary() (value, error) {
	t := p.peek()
	switch t.kind {
	case tokNumber:
		p.next()
		n, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return value{}, fmt.Errorf("invalid number %q", t.text)
		}
		return numberValue(n), nil
	case tokString:
		p.next()
		return stringValue(t.text), nil
	case tokIdent:
		if strings.EqualFold(t.text, "true") {
			p.next()
			return boolValue(true), nil
		}
		if strings.EqualFold(t.text, "false") {
			p.next()
			return boolValue(false), nil
		}
		p.next()
		raw, ok := p.vars[t.text]
		if !ok {
			return value{}, fmt.Errorf("unknown variable %q", t.text)
		}
		return coerce(raw), nil
	case tokLParen:
		p.next()
		v, err := p.parseOr()
		if err != nil {
			return value{}, err
		}
		if p.peek().kind != tokRParen {
			return value{}, fmt.Errorf("missing closing parenthesis")
		}
		p.next()
		return v, nil
	case tokErr:
		return value{}, fmt.Errorf("%s", t.text)
	default:
		return value{}, fmt.Errorf("unexpected token %q", t.text)
	}
}

// coerce interprets a variable's raw string as a number or boolean when it
// parses as one, otherwise keeps it as a string.
func coerce(raw string) value {
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return numberValue(n)
	}
	switch strings.ToLower(raw) {
	case "true":
		return boolValue(true)
	case "false":
		return boolValue(false)
	}
	return stringValue(raw)
}

func compare(op string, left, right value) (value, error) {
	// Numeric comparison when both sides are numbers, string otherwise.
	if left.kind == kindNumber && right.kind == kindNumber {
		switch op {
		case "==":
			return boolValue(left.n == right.n), nil
		case "!=":
			return boolValue(left.n != right.n), nil
		case "<":
			return boolValue(left.n < right.n), nil
		case "<=":
			return boolValue(left.n <= right.n), nil
		case ">":
			return boolValue(left.n > right.n), nil
		case ">=":
			return boolValue(left.n >= right.n), nil
		}
	}
	if left.kind == kindBool || right.kind == kindBool {
		if op != "==" && op != "!=" {
			return value{}, fmt.Errorf("operator %s not defined for booleans", op)
		}
		if left.kind != kindBool || right.kind != kindBool {
			return value{}, fmt.Errorf("cannot compare boolean with non-boolean")
		}
		if op == "==" {
			return boolValue(left.b == right.b), nil
		}
		return boolValue(left.b != right.b), nil
	}
	ls, rs := asString(left), asString(right)
	switch op {
	case "==":
		return boolValue(ls == rs), nil
	case "!=":
		return boolValue(ls != rs), nil
	case "<":
		return boolValue(ls < rs), nil
	case "<=":
		return boolValue(ls <= rs), nil
	case ">":
		return boolValue(ls > rs), nil
	case ">=":
		return boolValue(ls >= rs), nil
	}
	return value{}, fmt.Errorf("unknown operator %s", op)
}

func asString(v value) string {
	switch v.kind {
	case kindNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case kindBool:
		return strconv.FormatBool(v.b)
	default:
		return v.s
	}
}

func bothBool(left, right value) (bool, bool, error) {
	if left.kind != kindBool || right.kind != kindBool {
		return false, false, fmt.Errorf("logical operators require boolean operands")
	}
	return left.b, right.b, nil
}

func bothNumbers(op string, left, right value) (float64, float64, error) {
	if left.kind != kindNumber || right.kind != kindNumber {
		return 0, 0, fmt.Errorf("operator %s requires numeric operands", op)
	}
	return left.n, right.n, nil
}
