package scene

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/matzehuels/anchor/pkg/attribute"
	"github.com/matzehuels/anchor/pkg/constraint"
	"github.com/matzehuels/anchor/pkg/errors"
	"github.com/matzehuels/anchor/pkg/host"
)

// Term is one side of a textual constraint. A term without an item is a
// plain constant.
type Term struct {
	Item       string
	Guide      string // "", "margins" or "safe_area"
	Attribute  string
	Multiplier float64
	Constant   float64
}

// Rule is a parsed textual constraint such as
// "a.leading == b.trailing_padding + 4 @500".
type Rule struct {
	Text     string
	Left     Term
	Relation host.Relation
	Right    Term
	Priority *float64
}

// ParseRule parses one textual constraint.
//
//	rule     = term rel term [ "@" number ]
//	rel      = "==" | "<=" | ">="
//	term     = number | path [ ("*" | "/") number ] [ ("+" | "-") number ]
//	path     = view [ "." ("margins" | "safe_area") ] "." attribute
//
// The left term must be a bare path.
func ParseRule(text string) (Rule, error) {
	r := Rule{Text: strings.TrimSpace(text)}
	body := r.Text
	if i := strings.LastIndexByte(body, '@'); i >= 0 {
		p, err := strconv.ParseFloat(strings.TrimSpace(body[i+1:]), 64)
		if err != nil {
			return Rule{}, ruleError(text, "priority %q is not a number", strings.TrimSpace(body[i+1:]))
		}
		r.Priority = &p
		body = body[:i]
	}

	var lhs, rhs string
	found := false
	for _, op := range []struct {
		tok string
		rel host.Relation
	}{{"==", host.Equal}, {"<=", host.LessOrEqual}, {">=", host.GreaterOrEqual}} {
		if i := strings.Index(body, op.tok); i >= 0 {
			lhs, rhs, r.Relation, found = body[:i], body[i+len(op.tok):], op.rel, true
			break
		}
	}
	if !found {
		return Rule{}, ruleError(text, "missing relation (==, <= or >=)")
	}

	left, err := parseTerm(text, lhs)
	if err != nil {
		return Rule{}, err
	}
	if left.Item == "" || left.Multiplier != 1 || left.Constant != 0 {
		return Rule{}, ruleError(text, "left side must be a plain view.attribute")
	}
	right, err := parseTerm(text, rhs)
	if err != nil {
		return Rule{}, err
	}
	r.Left, r.Right = left, right
	return r, nil
}

func parseTerm(text, s string) (Term, error) {
	t := Term{Multiplier: 1}
	toks := tokenize(s)
	if len(toks) == 0 {
		return Term{}, ruleError(text, "empty side")
	}

	if n, err := strconv.ParseFloat(toks[0], 64); err == nil {
		if len(toks) != 1 {
			return Term{}, ruleError(text, "unexpected %q after constant", toks[1])
		}
		t.Constant = n
		return t, nil
	}

	parts := strings.Split(toks[0], ".")
	switch len(parts) {
	case 2:
		t.Item, t.Attribute = parts[0], parts[1]
	case 3:
		if parts[1] != "margins" && parts[1] != "safe_area" {
			return Term{}, ruleError(text, "unknown guide %q (want margins or safe_area)", parts[1])
		}
		t.Item, t.Guide, t.Attribute = parts[0], parts[1], parts[2]
	default:
		return Term{}, ruleError(text, "%q is not view.attribute", toks[0])
	}

	rest := toks[1:]
	for len(rest) > 0 {
		if len(rest) < 2 {
			return Term{}, ruleError(text, "operator %q needs a number", rest[0])
		}
		n, err := strconv.ParseFloat(rest[1], 64)
		if err != nil {
			return Term{}, ruleError(text, "%q is not a number", rest[1])
		}
		switch rest[0] {
		case "*":
			t.Multiplier *= n
		case "/":
			if n == 0 {
				return Term{}, errors.New(errors.ErrCodeDivideByZero, "cannot divide by zero").WithConstraint(text)
			}
			t.Multiplier /= n
		case "+":
			t.Constant += n
		case "-":
			t.Constant -= n
		default:
			return Term{}, ruleError(text, "unknown operator %q", rest[0])
		}
		rest = rest[2:]
	}
	return t, nil
}

// tokenize splits on whitespace and around the arithmetic operators. A sign
// directly in front of a digit stays with the number when it opens the side
// or follows another operator, as in "b.width * -2".
func tokenize(s string) []string {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	runes := []rune(s)
	for i, c := range runes {
		switch {
		case unicode.IsSpace(c):
			flush()
		case strings.ContainsRune("*/+-", c):
			operand := len(toks) == 0 || isOperator(toks[len(toks)-1])
			if (c == '-' || c == '+') && cur.Len() == 0 && operand &&
				i+1 < len(runes) && (unicode.IsDigit(runes[i+1]) || runes[i+1] == '.') {
				cur.WriteRune(c)
				continue
			}
			flush()
			toks = append(toks, string(c))
		default:
			cur.WriteRune(c)
		}
	}
	flush()
	return toks
}

func isOperator(tok string) bool {
	return len(tok) == 1 && strings.Contains("*/+-", tok)
}

func ruleError(text, format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidScene, format, args...).WithConstraint(strings.TrimSpace(text))
}

// Resolver looks up views by name.
type Resolver func(name string) (host.View, bool)

// Apply creates the constraint described by r.
func (r Rule) Apply(eng *constraint.Engine, resolve Resolver) (*constraint.Constraint, error) {
	left, err := r.Left.expression(eng, resolve, r.Text)
	if err != nil {
		return nil, err
	}
	if r.Priority != nil {
		left = left.Priority(*r.Priority)
	}

	var other any = r.Right.Constant
	if r.Right.Item != "" {
		right, err := r.Right.expression(eng, resolve, r.Text)
		if err != nil {
			return nil, err
		}
		other = right.Times(r.Right.Multiplier).Plus(r.Right.Constant)
	}

	switch r.Relation {
	case host.LessOrEqual:
		return left.Le(other)
	case host.GreaterOrEqual:
		return left.Ge(other)
	default:
		return left.Eq(other)
	}
}

func (t Term) expression(eng *constraint.Engine, resolve Resolver, text string) (constraint.Expression, error) {
	v, ok := resolve(t.Item)
	if !ok {
		return constraint.Expression{}, ruleError(text, "unknown view %q", t.Item)
	}
	x := eng.At(v)
	switch t.Guide {
	case "margins":
		x = x.Margins()
	case "safe_area":
		x = x.SafeArea()
	}
	if a, ok := attribute.Parse(t.Attribute); ok {
		return x.Attr(a), nil
	}
	if p, ok := attribute.ParsePadding(t.Attribute); ok {
		return x.Pad(p), nil
	}
	return constraint.Expression{}, ruleError(text, "unknown attribute %q", t.Attribute)
}
