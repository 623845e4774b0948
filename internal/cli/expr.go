package cli

import (
	"fmt"
	"strings"

	"github.com/helixmed/helix-core/internal/models"
)

// ParseTagExpression parses a boolean tag expression like
// "documentation AND (notes OR discharge) AND NOT draft".
// Operators are case-insensitive; OR binds loosest, then AND, then NOT.
func ParseTagExpression(input string) (*models.TagExpr, error) {
	p := &exprParser{tokens: tokenizeExpr(input)}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.tokens) {
		return nil, fmt.Errorf("unexpected token %q", p.tokens[p.pos])
	}
	return expr, nil
}

func tokenizeExpr(input string) []string {
	input = strings.ReplaceAll(input, "(", " ( ")
	input = strings.ReplaceAll(input, ")", " ) ")
	return strings.Fields(input)
}

type exprParser struct {
	tokens []string
	pos    int
}

func (p *exprParser) peek() string {
	if p.pos >= len(p.tokens) {
		return ""
	}
	return p.tokens[p.pos]
}

func (p *exprParser) next() string {
	tok := p.peek()
	p.pos++
	return tok
}

func (p *exprParser) parseOr() (*models.TagExpr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	terms := []*models.TagExpr{left}
	for strings.EqualFold(p.peek(), "OR") {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		terms = append(terms, right)
	}
	if len(terms) == 1 {
		return left, nil
	}
	return models.NewOr(terms...), nil
}

func (p *exprParser) parseAnd() (*models.TagExpr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	terms := []*models.TagExpr{left}
	for strings.EqualFold(p.peek(), "AND") {
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		terms = append(terms, right)
	}
	if len(terms) == 1 {
		return left, nil
	}
	return models.NewAnd(terms...), nil
}

func (p *exprParser) parseUnary() (*models.TagExpr, error) {
	if strings.EqualFold(p.peek(), "NOT") {
		p.next()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return models.NewNot(inner), nil
	}
	return p.parseAtom()
}

func (p *exprParser) parseAtom() (*models.TagExpr, error) {
	tok := p.next()
	switch {
	case tok == "":
		return nil, fmt.Errorf("unexpected end of expression")
	case tok == "(":
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.next() != ")" {
			return nil, fmt.Errorf("missing closing parenthesis")
		}
		return inner, nil
	case tok == ")" || strings.EqualFold(tok, "AND") || strings.EqualFold(tok, "OR"):
		return nil, fmt.Errorf("unexpected token %q", tok)
	default:
		return models.NewTag(tok), nil
	}
}
