package parser

import (
	"github.com/chcg/jsonql/pkg/function"
	"github.com/chcg/jsonql/pkg/lexer"
	"github.com/chcg/jsonql/pkg/value"
)

// parseArgFunction parses `(arg, arg, …)` for a call to name, already
// past the name token. An unregistered name is a parse error.
func parseArgFunction(c *cursor, name string, pos int) (value.Value, error) {
	def, ok := c.funcs.Lookup(name)
	if !ok {
		return nil, newError("unknown function %q", name).WithToken(name, pos)
	}

	if _, err := c.expect(lexer.TokenLParen); err != nil {
		return nil, err
	}

	var args []value.Value
	if !c.at(lexer.TokenRParen) {
		for {
			arg, err := parseExprOrScalarFunc(c)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !c.at(lexer.TokenComma) {
				break
			}
			c.advance()
		}
	}
	if _, err := c.expect(lexer.TokenRParen); err != nil {
		return nil, err
	}

	if err := function.CheckArity(def, len(args)); err != nil {
		return nil, err
	}
	for i, arg := range args {
		if err := function.CheckArgType(def, i, value.TagOf(arg)); err != nil {
			return nil, err
		}
	}
	args = function.PadOptional(def, args)

	return function.Apply(def, args)
}
