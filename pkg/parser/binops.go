package parser

import (
	"github.com/chcg/jsonql/pkg/binop"
	"github.com/chcg/jsonql/pkg/lexer"
)

var binopTable = map[lexer.TokenType]*binop.Def{
	lexer.TokenPlus:       binop.Add,
	lexer.TokenMinus:      binop.Sub,
	lexer.TokenStar:       binop.Mul,
	lexer.TokenStarStar:   binop.Pow,
	lexer.TokenSlash:      binop.Div,
	lexer.TokenSlashSlash: binop.FloorDiv,
	lexer.TokenPercent:    binop.Mod,
	lexer.TokenEqEq:       binop.Eq,
	lexer.TokenNotEq:      binop.Ne,
	lexer.TokenLt:         binop.Lt,
	lexer.TokenLtEq:       binop.Le,
	lexer.TokenGt:         binop.Gt,
	lexer.TokenGtEq:       binop.Ge,
	lexer.TokenAmp:        binop.BitAnd,
	lexer.TokenPipe:       binop.BitOr,
	lexer.TokenCaret:      binop.BitXor,
}
