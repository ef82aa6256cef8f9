package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/chcg/jsonql/pkg/lexer"
	"github.com/chcg/jsonql/pkg/value"
)

func parseNumberLiteral(tok lexer.Token) (value.Value, error) {
	if !strings.ContainsAny(tok.Value, ".eE") {
		if i, err := strconv.ParseInt(tok.Value, 10, 64); err == nil {
			return i, nil
		}
	}
	f, err := strconv.ParseFloat(tok.Value, 64)
	if err != nil {
		return nil, newError("invalid number literal %q", tok.Value).WithToken(tok.Value, tok.Position)
	}
	return f, nil
}

func parseStringLiteral(tok lexer.Token) (value.Value, error) {
	return unescape(tok.Value)
}

func parseRegexLiteral(tok lexer.Token) (value.Value, error) {
	re, err := regexp.Compile(tok.Value)
	if err != nil {
		return nil, newError("invalid regex literal /%s/: %v", tok.Value, err).WithToken(tok.Value, tok.Position)
	}
	return re, nil
}

func unescape(s string) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}
	var b strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '\\' || i == len(runes)-1 {
			b.WriteRune(r)
			continue
		}
		i++
		switch runes[i] {
		case 'n':
			b.WriteRune('\n')
		case 't':
			b.WriteRune('\t')
		case 'r':
			b.WriteRune('\r')
		case '"':
			b.WriteRune('"')
		case '\'':
			b.WriteRune('\'')
		case '\\':
			b.WriteRune('\\')
		case '/':
			b.WriteRune('/')
		default:
			b.WriteRune('\\')
			b.WriteRune(runes[i])
		}
	}
	return b.String(), nil
}
