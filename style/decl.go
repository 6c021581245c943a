package style

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// ParseDeclarations lexes an inline declaration block such as
// "width: 10px; color: red" into the raw property map Resolve consumes.
// A single numeric value becomes a float64; everything else is kept as the
// string the author wrote, with token runs joined by single spaces. Syntax
// the lexer rejects is skipped with a diagnostic.
func (r *Resolver) ParseDeclarations(data []byte) map[string]any {
	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, true)

	props := make(map[string]any)
	for {
		gt, _, name := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			// end of input or error
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				r.log.Debug("declaration parse error", zap.Error(err))
			}
			if len(props) == 0 {
				return nil
			}
			return props

		case css.DeclarationGrammar:
			if v, ok := declarationValue(parser.Values()); ok {
				props[string(name)] = v
			} else {
				r.log.Debug("skipping empty declaration", zap.String("name", string(name)))
			}

		case css.CustomPropertyGrammar:
			// --var declarations have no place in the bag
			continue
		}
	}
}

// declarationValue flattens the value tokens of one declaration.
func declarationValue(tokens []css.Token) (any, bool) {
	var parts []string
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			if len(parts) > 0 && parts[len(parts)-1] != " " {
				parts = append(parts, " ")
			}
			continue
		}
		parts = append(parts, string(t.Data))
	}
	raw := strings.TrimSpace(strings.Join(parts, ""))
	if raw == "" {
		return nil, false
	}

	if len(tokens) == 1 && tokens[0].TokenType == css.NumberToken {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f, true
		}
	}
	return raw, true
}
