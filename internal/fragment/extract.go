package fragment

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"github.com/0kibob/webstyle-framework/internal/ordered"
)

// Fragment is one source file split into its :root tokens and the rest.
type Fragment struct {
	Path   string
	Tokens *ordered.Map
	Body   string
}

type lexToken struct {
	tt   css.TokenType
	text string
}

// Read loads and extracts a fragment file.
func Read(path string) (Fragment, error) {
	// #nosec G304 - path comes from discovery under the source root
	content, err := os.ReadFile(path)
	if err != nil {
		return Fragment{}, fmt.Errorf("read fragment: %w", err)
	}

	tokens, body, err := Extract(string(content))
	if err != nil {
		return Fragment{}, fmt.Errorf("extract %s: %w", path, err)
	}
	return Fragment{Path: path, Tokens: tokens, Body: body}, nil
}

// Extract removes every top-level `:root { ... }` rule from content and
// returns the custom properties they declared, in declaration order,
// together with the remaining CSS. A :root nested in an at-rule such as
// @media stays in the body, since hoisting it would drop its condition.
// Everything outside the removed rules is kept byte for byte.
func Extract(content string) (*ordered.Map, string, error) {
	lexer := css.NewLexer(parse.NewInputString(content))
	tokens := &ordered.Map{}

	var body strings.Builder
	var prelude []lexToken
	skipSpace := false
	depth := 0

	flush := func() {
		for _, t := range prelude {
			body.WriteString(t.text)
		}
		prelude = prelude[:0]
	}

	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			break
		}

		if skipSpace {
			skipSpace = false
			if tt == css.WhitespaceToken {
				continue
			}
		}

		switch tt {
		case css.LeftBraceToken:
			lead, selector := splitPrelude(prelude)
			if depth == 0 && isRootSelector(selector) {
				for _, t := range lead {
					body.WriteString(t.text)
				}
				prelude = prelude[:0]
				readDeclarations(lexer, tokens)
				skipSpace = true
				continue
			}
			depth++
			flush()
			body.Write(text)
		case css.RightBraceToken:
			if depth > 0 {
				depth--
			}
			flush()
			body.Write(text)
		case css.SemicolonToken:
			flush()
			body.Write(text)
		default:
			prelude = append(prelude, lexToken{tt: tt, text: string(text)})
		}
	}
	flush()

	if err := lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
		return nil, "", err
	}

	return tokens, strings.TrimSpace(body.String()), nil
}

// splitPrelude separates leading whitespace and comments from the selector.
func splitPrelude(prelude []lexToken) (lead, selector []lexToken) {
	i := 0
	for i < len(prelude) && (prelude[i].tt == css.WhitespaceToken || prelude[i].tt == css.CommentToken) {
		i++
	}
	return prelude[:i], prelude[i:]
}

func isRootSelector(selector []lexToken) bool {
	var b strings.Builder
	for _, t := range selector {
		if t.tt == css.CommentToken {
			continue
		}
		b.WriteString(t.text)
	}
	return strings.EqualFold(strings.TrimSpace(b.String()), ":root")
}

// readDeclarations consumes a declaration block up to its closing brace and
// stores every "name: value" pair. Values are kept raw, trimmed at the ends.
func readDeclarations(lexer *css.Lexer, into *ordered.Map) {
	var (
		name     string
		value    strings.Builder
		sawColon bool
		depth    int
	)

	commit := func() {
		if name != "" && sawColon {
			into.Set(name, strings.TrimSpace(value.String()))
		}
		name = ""
		value.Reset()
		sawColon = false
		depth = 0
	}

	for {
		tt, text := lexer.Next()

		switch {
		case tt == css.ErrorToken:
			commit()
			return
		case tt == css.CommentToken:
			continue
		case depth == 0 && tt == css.RightBraceToken:
			commit()
			return
		case depth == 0 && tt == css.SemicolonToken:
			commit()
		case sawColon:
			switch tt {
			case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken, css.LeftBraceToken:
				depth++
			case css.RightParenthesisToken, css.RightBracketToken, css.RightBraceToken:
				if depth > 0 {
					depth--
				}
			}
			value.Write(text)
		case name == "" && (tt == css.CustomPropertyNameToken || tt == css.IdentToken):
			name = string(text)
		case name != "" && tt == css.ColonToken:
			sawColon = true
		}
	}
}
