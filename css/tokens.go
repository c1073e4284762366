package css

import (
	"strings"

	parse "github.com/tdewolff/parse/v2"
	cssparse "github.com/tdewolff/parse/v2/css"
)

// token is one lexed token with the byte offset of its first character.
type token struct {
	tt     cssparse.TokenType
	data   string
	offset int
}

func (t token) is(tt cssparse.TokenType) bool {
	return t.tt == tt
}

// isDelim reports whether the token is a delimiter with the given codepoint.
func (t token) isDelim(c byte) bool {
	return t.tt == cssparse.DelimToken && len(t.data) == 1 && t.data[0] == c
}

// tokenStream pre-lexes a whole source into positioned tokens. Comments are
// dropped during lexing; whitespace is kept because it is significant in
// selector chains and value lists. The source text is retained so offsets
// can be mapped back to line/column positions for diagnostics.
type tokenStream struct {
	source string
	toks   []token
	pos    int
}

func newTokenStream(source string) *tokenStream {
	input := parse.NewInputString(source)
	lexer := cssparse.NewLexer(input)

	ts := &tokenStream{source: source}
	for {
		offset := input.Offset()
		tt, data := lexer.Next()
		if tt == cssparse.ErrorToken {
			// EOF or lexer failure, either way the stream ends here.
			break
		}
		if tt == cssparse.CommentToken {
			continue
		}
		ts.toks = append(ts.toks, token{tt: tt, data: string(data), offset: offset})
	}
	return ts
}

// position maps a byte offset to a 1-based line/column pair.
func (ts *tokenStream) position(offset int) (line, col int) {
	line, col, _ = parse.Position(strings.NewReader(ts.source), offset)
	return line, col
}

func (ts *tokenStream) eof() bool {
	return ts.pos >= len(ts.toks)
}

// peek returns the current token without consuming it.
func (ts *tokenStream) peek() token {
	if ts.eof() {
		return token{tt: cssparse.ErrorToken, offset: ts.endOffset()}
	}
	return ts.toks[ts.pos]
}

// next consumes and returns the current token.
func (ts *tokenStream) next() token {
	t := ts.peek()
	if !ts.eof() {
		ts.pos++
	}
	return t
}

// skipWhitespace consumes any run of whitespace tokens.
func (ts *tokenStream) skipWhitespace() {
	for !ts.eof() && ts.peek().is(cssparse.WhitespaceToken) {
		ts.pos++
	}
}

// endOffset returns the offset just past the last token.
func (ts *tokenStream) endOffset() int {
	if len(ts.toks) == 0 {
		return 0
	}
	last := ts.toks[len(ts.toks)-1]
	return last.offset + len(last.data)
}

// collectUntil consumes tokens up to (not including) the first token at
// nesting depth zero for which stop returns true, tracking parenthesis,
// bracket and brace depth so that separators nested inside function calls or
// blocks are not treated as boundaries. Returns the collected tokens.
func (ts *tokenStream) collectUntil(stop func(t token) bool) []token {
	var out []token
	depth := 0
	for !ts.eof() {
		t := ts.peek()
		if depth == 0 && stop(t) {
			break
		}
		switch t.tt {
		case cssparse.LeftParenthesisToken, cssparse.LeftBracketToken, cssparse.LeftBraceToken, cssparse.FunctionToken:
			depth++
		case cssparse.RightParenthesisToken, cssparse.RightBracketToken, cssparse.RightBraceToken:
			if depth > 0 {
				depth--
			}
		}
		out = append(out, ts.next())
	}
	return out
}

// trimWhitespace strips leading and trailing whitespace tokens from a
// collected token segment.
func trimWhitespace(toks []token) []token {
	for len(toks) > 0 && toks[0].is(cssparse.WhitespaceToken) {
		toks = toks[1:]
	}
	for len(toks) > 0 && toks[len(toks)-1].is(cssparse.WhitespaceToken) {
		toks = toks[:len(toks)-1]
	}
	return toks
}

// rawText reassembles the literal source text of a token run.
func rawText(toks []token) string {
	var sb strings.Builder
	for _, t := range toks {
		sb.WriteString(t.data)
	}
	return sb.String()
}

// splitTopLevel splits a collected token segment on top-level occurrences of
// the given token type, respecting paren/bracket/brace nesting. Empty
// segments are dropped.
func splitTopLevel(toks []token, sep cssparse.TokenType) [][]token {
	var out [][]token
	var cur []token
	depth := 0
	for _, t := range toks {
		switch t.tt {
		case cssparse.LeftParenthesisToken, cssparse.LeftBracketToken, cssparse.LeftBraceToken, cssparse.FunctionToken:
			depth++
		case cssparse.RightParenthesisToken, cssparse.RightBracketToken, cssparse.RightBraceToken:
			if depth > 0 {
				depth--
			}
		}
		if depth == 0 && t.tt == sep {
			if seg := trimWhitespace(cur); len(seg) > 0 {
				out = append(out, seg)
			}
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	if seg := trimWhitespace(cur); len(seg) > 0 {
		out = append(out, seg)
	}
	return out
}
