// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package lexer implements the hand-written Modula-2 scanner: direct
// indexing into the source reader's buffer with two-character lookahead,
// one token of lookahead of its own, and recognition of identifiers,
// reserved words, the four literal forms (and their three malformed
// variants), pragmas, nested comments, and the 25 special symbols.
package lexer

import (
	"github.com/sirupsen/logrus"

	"github.com/trijezdci/m2c/pkg/dialect"
	"github.com/trijezdci/m2c/pkg/diag"
	"github.com/trijezdci/m2c/pkg/lexconf"
	"github.com/trijezdci/m2c/pkg/source"
	"github.com/trijezdci/m2c/pkg/strpool"
	"github.com/trijezdci/m2c/pkg/token"
)

// Symbol is a single recognized token: its kind, interned lexeme (nil for
// kinds that carry no text, such as EOF), and the line/column of its first
// character.
type Symbol struct {
	Kind   token.Kind
	Lexeme *strpool.Handle
	Line   int
	Column int
}

// Lexer maintains one token of lookahead over a source.Handle.
type Lexer struct {
	src     *source.Handle
	pool    *strpool.Pool
	opts    dialect.Options
	bag     *diag.Bag
	log     *logrus.Logger
	current Symbol
}

// New constructs a lexer over src, producing interned lexemes from pool,
// honoring the given dialect options, and reporting malformed-literal
// findings into bag. A nil logger falls back to logrus.StandardLogger().
func New(src *source.Handle, pool *strpool.Pool, opts dialect.Options, bag *diag.Bag, log *logrus.Logger) *Lexer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	//
	lx := &Lexer{src: src, pool: pool, opts: opts, bag: bag, log: log}
	lx.ConsumeSym()
	//
	return lx
}

// NextSym returns the current lookahead symbol without consuming it.
func (lx *Lexer) NextSym() Symbol {
	return lx.current
}

// ReadSym consumes the current lookahead and returns it, leaving the lexer
// positioned on the symbol after it.
func (lx *Lexer) ReadSym() Symbol {
	sym := lx.current
	lx.ConsumeSym()
	//
	return sym
}

// ConsumeSym discards the current lookahead and scans the next one.
func (lx *Lexer) ConsumeSym() {
	lx.current = lx.scan()
	//
	if lx.log != nil {
		lx.log.WithFields(logrus.Fields{
			"kind": lx.current.Kind.String(),
			"line": lx.current.Line,
			"col":  lx.current.Column,
		}).Debug("lexer: token recognized")
	}
}

func isLetter(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'A' && b <= 'F')
}

func isOctalDigit(b byte) bool {
	return b >= '0' && b <= '7'
}

// scan recognizes and returns the next token, skipping whitespace and
// comments first.
func (lx *Lexer) scan() Symbol {
	lx.skipWhitespaceAndComments()
	//
	line, col := lx.src.Line(), lx.src.Column()
	c, ok := lx.src.NextChar()
	//
	if !ok {
		return Symbol{Kind: token.EOF, Line: line, Column: col}
	}
	//
	switch {
	case isLetter(c):
		return lx.scanIdentOrResword(line, col)
	case isDigit(c):
		return lx.scanNumber(line, col)
	case c == '"' || c == '\'':
		return lx.scanString(line, col, c)
	case c == '<' && lx.peek2IsStar():
		return lx.scanPragma(line, col)
	default:
		return lx.scanSpecialSymbol(line, col)
	}
}

// skipWhitespaceAndComments advances past runs of whitespace and nested
// (* ... *) comments, which carry no token.
func (lx *Lexer) skipWhitespaceAndComments() {
	for {
		c, ok := lx.src.NextChar()
		if !ok {
			return
		}
		//
		if c == ' ' || c == '\t' || c == '\n' {
			lx.src.ReadChar()
			continue
		}
		//
		if c == '(' {
			if la2, ok := lx.src.La2Char(); ok && la2 == '*' {
				lx.skipComment()
				continue
			}
		}
		//
		return
	}
}

func (lx *Lexer) skipComment() {
	line, col := lx.src.Line(), lx.src.Column()
	lx.src.ReadChar() // '('
	lx.src.ReadChar() // '*'
	depth := 1
	//
	for depth > 0 {
		c, ok := lx.src.NextChar()
		if !ok {
			lx.report(diag.CodeUnterminatedComment, line, col, "unterminated comment", "")
			return
		}
		//
		if c == '(' {
			if la2, ok := lx.src.La2Char(); ok && la2 == '*' {
				lx.src.ReadChar()
				lx.src.ReadChar()
				depth++
				//
				if depth > lexconf.MaxCommentNesting {
					lx.report(diag.CodeUnterminatedComment, line, col, "comment nesting exceeds limit", "")
					return
				}
				//
				continue
			}
		}
		//
		if c == '*' {
			if la2, ok := lx.src.La2Char(); ok && la2 == ')' {
				lx.src.ReadChar()
				lx.src.ReadChar()
				depth--
				//
				continue
			}
		}
		//
		lx.src.ReadChar()
	}
}

func (lx *Lexer) peek2IsStar() bool {
	la2, ok := lx.src.La2Char()
	return ok && la2 == '*'
}

func (lx *Lexer) scanIdentOrResword(line, col int) Symbol {
	lx.src.MarkLexeme()
	length := 1
	reported := false
	//
	for {
		c, ok := lx.src.NextChar()
		if !ok || !(isLetter(c) || isDigit(c)) {
			break
		}
		//
		lx.src.ReadChar()
		length++
		//
		if length > lexconf.MaxIdentLength && !reported {
			lx.report(diag.CodeOversizedIdent, line, col, "identifier exceeds configured length limit", "")
			reported = true
		}
	}
	//
	handle, status := lx.src.ReadMarkedLexeme(lx.pool)
	if status != source.StatusOK {
		return Symbol{Kind: token.Unknown, Line: line, Column: col}
	}
	//
	if length > lexconf.MaxIdentLength {
		if truncated, st := lx.pool.GetString(handle.String()[:lexconf.MaxIdentLength]); st == strpool.StatusOK {
			lx.pool.Release(handle)
			handle = truncated
		}
	}
	//
	if kw := token.ForResword(handle.String(), handle.Length()); kw != token.Unknown {
		return Symbol{Kind: kw, Lexeme: handle, Line: line, Column: col}
	}
	//
	return Symbol{Kind: token.Ident, Lexeme: handle, Line: line, Column: col}
}

// scanNumber recognizes decimal/octal/hex integers, reals, and character
// literals of the octalDigits 'C' form, per the digit-sequence-plus-suffix
// dispatch: trailing 'B' is octal, trailing 'H' is hex, trailing 'C' (on an
// all-octal digit run) is a character literal, a '.' not followed by '.'
// starts a real with optional exponent.
func (lx *Lexer) scanNumber(line, col int) Symbol {
	lx.src.MarkLexeme()
	//
	for {
		c, ok := lx.src.NextChar()
		if !ok {
			break
		}
		//
		if isDigit(c) {
			lx.src.ReadChar()
			continue
		}
		//
		if c >= 'A' && c <= 'F' {
			// 'C' is ambiguous: a hex digit continuing this number, or the
			// closing suffix of a character literal. It's the latter unless
			// what follows it could only continue a hex-digit run.
			if c == 'C' && !lx.hexRunContinuesPastC() {
				break
			}
			//
			lx.src.ReadChar()
			continue
		}
		//
		break
	}
	//
	c, hasMore := lx.src.NextChar()
	//
	switch {
	case hasMore && c == 'B':
		lx.src.ReadChar()
		return lx.finishLiteral(token.IntegerLiteral, token.MalformedInteger, line, col, true)
	case hasMore && c == 'H':
		lx.src.ReadChar()
		return lx.finishLiteral(token.IntegerLiteral, token.MalformedInteger, line, col, true)
	case hasMore && c == 'C':
		lx.src.ReadChar()
		return lx.finishCharLiteral(line, col)
	case hasMore && c == '.' && !lx.peekIsRangeDot():
		lx.src.ReadChar()
		return lx.scanRealTail(line, col)
	default:
		return lx.finishLiteral(token.IntegerLiteral, token.MalformedInteger, line, col, true)
	}
}

// hexRunContinuesPastC reports whether the character following a
// lookahead 'C' can only continue a hex-digit run (another digit, another
// A-F hex letter, or the 'H' suffix) — if so, 'C' is itself a hex digit,
// not a character literal's closing suffix.
func (lx *Lexer) hexRunContinuesPastC() bool {
	la2, ok := lx.src.La2Char()
	if !ok {
		return false
	}
	//
	return isDigit(la2) || (la2 >= 'A' && la2 <= 'F') || la2 == 'H'
}

// finishCharLiteral validates that every digit preceding the already-
// consumed 'C' suffix is an octal digit, per the octalDigits 'C' character
// literal form.
func (lx *Lexer) finishCharLiteral(line, col int) Symbol {
	handle, status := lx.src.ReadMarkedLexeme(lx.pool)
	if status != source.StatusOK {
		return Symbol{Kind: token.Unknown, Line: line, Column: col}
	}
	//
	lexeme := handle.String()
	//
	for i := 0; i < len(lexeme)-1; i++ {
		if lexeme[i] < '0' || lexeme[i] > '7' {
			lx.report(diag.CodeMalformedInteger, line, col, "character literal digits must be octal", lexeme)
			//
			return Symbol{Kind: token.MalformedInteger, Lexeme: handle, Line: line, Column: col}
		}
	}
	//
	return Symbol{Kind: token.CharLiteral, Lexeme: handle, Line: line, Column: col}
}

func (lx *Lexer) peekIsRangeDot() bool {
	la2, ok := lx.src.La2Char()
	return ok && la2 == '.'
}

func (lx *Lexer) scanRealTail(line, col int) Symbol {
	for {
		c, ok := lx.src.NextChar()
		if !ok || !isDigit(c) {
			break
		}
		//
		lx.src.ReadChar()
	}
	//
	c, ok := lx.src.NextChar()
	if ok && (c == 'E' || c == 'e') {
		lx.src.ReadChar()
		//
		if c, ok := lx.src.NextChar(); ok && (c == '+' || c == '-') {
			lx.src.ReadChar()
		}
		//
		digits := 0
		//
		for {
			c, ok := lx.src.NextChar()
			if !ok || !isDigit(c) {
				break
			}
			//
			lx.src.ReadChar()
			digits++
		}
		//
		if digits == 0 {
			handle, _ := lx.src.ReadMarkedLexeme(lx.pool)
			lx.report(diag.CodeMalformedReal, line, col, "exponent has no digits", lexString(handle))
			//
			return Symbol{Kind: token.MalformedReal, Lexeme: handle, Line: line, Column: col}
		}
	}
	//
	handle, status := lx.src.ReadMarkedLexeme(lx.pool)
	if status != source.StatusOK {
		return Symbol{Kind: token.Unknown, Line: line, Column: col}
	}
	//
	return Symbol{Kind: token.RealLiteral, Lexeme: handle, Line: line, Column: col}
}

func (lx *Lexer) finishLiteral(wellFormed, malformed token.Kind, line, col int, checkHexSuffix bool) Symbol {
	handle, status := lx.src.ReadMarkedLexeme(lx.pool)
	if status != source.StatusOK {
		return Symbol{Kind: token.Unknown, Line: line, Column: col}
	}
	//
	lexeme := handle.String()
	//
	if checkHexSuffix && lexeme != "" {
		last := lexeme[len(lexeme)-1]
		//
		if last != 'B' && last != 'H' {
			for i := 0; i < len(lexeme); i++ {
				if !isDigit(lexeme[i]) {
					lx.report(diag.CodeMalformedInteger, line, col, "hexadecimal literal missing H suffix", lexeme)
					//
					return Symbol{Kind: malformed, Lexeme: handle, Line: line, Column: col}
				}
			}
		}
	}
	//
	return Symbol{Kind: wellFormed, Lexeme: handle, Line: line, Column: col}
}

func lexString(h *strpool.Handle) string {
	if h == nil {
		return ""
	}
	//
	return h.String()
}

// scanString recognizes "..." and '...' string literals, requiring the
// closing quote on the same logical line. The opening and closing quotes
// are consumed but excluded from the interned lexeme.
func (lx *Lexer) scanString(line, col int, quote byte) Symbol {
	lx.src.ReadChar() // opening quote
	lx.src.MarkLexeme()
	length := 0
	reported := false
	//
	for {
		c, ok := lx.src.NextChar()
		if !ok || c == '\n' {
			handle, _ := lx.src.ReadMarkedLexeme(lx.pool)
			lx.report(diag.CodeMalformedString, line, col, "unterminated string literal", lexString(handle))
			//
			return Symbol{Kind: token.MalformedString, Lexeme: handle, Line: line, Column: col}
		}
		//
		if c == quote {
			break
		}
		//
		lx.src.ReadChar()
		length++
		//
		if length > lexconf.MaxStringLength && !reported {
			lx.report(diag.CodeOversizedString, line, col, "string literal exceeds configured length limit", "")
			reported = true
		}
	}
	//
	var (
		handle *strpool.Handle
		status source.Status
	)
	//
	if length == 0 {
		handle, _ = lx.pool.GetString("")
		status = source.StatusOK
	} else {
		handle, status = lx.src.ReadMarkedLexeme(lx.pool)
	}
	//
	lx.src.ReadChar() // closing quote
	//
	if status != source.StatusOK {
		return Symbol{Kind: token.MalformedString, Line: line, Column: col}
	}
	//
	if length == 1 {
		return Symbol{Kind: token.CharLiteral, Lexeme: handle, Line: line, Column: col}
	}
	//
	return Symbol{Kind: token.StringLiteral, Lexeme: handle, Line: line, Column: col}
}

// scanPragma recognizes <* ... *> compiler-directive pragmas, returning
// their contents (excluding the delimiters) as a single pragma token.
func (lx *Lexer) scanPragma(line, col int) Symbol {
	lx.src.ReadChar() // '<'
	lx.src.ReadChar() // '*'
	lx.src.MarkLexeme()
	//
	for {
		c, ok := lx.src.NextChar()
		if !ok {
			handle, _ := lx.src.ReadMarkedLexeme(lx.pool)
			return Symbol{Kind: token.Pragma, Lexeme: handle, Line: line, Column: col}
		}
		//
		if c == '*' {
			if la2, ok := lx.src.La2Char(); ok && la2 == '>' {
				handle, _ := lx.src.ReadMarkedLexeme(lx.pool)
				lx.src.ReadChar()
				lx.src.ReadChar()
				//
				return Symbol{Kind: token.Pragma, Lexeme: handle, Line: line, Column: col}
			}
		}
		//
		lx.src.ReadChar()
	}
}

// twoCharSpecials maps two-character special-symbol spellings to their
// kind; scanSpecialSymbol consults this before falling back to the
// single-character table.
var twoCharSpecials = map[[2]byte]token.Kind{
	{':', '='}: token.Assign,
	{'.', '.'}: token.Range,
	{'<', '='}: token.LessEqual,
	{'>', '='}: token.GreaterEqual,
	{'<', '>'}: token.NotEqual,
}

// oneCharSpecials maps the single-character special symbols to their kinds.
// '&' is not in the table, and '~' maps to Tilde here; both are turned into
// AND/NOT before this lookup when dialect.Options.LexicalSynonyms is set.
var oneCharSpecials = map[byte]token.Kind{
	'<': token.Less,
	'>': token.Greater,
	'(': token.LParen,
	')': token.RParen,
	'[': token.LBracket,
	']': token.RBracket,
	'{': token.LBrace,
	'}': token.RBrace,
	'|': token.Bar,
	'.': token.Period,
	',': token.Comma,
	';': token.Semicolon,
	':': token.Colon,
	'^': token.UpArrow,
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'=': token.Equal,
	'#': token.NotEqual,
	'~': token.Tilde,
}

// scanSpecialSymbol recognizes a one- or two-character special symbol
// starting at the current (unconsumed) lookahead character.
func (lx *Lexer) scanSpecialSymbol(line, col int) Symbol {
	first, ok := lx.src.NextChar()
	if !ok {
		return Symbol{Kind: token.EOF, Line: line, Column: col}
	}
	//
	if second, ok := lx.src.La2Char(); ok {
		if kind, found := twoCharSpecials[[2]byte{first, second}]; found {
			lx.src.ReadChar()
			lx.src.ReadChar()
			//
			return Symbol{Kind: kind, Line: line, Column: col}
		}
	}
	//
	if first == '&' && lx.opts.LexicalSynonyms {
		lx.src.ReadChar()
		return Symbol{Kind: token.And, Line: line, Column: col}
	}
	//
	if first == '~' && lx.opts.LexicalSynonyms {
		lx.src.ReadChar()
		return Symbol{Kind: token.Not, Line: line, Column: col}
	}
	//
	if kind, found := oneCharSpecials[first]; found {
		lx.src.ReadChar()
		return Symbol{Kind: kind, Line: line, Column: col}
	}
	//
	lx.src.ReadChar()
	//
	return Symbol{Kind: token.Unknown, Line: line, Column: col}
}

func (lx *Lexer) report(code diag.Code, line, col int, msg, offending string) {
	if lx.bag == nil {
		return
	}
	//
	lx.bag.Add(diag.Diagnostic{
		Code:      code,
		Severity:  diag.SeverityError,
		Pos:       diag.Position{Path: pathOf(lx.src), Line: line, Column: col},
		Message:   msg,
		Offending: offending,
	})
}

func pathOf(src *source.Handle) string {
	if src == nil || src.Path() == nil {
		return ""
	}
	//
	return src.Path().String()
}
