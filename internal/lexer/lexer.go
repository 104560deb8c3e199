package lexer

import (
	"phpdrift/internal/source"
	"phpdrift/internal/token"
)

// maxTokenLength ограничивает длину одного токена. Страховка от битых
// файлов: heredoc без терминатора в мегабайтном дампе и т.п.
const maxTokenLength = 1 << 20

// Lexer scans one PHP file into tokens. Scanning starts in HTML mode: bytes
// up to the first open tag are inline-HTML trivia, '?>' switches back.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia
	inPHP  bool           // false = HTML режим (до <?php / после ?>)
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		look:   nil,
		hold:   nil,
		inPHP:  false,
	}
}

// Next возвращает следующий **значимый** токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	// 1) Если есть look — вернуть его и очистить
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	// 2) collectLeadingTrivia() — набить lx.hold (в HTML режиме сюда же
	//    попадает inline HTML до открывающего тега)
	lx.collectLeadingTrivia()

	// 3) Если EOF → вернуть EOF (Leading из hold не приклеиваем к EOF)
	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.emptySpan(),
			Text: "",
		}
	}

	var tok token.Token

	if !lx.inPHP {
		// Единственное, что может начаться в HTML режиме — открывающий тег.
		tok = lx.scanOpenTag()
	} else {
		ch := lx.cursor.Peek()
		switch {
		case ch == '$':
			tok = lx.scanVariable()

		case isIdentStartByte(ch):
			tok = lx.scanIdentOrKeyword()

		case isDec(ch):
			tok = lx.scanNumber()

		case ch == '.' && lx.isNumberAfterDot():
			// . за которым цифра → scanNumber()
			tok = lx.scanNumber()

		case ch == '\'' || ch == '"' || ch == '`':
			tok = lx.scanString()

		case ch == '<' && lx.atHeredocStart():
			tok = lx.scanHeredoc()

		default:
			tok = lx.scanOperatorOrPunct()
		}
	}

	// 4) Страховка от сверхдлинных токенов: репортим и уходим на EOF.
	if tok.Span.Len() > maxTokenLength {
		lx.report(ErrTokenTooLong, tok.Span, "token exceeds maximum length")
		lx.cursor.Off = lx.cursor.Limit
		lx.hold = nil
		return token.Token{Kind: token.Invalid, Span: tok.Span, Text: tok.Text}
	}

	// 5) В полученный token.Token положить Leading: lx.hold, обнулить hold
	tok.Leading = lx.hold
	lx.hold = nil

	// 6) Вернуть токен
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) tokenAt(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}
