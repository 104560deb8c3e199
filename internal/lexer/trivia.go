package lexer

import (
	"phpdrift/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
// - в HTML режиме: весь текст до открывающего тега -> TriviaInlineHTML
// - ' ' и '\t' коалесцируются в один TriviaSpace
// - последовательные '\n' коалесцируются в один TriviaNewline
// - //... и #... до \n ИЛИ до "?>" -> TriviaLineComment ("?>" закрывает
//   однострочный комментарий — особенность PHP)
// - "#[" — не комментарий, а начало атрибута: оставляем токенизатору
// - /* ... */ -> TriviaBlockComment, /** ... */ -> TriviaDocBlock
//   (без вложенности, как в PHP; если не закрыт — репорт и обрезаем на EOF)
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]

	if !lx.inPHP {
		lx.scanInlineHTMLIntoHold()
		return
	}

	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		// space/tabs (и \r, выживший после нормализации)
		if b == ' ' || b == '\t' || b == '\r' {
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' && b2 != '\r' {
					break
				}
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaSpace,
				Span: sp,
				Text: string(lx.file.Content[sp.Start:sp.End]),
			})
			continue
		}

		// newlines (коалесцируем подряд)
		if b == '\n' {
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaNewline,
				Span: sp,
				Text: string(lx.file.Content[sp.Start:sp.End]),
			})
			continue
		}

		// '#' — комментарий, если это не "#["
		if b == '#' {
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '#' && b1 == '[' {
				break // атрибут — значимый токен
			}
			lx.cursor.Bump()
			lx.scanLineCommentTailIntoHold(start)
			continue
		}

		// '//' и '/* ... */'
		if b == '/' {
			if lx.scanSlashCommentIntoHold() {
				continue
			}
		}

		// нет больше trivia
		break
	}
}

// scanInlineHTMLIntoHold потребляет сырой вывод до "<?" или EOF.
func (lx *Lexer) scanInlineHTMLIntoHold() {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '<' && b1 == '?' {
			break
		}
		// Хвост файла "...<" без "?" тоже просто HTML.
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	if sp.Empty() {
		return
	}
	lx.hold = append(lx.hold, token.Trivia{
		Kind: token.TriviaInlineHTML,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}

// scanLineCommentTailIntoHold дочитывает однострочный комментарий, начало
// которого ("//" или "#") уже потреблено. Комментарий заканчивается на \n
// или перед "?>", не включая их.
func (lx *Lexer) scanLineCommentTailIntoHold(start Mark) {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' && !lx.atCloseTag() {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: token.TriviaLineComment,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}

// "//..." или "/*...*/" или "/**...*/"
func (lx *Lexer) scanSlashCommentIntoHold() bool {
	start := lx.cursor.Mark()
	if !lx.cursor.Eat('/') {
		return false
	}
	b := lx.cursor.Peek()
	switch b {
	case '/': // "//"
		lx.cursor.Bump()
		lx.scanLineCommentTailIntoHold(start)
		return true

	case '*': // "/* ... */" или "/** ... */"
		lx.cursor.Bump()
		kind := token.TriviaBlockComment
		// "/**" + не "/" → докблок ("/**/" — пустой обычный комментарий)
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '*' && b1 != '/' {
			kind = token.TriviaDocBlock
		}
		closed := false
		for !lx.cursor.EOF() {
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '*' && b1 == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				closed = true
				break
			}
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		if !closed {
			lx.report(ErrUnterminatedBlockComment, sp, "unterminated block comment")
		}
		lx.hold = append(lx.hold, token.Trivia{
			Kind: kind,
			Span: sp,
			Text: string(lx.file.Content[sp.Start:sp.End]),
		})
		return true

	default:
		// это не комментарий — вернёмся, пусть сканируется как оператор '/'
		lx.cursor.Reset(start)
		return false
	}
}
