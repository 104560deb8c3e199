package lexer

import (
	"phpdrift/internal/token"
)

// Поддержка PHP числовых литералов: 0, 123, 0123 (legacy octal), 0b..., 0o...,
// 0x..., 1.0, .5, 1., 1e-3, 1.0e+10, разделители '_' (PHP 7.4).
// Kind ставим IntLit/FloatLit по факту; значение не разбираем, Text хранит
// исходную запись. Неверные формы — репорт в opts.Reporter.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	kind := token.IntLit

	// ведущая точка — значит формат ".digits" (вызов после isNumberAfterDot)
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump() // '.'
		kind = token.FloatLit
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
		goto emitWithMaybeExp
	}

	// ведущий 0 и база?
	if lx.cursor.Peek() == '0' {
		lx.cursor.Bump()
		switch lx.cursor.Peek() {
		case 'b', 'B':
			lx.cursor.Bump()
			for {
				b := lx.cursor.Peek()
				if b == '0' || b == '1' || b == '_' {
					lx.cursor.Bump()
				} else {
					break
				}
			}
			goto emit
		case 'o', 'O':
			lx.cursor.Bump()
			for {
				b := lx.cursor.Peek()
				if (b >= '0' && b <= '7') || b == '_' {
					lx.cursor.Bump()
				} else {
					break
				}
			}
			goto emit
		case 'x', 'X':
			lx.cursor.Bump()
			for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
			goto emit
		default:
			// "0" или legacy octal "0123" — дочитает десятичный цикл ниже
		}
	}

	// десятичная целая часть
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}

	// дробная часть. PHP жадный: "1." — валидный float, "1..2" — это
	// float "1." и float ".2", "1.e3" — float с экспонентой.
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump() // '.'
		kind = token.FloatLit
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	}

emitWithMaybeExp:
	// экспонента
	if lx.cursor.Peek() == 'e' || lx.cursor.Peek() == 'E' {
		kind = token.FloatLit
		lx.cursor.Bump() // e/E
		if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			sp := lx.cursor.SpanFrom(start)
			lx.report(ErrBadNumber, sp, "expected digit after exponent")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	}

emit:
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
