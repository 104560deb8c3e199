package lexer

import (
	"phpdrift/internal/token"
)

// scanString сканирует '...', "..." и `...` литералы. Перевод строки внутри
// строки в PHP легален. Для "..." и `...` пропускаем интерполяционные блоки
// {$...} и ${...} с учётом вложенных скобок и кавычек: кавычка внутри
// {$arr['key']} не закрывает литерал. Значение не раскодируем — Text хранит
// исходный срез вместе с кавычками.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump() // opening ' " `
	interp := quote != '\''

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == quote {
			lx.cursor.Bump()
			return lx.tokenAt(token.StringLit, start)
		}
		if b == '\\' {
			// '\x' съедаем парой; для одинарных кавычек это тоже корректно:
			// важны только \\ и \'
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if interp {
			if b0, b1, ok := lx.cursor.Peek2(); ok {
				if (b0 == '{' && b1 == '$') || (b0 == '$' && b1 == '{') {
					if b0 == '$' {
						lx.cursor.Bump() // '$'
					}
					lx.skipInterpolation()
					continue
				}
			}
		}
		lx.cursor.Bump()
	}

	// EOF без закрывающей кавычки
	sp := lx.cursor.SpanFrom(start)
	lx.report(ErrUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// skipInterpolation пропускает блок от '{' до парной '}'.
// Внутри блока может быть что угодно, включая строки с '}' и вложенные
// скобки: {$m["{a}"][$k ?: '}']}. Строки внутри пропускаем отдельно,
// чтобы их содержимое не влияло на глубину.
func (lx *Lexer) skipInterpolation() {
	lx.cursor.Bump() // '{'
	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		b := lx.cursor.Peek()
		switch b {
		case '{':
			lx.cursor.Bump()
			depth++
		case '}':
			lx.cursor.Bump()
			depth--
		case '\'', '"', '`':
			lx.skipNestedQuoted(b)
		case '\\':
			lx.cursor.Bump()
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
		default:
			lx.cursor.Bump()
		}
	}
	// Незакрытый блок дотянет до EOF; об этом отрепортит scanString,
	// когда не найдёт закрывающую кавычку.
}

// skipNestedQuoted пропускает строковый литерал внутри интерполяции.
func (lx *Lexer) skipNestedQuoted(quote byte) {
	lx.cursor.Bump() // открывающая кавычка
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == quote {
			return
		}
		if b == '\\' && !lx.cursor.EOF() {
			lx.cursor.Bump()
		}
	}
}
