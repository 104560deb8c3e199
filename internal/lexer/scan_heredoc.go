package lexer

import (
	"bytes"

	"phpdrift/internal/token"
)

// atHeredocStart проверяет, стоит ли курсор на "<<<".
func (lx *Lexer) atHeredocStart() bool {
	b0, b1, b2, ok := lx.cursor.Peek3()
	return ok && b0 == '<' && b1 == '<' && b2 == '<'
}

// scanHeredoc сканирует heredoc/nowdoc целиком в один StringLit:
//
//	<<<LABEL ... LABEL      (heredoc)
//	<<<"LABEL" ... LABEL    (heredoc)
//	<<<'LABEL' ... LABEL    (nowdoc)
//
// Закрывающая метка — первая строка, где после отступа стоит LABEL без
// продолжения идентификатора (гибкий синтаксис PHP 7.3). Тело не
// разбираем: интерполяция внутри heredoc не может съесть терминатор,
// потому что ищем его построчно.
func (lx *Lexer) scanHeredoc() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '<'
	lx.cursor.Bump() // '<'
	lx.cursor.Bump() // '<'

	// PHP допускает табы/пробелы между "<<<" и меткой
	for lx.cursor.Peek() == ' ' || lx.cursor.Peek() == '\t' {
		lx.cursor.Bump()
	}

	var quote byte
	if b := lx.cursor.Peek(); b == '\'' || b == '"' {
		quote = b
		lx.cursor.Bump()
	}

	labelStart := lx.cursor.Mark()
	if !isIdentStartByte(lx.cursor.Peek()) {
		sp := lx.cursor.SpanFrom(start)
		lx.report(ErrUnterminatedHeredoc, sp, "missing heredoc label")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	labelSpan := lx.cursor.SpanFrom(labelStart)
	label := lx.file.Content[labelSpan.Start:labelSpan.End]

	if quote != 0 && !lx.cursor.Eat(quote) {
		sp := lx.cursor.SpanFrom(start)
		lx.report(ErrUnterminatedHeredoc, sp, "missing closing quote in heredoc label")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	// метка должна заканчиваться переводом строки
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}

	for !lx.cursor.EOF() {
		lx.cursor.Bump() // '\n' предыдущей строки

		// отступ закрывающей метки
		for lx.cursor.Peek() == ' ' || lx.cursor.Peek() == '\t' {
			lx.cursor.Bump()
		}

		rest := lx.file.Content[lx.cursor.Off:lx.cursor.Limit]
		if bytes.HasPrefix(rest, label) {
			after := int(lx.cursor.Off) + len(label)
			if after >= int(lx.cursor.Limit) || !isIdentContinueByte(lx.file.Content[after]) {
				for range label {
					lx.cursor.Bump()
				}
				return lx.tokenAt(token.StringLit, start)
			}
		}

		// не метка — пропустить строку до следующего '\n'
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	lx.report(ErrUnterminatedHeredoc, sp, "unterminated heredoc")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
