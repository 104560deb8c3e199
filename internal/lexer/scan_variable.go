package lexer

import (
	"phpdrift/internal/token"
)

// scanVariable сканирует '$name' (сигил входит в Text). Для '$$var' и '${expr}'
// одиночный '$' становится токеном Dollar, остальное разберут следующие вызовы.
func (lx *Lexer) scanVariable() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '$'

	if !isIdentStartByte(lx.cursor.Peek()) {
		return lx.tokenAt(token.Dollar, start)
	}

	lx.cursor.Bump()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.tokenAt(token.Variable, start)
}
