package lexer

import (
	"phpdrift/internal/token"
)

// scanOpenTag сканирует "<?php", "<?=" или короткий "<?" и переключает лексер
// в PHP режим. Вызывается только когда курсор стоит на "<?".
// Имя тега регистронезависимое: "<?PHP" тоже валиден.
func (lx *Lexer) scanOpenTag() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '<'
	lx.cursor.Bump() // '?'

	lx.inPHP = true

	// "<?="
	if lx.cursor.Eat('=') {
		return lx.tokenAt(token.OpenTagEcho, start)
	}

	// "<?php" — три байта "php" без продолжения идентификатора
	if b0, b1, b2, ok := lx.cursor.Peek3(); ok &&
		lowerByte(b0) == 'p' && lowerByte(b1) == 'h' && lowerByte(b2) == 'p' {
		after := lx.cursor.Off + 3
		if after >= lx.cursor.Limit || !isIdentContinueByte(lx.file.Content[after]) {
			lx.cursor.Bump()
			lx.cursor.Bump()
			lx.cursor.Bump()
			return lx.tokenAt(token.OpenTag, start)
		}
	}

	// Короткий "<?". "<?phpinfo()" попадает сюда же: тег — "<?",
	// "phpinfo" — уже идентификатор.
	return lx.tokenAt(token.OpenTag, start)
}

// scanCloseTag сканирует "?>" и возвращает лексер в HTML режим.
func (lx *Lexer) scanCloseTag() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '?'
	lx.cursor.Bump() // '>'
	lx.inPHP = false
	return lx.tokenAt(token.CloseTag, start)
}
