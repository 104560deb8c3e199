// Package token defines lexical token kinds and trivia for PHP source scanning.
// Invariants:
//   - Token.Text preserves the source bytes exactly, including keyword case
//     ("NULL" and "null" both lex as NullLit, Text differs).
//   - Token.Span matches Text exactly (Begin..End).
//   - Variables keep the '$' sigil in Text ("$user"), Kind: Variable.
//   - Only the keyword subset the signature scanner consults gets dedicated
//     kinds; every other reserved word ("if", "instanceof", ...) lexes as
//     Ident. Casts like "(int)" are lexed as LParen + Ident + RParen.
//   - Comments, whitespace and inline HTML are leading Trivia and never
//     appear in the main token stream.
package token
