package token

import (
	"phpdrift/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, boolean, null, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NullLit, TrueLit, FalseLit, IntLit, FloatLit, StringLit:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is one of the recognized keywords.
// Reserved words lexed as Ident are not covered.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwFunction, KwFn, KwUse, KwStatic, KwAbstract, KwFinal,
		KwPublic, KwProtected, KwPrivate, KwReadonly, KwVar,
		KwClass, KwTrait, KwInterface, KwEnum, KwNamespace, KwConst,
		KwNew, KwArray, KwCallable:
		return true
	default:
		return false
	}
}

// IsVisibility reports whether the token is a visibility modifier
// (promoted constructor properties start with one).
func (t Token) IsVisibility() bool {
	switch t.Kind {
	case KwPublic, KwProtected, KwPrivate, KwVar:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is punctuation or an operator.
func (t Token) IsPunctOrOp() bool {
	switch t.Kind {
	case Plus, Minus, Star, StarStar, Slash, Percent, Dot, Assign,
		PlusAssign, MinusAssign, StarAssign, StarStarAssign, SlashAssign,
		DotAssign, PercentAssign, AmpAssign, PipeAssign, CaretAssign,
		ShlAssign, ShrAssign, QuestionQuestionAssign,
		EqEq, EqEqEq, Bang, BangEq, BangEqEq, LtGt, Lt, LtEq, Gt, GtEq,
		Spaceship, Shl, Shr, Amp, AndAnd, Pipe, OrOr, Caret, Tilde, At,
		PlusPlus, MinusMinus, Question, QuestionQuestion, Colon, ColonColon,
		Semicolon, Comma, Arrow, QuestionArrow, FatArrow, Ellipsis,
		Backslash, Dollar, AttrStart,
		LParen, RParen, LBrace, RBrace, LBracket, RBracket:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is a bare identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsVariable reports whether the token is a '$name' variable.
func (t Token) IsVariable() bool { return t.Kind == Variable }

// OpensMemberAccess reports whether the kind makes the following name a
// member reference ('->', '?->', '::'). The signature scanner uses this to
// tell '$x->function(...)' apart from a declaration.
func (k Kind) OpensMemberAccess() bool {
	switch k {
	case Arrow, QuestionArrow, ColonColon:
		return true
	default:
		return false
	}
}
