package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents a bare name: function names, class names, type names,
	// and every reserved word without a dedicated kind below.
	Ident
	// Variable represents a '$name' token, sigil included.
	Variable

	// KwFunction represents the 'function' keyword.
	KwFunction // function
	// KwFn represents the 'fn' keyword (arrow functions).
	KwFn // fn
	// KwUse represents the 'use' keyword (imports and closure captures).
	KwUse // use
	// KwStatic represents the 'static' keyword.
	KwStatic // static
	// KwAbstract represents the 'abstract' keyword.
	KwAbstract // abstract
	// KwFinal represents the 'final' keyword.
	KwFinal // final
	// KwPublic represents the 'public' visibility keyword.
	KwPublic // public
	// KwProtected represents the 'protected' visibility keyword.
	KwProtected // protected
	// KwPrivate represents the 'private' visibility keyword.
	KwPrivate // private
	// KwReadonly represents the 'readonly' keyword.
	KwReadonly // readonly
	// KwVar represents the legacy 'var' property keyword.
	KwVar // var
	// KwClass represents the 'class' keyword.
	KwClass // class
	// KwTrait represents the 'trait' keyword.
	KwTrait // trait
	// KwInterface represents the 'interface' keyword.
	KwInterface // interface
	// KwEnum represents the 'enum' keyword.
	KwEnum // enum
	// KwNamespace represents the 'namespace' keyword.
	KwNamespace // namespace
	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwNew represents the 'new' keyword.
	KwNew // new
	// KwArray represents the 'array' keyword (type hint and array(...) syntax).
	KwArray // array
	// KwCallable represents the 'callable' type keyword.
	KwCallable // callable

	// NullLit represents the 'null' literal (any case).
	NullLit
	// TrueLit represents the 'true' literal (any case).
	TrueLit
	// FalseLit represents the 'false' literal (any case).
	FalseLit
	// IntLit represents an integer literal.
	IntLit
	// FloatLit represents a float literal.
	FloatLit
	// StringLit represents a single-quoted, double-quoted, backtick,
	// heredoc or nowdoc string literal.
	StringLit

	// OpenTag represents '<?php' or the short '<?'.
	OpenTag
	// OpenTagEcho represents '<?='.
	OpenTagEcho
	// CloseTag represents '?>'.
	CloseTag

	// Plus represents '+'.
	Plus // +
	// Minus represents '-'.
	Minus // -
	// Star represents '*'.
	Star // *
	// StarStar represents '**'.
	StarStar // **
	// Slash represents '/'.
	Slash // /
	// Percent represents '%'.
	Percent // %
	// Dot represents '.' (concatenation).
	Dot // .
	// Assign represents '='.
	Assign // =
	// PlusAssign represents '+='.
	PlusAssign // +=
	// MinusAssign represents '-='.
	MinusAssign // -=
	// StarAssign represents '*='.
	StarAssign // *=
	// StarStarAssign represents '**='.
	StarStarAssign // **=
	// SlashAssign represents '/='.
	SlashAssign // /=
	// DotAssign represents '.='.
	DotAssign // .=
	// PercentAssign represents '%='.
	PercentAssign // %=
	// AmpAssign represents '&='.
	AmpAssign // &=
	// PipeAssign represents '|='.
	PipeAssign // |=
	// CaretAssign represents '^='.
	CaretAssign // ^=
	// ShlAssign represents '<<='.
	ShlAssign // <<=
	// ShrAssign represents '>>='.
	ShrAssign // >>=
	// QuestionQuestionAssign represents '??='.
	QuestionQuestionAssign // ??=
	// EqEq represents '=='.
	EqEq // ==
	// EqEqEq represents '==='.
	EqEqEq // ===
	// Bang represents '!'.
	Bang // !
	// BangEq represents '!='.
	BangEq // !=
	// BangEqEq represents '!=='.
	BangEqEq // !==
	// LtGt represents the legacy '<>' inequality.
	LtGt // <>
	// Lt represents '<'.
	Lt // <
	// LtEq represents '<='.
	LtEq // <=
	// Gt represents '>'.
	Gt // >
	// GtEq represents '>='.
	GtEq // >=
	// Spaceship represents '<=>'.
	Spaceship // <=>
	// Shl represents '<<'.
	Shl // <<
	// Shr represents '>>'.
	Shr // >>
	// Amp represents '&' (by-ref marker or intersection type).
	Amp // &
	// AndAnd represents '&&'.
	AndAnd // &&
	// Pipe represents '|' (union type separator or bitwise or).
	Pipe // |
	// OrOr represents '||'.
	OrOr // ||
	// Caret represents '^'.
	Caret // ^
	// Tilde represents '~'.
	Tilde // ~
	// At represents the '@' error-suppression operator.
	At // @
	// PlusPlus represents '++'.
	PlusPlus // ++
	// MinusMinus represents '--'.
	MinusMinus // --
	// Question represents '?' (ternary or nullable type marker).
	Question // ?
	// QuestionQuestion represents '??'.
	QuestionQuestion // ??
	// Colon represents ':'.
	Colon // :
	// ColonColon represents '::'.
	ColonColon // ::
	// Semicolon represents ';'.
	Semicolon // ;
	// Comma represents ','.
	Comma // ,
	// Arrow represents '->'.
	Arrow // ->
	// QuestionArrow represents the nullsafe '?->'.
	QuestionArrow // ?->
	// FatArrow represents '=>'.
	FatArrow // =>
	// Ellipsis represents '...' (variadic or spread).
	Ellipsis // ...
	// Backslash represents '\' (namespace separator).
	Backslash // \
	// Dollar represents a lone '$' ($$var, ${expr}).
	Dollar // $
	// AttrStart represents the '#[' attribute opener.
	AttrStart // #[
	// LParen represents '('.
	LParen // (
	// RParen represents ')'.
	RParen // )
	// LBrace represents '{'.
	LBrace // {
	// RBrace represents '}'.
	RBrace // }
	// LBracket represents '['.
	LBracket // [
	// RBracket represents ']'.
	RBracket // ]
)

var kindNames = [...]string{
	Invalid:                "Invalid",
	EOF:                    "EOF",
	Ident:                  "Ident",
	Variable:               "Variable",
	KwFunction:             "KwFunction",
	KwFn:                   "KwFn",
	KwUse:                  "KwUse",
	KwStatic:               "KwStatic",
	KwAbstract:             "KwAbstract",
	KwFinal:                "KwFinal",
	KwPublic:               "KwPublic",
	KwProtected:            "KwProtected",
	KwPrivate:              "KwPrivate",
	KwReadonly:             "KwReadonly",
	KwVar:                  "KwVar",
	KwClass:                "KwClass",
	KwTrait:                "KwTrait",
	KwInterface:            "KwInterface",
	KwEnum:                 "KwEnum",
	KwNamespace:            "KwNamespace",
	KwConst:                "KwConst",
	KwNew:                  "KwNew",
	KwArray:                "KwArray",
	KwCallable:             "KwCallable",
	NullLit:                "NullLit",
	TrueLit:                "TrueLit",
	FalseLit:               "FalseLit",
	IntLit:                 "IntLit",
	FloatLit:               "FloatLit",
	StringLit:              "StringLit",
	OpenTag:                "OpenTag",
	OpenTagEcho:            "OpenTagEcho",
	CloseTag:               "CloseTag",
	Plus:                   "Plus",
	Minus:                  "Minus",
	Star:                   "Star",
	StarStar:               "StarStar",
	Slash:                  "Slash",
	Percent:                "Percent",
	Dot:                    "Dot",
	Assign:                 "Assign",
	PlusAssign:             "PlusAssign",
	MinusAssign:            "MinusAssign",
	StarAssign:             "StarAssign",
	StarStarAssign:         "StarStarAssign",
	SlashAssign:            "SlashAssign",
	DotAssign:              "DotAssign",
	PercentAssign:          "PercentAssign",
	AmpAssign:              "AmpAssign",
	PipeAssign:             "PipeAssign",
	CaretAssign:            "CaretAssign",
	ShlAssign:              "ShlAssign",
	ShrAssign:              "ShrAssign",
	QuestionQuestionAssign: "QuestionQuestionAssign",
	EqEq:                   "EqEq",
	EqEqEq:                 "EqEqEq",
	Bang:                   "Bang",
	BangEq:                 "BangEq",
	BangEqEq:               "BangEqEq",
	LtGt:                   "LtGt",
	Lt:                     "Lt",
	LtEq:                   "LtEq",
	Gt:                     "Gt",
	GtEq:                   "GtEq",
	Spaceship:              "Spaceship",
	Shl:                    "Shl",
	Shr:                    "Shr",
	Amp:                    "Amp",
	AndAnd:                 "AndAnd",
	Pipe:                   "Pipe",
	OrOr:                   "OrOr",
	Caret:                  "Caret",
	Tilde:                  "Tilde",
	At:                     "At",
	PlusPlus:               "PlusPlus",
	MinusMinus:             "MinusMinus",
	Question:               "Question",
	QuestionQuestion:       "QuestionQuestion",
	Colon:                  "Colon",
	ColonColon:             "ColonColon",
	Semicolon:              "Semicolon",
	Comma:                  "Comma",
	Arrow:                  "Arrow",
	QuestionArrow:          "QuestionArrow",
	FatArrow:               "FatArrow",
	Ellipsis:               "Ellipsis",
	Backslash:              "Backslash",
	Dollar:                 "Dollar",
	AttrStart:              "AttrStart",
	LParen:                 "LParen",
	RParen:                 "RParen",
	LBrace:                 "LBrace",
	RBrace:                 "RBrace",
	LBracket:               "LBracket",
	RBracket:               "RBracket",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(" + itoa(int(k)) + ")"
}

// itoa без strconv, чтобы пакет оставался без импортов.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
