package token

import "phpdrift/internal/source"

// TriviaKind classifies the non-token material between tokens.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	// TriviaLineComment covers both '//' and '#' comments.
	TriviaLineComment
	TriviaBlockComment
	// TriviaDocBlock is a '/** ... */' comment.
	TriviaDocBlock
	// TriviaInlineHTML is raw output outside '<?php ... ?>'.
	TriviaInlineHTML
)

var triviaNames = [...]string{
	TriviaSpace:        "Space",
	TriviaNewline:      "Newline",
	TriviaLineComment:  "LineComment",
	TriviaBlockComment: "BlockComment",
	TriviaDocBlock:     "DocBlock",
	TriviaInlineHTML:   "InlineHTML",
}

func (k TriviaKind) String() string {
	if int(k) < len(triviaNames) {
		return triviaNames[k]
	}
	return "TriviaKind(" + itoa(int(k)) + ")"
}

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
