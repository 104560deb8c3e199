package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexUnterminatedHeredoc      Code = 1004
	LexBadNumber                Code = 1005
	LexTokenTooLong             Code = 1006

	// Извлечение сигнатур
	SigInfo              Code = 2000
	SigUnclosedParamList Code = 2001
	SigMalformedParam    Code = 2002

	// Совместимость версий PHP
	CmpInfo                     Code = 3000
	CmpOptionalBeforeRequired   Code = 3001
	CmpImplicitNullableOptional Code = 3002

	// Ошибки I/O
	IOLoadFileError Code = 4001
	IOWalkError     Code = 4002

	// Проект / конфигурация
	ProjInfo             Code = 5000
	ProjConfigParseError Code = 5001
	ProjBadTargetRange   Code = 5002
	ProjUnknownRule      Code = 5003

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexUnterminatedHeredoc:      "Unterminated heredoc",
		LexBadNumber:                "Bad number",
		LexTokenTooLong:             "Token too long",
		SigInfo:                     "Signature information",
		SigUnclosedParamList:        "Unclosed parameter list",
		SigMalformedParam:           "Malformed parameter",
		CmpInfo:                     "Compatibility information",
		CmpOptionalBeforeRequired:   "Optional parameter declared before required parameter",
		CmpImplicitNullableOptional: "Implicitly required nullable parameter",
		IOLoadFileError:             "I/O load file error",
		IOWalkError:                 "Directory walk error",
		ProjInfo:                    "Project information",
		ProjConfigParseError:        "Config parse error",
		ProjBadTargetRange:          "Invalid target version range",
		ProjUnknownRule:             "Unknown rule name",
		ObsInfo:                     "Observability information",
		ObsTimings:                  "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SIG%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("CMP%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
