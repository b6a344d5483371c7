package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedTemplate     Code = 1005
	LexUnterminatedRegExp       Code = 1006
	LexBadEscape                Code = 1007

	// Синтаксические
	SynInfo                Code = 2000
	SynUnexpectedToken     Code = 2001
	SynExpectSemicolon     Code = 2002
	SynExpectIdentifier    Code = 2003
	SynExpectExpression    Code = 2004
	SynUnclosedParen       Code = 2005
	SynUnclosedBrace       Code = 2006
	SynUnclosedBracket     Code = 2007
	SynJSXTagMismatch      Code = 2008
	SynJSXUnterminated     Code = 2009
	SynInvalidAssignTarget Code = 2010
	SynModuleItemPosition  Code = 2011
	SynExpectType          Code = 2012

	// Семантические: неподдерживаемые конструкции и ошибки автора
	SemaInfo                 Code = 3000
	SemaUnsupportedExportAll Code = 3001
	SemaUnsupportedDefault   Code = 3002
	SemaUnsupportedAttrName  Code = 3003
	SemaUnsupportedStyleVal  Code = 3004
	SemaObjectChild          Code = 3005
	SemaUnsupportedStyleKey  Code = 3006

	// Ошибки I/O
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002

	// Ошибки проекта
	ProjInfo            Code = 5000
	ProjInvalidManifest Code = 5001
	ProjImportNotFound  Code = 5002
	ProjImportCycle     Code = 5003

	// Observability
	ObsInfo         Code = 6000
	ObsTimings      Code = 6001
	ObsCacheRebuilt Code = 6002
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown error",

	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed numeric literal",
	LexUnterminatedTemplate:     "Unterminated template literal",
	LexUnterminatedRegExp:       "Unterminated regular expression",
	LexBadEscape:                "Invalid escape sequence",

	SynInfo:                "Syntax information",
	SynUnexpectedToken:     "Unexpected token",
	SynExpectSemicolon:     "Missing semicolon",
	SynExpectIdentifier:    "Expected identifier",
	SynExpectExpression:    "Expected expression",
	SynUnclosedParen:       "Unclosed parenthesis",
	SynUnclosedBrace:       "Unclosed brace",
	SynUnclosedBracket:     "Unclosed bracket",
	SynJSXTagMismatch:      "Mismatched JSX closing tag",
	SynJSXUnterminated:     "Unterminated JSX element",
	SynInvalidAssignTarget: "Invalid assignment target",
	SynModuleItemPosition:  "Import/export outside module top level",
	SynExpectType:          "Expected type",

	SemaInfo:                 "Semantic information",
	SemaUnsupportedExportAll: "Re-export of all bindings is not supported",
	SemaUnsupportedDefault:   "Unsupported default export",
	SemaUnsupportedAttrName:  "Unsupported attribute name",
	SemaUnsupportedStyleVal:  "Unsupported style value",
	SemaObjectChild:          "Objects are not valid as a child",
	SemaUnsupportedStyleKey:  "Unsupported style key",

	IOLoadFileError:  "Failed to load file",
	IOWriteFileError: "Failed to write file",

	ProjInfo:            "Project information",
	ProjInvalidManifest: "Invalid project manifest",
	ProjImportNotFound:  "Imported module not found",
	ProjImportCycle:     "Import cycle",

	ObsInfo:         "Observability information",
	ObsTimings:      "Timings",
	ObsCacheRebuilt: "Type-info cache rebuilt",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
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
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
