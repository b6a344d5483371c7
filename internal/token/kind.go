package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier or contextual keyword.
	Ident
	// PrivateIdent is a class private name such as #count.
	PrivateIdent
	Number
	BigInt
	// String is a quoted string; Value holds the cooked contents.
	String
	// RegExp is a regular expression literal (only after RescanRegExp).
	RegExp
	// NoSubstitutionTemplate is `text` without substitutions.
	NoSubstitutionTemplate
	// TemplateHead is `text${
	TemplateHead
	// TemplateMiddle is }text${
	TemplateMiddle
	// TemplateTail is }text`
	TemplateTail
	// JSXText is raw text between JSX tags.
	JSXText

	LBrace    // {
	RBrace    // }
	LParen    // (
	RParen    // )
	LBracket  // [
	RBracket  // ]
	Dot       // .
	DotDotDot // ...
	Semicolon // ;
	Comma     // ,
	Colon     // :
	Question  // ?
	// QuestionDot is the optional chaining operator ?.
	QuestionDot
	Arrow // =>
	At    // @
	Hash  // #

	Lt         // <
	Gt         // >
	LtEq       // <=
	GtEq       // >=
	EqEq       // ==
	BangEq     // !=
	EqEqEq     // ===
	BangEqEq   // !==
	Plus       // +
	Minus      // -
	Star       // *
	Slash      // /
	Percent    // %
	StarStar   // **
	PlusPlus   // ++
	MinusMinus // --
	Shl        // <<
	Shr        // >>
	UShr       // >>>
	Amp        // &
	Pipe       // |
	Caret      // ^
	Bang       // !
	Tilde      // ~
	AndAnd     // &&
	OrOr       // ||
	// QuestionQuestion is the nullish coalescing operator ??
	QuestionQuestion

	Assign                 // =
	PlusAssign             // +=
	MinusAssign            // -=
	StarAssign             // *=
	SlashAssign            // /=
	PercentAssign          // %=
	StarStarAssign         // **=
	ShlAssign              // <<=
	ShrAssign              // >>=
	UShrAssign             // >>>=
	AmpAssign              // &=
	PipeAssign             // |=
	CaretAssign            // ^=
	AndAndAssign           // &&=
	OrOrAssign             // ||=
	QuestionQuestionAssign // ??=

	// Reserved words. KwBreak..KwWith must stay contiguous.
	KwBreak
	KwCase
	KwCatch
	KwClass
	KwConst
	KwContinue
	KwDebugger
	KwDefault
	KwDelete
	KwDo
	KwElse
	KwEnum
	KwExport
	KwExtends
	KwFalse
	KwFinally
	KwFor
	KwFunction
	KwIf
	KwImport
	KwIn
	KwInstanceof
	KwNew
	KwNull
	KwReturn
	KwSuper
	KwSwitch
	KwThis
	KwThrow
	KwTrue
	KwTry
	KwTypeof
	KwVar
	KwVoid
	KwWhile
	KwWith
)

var kindNames = map[Kind]string{
	Invalid: "Invalid", EOF: "EOF", Ident: "Ident", PrivateIdent: "PrivateIdent",
	Number: "Number", BigInt: "BigInt", String: "String", RegExp: "RegExp",
	NoSubstitutionTemplate: "Template", TemplateHead: "TemplateHead",
	TemplateMiddle: "TemplateMiddle", TemplateTail: "TemplateTail", JSXText: "JSXText",
	LBrace: "{", RBrace: "}", LParen: "(", RParen: ")", LBracket: "[", RBracket: "]",
	Dot: ".", DotDotDot: "...", Semicolon: ";", Comma: ",", Colon: ":", Question: "?",
	QuestionDot: "?.", Arrow: "=>", At: "@", Hash: "#",
	Lt: "<", Gt: ">", LtEq: "<=", GtEq: ">=", EqEq: "==", BangEq: "!=", EqEqEq: "===",
	BangEqEq: "!==", Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	StarStar: "**", PlusPlus: "++", MinusMinus: "--", Shl: "<<", Shr: ">>", UShr: ">>>",
	Amp: "&", Pipe: "|", Caret: "^", Bang: "!", Tilde: "~", AndAnd: "&&", OrOr: "||",
	QuestionQuestion: "??", Assign: "=", PlusAssign: "+=", MinusAssign: "-=",
	StarAssign: "*=", SlashAssign: "/=", PercentAssign: "%=", StarStarAssign: "**=",
	ShlAssign: "<<=", ShrAssign: ">>=", UShrAssign: ">>>=", AmpAssign: "&=",
	PipeAssign: "|=", CaretAssign: "^=", AndAndAssign: "&&=", OrOrAssign: "||=",
	QuestionQuestionAssign: "??=",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	for word, kw := range keywords {
		if kw == k {
			return word
		}
	}
	return "Unknown"
}

// IsAssign reports whether k is = or a compound assignment operator.
func (k Kind) IsAssign() bool {
	return k >= Assign && k <= QuestionQuestionAssign
}
