// Package cj is the combined C, C++ and Java grammar.
package cj

import "strconv"

// Kind identifies a token of the combined grammar.
type Kind uint8

// NoToken is the sentinel for "no token" at the edges of a fragment.
const NoToken Kind = 0

const (
	Preprocessor Kind = iota + 1

	// statements
	For
	While
	DoWhile
	Switch
	Case
	Default
	If
	ElseIf
	Else
	Break
	Continue
	Goto
	Return

	// arithmetic types
	Unsigned
	Signed
	Char
	Int
	Short
	ShortInt
	Long
	LongInt
	LongLong
	LongLongInt
	Float
	Double
	LongDouble
	Bool
	String

	// elaborated type specifiers
	Enum
	Struct
	Union
	Class
	Template
	Void

	// storage class
	Auto
	Extern
	Register
	Static
	ThreadLocal
	Typedef
	Decltype

	// type qualifiers and access specifiers
	Atomic
	Const
	Restrict
	Volatile
	Mutable
	Public
	Protected
	Private

	// arithmetic
	Plus
	Minus
	Asterisk
	Multiplication
	Pointer
	Divide
	Modulo

	// assignment
	AddAssignment
	SubAssignment
	MultAssignment
	DivAssignment
	ModAssignment
	Assignment

	// bitwise
	Ampersand
	BitwiseAnd
	Reference
	BitwiseOr
	BitwiseXor
	BitwiseNot
	LeftOperator
	LeftShift
	LeftShiftAssignment
	RightOperator
	RightShift
	RightShiftAssignment
	BitwiseAndAssignment
	BitwiseOrAssignment
	BitwiseXorAssignment
	UnsignedRightShiftOperator

	// logical
	And
	Or
	Not

	SizeOf
	TypeCast
	ConditionalOperator

	// comparison
	Greater
	GreaterOrEquals
	Less
	LessOrEquals
	Equals
	NotEquals
	ThreeWayComparison

	// member access
	DotOperator
	ArrowOperator

	// increment and decrement
	Increment
	PrefixIncrement
	PostfixIncrement
	Decrement
	PrefixDecrement
	PostfixDecrement

	New
	Delete
	ScopeResolution

	// predefined constants
	True
	False
	Null

	Using
	Namespace

	// Java
	Import
	Annotation
	Interface
	Abstract
	Final
	Native
	Synchronized
	Transient
	StrictFp
	Assert
	Try
	Catch
	Throws
	Throw
	Super
	This
	Extends
	Implements
	Package
	Finally
	Var

	// text-bearing and punctuation
	Identifier
	Function
	FunctionCall
	Array
	Label
	Number
	StringLiteral
	CharLiteral
	Semicolon
	Colon
	LineBreak
	OpenBrace
	CloseBrace
	OpenParen
	CloseParen
	OpenBracket
	CloseBracket
	Comma

	Unrecognized

	kindCount
)

var kindNames = [...]string{
	NoToken:                    "NoToken",
	Preprocessor:               "Preprocessor",
	For:                        "For",
	While:                      "While",
	DoWhile:                    "DoWhile",
	Switch:                     "Switch",
	Case:                       "Case",
	Default:                    "Default",
	If:                         "If",
	ElseIf:                     "ElseIf",
	Else:                       "Else",
	Break:                      "Break",
	Continue:                   "Continue",
	Goto:                       "Goto",
	Return:                     "Return",
	Unsigned:                   "Unsigned",
	Signed:                     "Signed",
	Char:                       "Char",
	Int:                        "Int",
	Short:                      "Short",
	ShortInt:                   "ShortInt",
	Long:                       "Long",
	LongInt:                    "LongInt",
	LongLong:                   "LongLong",
	LongLongInt:                "LongLongInt",
	Float:                      "Float",
	Double:                     "Double",
	LongDouble:                 "LongDouble",
	Bool:                       "Bool",
	String:                     "String",
	Enum:                       "Enum",
	Struct:                     "Struct",
	Union:                      "Union",
	Class:                      "Class",
	Template:                   "Template",
	Void:                       "Void",
	Auto:                       "Auto",
	Extern:                     "Extern",
	Register:                   "Register",
	Static:                     "Static",
	ThreadLocal:                "ThreadLocal",
	Typedef:                    "Typedef",
	Decltype:                   "Decltype",
	Atomic:                     "Atomic",
	Const:                      "Const",
	Restrict:                   "Restrict",
	Volatile:                   "Volatile",
	Mutable:                    "Mutable",
	Public:                     "Public",
	Protected:                  "Protected",
	Private:                    "Private",
	Plus:                       "Plus",
	Minus:                      "Minus",
	Asterisk:                   "Asterisk",
	Multiplication:             "Multiplication",
	Pointer:                    "Pointer",
	Divide:                     "Divide",
	Modulo:                     "Modulo",
	AddAssignment:              "AddAssignment",
	SubAssignment:              "SubAssignment",
	MultAssignment:             "MultAssignment",
	DivAssignment:              "DivAssignment",
	ModAssignment:              "ModAssignment",
	Assignment:                 "Assignment",
	Ampersand:                  "Ampersand",
	BitwiseAnd:                 "BitwiseAnd",
	Reference:                  "Reference",
	BitwiseOr:                  "BitwiseOr",
	BitwiseXor:                 "BitwiseXor",
	BitwiseNot:                 "BitwiseNot",
	LeftOperator:               "LeftOperator",
	LeftShift:                  "LeftShift",
	LeftShiftAssignment:        "LeftShiftAssignment",
	RightOperator:              "RightOperator",
	RightShift:                 "RightShift",
	RightShiftAssignment:       "RightShiftAssignment",
	BitwiseAndAssignment:       "BitwiseAndAssignment",
	BitwiseOrAssignment:        "BitwiseOrAssignment",
	BitwiseXorAssignment:       "BitwiseXorAssignment",
	UnsignedRightShiftOperator: "UnsignedRightShiftOperator",
	And:                        "And",
	Or:                         "Or",
	Not:                        "Not",
	SizeOf:                     "SizeOf",
	TypeCast:                   "TypeCast",
	ConditionalOperator:        "ConditionalOperator",
	Greater:                    "Greater",
	GreaterOrEquals:            "GreaterOrEquals",
	Less:                       "Less",
	LessOrEquals:               "LessOrEquals",
	Equals:                     "Equals",
	NotEquals:                  "NotEquals",
	ThreeWayComparison:         "ThreeWayComparison",
	DotOperator:                "DotOperator",
	ArrowOperator:              "ArrowOperator",
	Increment:                  "Increment",
	PrefixIncrement:            "PrefixIncrement",
	PostfixIncrement:           "PostfixIncrement",
	Decrement:                  "Decrement",
	PrefixDecrement:            "PrefixDecrement",
	PostfixDecrement:           "PostfixDecrement",
	New:                        "New",
	Delete:                     "Delete",
	ScopeResolution:            "ScopeResolution",
	True:                       "True",
	False:                      "False",
	Null:                       "Null",
	Using:                      "Using",
	Namespace:                  "Namespace",
	Import:                     "Import",
	Annotation:                 "Annotation",
	Interface:                  "Interface",
	Abstract:                   "Abstract",
	Final:                      "Final",
	Native:                     "Native",
	Synchronized:               "Synchronized",
	Transient:                  "Transient",
	StrictFp:                   "StrictFp",
	Assert:                     "Assert",
	Try:                        "Try",
	Catch:                      "Catch",
	Throws:                     "Throws",
	Throw:                      "Throw",
	Super:                      "Super",
	This:                       "This",
	Extends:                    "Extends",
	Implements:                 "Implements",
	Package:                    "Package",
	Finally:                    "Finally",
	Var:                        "Var",
	Identifier:                 "Identifier",
	Function:                   "Function",
	FunctionCall:               "FunctionCall",
	Array:                      "Array",
	Label:                      "Label",
	Number:                     "Number",
	StringLiteral:              "StringLiteral",
	CharLiteral:                "CharLiteral",
	Semicolon:                  "Semicolon",
	Colon:                      "Colon",
	LineBreak:                  "LineBreak",
	OpenBrace:                  "OpenBrace",
	CloseBrace:                 "CloseBrace",
	OpenParen:                  "OpenParen",
	CloseParen:                 "CloseParen",
	OpenBracket:                "OpenBracket",
	CloseBracket:               "CloseBracket",
	Comma:                      "Comma",
	Unrecognized:               "Unrecognized",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Kinds lists every kind except the NoToken sentinel.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := Kind(1); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// Token is one lexical unit. Text is set only for text-bearing kinds
// (Preprocessor, Identifier, Number, StringLiteral, CharLiteral, Unrecognized).
// Tokens are comparable; two tokens are the same concept iff they are equal.
type Token struct {
	Kind Kind
	Text string
}

// Tok returns a token without text.
func Tok(k Kind) Token { return Token{Kind: k} }

// String renders the token's debug form, e.g. For or Identifier("x").
func (t Token) String() string {
	if t.Text == "" {
		return t.Kind.String()
	}
	return t.Kind.String() + "(" + strconv.Quote(t.Text) + ")"
}

// IsOperand reports whether the token is an identifier or a number.
func (t Token) IsOperand() bool {
	return t.Kind == Identifier || t.Kind == Number
}
