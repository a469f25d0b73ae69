// Package py is the Python grammar.
package py

import "strconv"

// Kind identifies a Python token.
type Kind uint8

// NoToken is the sentinel for "no token" at the edges of a fragment.
const NoToken Kind = 0

const (
	// statements
	For Kind = iota + 1
	While
	Break
	Continue
	Return
	Pass
	Match
	Case
	If
	Elif
	Else
	Try
	Except
	Finally
	Raise
	Import
	From

	// data types; literal spellings share the kind of their type keyword
	Float
	Int
	Complex
	True
	False
	Bool
	List
	Tuple
	Dict
	Set
	Bytes
	Class
	String
	None

	// declarators
	FunctionDefinition
	Decorator
	Final
	Overload
	Global

	// arithmetic and assignment
	Addition
	AddAssignment
	Subtraction
	SubAssignment
	Multiplication
	MultAssignment
	Division
	DivAssignment
	FloorDivision
	FloorDivAssignment
	Modulo
	ModAssignment
	Exponentiation
	ExpAssignment
	Assignment
	AssignmentExpression

	// bitwise
	BitwiseAnd
	BitwiseAndAssignment
	BitwiseOr
	BitwiseOrAssignment
	BitwiseXor
	BitwiseXorAssignment
	BitwiseNot
	BitwiseLeftShift
	BitwiseLeftShiftAssignment
	BitwiseRightShift
	BitwiseRightShiftAssignment

	Function

	// logical
	LogicalAnd
	LogicalOr
	LogicalNot

	// comparison
	Greater
	GreaterOrEquals
	Less
	LessOrEquals
	Equal
	NotEquals

	MemberAccess
	Is
	IsNot
	In
	NotIn

	Yield
	Async
	Await
	Lambda

	Identifier
	Colon
	Comma
	Semicolon
	OpenParen
	CloseParen
	OpenBracket
	CloseBracket
	OpenBrace
	CloseBrace

	Unrecognized

	kindCount
)

var kindNames = [...]string{
	NoToken:                     "NoToken",
	For:                         "For",
	While:                       "While",
	Break:                       "Break",
	Continue:                    "Continue",
	Return:                      "Return",
	Pass:                        "Pass",
	Match:                       "Match",
	Case:                        "Case",
	If:                          "If",
	Elif:                        "Elif",
	Else:                        "Else",
	Try:                         "Try",
	Except:                      "Except",
	Finally:                     "Finally",
	Raise:                       "Raise",
	Import:                      "Import",
	From:                        "From",
	Float:                       "Float",
	Int:                         "Int",
	Complex:                     "Complex",
	True:                        "True",
	False:                       "False",
	Bool:                        "Bool",
	List:                        "List",
	Tuple:                       "Tuple",
	Dict:                        "Dict",
	Set:                         "Set",
	Bytes:                       "Bytes",
	Class:                       "Class",
	String:                      "String",
	None:                        "None",
	FunctionDefinition:          "FunctionDefinition",
	Decorator:                   "Decorator",
	Final:                       "Final",
	Overload:                    "Overload",
	Global:                      "Global",
	Addition:                    "Addition",
	AddAssignment:               "AddAssignment",
	Subtraction:                 "Subtraction",
	SubAssignment:               "SubAssignment",
	Multiplication:              "Multiplication",
	MultAssignment:              "MultAssignment",
	Division:                    "Division",
	DivAssignment:               "DivAssignment",
	FloorDivision:               "FloorDivision",
	FloorDivAssignment:          "FloorDivAssignment",
	Modulo:                      "Modulo",
	ModAssignment:               "ModAssignment",
	Exponentiation:              "Exponentiation",
	ExpAssignment:               "ExpAssignment",
	Assignment:                  "Assignment",
	AssignmentExpression:        "AssignmentExpression",
	BitwiseAnd:                  "BitwiseAnd",
	BitwiseAndAssignment:        "BitwiseAndAssignment",
	BitwiseOr:                   "BitwiseOr",
	BitwiseOrAssignment:         "BitwiseOrAssignment",
	BitwiseXor:                  "BitwiseXor",
	BitwiseXorAssignment:        "BitwiseXorAssignment",
	BitwiseNot:                  "BitwiseNot",
	BitwiseLeftShift:            "BitwiseLeftShift",
	BitwiseLeftShiftAssignment:  "BitwiseLeftShiftAssignment",
	BitwiseRightShift:           "BitwiseRightShift",
	BitwiseRightShiftAssignment: "BitwiseRightShiftAssignment",
	Function:                    "Function",
	LogicalAnd:                  "LogicalAnd",
	LogicalOr:                   "LogicalOr",
	LogicalNot:                  "LogicalNot",
	Greater:                     "Greater",
	GreaterOrEquals:             "GreaterOrEquals",
	Less:                        "Less",
	LessOrEquals:                "LessOrEquals",
	Equal:                       "Equal",
	NotEquals:                   "NotEquals",
	MemberAccess:                "MemberAccess",
	Is:                          "Is",
	IsNot:                       "IsNot",
	In:                          "In",
	NotIn:                       "NotIn",
	Yield:                       "Yield",
	Async:                       "Async",
	Await:                       "Await",
	Lambda:                      "Lambda",
	Identifier:                  "Identifier",
	Colon:                       "Colon",
	Comma:                       "Comma",
	Semicolon:                   "Semicolon",
	OpenParen:                   "OpenParen",
	CloseParen:                  "CloseParen",
	OpenBracket:                 "OpenBracket",
	CloseBracket:                "CloseBracket",
	OpenBrace:                   "OpenBrace",
	CloseBrace:                  "CloseBrace",
	Unrecognized:                "Unrecognized",
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

// Token is one lexical unit. Only Identifier and Unrecognized carry text.
type Token struct {
	Kind Kind
	Text string
}

// Tok returns a token without text.
func Tok(k Kind) Token { return Token{Kind: k} }

// String renders the token's debug form.
func (t Token) String() string {
	if t.Text == "" {
		return t.Kind.String()
	}
	return t.Kind.String() + "(" + strconv.Quote(t.Text) + ")"
}
