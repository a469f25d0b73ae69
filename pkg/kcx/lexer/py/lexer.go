package py

import "github.com/cognicore/kcx/pkg/kcx/lexer"

type rule = lexer.Rule[Kind]

var keywords = [][]rule{
	lexer.Lits(For, "for"),
	lexer.Lits(While, "while"),
	lexer.Lits(Break, "break"),
	lexer.Lits(Continue, "continue"),
	lexer.Lits(Return, "return"),
	lexer.Lits(Pass, "pass"),
	lexer.Lits(Match, "match"),
	lexer.Lits(Case, "case"),
	lexer.Lits(If, "if"),
	lexer.Lits(Elif, "elif"),
	lexer.Lits(Else, "else"),
	lexer.Lits(Try, "try"),
	lexer.Lits(Except, "except"),
	lexer.Lits(Finally, "finally"),
	lexer.Lits(Raise, "raise"),
	lexer.Lits(Import, "import"),
	lexer.Lits(From, "from"),

	lexer.Lits(Float, "float"),
	lexer.Lits(Int, "int"),
	lexer.Lits(Complex, "complex"),
	lexer.Lits(True, "True"),
	lexer.Lits(False, "False"),
	lexer.Lits(Bool, "bool"),
	lexer.Lits(List, "list"),
	lexer.Lits(Tuple, "tuple"),
	lexer.Lits(Dict, "dict"),
	lexer.Lits(Set, "set"),
	lexer.Lits(Bytes, "bytes"),
	lexer.Lits(Class, "class"),
	lexer.Lits(None, "None"),

	lexer.Lits(FunctionDefinition, "def"),
	lexer.Lits(Final, "@final"),
	lexer.Lits(Overload, "@overload"),
	lexer.Lits(Global, "global"),

	lexer.Lits(LogicalAnd, "and"),
	lexer.Lits(LogicalOr, "or"),
	lexer.Lits(LogicalNot, "not"),
	lexer.Lits(Is, "is"),
	lexer.Lits(In, "in"),
	lexer.Lits(Yield, "yield"),
	lexer.Lits(Async, "async"),
	lexer.Lits(Await, "await"),
	lexer.Lits(Lambda, "lambda"),
}

var operators = [][]rule{
	lexer.Lits(Decorator, "@"),
	lexer.Lits(Addition, "+"),
	lexer.Lits(AddAssignment, "+="),
	lexer.Lits(Subtraction, "-"),
	lexer.Lits(SubAssignment, "-="),
	lexer.Lits(Multiplication, "*"),
	lexer.Lits(MultAssignment, "*="),
	lexer.Lits(Division, "/"),
	lexer.Lits(DivAssignment, "/="),
	lexer.Lits(FloorDivision, "//"),
	lexer.Lits(FloorDivAssignment, "//="),
	lexer.Lits(Modulo, "%"),
	lexer.Lits(ModAssignment, "%="),
	lexer.Lits(Exponentiation, "**"),
	lexer.Lits(ExpAssignment, "**="),
	lexer.Lits(Assignment, "="),
	lexer.Lits(AssignmentExpression, ":="),
	lexer.Lits(BitwiseAnd, "&"),
	lexer.Lits(BitwiseAndAssignment, "&="),
	lexer.Lits(BitwiseOr, "|"),
	lexer.Lits(BitwiseOrAssignment, "|="),
	lexer.Lits(BitwiseXor, "^"),
	lexer.Lits(BitwiseXorAssignment, "^="),
	lexer.Lits(BitwiseNot, "~"),
	lexer.Lits(BitwiseLeftShift, "<<"),
	lexer.Lits(BitwiseLeftShiftAssignment, "<<="),
	lexer.Lits(BitwiseRightShift, ">>"),
	lexer.Lits(BitwiseRightShiftAssignment, ">>="),
	lexer.Lits(Greater, ">"),
	lexer.Lits(GreaterOrEquals, ">="),
	lexer.Lits(Less, "<"),
	lexer.Lits(LessOrEquals, "<="),
	lexer.Lits(Equal, "=="),
	lexer.Lits(NotEquals, "!="),
	lexer.Lits(MemberAccess, "."),
	lexer.Lits(Colon, ":"),
	lexer.Lits(Comma, ","),
	lexer.Lits(Semicolon, ";"),
	lexer.Lits(OpenParen, "("),
	lexer.Lits(CloseParen, ")"),
	lexer.Lits(OpenBracket, "["),
	lexer.Lits(CloseBracket, "]"),
	lexer.Lits(OpenBrace, "{"),
	lexer.Lits(CloseBrace, "}"),
}

var patterns = []rule{
	lexer.Pat(IsNot, `is[ \t]+not\b`),
	lexer.Pat(NotIn, `not[ \t]+in\b`),

	lexer.Pat(Float, `[0-9]*[.][0-9]+`),
	lexer.Pat(Int, `[0-9]+`),
	lexer.Pat(Complex, `[0-9]+j`),
	lexer.Pat(List, `\[[a-zA-Z0-9,]*\]`),
	lexer.Pat(Tuple, `\([a-zA-Z0-9,]*\)`),
	lexer.Pat(Dict, `\{[a-zA-Z0-9,:]*\}`),
	lexer.Pat(String, `"(?s:[^"\\]|\\.)*"|'(?s:[^'\\]|\\.)*'`),
	lexer.Pat(Function, `[A-Za-z0-9_]+\([A-Za-z0-9_, ]*\)`),
	lexer.Pat(Identifier, `[A-Za-z_][A-Za-z0-9_]*`).Capturing(),

	lexer.Pat(Unrecognized, `#[^\r\n]*`).Skipped(),
	lexer.Pat(Unrecognized, `[ \t\r\n]+`).Skipped(),
}

var grammar = lexer.NewGrammar(Unrecognized, append(append(keywords, operators...), patterns)...)

// Tokenize converts src into tokens. Comments, whitespace and line breaks
// are dropped; unmatched input becomes Unrecognized tokens.
func Tokenize(src string) []Token {
	lexemes := grammar.Scan(src)
	tokens := make([]Token, len(lexemes))
	for i, lx := range lexemes {
		tokens[i] = Token{Kind: lx.Kind, Text: lx.Text}
	}
	return tokens
}
