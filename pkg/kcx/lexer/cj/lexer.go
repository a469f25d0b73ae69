package cj

import "github.com/cognicore/kcx/pkg/kcx/lexer"

type rule = lexer.Rule[Kind]

var keywords = [][]rule{
	lexer.Lits(For, "for"),
	lexer.Lits(While, "while"),
	lexer.Lits(DoWhile, "do"),
	lexer.Lits(Switch, "switch"),
	lexer.Lits(Case, "case"),
	lexer.Lits(Default, "default"),
	lexer.Lits(If, "if"),
	lexer.Lits(ElseIf, "elif"),
	lexer.Lits(Else, "else"),
	lexer.Lits(Break, "break"),
	lexer.Lits(Continue, "continue"),
	lexer.Lits(Goto, "goto"),
	lexer.Lits(Return, "return"),

	lexer.Lits(Unsigned, "unsigned"),
	lexer.Lits(Signed, "signed"),
	lexer.Lits(Char, "char", "char8_t", "char16_t", "char32_t", "wchar_t"),
	lexer.Lits(Int, "int"),
	lexer.Lits(Short, "short"),
	lexer.Lits(Long, "long"),
	lexer.Lits(Float, "float"),
	lexer.Lits(Double, "double"),
	lexer.Lits(Bool, "bool", "boolean"),
	lexer.Lits(String, "String", "string"),
	lexer.Lits(Enum, "enum"),
	lexer.Lits(Struct, "struct"),
	lexer.Lits(Union, "union"),
	lexer.Lits(Class, "class"),
	lexer.Lits(Template, "template"),
	lexer.Lits(Void, "void"),

	lexer.Lits(Auto, "auto"),
	lexer.Lits(Extern, "extern"),
	lexer.Lits(Register, "register"),
	lexer.Lits(Static, "static"),
	lexer.Lits(ThreadLocal, "_Thread_local", "thread_local"),
	lexer.Lits(Typedef, "typedef"),
	lexer.Lits(Decltype, "decltype"),
	lexer.Lits(Atomic, "_Atomic", "atomic_int"),
	lexer.Lits(Const, "const"),
	lexer.Lits(Restrict, "restrict"),
	lexer.Lits(Volatile, "volatile"),
	lexer.Lits(Mutable, "mutable"),
	lexer.Lits(Public, "public"),
	lexer.Lits(Protected, "protected"),
	lexer.Lits(Private, "private"),

	lexer.Lits(SizeOf, "sizeof"),
	lexer.Lits(TypeCast, "const_cast", "static_cast", "reinterpret_cast", "dynamic_cast"),
	lexer.Lits(New, "new"),
	lexer.Lits(Delete, "delete"),
	lexer.Lits(True, "true"),
	lexer.Lits(False, "false"),
	lexer.Lits(Null, "null", "Null", "NULL", "nullptr"),
	lexer.Lits(Using, "using"),
	lexer.Lits(Namespace, "namespace"),

	lexer.Lits(Import, "import"),
	lexer.Lits(Interface, "interface"),
	lexer.Lits(Abstract, "abstract"),
	lexer.Lits(Final, "final"),
	lexer.Lits(Native, "native"),
	lexer.Lits(Synchronized, "synchronized"),
	lexer.Lits(Transient, "transient"),
	lexer.Lits(StrictFp, "strictfp"),
	lexer.Lits(Assert, "assert"),
	lexer.Lits(Try, "try"),
	lexer.Lits(Catch, "catch"),
	lexer.Lits(Throws, "throws"),
	lexer.Lits(Throw, "throw"),
	lexer.Lits(Super, "super"),
	lexer.Lits(This, "this"),
	lexer.Lits(Extends, "extends"),
	lexer.Lits(Implements, "implements"),
	lexer.Lits(Package, "package"),
	lexer.Lits(Finally, "finally"),
	lexer.Lits(Var, "var"),
}

var operators = [][]rule{
	lexer.Lits(Plus, "+"),
	lexer.Lits(Minus, "-"),
	lexer.Lits(Asterisk, "*"),
	lexer.Lits(Divide, "/"),
	lexer.Lits(Modulo, "%"),
	lexer.Lits(AddAssignment, "+="),
	lexer.Lits(SubAssignment, "-="),
	lexer.Lits(MultAssignment, "*="),
	lexer.Lits(DivAssignment, "/="),
	lexer.Lits(ModAssignment, "%="),
	lexer.Lits(Assignment, "="),
	lexer.Lits(Ampersand, "&"),
	lexer.Lits(BitwiseOr, "|"),
	lexer.Lits(BitwiseXor, "^"),
	lexer.Lits(BitwiseNot, "~"),
	lexer.Lits(LeftOperator, "<<"),
	lexer.Lits(LeftShiftAssignment, "<<="),
	lexer.Lits(RightOperator, ">>"),
	lexer.Lits(RightShiftAssignment, ">>="),
	lexer.Lits(UnsignedRightShiftOperator, ">>>"),
	lexer.Lits(BitwiseAndAssignment, "&="),
	lexer.Lits(BitwiseOrAssignment, "|="),
	lexer.Lits(BitwiseXorAssignment, "^="),
	lexer.Lits(And, "&&"),
	lexer.Lits(Or, "||"),
	lexer.Lits(Not, "!"),
	lexer.Lits(ConditionalOperator, "?"),
	lexer.Lits(Greater, ">"),
	lexer.Lits(GreaterOrEquals, ">="),
	lexer.Lits(Less, "<"),
	lexer.Lits(LessOrEquals, "<="),
	lexer.Lits(Equals, "=="),
	lexer.Lits(NotEquals, "!="),
	lexer.Lits(ThreeWayComparison, "<=>"),
	lexer.Lits(DotOperator, "."),
	lexer.Lits(ArrowOperator, "->"),
	lexer.Lits(Increment, "++"),
	lexer.Lits(Decrement, "--"),
	lexer.Lits(ScopeResolution, "::"),
	lexer.Lits(Annotation, "@"),
	lexer.Lits(Semicolon, ";"),
	lexer.Lits(Colon, ":"),
	lexer.Lits(Comma, ","),
	lexer.Lits(OpenBrace, "{"),
	lexer.Lits(CloseBrace, "}"),
	lexer.Lits(OpenParen, "("),
	lexer.Lits(CloseParen, ")"),
	lexer.Lits(OpenBracket, "["),
	lexer.Lits(CloseBracket, "]"),
}

var patterns = []rule{
	// multi-word keywords tolerate OCR spacing
	lexer.Pat(ElseIf, `else[ \t]+if\b`),
	lexer.Pat(ShortInt, `short[ \t]+int\b`),
	lexer.Pat(LongInt, `long[ \t]+int\b`),
	lexer.Pat(LongLong, `long[ \t]+long\b`),
	lexer.Pat(LongLongInt, `long[ \t]+long[ \t]+int\b`),
	lexer.Pat(LongDouble, `long[ \t]+double\b`),

	lexer.Pat(Preprocessor, `#(?:define|undef|ifdef|ifndef|if|endif|else|elif|line|error|include|pragma)`).Capturing(),
	lexer.Pat(Identifier, `[A-Za-z_][A-Za-z0-9_]*`).Capturing(),
	lexer.Pat(Number, `[.0-9]+`).Capturing(),
	lexer.Pat(StringLiteral, `"(?:[^"\\\r\n]|\\.)*"`).Capturing(),
	lexer.Pat(CharLiteral, `'(?:[^'\\\r\n]|\\.)*'`).Capturing(),

	lexer.Pat(Unrecognized, `//[^\r\n]*`).Skipped(),
	lexer.Pat(Unrecognized, `/\*(?:[^*]|\*+[^*/])*\*+/`).Skipped(),
	lexer.Pat(Unrecognized, `[ \t]+`).Skipped(),
	lexer.Pat(LineBreak, `[\r\n]+`),
}

var grammar = lexer.NewGrammar(Unrecognized, append(append(keywords, operators...), patterns)...)

// Tokenize converts src into tokens. It never fails; input no rule matches
// becomes Unrecognized tokens.
func Tokenize(src string) []Token {
	lexemes := grammar.Scan(src)
	tokens := make([]Token, len(lexemes))
	for i, lx := range lexemes {
		tokens[i] = Token{Kind: lx.Kind, Text: lx.Text}
	}
	return tokens
}
