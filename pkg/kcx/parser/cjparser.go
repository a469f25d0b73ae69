package parser

import (
	"fmt"

	"github.com/cognicore/kcx/pkg/kcx/lexer"
	"github.com/cognicore/kcx/pkg/kcx/lexer/cj"
	"github.com/cognicore/kcx/pkg/kcx/metadata"
	"github.com/cognicore/kcx/pkg/kcx/taxonomy"
)

// CJParser records knowledge components for C, C++ and Java fragments.
type CJParser struct {
	source   string
	streams  streamSet
	registry *taxonomy.Registry
}

// NewCJParser creates a parser whose timestamps link into source.
func NewCJParser(source string, streams StreamNames) *CJParser {
	return &CJParser{
		source:   source,
		streams:  newStreamSet(streams),
		registry: taxonomy.NewRegistry(),
	}
}

// Parse lexes text and records every classified token not seen before.
// It returns the number of new components.
func (p *CJParser) Parse(text string, offset int) int {
	tokens := cj.Tokenize(text)
	w := lexer.NewWindow(tokens)
	stamp := metadata.TimestampURL(p.source, offset)

	added := 0
	for i := range tokens {
		d, out := classifyCJ(w, i, p.streams)
		if out == keep && record(p.registry, d, stamp) {
			added++
		}
	}
	return added
}

// Snapshot returns a copy of the components recorded so far.
func (p *CJParser) Snapshot() *taxonomy.Registry {
	return p.registry.Clone()
}

func keepCJ(t cj.Token, chain taxonomy.Chain) (decision, outcome) {
	return newDecision(t, t.Text, chain), keep
}

// resolveCJ records a disambiguated kind in place of the lexed one.
func resolveCJ(k cj.Kind, chain func(fmt.Stringer) taxonomy.Chain) (decision, outcome) {
	t := cj.Tok(k)
	return newDecision(t, "", chain(t)), keep
}

// classifyCJ decides the taxonomy of the token at i. Ambiguous operators look
// one token back or ahead; positions outside the fragment read as NoToken.
func classifyCJ(w lexer.Window[cj.Token], i int, streams streamSet) (decision, outcome) {
	t := w.At(i)
	prev, next := w.At(i-1), w.At(i+1)

	switch t.Kind {
	case cj.Preprocessor:
		return keepCJ(t, path(t, taxonomy.Preprocessor))

	// statements
	case cj.For, cj.While, cj.DoWhile:
		return keepCJ(t, statement(t, "Iteration"))
	case cj.Switch, cj.Case, cj.Default, cj.If, cj.ElseIf, cj.Else:
		return keepCJ(t, statement(t, "Condition"))
	case cj.Break, cj.Continue, cj.Goto, cj.Return:
		return keepCJ(t, statement(t, "Jump"))
	case cj.Label:
		return keepCJ(t, statement(t, "Label"))
	case cj.Colon:
		if prev.Kind == cj.Identifier && atStatementStart(w.At(i-2)) {
			return resolveCJ(cj.Label, func(t fmt.Stringer) taxonomy.Chain { return statement(t, "Label") })
		}
		return decision{}, skip
	case cj.Try, cj.Catch, cj.Finally:
		return keepCJ(t, statement(t, "TryBlock"))
	case cj.Throw, cj.Throws:
		return keepCJ(t, statement(t, "ThrowStatement"))

	// data types
	case cj.Unsigned, cj.Signed:
		return keepCJ(t, arithmeticType(t, "Sign"))
	case cj.Char:
		return keepCJ(t, arithmeticType(t, "Character"))
	case cj.Int, cj.Short, cj.ShortInt, cj.Long, cj.LongInt, cj.LongLong, cj.LongLongInt:
		return keepCJ(t, arithmeticType(t, "IntegerNumber"))
	case cj.Float, cj.Double, cj.LongDouble:
		return keepCJ(t, arithmeticType(t, "FloatingPointNumber"))
	case cj.Bool:
		return keepCJ(t, dataType(t, "Boolean"))
	case cj.String:
		return keepCJ(t, dataType(t, "StringType"))
	case cj.Enum, cj.Struct, cj.Union, cj.Class, cj.Template:
		return keepCJ(t, dataType(t, "ElaboratedTypeSpecifier"))
	case cj.Void:
		return keepCJ(t, dataType(t, "Void"))
	case cj.Interface:
		return keepCJ(t, dataType(t, "AbstractDataType"))
	case cj.Var:
		return keepCJ(t, dataType(t, "VarDataType"))

	// declarators
	case cj.OpenBracket:
		return resolveCJ(cj.Array, declarator)
	case cj.OpenParen:
		// Only the token right before "(" is consulted, so "int main(" and
		// "if (" both count as calls.
		if isTypeKeyword(prev.Kind) {
			return resolveCJ(cj.Function, declarator)
		}
		return resolveCJ(cj.FunctionCall, func(t fmt.Stringer) taxonomy.Chain { return expression(t, "FunctionCall") })
	case cj.Asterisk:
		if prev.IsOperand() {
			return resolveCJ(cj.Multiplication, arithmetic)
		}
		return resolveCJ(cj.Pointer, declarator)
	case cj.Pointer, cj.Function, cj.Array:
		return keepCJ(t, declarator(t))
	case cj.FunctionCall:
		return keepCJ(t, expression(t, "FunctionCall"))

	// storage, qualifiers, modifiers
	case cj.Auto, cj.Extern, cj.Register, cj.Static, cj.ThreadLocal, cj.Typedef, cj.Decltype:
		return keepCJ(t, declaration(t, "StorageClass"))
	case cj.Atomic, cj.Const, cj.Restrict, cj.Volatile, cj.Mutable:
		return keepCJ(t, declaration(t, "TypeQualifier"))
	case cj.Public, cj.Protected, cj.Private:
		return keepCJ(t, declaration(t, "AccessSpecifier"))
	case cj.Using:
		return keepCJ(t, declaration(t, "Using"))
	case cj.Namespace:
		return keepCJ(t, declaration(t, "Namespace"))
	case cj.Annotation, cj.Abstract, cj.Final, cj.Native, cj.Synchronized, cj.Transient, cj.StrictFp, cj.Assert:
		return keepCJ(t, declaration(t, "Modifier"))
	case cj.Extends, cj.Implements:
		return keepCJ(t, declaration(t, "ClassExtension"))
	case cj.Import, cj.Package:
		return keepCJ(t, path(t, taxonomy.CompilationUnit))

	// arithmetic and assignment
	case cj.Plus, cj.Minus, cj.Multiplication, cj.Divide, cj.Modulo:
		return keepCJ(t, arithmetic(t))
	case cj.AddAssignment, cj.SubAssignment, cj.MultAssignment, cj.DivAssignment, cj.ModAssignment, cj.Assignment:
		return keepCJ(t, expression(t, "Assignment"))

	// bitwise
	case cj.Ampersand:
		if prev.IsOperand() {
			return resolveCJ(cj.BitwiseAnd, bitwise)
		}
		return resolveCJ(cj.Reference, func(t fmt.Stringer) taxonomy.Chain { return expression(t, "MemberAccess") })
	case cj.Reference:
		return keepCJ(t, expression(t, "MemberAccess"))
	case cj.BitwiseAnd, cj.BitwiseOr, cj.BitwiseXor, cj.BitwiseNot, cj.LeftShift, cj.RightShift,
		cj.LeftShiftAssignment, cj.RightShiftAssignment, cj.BitwiseAndAssignment,
		cj.BitwiseOrAssignment, cj.BitwiseXorAssignment, cj.UnsignedRightShiftOperator:
		return keepCJ(t, bitwise(t))
	case cj.LeftOperator:
		if prev.Kind == cj.Identifier && streams.isOutput(prev.Text) {
			return decision{}, skip
		}
		return resolveCJ(cj.LeftShift, bitwise)
	case cj.RightOperator:
		if prev.Kind == cj.Identifier && streams.isInput(prev.Text) {
			return decision{}, skip
		}
		return resolveCJ(cj.RightShift, bitwise)

	// other expressions
	case cj.And, cj.Or, cj.Not:
		return keepCJ(t, expression(t, "Logical"))
	case cj.SizeOf:
		return keepCJ(t, expression(t, "SizeOf"))
	case cj.TypeCast:
		return keepCJ(t, expression(t, "TypeCast"))
	case cj.ConditionalOperator:
		return keepCJ(t, expression(t, "ConditionalOperator"))
	case cj.GreaterOrEquals, cj.LessOrEquals, cj.Equals, cj.NotEquals, cj.ThreeWayComparison:
		return keepCJ(t, expression(t, "Comparison"))
	case cj.Less, cj.Greater:
		// Only "ident < number" counts; identifier-to-identifier comparisons
		// and template brackets are dropped.
		if next.Kind == cj.Number && prev.Kind == cj.Identifier {
			return keepCJ(t, expression(t, "Comparison"))
		}
		return decision{}, skip
	case cj.Increment:
		if next.IsOperand() {
			return resolveCJ(cj.PrefixIncrement, increment)
		}
		return resolveCJ(cj.PostfixIncrement, increment)
	case cj.Decrement:
		if next.IsOperand() {
			return resolveCJ(cj.PrefixDecrement, decrement)
		}
		return resolveCJ(cj.PostfixDecrement, decrement)
	case cj.PrefixIncrement, cj.PostfixIncrement:
		return keepCJ(t, increment(t))
	case cj.PrefixDecrement, cj.PostfixDecrement:
		return keepCJ(t, decrement(t))
	case cj.New, cj.Delete:
		return keepCJ(t, expression(t, "MemoryAllocation"))
	case cj.ScopeResolution:
		return keepCJ(t, path(t, "ScopeResolution", "NestedSpecifier", taxonomy.Expression))
	case cj.True, cj.False, cj.Null:
		return keepCJ(t, expression(t, "PredefinedConstant"))
	case cj.Super, cj.This:
		return keepCJ(t, path(t, "AbstractDataType", "PrimaryExpression", taxonomy.Expression))

	// TODO: classify member access once "." and "->" can be told apart from
	// decimal points in OCR output.
	case cj.DotOperator, cj.ArrowOperator:
		return decision{}, skip

	case cj.NoToken, cj.Identifier, cj.Number, cj.StringLiteral, cj.CharLiteral,
		cj.Semicolon, cj.Comma, cj.LineBreak, cj.OpenBrace, cj.CloseBrace,
		cj.CloseParen, cj.CloseBracket, cj.Unrecognized:
		return decision{}, skip
	}

	return decision{}, unhandled
}

func arithmetic(t fmt.Stringer) taxonomy.Chain { return expression(t, "Arithmetic") }
func bitwise(t fmt.Stringer) taxonomy.Chain    { return expression(t, "Bitwise") }
func increment(t fmt.Stringer) taxonomy.Chain  { return expression(t, "Increment") }
func decrement(t fmt.Stringer) taxonomy.Chain  { return expression(t, "Decrement") }

// isTypeKeyword reports whether k names a type, so a following "(" opens a
// function declarator.
func isTypeKeyword(k cj.Kind) bool {
	switch k {
	case cj.Unsigned, cj.Signed, cj.Char, cj.Int, cj.Short, cj.ShortInt, cj.Long, cj.LongInt,
		cj.LongLong, cj.LongLongInt, cj.Float, cj.Double, cj.LongDouble, cj.Bool, cj.String,
		cj.Void, cj.Auto, cj.Var:
		return true
	}
	return false
}

func atStatementStart(t cj.Token) bool {
	switch t.Kind {
	case cj.NoToken, cj.LineBreak, cj.Semicolon, cj.OpenBrace, cj.CloseBrace:
		return true
	}
	return false
}
