package parser

import (
	"github.com/cognicore/kcx/pkg/kcx/lexer"
	"github.com/cognicore/kcx/pkg/kcx/lexer/py"
	"github.com/cognicore/kcx/pkg/kcx/metadata"
	"github.com/cognicore/kcx/pkg/kcx/taxonomy"
)

// PyParser records knowledge components for Python fragments.
type PyParser struct {
	source   string
	registry *taxonomy.Registry
}

// NewPyParser creates a parser whose timestamps link into source.
func NewPyParser(source string) *PyParser {
	return &PyParser{source: source, registry: taxonomy.NewRegistry()}
}

// Parse lexes text and records every classified token not seen before.
// It returns the number of new components.
func (p *PyParser) Parse(text string, offset int) int {
	tokens := py.Tokenize(text)
	w := lexer.NewWindow(tokens)
	stamp := metadata.TimestampURL(p.source, offset)

	added := 0
	for i := range tokens {
		d, out := classifyPy(w, i)
		if out == keep && record(p.registry, d, stamp) {
			added++
		}
	}
	return added
}

// Snapshot returns a copy of the components recorded so far.
func (p *PyParser) Snapshot() *taxonomy.Registry {
	return p.registry.Clone()
}

func keepPy(t py.Token, chain taxonomy.Chain) (decision, outcome) {
	return newDecision(t, t.Text, chain), keep
}

// classifyPy decides the taxonomy of the token at i. The Python grammar
// needs no look-around; the window keeps the signature uniform with C.
func classifyPy(w lexer.Window[py.Token], i int) (decision, outcome) {
	t := w.At(i)

	switch t.Kind {
	// statements
	case py.For, py.While:
		return keepPy(t, statement(t, "Iteration"))
	case py.Match, py.Case, py.If, py.Elif, py.Else:
		return keepPy(t, statement(t, "Condition"))
	case py.Break, py.Continue, py.Return, py.Pass:
		return keepPy(t, statement(t, "Jump"))
	case py.Try, py.Except, py.Finally:
		return keepPy(t, statement(t, "TryBlock"))
	case py.Raise:
		return keepPy(t, statement(t, "ThrowStatement"))
	case py.Import, py.From:
		return keepPy(t, path(t, taxonomy.CompilationUnit))

	// data types
	case py.Float:
		return keepPy(t, arithmeticType(t, "FloatingPointNumber"))
	case py.Int:
		return keepPy(t, arithmeticType(t, "IntegerNumber"))
	case py.Complex:
		return keepPy(t, arithmeticType(t, "Complex"))
	case py.Bool, py.True, py.False:
		return keepPy(t, arithmeticType(t, "Boolean"))
	case py.List:
		return keepPy(t, dataType(t, "List"))
	case py.Tuple:
		return keepPy(t, dataType(t, "Tuple"))
	case py.Dict:
		return keepPy(t, dataType(t, "Dict"))
	case py.Set:
		return keepPy(t, dataType(t, "Set"))
	case py.Bytes:
		return keepPy(t, dataType(t, "Bytes"))
	case py.Class:
		return keepPy(t, dataType(t, "ClassType"))
	case py.String:
		return keepPy(t, dataType(t, "StringType"))
	case py.None:
		return keepPy(t, dataType(t, "NoneType"))

	// declarations
	case py.FunctionDefinition, py.Decorator, py.Final, py.Overload:
		return keepPy(t, declarator(t))
	case py.Global, py.Async:
		return keepPy(t, namedDeclaration(t))

	// expressions
	case py.Addition, py.Subtraction, py.Multiplication, py.Division,
		py.FloorDivision, py.Modulo, py.Exponentiation:
		return keepPy(t, expression(t, "Arithmetic"))
	case py.AddAssignment, py.SubAssignment, py.MultAssignment, py.DivAssignment,
		py.FloorDivAssignment, py.ModAssignment, py.ExpAssignment, py.Assignment,
		py.AssignmentExpression:
		return keepPy(t, expression(t, "Assignment"))
	case py.BitwiseAnd, py.BitwiseAndAssignment, py.BitwiseOr, py.BitwiseOrAssignment,
		py.BitwiseXor, py.BitwiseXorAssignment, py.BitwiseNot, py.BitwiseLeftShift,
		py.BitwiseLeftShiftAssignment, py.BitwiseRightShift, py.BitwiseRightShiftAssignment:
		return keepPy(t, expression(t, "Bitwise"))
	case py.Function:
		return keepPy(t, expression(t, "FunctionCall"))
	case py.LogicalAnd, py.LogicalOr, py.LogicalNot:
		return keepPy(t, expression(t, "Logical"))
	case py.Greater, py.GreaterOrEquals, py.Less, py.LessOrEquals, py.Equal, py.NotEquals:
		return keepPy(t, expression(t, "Comparison"))
	case py.MemberAccess:
		return keepPy(t, expression(t, "MemberAccess"))
	case py.Is, py.IsNot:
		return keepPy(t, expression(t, "Identity"))
	case py.In, py.NotIn:
		return keepPy(t, expression(t, "Membership"))
	case py.Yield, py.Await, py.Lambda:
		return keepPy(t, namedExpression(t))

	case py.NoToken, py.Identifier, py.Colon, py.Comma, py.Semicolon,
		py.OpenParen, py.CloseParen, py.OpenBracket, py.CloseBracket,
		py.OpenBrace, py.CloseBrace, py.Unrecognized:
		return decision{}, skip
	}

	return decision{}, unhandled
}
