// Package parser classifies lexed tokens into the concept taxonomy and
// records them as knowledge components.
package parser

import (
	"fmt"
	"strings"

	"github.com/cognicore/kcx/pkg/kcx/taxonomy"
)

// outcome of classifying one token.
type outcome uint8

const (
	skip outcome = iota
	keep
	unhandled
)

// decision is what the classifier resolved a token to. token is the debug
// form of the resolved token, which differs from the lexed token for
// disambiguated kinds (Asterisk becomes Multiplication or Pointer).
type decision struct {
	token string
	value string
	chain taxonomy.Chain
}

func newDecision(t fmt.Stringer, text string, chain taxonomy.Chain) decision {
	value := text
	if value == "" {
		value = strings.ToLower(t.String())
	}
	return decision{token: t.String(), value: value, chain: chain}
}

// record inserts d unless its token was already seen.
func record(r *taxonomy.Registry, d decision, stamp string) bool {
	return r.Insert(taxonomy.Component{
		Token:          d.token,
		Value:          d.value,
		TimeStamp:      stamp,
		Classification: d.chain,
	})
}

// path wraps leaf in categories, listed innermost first.
func path(leaf fmt.Stringer, categories ...string) taxonomy.Chain {
	b := taxonomy.Leaf(leaf.String())
	for _, c := range categories {
		b.Wrap(c)
	}
	return b.Chain()
}

func statement(t fmt.Stringer, kind string) taxonomy.Chain {
	return path(t, kind, taxonomy.Statement)
}

func declaration(t fmt.Stringer, kind string) taxonomy.Chain {
	return path(t, kind, taxonomy.Declaration)
}

func declarator(t fmt.Stringer) taxonomy.Chain {
	return declaration(t, "Declarator")
}

func dataType(t fmt.Stringer, kind string) taxonomy.Chain {
	return path(t, kind, "DataType", taxonomy.Declaration)
}

func arithmeticType(t fmt.Stringer, kind string) taxonomy.Chain {
	return path(t, kind, "ArithmeticDataType", "DataType", taxonomy.Declaration)
}

func expression(t fmt.Stringer, kind string) taxonomy.Chain {
	return path(t, kind, taxonomy.Expression)
}

// namedExpression and namedDeclaration derive the category from the token
// name, e.g. "Yield Expression".
func namedExpression(t fmt.Stringer) taxonomy.Chain {
	return expression(t, t.String()+" Expression")
}

func namedDeclaration(t fmt.Stringer) taxonomy.Chain {
	return declaration(t, t.String()+" Declaration")
}
