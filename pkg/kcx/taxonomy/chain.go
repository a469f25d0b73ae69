// Package taxonomy holds the concept taxonomy data model: category chains,
// knowledge components and the first-seen registry.
package taxonomy

import (
	"encoding/json"
	"strings"
)

// Root categories.
const (
	Statement       = "Statement"
	Declaration     = "Declaration"
	Expression      = "Expression"
	Preprocessor    = "Preprocessor"
	CompilationUnit = "CompilationUnit"
)

// Chain is a linear category path, outermost first. The last element is the
// token's own debug form.
type Chain []string

// Root returns the outermost category, or "" for an empty chain.
func (c Chain) Root() string {
	if len(c) == 0 {
		return ""
	}
	return c[0]
}

// Leaf returns the innermost element.
func (c Chain) Leaf() string {
	if len(c) == 0 {
		return ""
	}
	return c[len(c)-1]
}

// Contains reports whether name appears anywhere on the path.
func (c Chain) Contains(name string) bool {
	for _, n := range c {
		if n == name {
			return true
		}
	}
	return false
}

func (c Chain) String() string {
	return strings.Join(c, " → ")
}

// node is the nested export form: {"name": ..., "child": node|null}.
type node struct {
	Name  string `json:"name"`
	Child *node  `json:"child"`
}

// MarshalJSON encodes the chain as nested nodes.
func (c Chain) MarshalJSON() ([]byte, error) {
	if len(c) == 0 {
		return []byte("null"), nil
	}
	var head *node
	for i := len(c) - 1; i >= 0; i-- {
		head = &node{Name: c[i], Child: head}
	}
	return json.Marshal(head)
}

// UnmarshalJSON decodes the nested node form.
func (c *Chain) UnmarshalJSON(data []byte) error {
	var head *node
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	var out Chain
	for n := head; n != nil; n = n.Child {
		out = append(out, n.Name)
	}
	*c = out
	return nil
}

// Builder assembles a chain from the leaf outward.
type Builder struct {
	inner []string // innermost first
}

// Leaf starts a chain at the token's own representation.
func Leaf(name string) *Builder {
	b := &Builder{inner: make([]string, 1, 6)}
	b.inner[0] = name
	return b
}

// Wrap adds an enclosing category.
func (b *Builder) Wrap(name string) *Builder {
	b.inner = append(b.inner, name)
	return b
}

// Chain freezes the builder into an outermost-first chain.
func (b *Builder) Chain() Chain {
	out := make(Chain, len(b.inner))
	for i, name := range b.inner {
		out[len(b.inner)-1-i] = name
	}
	return out
}
