package lexer

// Window gives bounds-safe access to a materialized token sequence.
// Positions outside the sequence yield the zero value, which every grammar
// reserves as its "no token" sentinel.
type Window[T any] struct {
	items []T
}

// NewWindow wraps items without copying.
func NewWindow[T any](items []T) Window[T] {
	return Window[T]{items: items}
}

// At returns the item at i, or the zero value when i is out of range.
func (w Window[T]) At(i int) T {
	var zero T
	if i < 0 || i >= len(w.items) {
		return zero
	}
	return w.items[i]
}

// Len is the number of items in the window.
func (w Window[T]) Len() int { return len(w.items) }
