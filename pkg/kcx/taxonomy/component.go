package taxonomy

// Component is one knowledge component: the first time a concept was shown.
// Token is the identity; two components with the same Token are the same
// concept regardless of the other fields.
type Component struct {
	Token          string `json:"token"`
	Value          string `json:"value"`
	TimeStamp      string `json:"timeStamp"`
	Classification Chain  `json:"classification"`
}

// Registry is an insertion-ordered set of components keyed by Token.
// The first inserted component for a token is kept forever.
type Registry struct {
	items []Component
	index map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Insert adds c unless a component with the same Token exists.
// It reports whether c was added.
func (r *Registry) Insert(c Component) bool {
	if _, ok := r.index[c.Token]; ok {
		return false
	}
	r.index[c.Token] = len(r.items)
	r.items = append(r.items, c)
	return true
}

// Get returns the component recorded for token.
func (r *Registry) Get(token string) (Component, bool) {
	i, ok := r.index[token]
	if !ok {
		return Component{}, false
	}
	return r.items[i], true
}

// Has reports whether token is recorded.
func (r *Registry) Has(token string) bool {
	_, ok := r.index[token]
	return ok
}

// Len returns the number of distinct components.
func (r *Registry) Len() int { return len(r.items) }

// Components returns the components in first-seen order. The slice is a copy.
func (r *Registry) Components() []Component {
	out := make([]Component, len(r.items))
	copy(out, r.items)
	return out
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	out := &Registry{
		items: make([]Component, len(r.items)),
		index: make(map[string]int, len(r.index)),
	}
	for i, c := range r.items {
		c.Classification = append(Chain(nil), c.Classification...)
		out.items[i] = c
		out.index[c.Token] = i
	}
	return out
}

// RegistryFrom rebuilds a registry from components, keeping the first of
// any duplicates.
func RegistryFrom(components []Component) *Registry {
	r := NewRegistry()
	for _, c := range components {
		r.Insert(c)
	}
	return r
}
