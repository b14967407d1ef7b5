package eval

// Mapping is an evaluated model node: the input node's non-reserved keys in
// their original order, each bound to an evaluated value. Entry values are
// cty.Value for scalar results, *Mapping for evaluated sub-models, or an
// opaque constructed component.
type Mapping struct {
	keys    []string
	entries map[string]any
}

// NewMapping returns an empty result mapping.
func NewMapping() *Mapping {
	return &Mapping{entries: map[string]any{}}
}

// Set binds a key, appending to the order if new.
func (m *Mapping) Set(key string, v any) {
	if _, exists := m.entries[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.entries[key] = v
}

// Get returns the value bound to key.
func (m *Mapping) Get(key string) (any, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// Keys returns the keys in insertion order. The slice is shared; callers
// must not modify it.
func (m *Mapping) Keys() []string {
	return m.keys
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	return len(m.keys)
}
