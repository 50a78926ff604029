package routepattern

// QueryTemplate is the compiled query portion of a pattern. It records which
// query keys a route recognizes and the route field each key maps to.
type QueryTemplate struct {
	keys   []string
	fields map[string]string
}

func newQueryTemplate() *QueryTemplate {
	return &QueryTemplate{fields: make(map[string]string)}
}

// NewQueryTemplate builds a template from key/field pairs, applying the same
// rules as Parse: a key declared twice keeps its first position and its last
// mapping.
func NewQueryTemplate(pairs ...[2]string) *QueryTemplate {
	t := newQueryTemplate()
	for _, p := range pairs {
		if p[0] == "" {
			continue
		}
		field := p[1]
		if field == "" {
			field = p[0]
		}
		t.add(p[0], field)
	}
	return t
}

// add registers key -> field. The last mapping for a key wins.
func (t *QueryTemplate) add(key, field string) {
	if _, seen := t.fields[key]; !seen {
		t.keys = append(t.keys, key)
	}
	t.fields[key] = field
}

// Keys returns the declared keys in first-declaration order.
func (t *QueryTemplate) Keys() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Len returns the number of declared keys.
func (t *QueryTemplate) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Has reports whether key is declared.
func (t *QueryTemplate) Has(key string) bool {
	if t == nil {
		return false
	}
	_, ok := t.fields[key]
	return ok
}

// Field returns the field name key maps to, or "" if key is not declared.
func (t *QueryTemplate) Field(key string) string {
	if t == nil {
		return ""
	}
	return t.fields[key]
}

// Lookup returns the field name key maps to.
func (t *QueryTemplate) Lookup(key string) (string, bool) {
	if t == nil {
		return "", false
	}
	field, ok := t.fields[key]
	return field, ok
}
