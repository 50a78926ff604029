package routepattern

import "strings"

// TokenKind distinguishes literal segments from parameter placeholders.
type TokenKind int

const (
	// Static matches a path segment literally.
	Static TokenKind = iota

	// Param captures a path segment under a field name.
	Param
)

// String returns the kind name.
func (k TokenKind) String() string {
	switch k {
	case Static:
		return "static"
	case Param:
		return "param"
	default:
		return "unknown"
	}
}

// Token is a compiled path-pattern element.
type Token struct {
	// Kind is Static or Param.
	Kind TokenKind

	// Value is the literal text for Static tokens and the field name for Param tokens.
	Value string
}

// StaticToken returns a literal token.
func StaticToken(text string) Token {
	return Token{Kind: Static, Value: text}
}

// ParamToken returns a parameter token.
func ParamToken(name string) Token {
	return Token{Kind: Param, Value: name}
}

// String renders the token as it appears in a pattern.
func (t Token) String() string {
	if t.Kind == Param {
		return "{" + t.Value + "}"
	}
	return t.Value
}

// Spec is a compiled route pattern. It is immutable once parsed.
type Spec struct {
	// Tokens are the path tokens in order.
	Tokens []Token

	// Query is the query template, nil when the pattern declares no "?" part.
	Query *QueryTemplate
}

// Parse compiles a pattern string.
//
// The path portion is everything before the first "?". Leading and trailing
// slashes are ignored and empty segments are dropped, so "/" and "" compile
// to zero tokens. A segment of the form {name} becomes a Param token, any
// other segment a Static token.
//
// The query portion is split on "&". Entries are trimmed and blank entries
// discarded. "key={field}" maps key to field and a bare "key" maps to itself.
// An absent or empty query portion yields a nil template.
func Parse(pattern string) Spec {
	path, query, hasQuery := strings.Cut(pattern, "?")

	spec := Spec{Tokens: parsePath(path)}
	if hasQuery && strings.TrimSpace(query) != "" {
		spec.Query = parseQuery(query)
	}
	return spec
}

// parsePath splits the path portion into tokens.
func parsePath(path string) []Token {
	segments := splitPath(path)
	if len(segments) == 0 {
		return nil
	}

	tokens := make([]Token, 0, len(segments))
	for _, seg := range segments {
		if name, ok := paramName(seg); ok {
			tokens = append(tokens, ParamToken(name))
		} else {
			tokens = append(tokens, StaticToken(seg))
		}
	}
	return tokens
}

// parseQuery compiles the query portion into a template.
func parseQuery(query string) *QueryTemplate {
	tmpl := newQueryTemplate()
	for _, entry := range strings.Split(query, "&") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		key, value, hasValue := strings.Cut(entry, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		field := key
		if hasValue {
			if name, ok := paramName(strings.TrimSpace(value)); ok {
				field = name
			}
		}
		tmpl.add(key, field)
	}
	return tmpl
}

// splitPath splits a path into non-empty segments.
func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}

	parts := strings.Split(path, "/")
	segments := parts[:0]
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// paramName extracts the name from a "{name}" segment.
func paramName(seg string) (string, bool) {
	if len(seg) < 3 || seg[0] != '{' || seg[len(seg)-1] != '}' {
		return "", false
	}
	name := strings.TrimSpace(seg[1 : len(seg)-1])
	if name == "" {
		return "", false
	}
	return name, true
}

// SegmentCount returns the number of path tokens.
func (s Spec) SegmentCount() int {
	return len(s.Tokens)
}

// ParamNames returns the names of the Param tokens in path order.
func (s Spec) ParamNames() []string {
	var names []string
	for _, t := range s.Tokens {
		if t.Kind == Param {
			names = append(names, t.Value)
		}
	}
	return names
}

// HasQuery reports whether the pattern declared a query template.
func (s Spec) HasQuery() bool {
	return s.Query != nil
}

// String renders the canonical form of the pattern.
func (s Spec) String() string {
	var b strings.Builder
	b.WriteByte('/')
	for i, t := range s.Tokens {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(t.String())
	}
	if s.Query != nil && s.Query.Len() > 0 {
		b.WriteByte('?')
		for i, key := range s.Query.Keys() {
			if i > 0 {
				b.WriteByte('&')
			}
			b.WriteString(key)
			if field := s.Query.Field(key); field != key {
				b.WriteString("={" + field + "}")
			}
		}
	}
	return b.String()
}

// BuildComponents turns field values into path segments and query params.
//
// Static tokens pass through verbatim and Param tokens substitute the field
// of the same name; a missing field substitutes the empty string. Query params
// are produced only from the template: each declared key whose mapped field is
// present in fields. Fields the template does not reference are ignored, and a
// spec without a template returns an empty query map so callers can apply
// their own policy for the remaining fields.
func (s Spec) BuildComponents(fields map[string]string) (segments []string, query map[string]string) {
	segments = make([]string, 0, len(s.Tokens))
	for _, t := range s.Tokens {
		if t.Kind == Param {
			segments = append(segments, fields[t.Value])
		} else {
			segments = append(segments, t.Value)
		}
	}

	query = make(map[string]string)
	if s.Query == nil {
		return segments, query
	}
	for _, key := range s.Query.Keys() {
		if value, ok := fields[s.Query.Field(key)]; ok {
			query[key] = value
		}
	}
	return segments, query
}
