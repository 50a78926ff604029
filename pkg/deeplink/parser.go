package deeplink

import (
	"net/url"
	"strings"

	"github.com/yral-dev/deeplink/pkg/routepattern"
)

// Parser resolves URLs and parameter maps to routes.
//
// Parse never fails: any input that does not resolve to an externally
// reachable route yields Unknown, without saying why. A Parser holds no
// mutable state and is safe for concurrent use.
type Parser struct {
	table    *Table
	hostless map[string]bool
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithHostlessSchemes treats the authority of URLs with these schemes as
// the first path segment, so "yralm://post/details/1" is matched as
// /post/details/1. This mirrors URLBuilder's output when its host is empty.
func WithHostlessSchemes(schemes ...string) ParserOption {
	return func(p *Parser) {
		for _, s := range schemes {
			if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
				p.hostless[s] = true
			}
		}
	}
}

// NewParser creates a parser over table.
func NewParser(table *Table, opts ...ParserOption) *Parser {
	p := &Parser{
		table:    table,
		hostless: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse resolves a URL.
//
// The path must have exactly as many segments as an entry's pattern has
// tokens; a trailing slash is tolerated. Static tokens must equal the
// percent-decoded segment and Param tokens capture it. Query values join the
// captured params: through the entry's query template when it has one (other
// keys are dropped), otherwise all of them. Path params win over query
// values for the same field. Entries are tried in table order; an entry
// whose serializer rejects the fields is skipped, and a match on an internal
// entry stops the search with Unknown.
func (p *Parser) Parse(rawURL string) Route {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return Unknown
	}

	u, err := url.Parse(p.authorityAsPath(rawURL))
	if err != nil || u.Opaque != "" {
		return Unknown
	}

	segments, ok := p.pathSegments(u)
	if !ok {
		return Unknown
	}

	// Malformed pairs are skipped; the rest of the query still applies.
	query, _ := url.ParseQuery(u.RawQuery)

	entries := p.table.list()
	for i := range entries {
		e := &entries[i]
		params, ok := matchPath(e, segments)
		if !ok {
			continue
		}
		mergeQuery(e, params, query)

		route, ok := decode(e.Serializer, params)
		if !ok {
			continue
		}
		if e.Internal {
			return Unknown
		}
		return route
	}
	return Unknown
}

// ParseParams resolves a flat parameter map such as a push payload.
//
// The map must name its route with RouteIDKey; matching on field names alone
// is never attempted. The remaining pairs are decoded by that entry's
// serializer. Internal routes and decode failures yield Unknown.
func (p *Parser) ParseParams(params map[string]string) Route {
	id, ok := params[RouteIDKey]
	if !ok {
		return Unknown
	}
	e, ok := p.table.Lookup(id)
	if !ok {
		return Unknown
	}

	fields := make(map[string]string, len(params))
	for k, v := range params {
		if k != RouteIDKey {
			fields[k] = v
		}
	}

	route, ok := decode(e.Serializer, fields)
	if !ok || e.Internal {
		return Unknown
	}
	return route
}

// authorityAsPath rewrites "scheme://a/b" to "scheme:///a/b" for hostless
// schemes. The authority then goes through segment decoding like any other
// segment instead of url.Parse's host rules, which reject escapes such as %40.
func (p *Parser) authorityAsPath(rawURL string) string {
	scheme, rest, ok := strings.Cut(rawURL, "://")
	if !ok || !p.hostless[strings.ToLower(scheme)] {
		return rawURL
	}
	return scheme + ":///" + rest
}

// pathSegments returns the percent-decoded path segments of u.
func (p *Parser) pathSegments(u *url.URL) ([]string, bool) {
	var segments []string
	path := strings.Trim(u.EscapedPath(), "/")
	if path == "" {
		return segments, true
	}
	for _, raw := range strings.Split(path, "/") {
		seg, err := url.PathUnescape(raw)
		if err != nil {
			return nil, false
		}
		segments = append(segments, seg)
	}
	return segments, true
}

// matchPath walks the entry's tokens against segments.
func matchPath(e *Entry, segments []string) (map[string]string, bool) {
	tokens := e.Spec.Tokens
	if len(tokens) != len(segments) {
		return nil, false
	}

	params := make(map[string]string, len(tokens))
	for i, tok := range tokens {
		if tok.Kind == routepattern.Param {
			params[tok.Value] = segments[i]
			continue
		}
		if tok.Value != segments[i] {
			return nil, false
		}
	}
	return params, true
}

// mergeQuery adds query values to params without overriding path params.
func mergeQuery(e *Entry, params map[string]string, query url.Values) {
	tmpl := e.Spec.Query
	if tmpl != nil {
		for _, key := range tmpl.Keys() {
			values := query[key]
			if len(values) == 0 {
				continue
			}
			field := tmpl.Field(key)
			if _, taken := params[field]; !taken {
				params[field] = values[0]
			}
		}
		return
	}

	for key, values := range query {
		if len(values) == 0 {
			continue
		}
		if _, taken := params[key]; !taken {
			params[key] = values[0]
		}
	}
}

// decode runs a serializer, treating errors and panics as a failed decode.
func decode(s Serializer, fields map[string]string) (route Route, ok bool) {
	defer func() {
		if recover() != nil {
			route, ok = nil, false
		}
	}()

	route, err := s.Decode(fields)
	if err != nil || route == nil {
		return nil, false
	}
	return route, true
}
