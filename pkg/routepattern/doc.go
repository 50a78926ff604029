// Package routepattern compiles deep-link route patterns.
//
// A pattern is a path with optional parameter placeholders followed by an
// optional query template:
//
//	pattern := path ["?" query]
//	path    := "/" segment ("/" segment)*      ; segment := literal | "{" name "}"
//	query   := entry ("&" entry)*              ; entry   := key ["=" "{" field "}"]
//
// For example:
//
//	spec := routepattern.Parse("/post/details/{postId}?canisterId&ref={referrer}")
//	spec.Tokens      // [post, details, {postId}]
//	spec.Query.Keys() // [canisterId, ref]
//	spec.Query.Field("ref") // "referrer"
//
// A compiled Spec is immutable and safe for concurrent use.
package routepattern
