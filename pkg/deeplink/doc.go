// Package deeplink compiles typed routes to and from deep-link URLs.
//
// A Table binds route types to patterns (see package routepattern) and to
// serializers that flatten routes into string field maps. Parser resolves
// incoming URLs and push-notification parameter maps against the table and
// URLBuilder renders routes back into links:
//
//	table := deeplink.NewBuilder()
//	deeplink.Register[PostDetails](table, "/post/details/{postId}?canisterId")
//	t := table.MustBuild()
//
//	route := deeplink.NewParser(t).Parse("https://yral.com/post/details/42?canisterId=c1")
//	link, ok := deeplink.NewURLBuilder(t, "yralm", "").Build(route)
//	// link == "yralm://post/details/42?canisterId=c1"
//
// Parsing never fails loudly. Input that matches nothing, fails to decode or
// resolves to a route embedding Internal yields Unknown.
//
// Service wraps a parser and builder with logging and a middleware chain;
// package middleware provides Prometheus and OpenTelemetry middleware for it.
package deeplink
