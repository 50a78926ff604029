package deeplink

// Route is a typed navigation target.
//
// The set of routes is closed: a type becomes a Route by embedding Base, or
// Internal for routes that must never be resolved from external input.
//
//	type PostDetails struct {
//	    deeplink.Base
//	    PostID     string `route:"postId"`
//	    CanisterID string `route:"canisterId,optional"`
//	}
type Route interface {
	isRoute()
}

// Base makes the embedding struct a Route.
type Base struct{}

func (Base) isRoute() {}

// Internal makes the embedding struct a Route that Parser never returns.
// A URL or parameter map that decodes into an internal route resolves to
// Unknown. URLBuilder still builds links for internal routes.
type Internal struct {
	Base
}

func (Internal) internalRoute() {}

// internalMarker is implemented by every type embedding Internal.
type internalMarker interface {
	internalRoute()
}

// unknownRoute is the parser's failure value.
type unknownRoute struct {
	Base
}

// Unknown is returned by Parser for any input that does not resolve to an
// externally reachable route.
var Unknown Route = unknownRoute{}

// IsUnknown reports whether r is the Unknown sentinel or nil.
func IsUnknown(r Route) bool {
	if r == nil {
		return true
	}
	_, ok := r.(unknownRoute)
	return ok
}

// namer lets a route type declare its route id.
type namer interface {
	RouteName() string
}
