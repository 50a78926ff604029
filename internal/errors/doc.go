// Package errors provides structured, actionable errors for the deep-link
// tooling.
//
// Parsing and building links never fail with an error: unresolvable input is
// reported as the Unknown route. Errors from this package come from the edges
// instead: assembling a routing table, loading configuration, and the CLI.
//
// # Error Codes
//
// Each error has a unique code that maps to a short message and a hint:
//   - E101-E199: routing table construction
//   - E201-E299: configuration
//   - E301-E399: command line usage
//
// # Usage
//
//	err := errors.New("E101").
//	    WithDetailf("route id %q registered by %s and %s", id, first, second)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E101: Duplicate route id
//	//
//	//   route id "PostDetails" registered by approutes.PostDetails and approutes.Post
//	//
//	//   Hint: Give each route type a distinct RouteName() or register it only once
package errors
