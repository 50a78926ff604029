// Package approutes declares the app's navigation targets and the routing
// table shared by the mobile clients, notification senders and tooling.
//
//	svc := approutes.NewService()
//	link, _ := svc.BuildURL(ctx, approutes.PostDetails{PostID: "42", CanisterID: "c1"})
//	// yralm://post/details/42?canisterId=c1
package approutes
