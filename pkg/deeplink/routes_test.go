package deeplink

import "errors"

type productRoute struct {
	Base
	ProductID string `route:"productId"`
	Category  string `route:"category,optional"`
}

type userRoute struct {
	Base
	UserID string `route:"userId"`
}

type homeRoute struct {
	Base
}

type internalRoute struct {
	Internal
	InternalID string `route:"internalId"`
}

type postDetailsRoute struct {
	Base
	PostID     string `route:"postId"`
	CanisterID string `route:"canisterId,optional"`
}

func (postDetailsRoute) RouteName() string { return "PostDetails" }

type unregisteredRoute struct {
	Base
}

// testTable mirrors the table used across the parser and builder tests.
func testTable() *Table {
	b := NewBuilder()
	Register[productRoute](b, "/product/{productId}")
	Register[userRoute](b, "/user/{userId}")
	Register[homeRoute](b, "/")
	Register[internalRoute](b, "/internal/{internalId}")
	Register[postDetailsRoute](b, "/post/details/{postId}?canisterId")
	return b.MustBuild()
}

// slugRoute is matched by a pattern whose first token is a parameter.
type slugRoute struct {
	Base
	Slug string `route:"slug"`
}

// slugTable registers slugRoute at the root.
func slugTable() *Table {
	b := NewBuilder()
	Register[homeRoute](b, "/")
	Register[slugRoute](b, "/{slug}")
	return b.MustBuild()
}

var errBoom = errors.New("boom")
