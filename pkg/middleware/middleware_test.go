package middleware

import (
	"github.com/yral-dev/deeplink/pkg/deeplink"
)

type postRoute struct {
	deeplink.Base
	PostID     string `route:"postId"`
	CanisterID string `route:"canisterId,optional"`
}

type deleteRoute struct {
	deeplink.Internal
	Principal string `route:"principal"`
}

type orphanRoute struct {
	deeplink.Base
}

func newTestService(mw ...deeplink.Middleware) *deeplink.Service {
	b := deeplink.NewBuilder()
	deeplink.Register[postRoute](b, "/post/{postId}?canisterId")
	deeplink.Register[deleteRoute](b, "/internal/delete/{principal}")
	return deeplink.NewService(b.MustBuild(),
		deeplink.WithScheme("https"),
		deeplink.WithHost("example.com"),
		deeplink.WithMiddleware(mw...),
	)
}
