package approutes

import (
	"sync"

	"github.com/yral-dev/deeplink/pkg/deeplink"
)

// Link defaults for the mobile apps.
const (
	DefaultScheme = "yralm"
	DefaultHost   = ""
)

// Route patterns.
const (
	HomePath            = "/"
	PostDetailsPath     = "/post/details/{postId}?canisterId&publisherUserId"
	UserProfilePath     = "/profile/{userPrincipalId}?canisterId&username&profilePic&isFromServiceCanister"
	LeaderboardPath     = "/leaderboard"
	WalletPath          = "/wallet"
	TournamentPath      = "/tournament/{tournamentId}"
	AccountDeletionPath = "/internal/account/delete/{principal}"
)

// NewTable builds the application routing table.
func NewTable() (*deeplink.Table, error) {
	return deeplink.BuildTable(func(b *deeplink.Builder) {
		b.Route(HomePath, deeplink.Codec[Home]{})
		deeplink.Register[PostDetails](b, PostDetailsPath)
		b.Route(UserProfilePath, userProfileCodec)
		deeplink.Register[Leaderboard](b, LeaderboardPath)
		deeplink.Register[Wallet](b, WalletPath)
		deeplink.Register[Tournament](b, TournamentPath)
		deeplink.Register[AccountDeletion](b, AccountDeletionPath)
	})
}

var sharedTable = sync.OnceValue(func() *deeplink.Table {
	t, err := NewTable()
	if err != nil {
		panic(err)
	}
	return t
})

// Table returns the application routing table, built on first use.
func Table() *deeplink.Table {
	return sharedTable()
}

// NewService returns a service over Table producing yralm:// links. opts
// apply after the defaults and may override them.
func NewService(opts ...deeplink.Option) *deeplink.Service {
	defaults := []deeplink.Option{
		deeplink.WithScheme(DefaultScheme),
		deeplink.WithHost(DefaultHost),
	}
	return deeplink.NewService(Table(), append(defaults, opts...)...)
}
