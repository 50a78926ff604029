package approutes

import (
	"strconv"

	"github.com/yral-dev/deeplink/pkg/deeplink"
)

// Home is the feed.
type Home struct {
	deeplink.Base
}

// RouteName implements the route id hook.
func (Home) RouteName() string { return "Home" }

// PostDetails opens a single post.
type PostDetails struct {
	deeplink.Base
	PostID          string `route:"postId"`
	CanisterID      string `route:"canisterId,optional"`
	PublisherUserID string `route:"publisherUserId,optional"`
}

// RouteName implements the route id hook.
func (PostDetails) RouteName() string { return "PostDetails" }

// UserProfile opens a user's profile. Its serializer is hand-written so the
// service-canister flag is only encoded when set.
type UserProfile struct {
	deeplink.Base
	UserPrincipalID       string
	CanisterID            string
	Username              string
	ProfilePic            string
	IsFromServiceCanister bool
}

// RouteName implements the route id hook.
func (UserProfile) RouteName() string { return "UserProfile" }

// Leaderboard opens the leaderboard.
type Leaderboard struct {
	deeplink.Base
}

// RouteName implements the route id hook.
func (Leaderboard) RouteName() string { return "Leaderboard" }

// Wallet opens the signed-in user's wallet.
type Wallet struct {
	deeplink.Base
}

// RouteName implements the route id hook.
func (Wallet) RouteName() string { return "Wallet" }

// Tournament opens a tournament by id.
type Tournament struct {
	deeplink.Base
	TournamentID string `route:"tournamentId"`
}

// RouteName implements the route id hook.
func (Tournament) RouteName() string { return "Tournament" }

// AccountDeletion confirms deletion of an account. It is only ever built by
// the app itself and never resolved from a link or push payload.
type AccountDeletion struct {
	deeplink.Internal
	Principal string `route:"principal"`
}

// RouteName implements the route id hook.
func (AccountDeletion) RouteName() string { return "AccountDeletion" }

// userProfileCodec serializes UserProfile.
var userProfileCodec = deeplink.Codec[UserProfile]{
	EncodeFunc: func(r UserProfile) map[string]string {
		fields := map[string]string{
			"userPrincipalId": r.UserPrincipalID,
			"canisterId":      r.CanisterID,
			"username":        r.Username,
			"profilePic":      r.ProfilePic,
		}
		if r.IsFromServiceCanister {
			fields["isFromServiceCanister"] = "true"
		}
		return fields
	},
	DecodeFunc: func(fields map[string]string) (UserProfile, error) {
		id, err := deeplink.Required(fields, "userPrincipalId")
		if err != nil {
			return UserProfile{}, err
		}
		r := UserProfile{
			UserPrincipalID: id,
			CanisterID:      fields["canisterId"],
			Username:        fields["username"],
			ProfilePic:      fields["profilePic"],
		}
		if v, ok := fields["isFromServiceCanister"]; ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return UserProfile{}, deeplink.ErrInvalidField
			}
			r.IsFromServiceCanister = b
		}
		return r, nil
	},
}
