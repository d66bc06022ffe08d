package domain

// FollowingEdge exists iff the owning subject follows FollowingSub. It is
// always paired 1:1 with a FollowerEdge on the target's partition; the two
// are created and deleted only together.
type FollowingEdge struct {
	FollowingSub         string `json:"followingSub"`
	FollowingUsername    string `json:"followingUsername"`
	FollowingDisplayName string `json:"followingDisplayName"`
	CreatedAt            string `json:"createdAt"`
	UpdatedAt            string `json:"updatedAt"`
}

// FollowerEdge is the mirror of a FollowingEdge, stored on the followed
// subject's partition. Never created or deleted independently.
type FollowerEdge struct {
	FollowerSub         string `json:"followerSub"`
	FollowerUsername    string `json:"followerUsername"`
	FollowerDisplayName string `json:"followerDisplayName"`
	CreatedAt           string `json:"createdAt"`
	UpdatedAt           string `json:"updatedAt"`
}
