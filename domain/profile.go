package domain

// Identity is the verified caller identity supplied by the external
// identity provider. SubjectID is stable; Username is assigned at signup.
type Identity struct {
	SubjectID string `json:"sub"`
	Username  string `json:"username"`
}

// Profile is the per-subject profile row. Exactly one exists per subject;
// the username is immutable after creation. The three counters are
// denormalized and maintained transactionally by their owning write paths.
type Profile struct {
	SubjectID      string `json:"uuid"`
	Username       string `json:"username"`
	DisplayName    string `json:"displayName"`
	Bio            string `json:"bio"`
	FollowingCount int    `json:"followingCount"`
	FollowerCount  int    `json:"followerCount"`
	PostCount      int    `json:"postCount"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}
