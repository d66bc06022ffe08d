package domain

// PostType tags the post sum type
type PostType string

const (
	PostTypeText PostType = "TEXT"
)

// Post is the sum type over journal posts. Posts are append-only and
// immutable once created. Unknown stored subtypes surface as *BasePost.
type Post interface {
	// ID returns the post id
	ID() string
	// CreatedAtRFC3339 returns the creation timestamp used for
	// reverse-chronological ordering
	CreatedAtRFC3339() string

	isPost()
}

// BasePost carries the fields shared by every post subtype, including the
// username/displayName snapshot captured from the live profile at creation
// time and never updated afterwards.
type BasePost struct {
	Typename    string   `json:"__typename"`
	PostID      string   `json:"uuid"`
	Username    string   `json:"username"`
	DisplayName string   `json:"displayName"`
	PostType    PostType `json:"postType"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

func (p *BasePost) ID() string               { return p.PostID }
func (p *BasePost) CreatedAtRFC3339() string { return p.CreatedAt }
func (p *BasePost) isPost()                  {}

// TextPost is a plain text journal entry
type TextPost struct {
	BasePost
	Text string `json:"text"`
}

// NewTextPost builds a text post snapshotting the author's current
// username and display name
func NewTextPost(id string, author *Profile, text, now string) *TextPost {
	return &TextPost{
		BasePost: BasePost{
			Typename:    "TextPost",
			PostID:      id,
			Username:    author.Username,
			DisplayName: author.DisplayName,
			PostType:    PostTypeText,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		Text: text,
	}
}
