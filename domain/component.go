package domain

// ComponentType tags the component sum type
type ComponentType string

const (
	ComponentTypeBio  ComponentType = "BIO"
	ComponentTypeText ComponentType = "TEXT"
)

// Component is the sum type over page components. Unknown stored subtypes
// surface as *BaseComponent so callers can render "unknown type" gracefully
// instead of failing.
type Component interface {
	// ID returns the component id unique within its owner's page
	ID() string
	// Order returns the sparse ordering value among siblings
	Order() int
	// Type returns the subtype tag
	Type() ComponentType

	isComponent()
}

// BaseComponent carries the fields shared by every component subtype
type BaseComponent struct {
	Typename      string        `json:"__typename"`
	ComponentID   string        `json:"uuid"`
	OrderValue    int           `json:"order"`
	ComponentType ComponentType `json:"componentType"`
	CreatedAt     string        `json:"createdAt"`
	UpdatedAt     string        `json:"updatedAt"`
}

func (c *BaseComponent) ID() string          { return c.ComponentID }
func (c *BaseComponent) Order() int          { return c.OrderValue }
func (c *BaseComponent) Type() ComponentType { return c.ComponentType }
func (c *BaseComponent) isComponent()        {}

// BioComponent mirrors the owner's profile. Its display fields are a
// denormalized snapshot; reads overlay the live profile so they are never
// stale, and no write path mutates them independently.
type BioComponent struct {
	BaseComponent
	Username       string `json:"username"`
	DisplayName    string `json:"displayName"`
	Bio            string `json:"bio"`
	FollowingCount int    `json:"followingCount"`
	FollowerCount  int    `json:"followerCount"`
	PostCount      int    `json:"postCount"`
}

// OverlayProfile replaces the stored snapshot with the profile's current
// display fields and counters (read-through join).
func (c *BioComponent) OverlayProfile(p *Profile) {
	c.DisplayName = p.DisplayName
	c.Bio = p.Bio
	c.FollowingCount = p.FollowingCount
	c.FollowerCount = p.FollowerCount
	c.PostCount = p.PostCount
}

// TextComponent is a free-form text block
type TextComponent struct {
	BaseComponent
	Font               string `json:"font"`
	BackgroundColorHex string `json:"backgroundColor"`
	Text               string `json:"text"`
}

// NewBioComponent builds a bio component snapshotting the given profile
func NewBioComponent(id string, order int, profile *Profile, now string) *BioComponent {
	return &BioComponent{
		BaseComponent: BaseComponent{
			Typename:      "BioComponent",
			ComponentID:   id,
			OrderValue:    order,
			ComponentType: ComponentTypeBio,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		Username:       profile.Username,
		DisplayName:    profile.DisplayName,
		Bio:            profile.Bio,
		FollowingCount: profile.FollowingCount,
		FollowerCount:  profile.FollowerCount,
		PostCount:      profile.PostCount,
	}
}

// NewTextComponent builds a text component with the default styling
func NewTextComponent(id string, order int, now string) *TextComponent {
	return &TextComponent{
		BaseComponent: BaseComponent{
			Typename:      "TextComponent",
			ComponentID:   id,
			OrderValue:    order,
			ComponentType: ComponentTypeText,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		Font:               DefaultFont,
		BackgroundColorHex: DefaultBackgroundColor,
		Text:               "",
	}
}
