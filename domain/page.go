package domain

// BackgroundType selects how a page renders its backdrop
type BackgroundType string

const (
	BackgroundColor BackgroundType = "COLOR"
	BackgroundImage BackgroundType = "IMAGE"
)

// Page defaults applied when a page is first provisioned
const (
	DefaultSectionCount    = 3
	DefaultFont            = "Inter"
	DefaultBackgroundColor = "#FFFFFF"
)

// Page is the singleton page row for a subject, created together with the
// profile. Components hang off the same partition under their own sort keys.
type Page struct {
	SectionCount       int            `json:"sectionCount"`
	BackgroundType     BackgroundType `json:"backgroundType"`
	BackgroundColorHex string         `json:"backgroundColor"`
	BackgroundImageURL string         `json:"backgroundImage,omitempty"`
	Font               string         `json:"font"`
	CreatedAt          string         `json:"createdAt"`
	UpdatedAt          string         `json:"updatedAt"`
}

// DefaultPage builds the page written by the provisioning bootstrap
func DefaultPage(now string) Page {
	return Page{
		SectionCount:       DefaultSectionCount,
		BackgroundType:     BackgroundColor,
		BackgroundColorHex: DefaultBackgroundColor,
		Font:               DefaultFont,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// PageView is the assembled read model: the page row plus its components
// sorted by order ascending, with bio components overlaid with the live
// profile at read time.
type PageView struct {
	Page           Page        `json:"page"`
	Components     []Component `json:"components"`
	ComponentCount int         `json:"componentCount"`
	TotalSections  int         `json:"totalSections"`
}
