package dynamodb

import (
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"linkpage-backend/domain"
	apperrors "linkpage-backend/pkg/errors"
)

// Entity type discriminators stored on every row
const (
	entityTypeProfile   = "PROFILE"
	entityTypePage      = "PAGE"
	entityTypeComponent = "COMPONENT"
	entityTypePost      = "POST"
	entityTypeFollowing = "FOLLOWING"
	entityTypeFollower  = "FOLLOWER"
)

// GraphQL-style type names surfaced on decoded sum-type variants
const (
	typenameBaseComponent = "BaseComponent"
	typenameBioComponent  = "BioComponent"
	typenameTextComponent = "TextComponent"
	typenameBasePost      = "BasePost"
	typenameTextPost      = "TextPost"
)

// profileItem is the DynamoDB item structure for a profile row
type profileItem struct {
	PK             string `dynamodbav:"PK"`
	SK             string `dynamodbav:"SK"`
	GSI1PK         string `dynamodbav:"GSI1PK"`
	GSI1SK         string `dynamodbav:"GSI1SK"`
	EntityType     string `dynamodbav:"entityType"`
	Username       string `dynamodbav:"username"`
	DisplayName    string `dynamodbav:"displayName"`
	Bio            string `dynamodbav:"bio"`
	FollowingCount int    `dynamodbav:"followingCount"`
	FollowerCount  int    `dynamodbav:"followerCount"`
	PostCount      int    `dynamodbav:"postCount"`
	CreatedAt      string `dynamodbav:"createdAt"`
	UpdatedAt      string `dynamodbav:"updatedAt"`
}

// pageItem is the DynamoDB item structure for the singleton page row
type pageItem struct {
	PK              string `dynamodbav:"PK"`
	SK              string `dynamodbav:"SK"`
	EntityType      string `dynamodbav:"entityType"`
	SectionCount    int    `dynamodbav:"sectionCount"`
	BackgroundType  string `dynamodbav:"backgroundType"`
	BackgroundColor string `dynamodbav:"backgroundColor"`
	BackgroundImage string `dynamodbav:"backgroundImage,omitempty"`
	Font            string `dynamodbav:"font"`
	CreatedAt       string `dynamodbav:"createdAt"`
	UpdatedAt       string `dynamodbav:"updatedAt"`
}

// componentItem is the superset item structure for component rows; the
// componentType tag decides which fields are meaningful
type componentItem struct {
	PK            string `dynamodbav:"PK"`
	SK            string `dynamodbav:"SK"`
	EntityType    string `dynamodbav:"entityType"`
	Order         int    `dynamodbav:"order"`
	ComponentType string `dynamodbav:"componentType"`
	CreatedAt     string `dynamodbav:"createdAt"`
	UpdatedAt     string `dynamodbav:"updatedAt"`

	// BIO snapshot fields
	Username       string `dynamodbav:"username,omitempty"`
	DisplayName    string `dynamodbav:"displayName,omitempty"`
	Bio            string `dynamodbav:"bio,omitempty"`
	FollowingCount int    `dynamodbav:"followingCount,omitempty"`
	FollowerCount  int    `dynamodbav:"followerCount,omitempty"`
	PostCount      int    `dynamodbav:"postCount,omitempty"`

	// TEXT fields. A fresh component's empty text is omitted from the
	// stored row, so the document schema must treat text as optional.
	Font            string `dynamodbav:"font,omitempty"`
	BackgroundColor string `dynamodbav:"backgroundColor,omitempty"`
	Text            string `dynamodbav:"text,omitempty"`
}

// postItem is the superset item structure for post rows
type postItem struct {
	PK          string `dynamodbav:"PK"`
	SK          string `dynamodbav:"SK"`
	EntityType  string `dynamodbav:"entityType"`
	PostType    string `dynamodbav:"postType"`
	Username    string `dynamodbav:"username"`
	DisplayName string `dynamodbav:"displayName"`
	Text        string `dynamodbav:"text,omitempty"`
	CreatedAt   string `dynamodbav:"createdAt"`
	UpdatedAt   string `dynamodbav:"updatedAt"`
}

// followingItem is the item structure for a following edge
type followingItem struct {
	PK                   string `dynamodbav:"PK"`
	SK                   string `dynamodbav:"SK"`
	EntityType           string `dynamodbav:"entityType"`
	FollowingSub         string `dynamodbav:"followingSub"`
	FollowingUsername    string `dynamodbav:"followingUsername"`
	FollowingDisplayName string `dynamodbav:"followingDisplayName"`
	CreatedAt            string `dynamodbav:"createdAt"`
	UpdatedAt            string `dynamodbav:"updatedAt"`
}

// followerItem is the mirrored item structure on the target's partition
type followerItem struct {
	PK                  string `dynamodbav:"PK"`
	SK                  string `dynamodbav:"SK"`
	EntityType          string `dynamodbav:"entityType"`
	FollowerSub         string `dynamodbav:"followerSub"`
	FollowerUsername    string `dynamodbav:"followerUsername"`
	FollowerDisplayName string `dynamodbav:"followerDisplayName"`
	CreatedAt           string `dynamodbav:"createdAt"`
	UpdatedAt           string `dynamodbav:"updatedAt"`
}

// Encoders

func newProfileItem(p *domain.Profile) profileItem {
	return profileItem{
		PK:             ownerPK(p.SubjectID),
		SK:             skProfile,
		GSI1PK:         gsi1ProfilePK,
		GSI1SK:         p.Username,
		EntityType:     entityTypeProfile,
		Username:       p.Username,
		DisplayName:    p.DisplayName,
		Bio:            p.Bio,
		FollowingCount: p.FollowingCount,
		FollowerCount:  p.FollowerCount,
		PostCount:      p.PostCount,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func newPageItem(subjectID string, p domain.Page) pageItem {
	return pageItem{
		PK:              ownerPK(subjectID),
		SK:              skPage,
		EntityType:      entityTypePage,
		SectionCount:    p.SectionCount,
		BackgroundType:  string(p.BackgroundType),
		BackgroundColor: p.BackgroundColorHex,
		BackgroundImage: p.BackgroundImageURL,
		Font:            p.Font,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// newComponentItem encodes a component variant. Unknown variants are not
// encodable; writers only ever produce the registered subtypes.
func newComponentItem(subjectID string, c domain.Component) (componentItem, error) {
	switch v := c.(type) {
	case *domain.BioComponent:
		return componentItem{
			PK:             ownerPK(subjectID),
			SK:             componentSK(v.ID()),
			EntityType:     entityTypeComponent,
			Order:          v.Order(),
			ComponentType:  string(domain.ComponentTypeBio),
			CreatedAt:      v.CreatedAt,
			UpdatedAt:      v.UpdatedAt,
			Username:       v.Username,
			DisplayName:    v.DisplayName,
			Bio:            v.Bio,
			FollowingCount: v.FollowingCount,
			FollowerCount:  v.FollowerCount,
			PostCount:      v.PostCount,
		}, nil
	case *domain.TextComponent:
		return componentItem{
			PK:              ownerPK(subjectID),
			SK:              componentSK(v.ID()),
			EntityType:      entityTypeComponent,
			Order:           v.Order(),
			ComponentType:   string(domain.ComponentTypeText),
			CreatedAt:       v.CreatedAt,
			UpdatedAt:       v.UpdatedAt,
			Font:            v.Font,
			BackgroundColor: v.BackgroundColorHex,
			Text:            v.Text,
		}, nil
	default:
		return componentItem{}, apperrors.NewUnknownTypeError(string(c.Type()))
	}
}

func newPostItem(subjectID string, p domain.Post) (postItem, error) {
	switch v := p.(type) {
	case *domain.TextPost:
		return postItem{
			PK:          ownerPK(subjectID),
			SK:          postSK(v.ID()),
			EntityType:  entityTypePost,
			PostType:    string(domain.PostTypeText),
			Username:    v.Username,
			DisplayName: v.DisplayName,
			Text:        v.Text,
			CreatedAt:   v.CreatedAt,
			UpdatedAt:   v.UpdatedAt,
		}, nil
	default:
		return postItem{}, apperrors.NewUnknownTypeError("post")
	}
}

func newFollowingItem(sourceID string, e *domain.FollowingEdge) followingItem {
	return followingItem{
		PK:                   ownerPK(sourceID),
		SK:                   followingSK(e.FollowingSub),
		EntityType:           entityTypeFollowing,
		FollowingSub:         e.FollowingSub,
		FollowingUsername:    e.FollowingUsername,
		FollowingDisplayName: e.FollowingDisplayName,
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
}

func newFollowerItem(targetID string, e *domain.FollowerEdge) followerItem {
	return followerItem{
		PK:                  ownerPK(targetID),
		SK:                  followerSK(e.FollowerSub),
		EntityType:          entityTypeFollower,
		FollowerSub:         e.FollowerSub,
		FollowerUsername:    e.FollowerUsername,
		FollowerDisplayName: e.FollowerDisplayName,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
}

// Decoders. Decode failures surface as CORRUPT_RECORD, distinguishable from
// "not found": the row exists but its shape is invalid.

func decodeProfile(item map[string]types.AttributeValue) (*domain.Profile, error) {
	var rec profileItem
	if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
		return nil, apperrors.NewCorruptRecordError("profile", err)
	}
	if rec.Username == "" || rec.CreatedAt == "" {
		return nil, apperrors.NewCorruptRecordError("profile", nil)
	}

	return &domain.Profile{
		SubjectID:      subjectFromPK(rec.PK),
		Username:       rec.Username,
		DisplayName:    rec.DisplayName,
		Bio:            rec.Bio,
		FollowingCount: rec.FollowingCount,
		FollowerCount:  rec.FollowerCount,
		PostCount:      rec.PostCount,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}, nil
}

func decodePage(item map[string]types.AttributeValue) (*domain.Page, error) {
	var rec pageItem
	if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
		return nil, apperrors.NewCorruptRecordError("page", err)
	}
	if rec.CreatedAt == "" {
		return nil, apperrors.NewCorruptRecordError("page", nil)
	}

	return &domain.Page{
		SectionCount:       rec.SectionCount,
		BackgroundType:     domain.BackgroundType(rec.BackgroundType),
		BackgroundColorHex: rec.BackgroundColor,
		BackgroundImageURL: rec.BackgroundImage,
		Font:               rec.Font,
		CreatedAt:          rec.CreatedAt,
		UpdatedAt:          rec.UpdatedAt,
	}, nil
}

// decodeComponent returns the subtype matching the stored componentType tag.
// Unregistered tags decode to *BaseComponent carrying only shared fields so
// callers can render "unknown type" instead of failing.
func decodeComponent(item map[string]types.AttributeValue) (domain.Component, error) {
	var rec componentItem
	if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
		return nil, apperrors.NewCorruptRecordError("component", err)
	}
	if rec.SK == "" || rec.CreatedAt == "" {
		return nil, apperrors.NewCorruptRecordError("component", nil)
	}

	base := domain.BaseComponent{
		ComponentID:   componentIDFromSK(rec.SK),
		OrderValue:    rec.Order,
		ComponentType: domain.ComponentType(rec.ComponentType),
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
	}

	switch domain.ComponentType(rec.ComponentType) {
	case domain.ComponentTypeBio:
		base.Typename = typenameBioComponent
		return &domain.BioComponent{
			BaseComponent:  base,
			Username:       rec.Username,
			DisplayName:    rec.DisplayName,
			Bio:            rec.Bio,
			FollowingCount: rec.FollowingCount,
			FollowerCount:  rec.FollowerCount,
			PostCount:      rec.PostCount,
		}, nil
	case domain.ComponentTypeText:
		base.Typename = typenameTextComponent
		return &domain.TextComponent{
			BaseComponent:      base,
			Font:               rec.Font,
			BackgroundColorHex: rec.BackgroundColor,
			Text:               rec.Text,
		}, nil
	default:
		base.Typename = typenameBaseComponent
		return &base, nil
	}
}

// decodePost mirrors decodeComponent for the post sum type
func decodePost(item map[string]types.AttributeValue) (domain.Post, error) {
	var rec postItem
	if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
		return nil, apperrors.NewCorruptRecordError("post", err)
	}
	if rec.SK == "" || rec.CreatedAt == "" {
		return nil, apperrors.NewCorruptRecordError("post", nil)
	}

	base := domain.BasePost{
		PostID:      postIDFromSK(rec.SK),
		Username:    rec.Username,
		DisplayName: rec.DisplayName,
		PostType:    domain.PostType(rec.PostType),
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}

	switch domain.PostType(rec.PostType) {
	case domain.PostTypeText:
		base.Typename = typenameTextPost
		return &domain.TextPost{BasePost: base, Text: rec.Text}, nil
	default:
		base.Typename = typenameBasePost
		return &base, nil
	}
}

func decodeFollowingEdge(item map[string]types.AttributeValue) (*domain.FollowingEdge, error) {
	var rec followingItem
	if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
		return nil, apperrors.NewCorruptRecordError("following edge", err)
	}
	if rec.FollowingSub == "" || rec.CreatedAt == "" {
		return nil, apperrors.NewCorruptRecordError("following edge", nil)
	}

	return &domain.FollowingEdge{
		FollowingSub:         rec.FollowingSub,
		FollowingUsername:    rec.FollowingUsername,
		FollowingDisplayName: rec.FollowingDisplayName,
		CreatedAt:            rec.CreatedAt,
		UpdatedAt:            rec.UpdatedAt,
	}, nil
}
