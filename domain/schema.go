package domain

import (
	"bytes"
	"encoding/json"

	"linkpage-backend/pkg/errors"
	"linkpage-backend/pkg/utils"
)

// componentSchema describes how one component subtype may be edited. The
// registry below is the single source of truth for edit validation: an
// unregistered subtype fails UNKNOWN_TYPE, a merged document that violates
// the subtype's shape fails VALIDATION.
type componentSchema struct {
	// editable lists the fields a partial update may touch
	editable map[string]bool
	// validate checks the merged (stored + update) document
	validate func(merged map[string]interface{}) error
}

// textComponentDoc is the stored shape of a TEXT component, minus the key
// envelope. Strict decoding rejects unknown fields and type violations.
// Text is optional: a fresh component starts empty and its stored row may
// not carry the attribute at all.
type textComponentDoc struct {
	ComponentType string  `json:"componentType" validate:"required,oneof=TEXT"`
	Order         int     `json:"order" validate:"gte=0"`
	Font          string  `json:"font" validate:"required"`
	BackgroundHex string  `json:"backgroundColor" validate:"required"`
	Text          *string `json:"text"`
	CreatedAt     string  `json:"createdAt" validate:"required"`
	UpdatedAt     string  `json:"updatedAt" validate:"required"`
}

// bioComponentDoc is the stored shape of a BIO component. None of its
// display fields are editable; they mirror the profile.
type bioComponentDoc struct {
	ComponentType  string `json:"componentType" validate:"required,oneof=BIO"`
	Order          int    `json:"order" validate:"gte=0"`
	Username       string `json:"username" validate:"required"`
	DisplayName    string `json:"displayName"`
	Bio            string `json:"bio"`
	FollowingCount int    `json:"followingCount" validate:"gte=0"`
	FollowerCount  int    `json:"followerCount" validate:"gte=0"`
	PostCount      int    `json:"postCount" validate:"gte=0"`
	CreatedAt      string `json:"createdAt" validate:"required"`
	UpdatedAt      string `json:"updatedAt" validate:"required"`
}

var componentSchemas = map[ComponentType]componentSchema{
	ComponentTypeText: {
		editable: map[string]bool{
			"text":            true,
			"font":            true,
			"backgroundColor": true,
		},
		validate: func(merged map[string]interface{}) error {
			var doc textComponentDoc
			return validateDoc(merged, &doc)
		},
	},
	ComponentTypeBio: {
		// Bio display fields are derived from the profile at read time
		// and are never independently mutated.
		editable: map[string]bool{},
		validate: func(merged map[string]interface{}) error {
			var doc bioComponentDoc
			return validateDoc(merged, &doc)
		},
	},
}

// ValidateComponentUpdate checks a partial update against the schema
// registered for the component's subtype: every updated field must be
// editable for that subtype, and the merged document must still satisfy the
// subtype's shape.
func ValidateComponentUpdate(t ComponentType, updates, merged map[string]interface{}) error {
	schema, ok := componentSchemas[t]
	if !ok {
		return errors.NewUnknownTypeError(string(t))
	}

	for field := range updates {
		if !schema.editable[field] {
			return errors.NewValidationError("field '" + field + "' is not editable on a " + string(t) + " component")
		}
	}

	return schema.validate(merged)
}

// SchemaRegistered reports whether the subtype has a registered schema
func SchemaRegistered(t ComponentType) bool {
	_, ok := componentSchemas[t]
	return ok
}

// validateDoc strictly decodes the merged document into the typed schema,
// then applies the schema's validation tags. A field of the wrong type
// fails the decode, so type violations surface before tag checks.
func validateDoc(merged map[string]interface{}, into interface{}) error {
	raw, err := json.Marshal(merged)
	if err != nil {
		return errors.NewValidationError("component document is not serializable").WithCause(err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(into); err != nil {
		return errors.NewValidationError("component document violates its schema").WithCause(err)
	}

	if err := utils.ValidateStruct(into); err != nil {
		return errors.NewValidationError(err.Error())
	}

	return nil
}
