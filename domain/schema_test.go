package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "linkpage-backend/pkg/errors"
)

func textComponentDocFixture() map[string]interface{} {
	return map[string]interface{}{
		"componentType":   "TEXT",
		"order":           10,
		"font":            DefaultFont,
		"backgroundColor": DefaultBackgroundColor,
		"text":            "hello",
		"createdAt":       "2026-01-01T00:00:00Z",
		"updatedAt":       "2026-01-01T00:00:00Z",
	}
}

func mergedDoc(doc, updates map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		merged[k] = v
	}
	for k, v := range updates {
		merged[k] = v
	}
	return merged
}

func TestValidateComponentUpdate(t *testing.T) {
	t.Run("valid text update passes", func(t *testing.T) {
		doc := textComponentDocFixture()
		updates := map[string]interface{}{"text": "updated", "font": "Mono"}
		require.NoError(t, ValidateComponentUpdate(ComponentTypeText, updates, mergedDoc(doc, updates)))
	})

	t.Run("document without text is still valid", func(t *testing.T) {
		// A fresh component's stored row omits the empty text attribute.
		doc := textComponentDocFixture()
		delete(doc, "text")
		updates := map[string]interface{}{"font": "Arial"}
		require.NoError(t, ValidateComponentUpdate(ComponentTypeText, updates, mergedDoc(doc, updates)))
	})

	t.Run("non-editable field is rejected", func(t *testing.T) {
		doc := textComponentDocFixture()
		updates := map[string]interface{}{"order": 99}
		err := ValidateComponentUpdate(ComponentTypeText, updates, mergedDoc(doc, updates))
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("wrong value type fails the merged document", func(t *testing.T) {
		doc := textComponentDocFixture()
		updates := map[string]interface{}{"text": 12345}
		err := ValidateComponentUpdate(ComponentTypeText, updates, mergedDoc(doc, updates))
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("unknown field fails the merged document", func(t *testing.T) {
		doc := textComponentDocFixture()
		updates := map[string]interface{}{"text": "fine"}
		merged := mergedDoc(doc, updates)
		merged["sparkles"] = true
		// The update itself touches only editable fields, but the merged
		// shape carries a field the schema does not know.
		err := ValidateComponentUpdate(ComponentTypeText, updates, merged)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("bio components accept no edits", func(t *testing.T) {
		updates := map[string]interface{}{"displayName": "new name"}
		err := ValidateComponentUpdate(ComponentTypeBio, updates, updates)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("unregistered subtype is unknown", func(t *testing.T) {
		err := ValidateComponentUpdate(ComponentType("HOLOGRAM"), map[string]interface{}{}, map[string]interface{}{})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnknownType))
	})
}

func TestSchemaRegistered(t *testing.T) {
	assert.True(t, SchemaRegistered(ComponentTypeText))
	assert.True(t, SchemaRegistered(ComponentTypeBio))
	assert.False(t, SchemaRegistered(ComponentType("HOLOGRAM")))
}
