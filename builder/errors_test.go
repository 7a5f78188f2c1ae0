package builder_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"builder-generator/builder"
)

func TestUnsetFieldError(t *testing.T) {
	t.Parallel()

	var err error = &builder.UnsetFieldError{Type: "Person", Field: "id"}

	assert.EqualError(t, err, "field id is not set")
	assert.ErrorIs(t, err, builder.ErrUnsetField)

	wrapped := fmt.Errorf("creating person: %w", err)
	assert.ErrorIs(t, wrapped, builder.ErrUnsetField)

	var unset *builder.UnsetFieldError
	require.True(t, errors.As(wrapped, &unset))
	assert.Equal(t, "Person", unset.Type)
	assert.Equal(t, "id", unset.Field)
}
