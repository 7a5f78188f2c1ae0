package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"Person", "Person", 0},
		{"Person", "Persons", 1},
		{"Person", "Parson", 1},
		{"kitten", "sitting", 3},
		{"build", "setters", 7},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.want, Levenshtein(tt.b, tt.a), "symmetric")
		})
	}
}

func TestClosest(t *testing.T) {
	t.Parallel()

	candidates := []string{"Person", "Pair", "endpoint"}

	best, ok := Closest("Persn", candidates)
	assert.True(t, ok)
	assert.Equal(t, "Person", best)

	best, ok = Closest("person", candidates)
	assert.True(t, ok)
	assert.Equal(t, "Person", best, "case is ignored")

	best, ok = Closest("Endpoint", candidates)
	assert.True(t, ok)
	assert.Equal(t, "endpoint", best)

	_, ok = Closest("Command", candidates)
	assert.False(t, ok)

	_, ok = Closest("Person", []string{"Person"})
	assert.False(t, ok, "exact matches are not suggestions")

	_, ok = Closest("X", nil)
	assert.False(t, ok)
}

func TestHint(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ` (did you mean "setters"?)`, Hint("seters", []string{"factory", "setters", "build"}))
	assert.Empty(t, Hint("validate", []string{"factory", "setters", "build"}))
}
