package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"builder-generator/internal/diagnostic"
)

func TestLoader_Load(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}

	pkgs, err := NewLoader("").Load(t.Context(), "builder-generator/examples/people")
	require.NoError(t, err)
	require.Len(t, pkgs, 1)

	pkg := pkgs[0]
	assert.Equal(t, "people", pkg.Name)
	assert.Equal(t, "builder-generator/examples/people", pkg.Path)
	assert.NotEmpty(t, pkg.Dir)
	assert.NotNil(t, pkg.Info)

	for _, f := range pkg.Files {
		assert.False(t, isGeneratedByUs(f), "generated builders must be skipped")
	}

	decls, diags := NewExtractor().Extract(pkg, nil)
	require.False(t, diags.HasErrors(), diags.Err(nil))

	var person *StructDecl
	for _, d := range decls {
		if d.Name == "Person" {
			person = d
		}
	}

	require.NotNil(t, person)
	require.Len(t, person.Fields, 3)
	assert.True(t, person.Fields[2].IsOptional())
}

func TestLoader_OptionSpellingWarning(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}

	pkgs, err := NewLoader("").Load(t.Context(), "builder-generator/examples/people")
	require.NoError(t, err)

	_, diags := NewExtractor().Extract(pkgs[0], []string{"Qualified"})
	require.False(t, diags.HasErrors())

	var codes []string
	for _, w := range diags.Warnings {
		codes = append(codes, w.Code)
	}

	assert.Contains(t, codes, diagnostic.CodeOptionSpelling)
}

func TestLoader_BadPattern(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}

	_, err := NewLoader("").Load(t.Context(), "builder-generator/does/not/exist")
	require.Error(t, err)
}
