package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"builder-generator/internal/gen"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("version: 1\n"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "Option", cfg.OptionalType)
	assert.Equal(t, "Builder", cfg.BuilderSuffix)
	assert.Equal(t, "Builder", cfg.FactoryMethod)
	assert.Equal(t, "Build", cfg.BuildMethod)
	assert.Equal(t, gen.DefaultOutput, cfg.Output)
	assert.Equal(t, []string{"factory", "setters", "build", "option-aware"}, cfg.Stages)
	assert.True(t, cfg.OptionAware())
	assert.Equal(t, Default(), cfg)
}

func TestParse_Full(t *testing.T) {
	data := []byte(`
version: 1
optional_type: Maybe
builder_suffix: Maker
build_method: Finish
setter_prefix: With
output: "{{lower .Name}}_gen.go"
stages: [factory, setters]
types:
  Person:
    setter_prefix: Set
`)

	cfg, err := Parse(data)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.False(t, cfg.OptionAware())

	gc, err := cfg.GeneratorConfig()
	require.NoError(t, err)

	assert.Equal(t, gen.Naming{
		BuilderSuffix: "Maker",
		FactoryMethod: "Builder",
		BuildMethod:   "Finish",
		SetterPrefix:  "With",
	}, gc.Naming)
	assert.Equal(t, []gen.Stage{gen.StageFactory, gen.StageSetters}, gc.Stages)
	assert.Equal(t, "{{lower .Name}}_gen.go", gc.Output)
	assert.Equal(t, gen.Naming{SetterPrefix: "Set"}, gc.Overrides["Person"])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		msg  string
	}{
		{name: "version", yaml: "version: 2", msg: "unsupported config version 2"},
		{name: "stage", yaml: "stages: [factory, bogus]", msg: `unknown stage "bogus"`},
		{name: "stage dependency", yaml: "stages: [setters]", msg: "stage setters requires stage factory"},
		{name: "identifier", yaml: "build_method: 'not valid'", msg: "build_method"},
		{name: "type identifier", yaml: "types: {Person: {setter_prefix: '1x'}}", msg: "types.Person.setter_prefix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)

			err = cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("version: [1"))
	require.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)

	cfg := Default()
	cfg.SetterPrefix = "With"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadOptional(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadOptional("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = LoadOptional("missing.yaml")
	require.Error(t, err)

	require.NoError(t, os.WriteFile(DefaultFile, []byte("setter_prefix: With\n"), 0o644))

	cfg, err = LoadOptional("")
	require.NoError(t, err)
	assert.Equal(t, "With", cfg.SetterPrefix)
}
