package pipeline

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"builder-generator/internal/analyze"
	"builder-generator/internal/config"
	"builder-generator/internal/diagnostic"
	"builder-generator/internal/logger"
)

func testContext(t *testing.T) context.Context {
	t.Helper()

	return logger.ContextWithLogger(t.Context(), logger.Discard())
}

// repoRoot returns the module root of builder-generator.
func repoRoot(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)

	return filepath.Join(filepath.Dir(file), "..", "..")
}

// tempModule writes a module that can import the runtime packages.
func tempModule(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()

	gomod := "module example.com/tmp\n\ngo 1.24\n\nrequire builder-generator v0.0.0\n\nreplace builder-generator => " + repoRoot(t) + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte(gomod), 0o644))

	for name, src := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	}

	return dir
}

const commandSrc = `package tmp

import (
	"time"

	"builder-generator/option"
)

type Option[T any] = option.Option[T]

//builder:generate
type Command struct {
	Name    string
	Args    []string
	Timeout Option[time.Duration]
}
`

func TestRun_DryRunExamples(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}

	var out bytes.Buffer

	res, err := Run(testContext(t), Options{
		Dir:      filepath.Join(repoRoot(t), "examples", "people"),
		DryRun:   true,
		Stdout:   &out,
		DumpPlan: true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"builder-generator/examples/people"}, res.Packages)
	assert.Len(t, res.Files, 3)
	assert.Empty(t, res.Written)

	s := out.String()
	assert.Contains(t, s, "// ==> person_builder.go")
	assert.Contains(t, s, "// ==> endpoint_builder.go")
	assert.Contains(t, s, "// ==> pair_builder.go")
	assert.Contains(t, s, "func (b *endpointBuilder) WithTimeout(v time.Duration) *endpointBuilder {")
}

func TestRun_ExampleBuildersAreUpToDate(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}

	dir := filepath.Join(repoRoot(t), "examples", "people")

	res, err := Run(testContext(t), Options{Dir: dir, DryRun: true, Stdout: &bytes.Buffer{}})
	require.NoError(t, err)
	require.NotEmpty(t, res.Files)

	for _, f := range res.Files {
		checkedIn, err := os.ReadFile(filepath.Join(dir, f.Filename))
		require.NoError(t, err)
		assert.Equal(t, string(checkedIn), string(f.Content), "%s is stale; run go generate", f.Filename)
	}
}

func TestRun_WritesOnlyChangedFiles(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}

	dir := tempModule(t, map[string]string{"command.go": commandSrc})
	opts := Options{Dir: dir}

	res, err := Run(testContext(t), opts)
	require.NoError(t, err)
	require.Len(t, res.Written, 1)
	assert.Equal(t, filepath.Join(dir, "command_builder.go"), res.Written[0])
	assert.Equal(t, []string{dir}, res.Dirs)

	content, err := os.ReadFile(res.Written[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "func (b *CommandBuilder) Timeout(v time.Duration) *CommandBuilder {")

	// The generated file is skipped on reload and rewritten identically.
	res, err = Run(testContext(t), opts)
	require.NoError(t, err)
	assert.Empty(t, res.Written)
	assert.Len(t, res.Files, 1)
}

func TestRun_UnsupportedShapeAbortsRun(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}

	dir := tempModule(t, map[string]string{
		"command.go": commandSrc,
		"runner.go": `package tmp

//builder:generate
type Runner interface {
	Run() error
}
`,
	})

	_, err := Run(testContext(t), Options{Dir: dir})
	require.Error(t, err)
	assert.ErrorIs(t, err, analyze.ErrUnsupportedShape)
	assert.Contains(t, err.Error(), "builder-generator only supports struct types with named fields")

	_, statErr := os.Stat(filepath.Join(dir, "command_builder.go"))
	assert.ErrorIs(t, statErr, os.ErrNotExist, "no file is written when any declaration fails")
	_, statErr = os.Stat(filepath.Join(dir, "runner_builder.go"))
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestRun_TypeNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}

	dir := tempModule(t, map[string]string{"command.go": commandSrc})

	_, err := Run(testContext(t), Options{Dir: dir, Types: []string{"Missing"}, DryRun: true, Stdout: &bytes.Buffer{}})
	require.Error(t, err)
	assert.ErrorIs(t, err, analyze.ErrTypeNotFound)
}

func TestRun_TypeSelectedFromOnePackage(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}

	dir := tempModule(t, map[string]string{
		"command.go":     commandSrc,
		"other/order.go": "package other\n\ntype Order struct{ ID int }\n",
	})

	var out bytes.Buffer

	res, err := Run(testContext(t), Options{
		Dir:      dir,
		Patterns: []string{"./..."},
		Types:    []string{"Command"},
		DryRun:   true,
		Stdout:   &out,
	})
	require.NoError(t, err)
	assert.Len(t, res.Packages, 2)
	require.Len(t, res.Files, 1)
	assert.Equal(t, "command_builder.go", res.Files[0].Filename)

	_, err = Run(testContext(t), Options{
		Dir:      dir,
		Patterns: []string{"./..."},
		Types:    []string{"Invoice"},
		DryRun:   true,
		Stdout:   &out,
	})
	assert.ErrorIs(t, err, analyze.ErrTypeNotFound)
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Stages = []string{"build"}

	_, err := Run(testContext(t), Options{Config: cfg})
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestRun_OptionSpellingWarning(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}

	dir := tempModule(t, map[string]string{"flags.go": `package tmp

import "builder-generator/option"

//builder:generate
type Flags struct {
	Verbose option.Option[bool]
}
`})

	var out bytes.Buffer

	res, err := Run(testContext(t), Options{Dir: dir, DryRun: true, Stdout: &out})
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, diagnostic.CodeOptionSpelling, res.Warnings[0].Code)

	// The qualified spelling stays required.
	assert.Contains(t, out.String(), "func (b *FlagsBuilder) Verbose(v option.Option[bool]) *FlagsBuilder {")
}

func TestRun_GeneratedCodeCompiles(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the generated code with the go command")
	}

	goBin, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go command not available")
	}

	dir := tempModule(t, map[string]string{
		"command.go": commandSrc,
		"command_test.go": `package tmp

import (
	"errors"
	"testing"

	"builder-generator/builder"
)

func TestCommandBuilder(t *testing.T) {
	_, err := NewCommandBuilder().Name("ls").Build()
	if !errors.Is(err, builder.ErrUnsetField) || err.Error() != "field Args is not set" {
		t.Fatalf("unexpected error: %v", err)
	}

	c, err := Command{}.Builder().Name("ls").Args([]string{"-l"}).Build()
	if err != nil {
		t.Fatal(err)
	}

	if c.Timeout.IsSome() {
		t.Fatal("timeout should be unset")
	}
}
`,
	})

	_, err = Run(testContext(t), Options{Dir: dir})
	require.NoError(t, err)

	cmd := exec.CommandContext(t.Context(), goBin, "test", "./...")
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GOFLAGS=-mod=mod", "GOWORK=off")

	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
}
