package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel_ToCharmlogLevel(t *testing.T) {
	assert.Equal(t, charmlog.DebugLevel, DebugLevel.ToCharmlogLevel())
	assert.Equal(t, charmlog.WarnLevel, WarnLevel.ToCharmlogLevel())
	assert.Equal(t, charmlog.ErrorLevel, ErrorLevel.ToCharmlogLevel())
	assert.Equal(t, charmlog.InfoLevel, Level("verbose").ToCharmlogLevel())
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer

	log := NewLogger(&Config{Level: InfoLevel, Output: &buf, JSON: true})
	log.Debug("hidden")
	log.With("type", "Person").Info("generated", "file", "person_builder.go")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "generated", entry["msg"])
	assert.Equal(t, "Person", entry["type"])
	assert.Equal(t, "person_builder.go", entry["file"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestContext(t *testing.T) {
	var buf bytes.Buffer

	log := NewLogger(&Config{Level: WarnLevel, Output: &buf})
	ctx := ContextWithLogger(context.Background(), log)

	FromContext(ctx).Warn("careful")
	assert.Contains(t, buf.String(), "careful")

	assert.NotNil(t, FromContext(context.Background()))
}
