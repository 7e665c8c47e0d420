package logger

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewToFollowsGlobalLevel(t *testing.T) {
	prev := log.GetLevel()
	t.Cleanup(func() { log.SetLevel(prev) })

	log.SetLevel(log.WarnLevel)
	var buf bytes.Buffer
	l := NewTo(&buf, "server")
	l.Info("hidden")
	l.Warn("shown", "id", "q1")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "server")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "id=q1")

	log.SetLevel(log.DebugLevel)
	buf.Reset()
	NewTo(&buf, "bench").Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestNewWithConfig(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithConfig(&buf, "cli", log.InfoLevel, false, false, log.JSONFormatter)
	l.Debug("hidden")
	l.Info("hello")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"hello"`)
	assert.Contains(t, out, `"cli"`)
	assert.Contains(t, out, `"level":"info"`)
}
