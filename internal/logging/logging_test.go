package logging_test

import (
	"bytes"
	"testing"

	"github.com/Mohsinsiddi/fundraiser/internal/logging"
	"github.com/stretchr/testify/assert"
)

func TestNewDefaultsToWarn(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	log := logging.New(&buf, "")

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewUnknownLevelFallsBack(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	log := logging.New(&buf, "chatty")

	log.Debug().Msg("hidden")
	assert.Empty(t, buf.String())
}

func TestVerboseEnablesDebug(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	log := logging.New(&buf, logging.Level(true))

	log.Debug().Str("tx", "0xabc").Msg("sent")
	assert.Contains(t, buf.String(), "sent")
	assert.Contains(t, buf.String(), "tx=0xabc")
}

func TestLevelNames(t *testing.T) {
	assert.Equal(t, "debug", logging.Level(true))
	assert.Equal(t, "warn", logging.Level(false))
}

func TestForTagsComponent(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	log := logging.For(logging.New(&buf, "debug"), logging.ComponentSession)

	log.Error().Msg("bootstrap failed")
	assert.Contains(t, buf.String(), "component=session")
	assert.Contains(t, buf.String(), "bootstrap failed")
}
