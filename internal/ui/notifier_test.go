package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Mohsinsiddi/fundraiser/internal/fundraiser"
)

var _ fundraiser.Notifier = (*Notifier)(nil)

func TestNotifierSuccess(t *testing.T) {
	var buf bytes.Buffer
	NewNotifier(&buf).Success(fundraiser.SuccessMessage)

	assert.Contains(t, buf.String(), "✓")
	assert.Contains(t, buf.String(), "Successfully created fundraiser!")
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestNotifierErrorIncludesCause(t *testing.T) {
	var buf bytes.Buffer
	NewNotifier(&buf).Error("Failed to create fundraiser.", errors.New("execution reverted"))

	out := buf.String()
	assert.Contains(t, out, "✗ Failed to create fundraiser.")
	assert.Contains(t, out, "execution reverted")
}

func TestNotifierErrorWithoutCause(t *testing.T) {
	var buf bytes.Buffer
	NewNotifier(&buf).Error("Failed to create fundraiser.", nil)
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}
