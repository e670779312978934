package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohsinsiddi/fundraiser/internal/fundraiser"
)

func press(t *testing.T, m formModel, keys ...tea.KeyMsg) (formModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(formModel)
	}
	return m, cmd
}

func typed(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyEnter    = tea.KeyMsg{Type: tea.KeyEnter}
	keyCtrlS    = tea.KeyMsg{Type: tea.KeyCtrlS}
	keyEsc      = tea.KeyMsg{Type: tea.KeyEsc}
	keyBack     = tea.KeyMsg{Type: tea.KeyBackspace}
	keySpace    = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func TestFormFillsFieldsInContractOrder(t *testing.T) {
	m, cmd := press(t, newForm(fundraiser.Draft{}),
		typed("Beneficiary Name"), keyEnter,
		typed("Beneficiary Website"), keyEnter,
		typed("Beneficiary Image"), keyEnter,
		typed("Beneficiary Description"), keyEnter,
		typed("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"), keyEnter,
	)

	require.NotNil(t, cmd, "enter on the last field submits")
	assert.True(t, m.submitted)
	assert.False(t, m.cancelled)
	assert.Equal(t, fundraiser.Draft{
		Name:        "Beneficiary Name",
		Website:     "Beneficiary Website",
		ImageURL:    "Beneficiary Image",
		Description: "Beneficiary Description",
		Beneficiary: "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
	}, m.draft())
}

func TestFormNavigationWraps(t *testing.T) {
	m, _ := press(t, newForm(fundraiser.Draft{}), keyShiftTab)
	assert.Equal(t, 4, m.focus)

	m, _ = press(t, m, keyTab)
	assert.Equal(t, 0, m.focus)

	m, _ = press(t, m, keyTab, keyTab)
	assert.Equal(t, 2, m.focus)
}

func TestFormCtrlSSubmitsFromAnyField(t *testing.T) {
	m, cmd := press(t, newForm(fundraiser.Draft{Name: "pre"}), typed("filled"), keyCtrlS)
	require.NotNil(t, cmd)
	assert.True(t, m.submitted)
	assert.Equal(t, "prefilled", m.draft().Name)
	assert.Empty(t, m.draft().Beneficiary, "empty fields pass through")
}

func TestFormEscCancels(t *testing.T) {
	m, cmd := press(t, newForm(fundraiser.Draft{}), typed("abc"), keyEsc)
	require.NotNil(t, cmd)
	assert.True(t, m.cancelled)
	assert.False(t, m.submitted)
	assert.Empty(t, m.View())
}

func TestFormEditing(t *testing.T) {
	m, _ := press(t, newForm(fundraiser.Draft{}), typed("Clean"), keySpace, typed("Waterx"), keyBack)
	assert.Equal(t, "Clean Water", m.draft().Name)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.Empty(t, m.draft().Name)

	m, _ = press(t, m, keyBack)
	assert.Empty(t, m.draft().Name, "backspace on an empty field is a no-op")
}

func TestFormViewShowsLabelsAndPlaceholders(t *testing.T) {
	view := newForm(fundraiser.Draft{Website: "https://example.org"}).View()
	for _, want := range []string{"Create A New Fundraiser", "Name", "Image URL", "Beneficiary",
		"Fundraiser Name", "https://example.org", "ctrl+s submit"} {
		assert.Contains(t, view, want)
	}
	assert.NotContains(t, view, "Fundraiser Website", "filled fields hide the placeholder")
}
