package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pick(m pickerModel, keys ...string) pickerModel {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(pickerModel)
	}
	return m
}

var networkItems = []PickerItem{
	{Label: "development", SubLabel: "5777", Value: "development"},
	{Label: "ganache", SubLabel: "1337", Value: "ganache", Current: true},
	{Label: "sepolia", SubLabel: "11155111", Value: "sepolia"},
}

func TestPickerStartsOnCurrentItem(t *testing.T) {
	m := newPicker("Select network", networkItems)
	assert.Equal(t, 1, m.cursor)
	assert.Contains(t, m.View(), "ganache *")
}

func TestPickerSelects(t *testing.T) {
	m := pick(newPicker("Select network", networkItems), "down", "down", "enter")
	require.NotNil(t, m.selected)
	assert.Equal(t, "sepolia", m.selected.Value, "cursor stops at the last item")
}

func TestPickerVimKeys(t *testing.T) {
	m := pick(newPicker("Select network", networkItems), "k", "k", "j")
	assert.Equal(t, 1, m.cursor)
}

func TestPickerQuit(t *testing.T) {
	m := pick(newPicker("Select network", networkItems), "q")
	assert.True(t, m.quitting)
	assert.Nil(t, m.selected)
	assert.Empty(t, m.View())
}

func TestPickItemEmpty(t *testing.T) {
	_, err := PickItem("nothing", nil)
	assert.ErrorIs(t, err, ErrNothingToPick)
}
