package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// WizardResult holds answers collected by the setup wizard.
type WizardResult struct {
	DefaultNetwork string
	AccountSource  string
	RPCAlgorithm   string
	ArtifactPath   string
}

type wizardStep int

const (
	stepNetwork wizardStep = iota
	stepAccounts
	stepAlgorithm
	stepArtifact
	stepDone
)

var (
	accountSources = []string{"node", "wallet"}
	algorithms     = []string{"fastest", "failover"}
)

type wizardModel struct {
	step    wizardStep
	result  WizardResult
	cursor  int
	choices []string
	input   []rune
	aborted bool
}

func newWizard(networks []string) wizardModel {
	return wizardModel{
		step:    stepNetwork,
		choices: networks,
	}
}

func (m wizardModel) Init() tea.Cmd { return nil }

func (m wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	inputMode := m.step == stepArtifact
	switch key.String() {
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit

	case "up":
		if !inputMode && m.cursor > 0 {
			m.cursor--
		}

	case "down":
		if !inputMode && m.cursor < len(m.choices)-1 {
			m.cursor++
		}

	case "enter":
		if inputMode {
			m.result.ArtifactPath = strings.TrimSpace(string(m.input))
		} else {
			m.applyChoice()
		}
		m.advance()

	case "backspace":
		if inputMode && len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}

	default:
		if inputMode && key.Type == tea.KeyRunes {
			m.input = append(m.input, key.Runes...)
		}
	}

	if m.step == stepDone {
		return m, tea.Quit
	}
	return m, nil
}

func (m *wizardModel) advance() {
	m.step++
	m.cursor = 0
	switch m.step {
	case stepAccounts:
		m.choices = accountSources
	case stepAlgorithm:
		m.choices = algorithms
	case stepArtifact:
		m.choices = nil
		m.input = nil
	}
}

func (m *wizardModel) applyChoice() {
	if m.cursor >= len(m.choices) {
		return
	}
	choice := m.choices[m.cursor]
	switch m.step {
	case stepNetwork:
		m.result.DefaultNetwork = choice
	case stepAccounts:
		m.result.AccountSource = choice
	case stepAlgorithm:
		m.result.RPCAlgorithm = choice
	}
}

func (m wizardModel) View() string {
	var s string
	switch m.step {
	case stepNetwork:
		s = renderMenu("Select default network:", m.choices, m.cursor)
	case stepAccounts:
		s = renderMenu("Where do accounts come from?", m.choices, m.cursor)
	case stepAlgorithm:
		s = renderMenu("Select RPC algorithm:", m.choices, m.cursor)
	case stepArtifact:
		s = StyleTitle.Render("FundraiserFactory artifact (optional)") + "\n"
		s += StyleMeta.Render("Path to a Truffle/Hardhat JSON file, or Enter for the built-in ABI:") + "\n"
		s += "> " + StyleAddress.Render(string(m.input)) + "█\n"
	case stepDone:
		s = Success("Setup complete!") + "\n"
	}
	return StyleBorder.Render(s) + "\n"
}

func renderMenu(title string, items []string, cursor int) string {
	s := StyleTitle.Render(title) + "\n"
	for i, item := range items {
		icon := "  "
		style := lipgloss.NewStyle().Foreground(ColorValue)
		if i == cursor {
			icon = "▸ "
			style = StyleSelected
		}
		s += icon + style.Render(item) + "\n"
	}
	s += "\n" + StyleMeta.Render("↑/↓ navigate · Enter select · esc quit")
	return s
}

// RunWizard launches the interactive setup wizard over the given network
// names. It returns nil when the user quits early.
func RunWizard(networks []string) (*WizardResult, error) {
	if len(networks) == 0 {
		return nil, fmt.Errorf("wizard: no networks to choose from")
	}
	final, err := tea.NewProgram(newWizard(networks)).Run()
	if err != nil {
		return nil, fmt.Errorf("wizard error: %w", err)
	}
	fm := final.(wizardModel)
	if fm.aborted {
		return nil, nil
	}
	result := fm.result
	return &result, nil
}
