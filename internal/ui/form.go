package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mohsinsiddi/fundraiser/internal/fundraiser"
)

type formField struct {
	label       string
	placeholder string
	value       []rune
}

// formModel is the Bubble Tea model behind the "new fundraiser" form. Field
// order matches the createFundraiser arguments.
type formModel struct {
	fields    []formField
	focus     int
	submitted bool
	cancelled bool
}

func newForm(initial fundraiser.Draft) formModel {
	return formModel{
		fields: []formField{
			{label: "Name", placeholder: "Fundraiser Name", value: []rune(initial.Name)},
			{label: "Website", placeholder: "Fundraiser Website", value: []rune(initial.Website)},
			{label: "Image URL", placeholder: "Fundraiser Image", value: []rune(initial.ImageURL)},
			{label: "Description", placeholder: "Fundraiser Description", value: []rune(initial.Description)},
			{label: "Beneficiary", placeholder: "Fundraiser Beneficiary Address", value: []rune(initial.Beneficiary)},
		},
	}
}

func (m formModel) Init() tea.Cmd { return nil }

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit

	case "ctrl+s":
		m.submitted = true
		return m, tea.Quit

	case "tab", "down":
		m.focus = (m.focus + 1) % len(m.fields)

	case "shift+tab", "up":
		m.focus = (m.focus - 1 + len(m.fields)) % len(m.fields)

	case "enter":
		if m.focus == len(m.fields)-1 {
			m.submitted = true
			return m, tea.Quit
		}
		m.focus++

	case "backspace":
		f := &m.fields[m.focus]
		if len(f.value) > 0 {
			f.value = f.value[:len(f.value)-1]
		}

	case "ctrl+u":
		m.fields[m.focus].value = nil

	default:
		switch key.Type {
		case tea.KeyRunes:
			f := &m.fields[m.focus]
			f.value = append(f.value, key.Runes...)
		case tea.KeySpace:
			f := &m.fields[m.focus]
			f.value = append(f.value, ' ')
		}
	}
	return m, nil
}

func (m formModel) View() string {
	if m.submitted || m.cancelled {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(StyleTitle.Render("Create A New Fundraiser") + "\n")

	for i, f := range m.fields {
		label := StyleMeta.Render(fmt.Sprintf("  %-12s", f.label))
		value := string(f.value)
		if value == "" {
			value = StyleMeta.Render(f.placeholder)
		} else {
			value = StyleValue.Render(value)
		}
		if i == m.focus {
			label = StyleFocused.Render(fmt.Sprintf("▸ %-12s", f.label))
			value += "█"
		}
		sb.WriteString(label + " " + value + "\n")
	}

	sb.WriteString("\n" + StyleMeta.Render("tab/enter next · shift+tab back · ctrl+s submit · esc cancel"))
	return StyleBorder.Render(sb.String()) + "\n"
}

func (m formModel) draft() fundraiser.Draft {
	return fundraiser.Draft{
		Name:        string(m.fields[0].value),
		Website:     string(m.fields[1].value),
		ImageURL:    string(m.fields[2].value),
		Description: string(m.fields[3].value),
		Beneficiary: string(m.fields[4].value),
	}
}

// RunForm shows the fundraiser form pre-filled with initial and returns what
// the user entered. submitted is false when the form was cancelled.
func RunForm(initial fundraiser.Draft) (draft fundraiser.Draft, submitted bool, err error) {
	p := tea.NewProgram(newForm(initial))
	final, err := p.Run()
	if err != nil {
		return fundraiser.Draft{}, false, fmt.Errorf("form: %w", err)
	}
	fm := final.(formModel)
	if fm.cancelled || !fm.submitted {
		return fundraiser.Draft{}, false, nil
	}
	return fm.draft(), true, nil
}
