package prompt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// multiSelectModel: type to filter, tab toggles, ctrl+a toggles every visible choice.
type multiSelectModel struct {
	message   string
	list      filterList
	selected  map[int]bool
	done      bool
	cancelled bool
}

func newMultiSelect(cfg MultiSelectConfig) *multiSelectModel {
	return &multiSelectModel{
		message:  cfg.Message,
		list:     newFilterList(cfg.Choices, cfg.Filter),
		selected: make(map[int]bool),
	}
}

func (m *multiSelectModel) Init() tea.Cmd { return nil }

func (m *multiSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Cancel):
		m.cancelled = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.Submit):
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.Up):
		m.list.move(-1)
		return m, nil
	case key.Matches(keyMsg, keys.Down):
		m.list.move(1)
		return m, nil
	case key.Matches(keyMsg, keys.Toggle):
		if idx, ok := m.list.current(); ok {
			m.selected[idx] = !m.selected[idx]
		}
		return m, nil
	case key.Matches(keyMsg, keys.ToggleAll):
		m.toggleAllVisible()
		return m, nil
	}

	return m, m.list.updateInput(msg)
}

func (m *multiSelectModel) toggleAllVisible() {
	all := len(m.list.visible) > 0
	for _, idx := range m.list.visible {
		if !m.selected[idx] {
			all = false
			break
		}
	}
	for _, idx := range m.list.visible {
		m.selected[idx] = !all
	}
}

func (m *multiSelectModel) values() []string {
	var out []string
	for i, c := range m.list.choices {
		if m.selected[i] {
			out = append(out, c.Value)
		}
	}
	return out
}

func (m *multiSelectModel) View() string {
	var b strings.Builder
	if m.done || m.cancelled {
		b.WriteString(questionStyle.Render("? "+m.message) + " ")
		b.WriteString(answerStyle.Render(fmt.Sprintf("%d selected", len(m.values()))) + "\n")
		return b.String()
	}

	b.WriteString(questionStyle.Render("? "+m.message) + "\n")
	b.WriteString(m.list.input.View() + "\n")
	m.list.render(&b, func(i int, c Choice) string {
		if m.selected[i] {
			return checkedStyle.Render("◉ ") + c.Name
		}
		return mutedStyle.Render("◯ ") + c.Name
	})
	b.WriteString(helpStyle.Render("↑/↓ move · tab toggle · ctrl+a toggle all · enter confirm · esc cancel") + "\n")
	return b.String()
}

// selectModel requires exactly one choice; enter does nothing while nothing is visible.
type selectModel struct {
	message   string
	list      filterList
	chosen    Choice
	done      bool
	cancelled bool
}

func newSelect(cfg SelectConfig) *selectModel {
	return &selectModel{
		message: cfg.Message,
		list:    newFilterList(cfg.Choices, cfg.Filter),
	}
}

func (m *selectModel) Init() tea.Cmd { return nil }

func (m *selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Cancel):
		m.cancelled = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.Submit):
		idx, ok := m.list.current()
		if !ok {
			return m, nil
		}
		m.chosen = m.list.choices[idx]
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.Up):
		m.list.move(-1)
		return m, nil
	case key.Matches(keyMsg, keys.Down), key.Matches(keyMsg, keys.Toggle):
		m.list.move(1)
		return m, nil
	}

	return m, m.list.updateInput(msg)
}

func (m *selectModel) View() string {
	var b strings.Builder
	if m.done || m.cancelled {
		b.WriteString(questionStyle.Render("? "+m.message) + " ")
		b.WriteString(answerStyle.Render(m.chosen.Name) + "\n")
		return b.String()
	}

	b.WriteString(questionStyle.Render("? "+m.message) + "\n")
	b.WriteString(m.list.input.View() + "\n")
	m.list.render(&b, func(_ int, c Choice) string { return c.Name })
	b.WriteString(helpStyle.Render("↑/↓ move · enter select · esc cancel") + "\n")
	return b.String()
}

type confirmModel struct {
	message   string
	def       bool
	answer    bool
	done      bool
	cancelled bool
}

func newConfirm(message string, def bool) *confirmModel {
	return &confirmModel{message: message, def: def}
}

func (m *confirmModel) Init() tea.Cmd { return nil }

func (m *confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Cancel):
		m.cancelled = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.Yes):
		m.answer, m.done = true, true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.No):
		m.answer, m.done = false, true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.Submit):
		m.answer, m.done = m.def, true
		return m, tea.Quit
	}
	return m, nil
}

func (m *confirmModel) View() string {
	q := questionStyle.Render("? " + m.message)
	if m.done {
		answer := "No"
		if m.answer {
			answer = "Yes"
		}
		return q + " " + answerStyle.Render(answer) + "\n"
	}
	if m.cancelled {
		return q + "\n"
	}
	hint := "(y/N)"
	if m.def {
		hint = "(Y/n)"
	}
	return q + " " + mutedStyle.Render(hint) + " "
}

// reviewModel shows one Yes/No row per proposed change.
type reviewModel struct {
	message   string
	rows      []ReviewRow
	accepted  []bool
	cursor    int
	done      bool
	cancelled bool
}

func newReview(message string, rows []ReviewRow) *reviewModel {
	accepted := make([]bool, len(rows))
	for i := range accepted {
		accepted[i] = true
	}
	return &reviewModel{message: message, rows: rows, accepted: accepted}
}

func (m *reviewModel) Init() tea.Cmd { return nil }

func (m *reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Cancel):
		m.cancelled = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.Submit):
		m.done = true
		return m, tea.Quit
	case len(m.rows) == 0:
		return m, nil
	case key.Matches(keyMsg, keys.Up):
		m.cursor = (m.cursor - 1 + len(m.rows)) % len(m.rows)
	case key.Matches(keyMsg, keys.Down), key.Matches(keyMsg, keys.Toggle):
		m.cursor = (m.cursor + 1) % len(m.rows)
	case key.Matches(keyMsg, keys.Flip):
		m.accepted[m.cursor] = !m.accepted[m.cursor]
	case key.Matches(keyMsg, keys.Yes):
		m.accepted[m.cursor] = true
	case key.Matches(keyMsg, keys.No):
		m.accepted[m.cursor] = false
	}
	return m, nil
}

func (m *reviewModel) values() []string {
	var out []string
	for i, r := range m.rows {
		if m.accepted[i] {
			out = append(out, r.Value)
		}
	}
	return out
}

func (m *reviewModel) View() string {
	var b strings.Builder
	if m.done || m.cancelled {
		b.WriteString(questionStyle.Render("? "+m.message) + " ")
		b.WriteString(answerStyle.Render(fmt.Sprintf("%d of %d accepted", len(m.values()), len(m.rows))) + "\n")
		return b.String()
	}

	b.WriteString(questionStyle.Render("? "+m.message) + "\n")
	b.WriteString(mutedStyle.Render("  Yes? No?") + "\n")
	for i, r := range m.rows {
		pointer := "  "
		if i == m.cursor {
			pointer = cursorStyle.Render("❯ ")
		}
		yes, no := "( )", rejectedStyle.Render("(•)")
		if m.accepted[i] {
			yes, no = checkedStyle.Render("(•)"), "( )"
		}
		b.WriteString(fmt.Sprintf("%s%s  %s  %s\n", pointer, yes, no, r.Title))
	}
	b.WriteString(helpStyle.Render("↑/↓ move · space/←/→ toggle · y/n set · enter apply · esc cancel") + "\n")
	return b.String()
}
