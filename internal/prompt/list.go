package prompt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const maxVisibleItems = 10

// filterList is the filter input plus cursor shared by the select prompts.
type filterList struct {
	choices []Choice
	filter  FilterFunc
	input   textinput.Model
	visible []int
	cursor  int
}

func newFilterList(choices []Choice, filter FilterFunc) filterList {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "type to filter"
	ti.CharLimit = 100
	ti.PromptStyle = cursorStyle
	ti.PlaceholderStyle = mutedStyle
	ti.Focus()

	l := filterList{choices: choices, filter: filter, input: ti}
	l.refresh()
	return l
}

func (l *filterList) refresh() {
	query := l.input.Value()
	l.visible = l.visible[:0]
	for i, c := range l.choices {
		if query == "" || l.filter == nil || l.filter(c, query) {
			l.visible = append(l.visible, i)
		}
	}
	if l.cursor >= len(l.visible) {
		l.cursor = len(l.visible) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

func (l *filterList) move(delta int) {
	if len(l.visible) == 0 {
		return
	}
	l.cursor = (l.cursor + delta + len(l.visible)) % len(l.visible)
}

// current returns the index into choices under the cursor.
func (l *filterList) current() (int, bool) {
	if len(l.visible) == 0 {
		return 0, false
	}
	return l.visible[l.cursor], true
}

// updateInput feeds msg to the filter input and refilters when the text changed.
func (l *filterList) updateInput(msg tea.Msg) tea.Cmd {
	before := l.input.Value()
	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	if l.input.Value() != before {
		l.cursor = 0
		l.refresh()
	}
	return cmd
}

// render draws the visible window around the cursor; item formats one row.
func (l *filterList) render(b *strings.Builder, item func(i int, c Choice) string) {
	if len(l.visible) == 0 {
		b.WriteString(mutedStyle.Render("  no matches") + "\n")
		return
	}

	start := 0
	if l.cursor >= maxVisibleItems {
		start = l.cursor - maxVisibleItems + 1
	}
	end := start + maxVisibleItems
	if end > len(l.visible) {
		end = len(l.visible)
	}

	for pos := start; pos < end; pos++ {
		idx := l.visible[pos]
		pointer := "  "
		if pos == l.cursor {
			pointer = cursorStyle.Render("❯ ")
		}
		b.WriteString(pointer + item(idx, l.choices[idx]) + "\n")
	}
	if remaining := len(l.visible) - end; remaining > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  ... %d more", remaining)) + "\n")
	}
}
