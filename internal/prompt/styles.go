package prompt

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var (
	questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5E6AD2")).Bold(true)
	answerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	checkedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	rejectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	ToggleAll key.Binding
	Flip      key.Binding
	Yes       key.Binding
	No        key.Binding
	Submit    key.Binding
	Cancel    key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up", "ctrl+p")),
	Down:      key.NewBinding(key.WithKeys("down", "ctrl+n")),
	Toggle:    key.NewBinding(key.WithKeys("tab")),
	ToggleAll: key.NewBinding(key.WithKeys("ctrl+a")),
	Flip:      key.NewBinding(key.WithKeys(" ", "left", "right")),
	Yes:       key.NewBinding(key.WithKeys("y", "Y")),
	No:        key.NewBinding(key.WithKeys("n", "N")),
	Submit:    key.NewBinding(key.WithKeys("enter")),
	Cancel:    key.NewBinding(key.WithKeys("esc", "ctrl+c")),
}
