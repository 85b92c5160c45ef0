package prompt

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(m tea.Model, keys ...tea.KeyType) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(tea.KeyMsg{Type: k})
	}
	return cmd
}

func typeText(m tea.Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

var fruit = []Choice{
	{Value: "1", Name: "apple"},
	{Value: "2", Name: "apricot"},
	{Value: "3", Name: "banana"},
	{Value: "4", Name: "Avocado"},
}

func prefix(c Choice, input string) bool { return strings.HasPrefix(c.Name, input) }

func TestMultiSelectToggleAndSubmit(t *testing.T) {
	m := newMultiSelect(MultiSelectConfig{Message: "Pick", Choices: fruit, Filter: prefix})

	press(m, tea.KeyTab)
	press(m, tea.KeyDown, tea.KeyDown, tea.KeyTab)
	cmd := press(m, tea.KeyEnter)

	assert.True(t, isQuit(cmd))
	assert.True(t, m.done)
	assert.Equal(t, []string{"1", "3"}, m.values())
}

func TestMultiSelectFilterIsCaseSensitivePrefix(t *testing.T) {
	m := newMultiSelect(MultiSelectConfig{Choices: fruit, Filter: prefix})

	typeText(m, "ap")
	require.Len(t, m.list.visible, 2)

	press(m, tea.KeyCtrlA)
	press(m, tea.KeyEnter)
	assert.Equal(t, []string{"1", "2"}, m.values())
}

func TestMultiSelectToggleAllTwiceClears(t *testing.T) {
	m := newMultiSelect(MultiSelectConfig{Choices: fruit, Filter: prefix})

	press(m, tea.KeyCtrlA)
	assert.Len(t, m.values(), 4)
	press(m, tea.KeyCtrlA)
	assert.Empty(t, m.values())
}

func TestMultiSelectSelectionSurvivesFilterChanges(t *testing.T) {
	m := newMultiSelect(MultiSelectConfig{Choices: fruit, Filter: prefix})

	typeText(m, "b")
	press(m, tea.KeyTab)
	press(m, tea.KeyBackspace)
	require.Len(t, m.list.visible, 4)

	press(m, tea.KeyEnter)
	assert.Equal(t, []string{"3"}, m.values())
}

func TestMultiSelectCancel(t *testing.T) {
	m := newMultiSelect(MultiSelectConfig{Choices: fruit})
	cmd := press(m, tea.KeyEsc)
	assert.True(t, isQuit(cmd))
	assert.True(t, m.cancelled)
}

func TestMultiSelectView(t *testing.T) {
	m := newMultiSelect(MultiSelectConfig{Message: "Which labels?", Choices: fruit, Filter: prefix})
	view := m.View()
	assert.Contains(t, view, "Which labels?")
	assert.Contains(t, view, "apricot")

	typeText(m, "zzz")
	assert.Contains(t, m.View(), "no matches")

	press(m, tea.KeyEnter)
	assert.Contains(t, m.View(), "0 selected")
}

func TestFilterListWindow(t *testing.T) {
	var many []Choice
	for i := 0; i < 25; i++ {
		many = append(many, Choice{Value: string(rune('a' + i)), Name: string(rune('a' + i))})
	}
	m := newSelect(SelectConfig{Choices: many})
	assert.Contains(t, m.View(), "15 more")

	press(m, tea.KeyUp)
	assert.Equal(t, 24, m.list.cursor)
	assert.NotContains(t, m.View(), "more")
}

func TestSelectPicksHighlighted(t *testing.T) {
	m := newSelect(SelectConfig{Choices: fruit, Filter: prefix})

	typeText(m, "b")
	cmd := press(m, tea.KeyEnter)

	assert.True(t, isQuit(cmd))
	assert.Equal(t, "3", m.chosen.Value)
	assert.Contains(t, m.View(), "banana")
}

func TestSelectRequiresAVisibleChoice(t *testing.T) {
	m := newSelect(SelectConfig{Choices: fruit, Filter: prefix})

	typeText(m, "x")
	cmd := press(m, tea.KeyEnter)
	assert.False(t, isQuit(cmd))
	assert.False(t, m.done)

	press(m, tea.KeyBackspace)
	press(m, tea.KeyUp)
	press(m, tea.KeyEnter)
	assert.True(t, m.done)
	assert.Equal(t, "4", m.chosen.Value)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name string
		def  bool
		msg  tea.KeyMsg
		want bool
	}{
		{"yes", false, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}, true},
		{"no", true, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}, false},
		{"enter takes default yes", true, tea.KeyMsg{Type: tea.KeyEnter}, true},
		{"enter takes default no", false, tea.KeyMsg{Type: tea.KeyEnter}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := newConfirm("Sure?", tc.def)
			_, cmd := m.Update(tc.msg)
			assert.True(t, isQuit(cmd))
			assert.True(t, m.done)
			assert.Equal(t, tc.want, m.answer)
		})
	}

	m := newConfirm("Sure?", true)
	assert.Contains(t, m.View(), "(Y/n)")
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.False(t, m.done)
	press(m, tea.KeyCtrlC)
	assert.True(t, m.cancelled)
}

func TestReviewDefaultsToAccepted(t *testing.T) {
	rows := []ReviewRow{{Value: "a", Title: "'x' => 'X'"}, {Value: "b", Title: "'y' => 'Y'"}, {Value: "c", Title: "'z' => 'Z'"}}
	m := newReview("Apply changes?", rows)

	press(m, tea.KeyEnter)
	assert.Equal(t, []string{"a", "b", "c"}, m.values())
}

func TestReviewToggleRows(t *testing.T) {
	rows := []ReviewRow{{Value: "a", Title: "one"}, {Value: "b", Title: "two"}, {Value: "c", Title: "three"}}
	m := newReview("Apply changes?", rows)

	press(m, tea.KeyDown, tea.KeySpace)
	press(m, tea.KeyDown)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	press(m, tea.KeyRight)

	view := m.View()
	assert.Contains(t, view, "Yes? No?")
	assert.Contains(t, view, "three")

	press(m, tea.KeyEnter)
	assert.Equal(t, []string{"a"}, m.values())
	assert.Contains(t, m.View(), "1 of 3 accepted")
}

func TestReviewEmptyRows(t *testing.T) {
	m := newReview("Apply changes?", nil)
	press(m, tea.KeyDown, tea.KeySpace)
	cmd := press(m, tea.KeyEnter)
	assert.True(t, isQuit(cmd))
	assert.Empty(t, m.values())
}
