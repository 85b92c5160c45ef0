// Package prompt implements the interactive selection, confirmation and
// review prompts on top of bubbletea.
package prompt

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the user leaves a prompt with esc or ctrl+c.
var ErrCancelled = errors.New("prompt cancelled")

type Choice struct {
	Value string
	Name  string
}

// FilterFunc decides whether a choice stays visible for the typed input.
// The input is never empty when a FilterFunc is called.
type FilterFunc func(c Choice, input string) bool

type MultiSelectConfig struct {
	Message string
	Choices []Choice
	Filter  FilterFunc
}

type SelectConfig struct {
	Message string
	Choices []Choice
	Filter  FilterFunc
}

// ReviewRow is one proposed change in a Review prompt; rows start accepted.
type ReviewRow struct {
	Value string
	Title string
}

// Prompter is everything the workflows need from a user.
type Prompter interface {
	// MultiSelect returns the chosen values in choice order; possibly none.
	MultiSelect(cfg MultiSelectConfig) ([]string, error)
	// Select returns exactly one chosen value.
	Select(cfg SelectConfig) (string, error)
	Confirm(message string, def bool) (bool, error)
	// Review returns the values of the rows left accepted, in row order.
	Review(message string, rows []ReviewRow) ([]string, error)
}

// Terminal runs prompts as bubbletea programs on the given streams.
type Terminal struct {
	in  io.Reader
	out io.Writer
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out}
}

func (t *Terminal) run(m tea.Model) (tea.Model, error) {
	p := tea.NewProgram(m, tea.WithInput(t.in), tea.WithOutput(t.out))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("prompt failed: %w", err)
	}
	return final, nil
}

func (t *Terminal) MultiSelect(cfg MultiSelectConfig) ([]string, error) {
	final, err := t.run(newMultiSelect(cfg))
	if err != nil {
		return nil, err
	}
	m := final.(*multiSelectModel)
	if m.cancelled {
		return nil, ErrCancelled
	}
	return m.values(), nil
}

func (t *Terminal) Select(cfg SelectConfig) (string, error) {
	final, err := t.run(newSelect(cfg))
	if err != nil {
		return "", err
	}
	m := final.(*selectModel)
	if m.cancelled {
		return "", ErrCancelled
	}
	return m.chosen.Value, nil
}

func (t *Terminal) Confirm(message string, def bool) (bool, error) {
	final, err := t.run(newConfirm(message, def))
	if err != nil {
		return false, err
	}
	m := final.(*confirmModel)
	if m.cancelled {
		return false, ErrCancelled
	}
	return m.answer, nil
}

func (t *Terminal) Review(message string, rows []ReviewRow) ([]string, error) {
	final, err := t.run(newReview(message, rows))
	if err != nil {
		return nil, err
	}
	m := final.(*reviewModel)
	if m.cancelled {
		return nil, ErrCancelled
	}
	return m.values(), nil
}
