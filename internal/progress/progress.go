// Package progress reports the state of a long-running step to the user.
package progress

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Reporter receives progress for one step at a time: Start, any number of
// Report calls, then one of Succeed, Warn or Fail.
type Reporter interface {
	Start(text string)
	Report(current, total int)
	Succeed(text string)
	Warn(text string)
	Fail(text string)
	// Errorf reports a problem with a single item without ending the step.
	Errorf(format string, args ...any)
}

type Terminal struct {
	out    io.Writer
	errOut io.Writer
	text   string
}

func NewTerminal(out, errOut io.Writer) *Terminal {
	return &Terminal{out: out, errOut: errOut}
}

var (
	cyan   = color.New(color.FgCyan).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
)

func (t *Terminal) Start(text string) {
	t.text = text
	fmt.Fprintf(t.out, "%s %s...\n", cyan("⏳"), text)
}

func (t *Terminal) Report(current, total int) {
	fmt.Fprintf(t.out, "   %s %s\n", t.text, gray(fmt.Sprintf("(%d/%d)", current, total)))
}

func (t *Terminal) Succeed(text string) {
	fmt.Fprintf(t.out, "%s %s\n", green("✅"), text)
}

func (t *Terminal) Warn(text string) {
	fmt.Fprintf(t.out, "%s %s\n", yellow("⚠️ "), text)
}

func (t *Terminal) Fail(text string) {
	fmt.Fprintf(t.out, "%s %s\n", red("❌"), text)
}

func (t *Terminal) Errorf(format string, args ...any) {
	fmt.Fprintf(t.errOut, "%s\n", red(fmt.Sprintf(format, args...)))
}
