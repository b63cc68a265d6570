// Package notify defines the user-facing collaborator interfaces the core
// components report through, plus terminal implementations for the CLI.
package notify

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notifier receives user-visible events. Implementations must not block.
type Notifier interface {
	Notify(severity Severity, title, message string)
}

// Confirmer asks the user a yes/no question and reports the choice.
type Confirmer interface {
	Confirm(title, body, confirmLabel, cancelLabel string) bool
}

// TerminalNotifier prints severity-colored notifications to a writer.
type TerminalNotifier struct {
	out io.Writer
}

func NewTerminalNotifier(out io.Writer) *TerminalNotifier {
	return &TerminalNotifier{out: out}
}

func (t *TerminalNotifier) Notify(severity Severity, title, message string) {
	c := color.New(color.FgCyan)
	switch severity {
	case SeveritySuccess:
		c = color.New(color.FgGreen)
	case SeverityWarning:
		c = color.New(color.FgYellow)
	case SeverityError:
		c = color.New(color.FgRed)
	}
	fmt.Fprintf(t.out, "%s %s\n", c.Sprintf("[%s] %s:", strings.ToUpper(string(severity)), title), message)
}

// TerminalConfirmer prompts on the terminal and reads a y/n answer.
// Anything other than an explicit yes counts as cancel.
type TerminalConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func NewTerminalConfirmer(in io.Reader, out io.Writer) *TerminalConfirmer {
	return &TerminalConfirmer{in: bufio.NewReader(in), out: out}
}

func (t *TerminalConfirmer) Confirm(title, body, confirmLabel, cancelLabel string) bool {
	fmt.Fprintf(t.out, "%s\n%s\n[%s/%s] (y/n): ", color.New(color.Bold).Sprint(title), body, confirmLabel, cancelLabel)
	line, err := t.in.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// Noop discards every notification. Handy default for wiring and tests.
type Noop struct{}

func (Noop) Notify(Severity, string, string) {}

func (Noop) Confirm(string, string, string, string) bool { return true }
