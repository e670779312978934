package ui

import (
	"fmt"
	"io"
)

// Notifier prints submission outcomes as styled lines. It satisfies
// fundraiser.Notifier.
type Notifier struct {
	w io.Writer
}

// NewNotifier returns a Notifier writing to w.
func NewNotifier(w io.Writer) *Notifier {
	return &Notifier{w: w}
}

// Success prints msg with the success style.
func (n *Notifier) Success(msg string) {
	fmt.Fprintln(n.w, Success(msg))
}

// Error prints msg with the error style followed by the cause, if any.
func (n *Notifier) Error(msg string, err error) {
	fmt.Fprintln(n.w, Err(msg))
	if err != nil {
		fmt.Fprintln(n.w, "  "+Meta(err.Error()))
	}
}
