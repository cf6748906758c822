// Package form models the waitlist form: an email input, the form region that
// holds it, the message region shown after a successful submission, and a
// channel for blocking notices.
package form

// Input is the email field.
type Input interface {
	Value() string
}

// Region is an element that can be shown, hidden and given text.
type Region interface {
	Show()
	Hide()
	SetText(text string)
	Visible() bool
	Text() string
}

// Notifier shows a message the user has to acknowledge.
type Notifier interface {
	Alert(msg string)
}

// Form bundles the elements a submission touches. Any nil element makes a
// submission a no-op.
type Form struct {
	Email    Input
	Form     Region
	Message  Region
	Notifier Notifier
}

// Complete reports whether the input and both regions are present.
func (f Form) Complete() bool {
	return f.Email != nil && f.Form != nil && f.Message != nil
}
