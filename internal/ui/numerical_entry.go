package ui

import (
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// NumericalEntry is an Entry that swallows every typed rune except digits.
// Pasted text bypasses TypedRune, so fields needing strict guarantees attach
// a Validator on top.
type NumericalEntry struct {
	widget.Entry
}

func NewNumericalEntry() *NumericalEntry {
	e := &NumericalEntry{}
	e.ExtendBaseWidget(e)
	return e
}

// TypedRune drops anything outside 0-9.
func (e *NumericalEntry) TypedRune(r rune) {
	if r < '0' || r > '9' {
		return
	}
	e.Entry.TypedRune(r)
}

// Keyboard requests the numeric keypad on mobile drivers.
func (e *NumericalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}
