package ui_test

import (
	"testing"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/test"
	"github.com/tartampluch/go-keepintouch/internal/ui"
)

func TestNumericalEntry_TypedRune(t *testing.T) {
	entry := ui.NewNumericalEntry()
	window := test.NewWindow(entry)
	defer window.Close()

	tests := []struct {
		name     string
		input    rune
		accepted bool
	}{
		{"Digit_Zero", '0', true},
		{"Digit_Nine", '9', true},
		{"Digit_Five", '5', true},
		{"Letter_a", 'a', false},
		{"Letter_Z", 'Z', false},
		{"Symbol_Dash", '-', false},
		{"Symbol_Space", ' ', false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry.SetText("")
			test.Type(entry, string(tt.input))

			if tt.accepted && entry.Text != string(tt.input) {
				t.Errorf("input %q should be accepted, got text %q", tt.input, entry.Text)
			}
			if !tt.accepted && entry.Text != "" {
				t.Errorf("input %q should be dropped, got text %q", tt.input, entry.Text)
			}
		})
	}
}

func TestNumericalEntry_Keyboard(t *testing.T) {
	entry := ui.NewNumericalEntry()

	if got := entry.Keyboard(); got != mobile.NumberKeyboard {
		t.Errorf("keyboard type = %v, want %v", got, mobile.NumberKeyboard)
	}
}

// SetText bypasses the rune filter on purpose: pasted or programmatic values
// are caught by the per-field Validator, not the widget.
func TestNumericalEntry_DirectSetText(t *testing.T) {
	entry := ui.NewNumericalEntry()

	entry.SetText("abc")
	if entry.Text != "abc" {
		t.Error("SetText should accept arbitrary text")
	}
}
