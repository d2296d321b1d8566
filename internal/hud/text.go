// Package hud holds the presentation collaborators of a match: the message
// box, screen flash, audio cues, camera and the ship listener that drives
// them.
package hud

// Text is the centred message box. It is empty while hidden.
type Text struct {
	value   string
	visible bool
}

// ShowText replaces the message and shows it.
func (t *Text) ShowText(text string) {
	t.value = text
	t.visible = true
}

// HideText hides the message.
func (t *Text) HideText() {
	t.value = ""
	t.visible = false
}

// Value returns the visible message, or "" when hidden.
func (t *Text) Value() string {
	if !t.visible {
		return ""
	}
	return t.value
}

// Visible reports whether a message is up.
func (t *Text) Visible() bool {
	return t.visible
}
