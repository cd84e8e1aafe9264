package huhforms

import (
	"charm.land/bubbles/v2/key"
	"charm.land/huh/v2"
)

// KeyMap returns the default huh keymap with shift+enter added as a
// newline key in the description field. Esc and ctrl+s are handled by
// the board before the form sees them.
func KeyMap() *huh.KeyMap {
	keymap := huh.NewDefaultKeyMap()

	keymap.Text.NewLine = key.NewBinding(
		key.WithKeys("shift+enter", "alt+enter", "ctrl+j"),
		key.WithHelp("shift+enter", "nova linha"),
	)

	return keymap
}
