package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
)

// speedFactor is applied per press of the speed keys, as in mpv's default
// input.conf.
const speedFactor = 1.1

// KeyMap holds the global bindings. Panel bindings live with their
// components and are only consulted for the focused panel.
type KeyMap struct {
	PlayPause key.Binding
	Next      key.Binding
	Prev      key.Binding
	Stop      key.Binding

	SeekForward  key.Binding
	SeekBackward key.Binding

	VolumeUp   key.Binding
	VolumeDown key.Binding
	Mute       key.Binding

	SpeedUp    key.Binding
	SpeedDown  key.Binding
	SpeedReset key.Binding

	// Navigate only documents the panel movement keys in the help view.
	Navigate key.Binding
	TabFocus key.Binding

	Help key.Binding
	Quit key.Binding
}

func bind(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// NewKeyMap returns the default bindings. Help labels show the seek and
// volume steps from opts.
func NewKeyMap(opts Options) KeyMap {
	seek := strconv.FormatFloat(opts.SeekStep.Seconds(), 'f', -1, 64) + "s"
	vol := fmt.Sprintf("%d%%", opts.VolumeStep)

	return KeyMap{
		PlayPause: bind("space", "play/pause", " "),
		Next:      bind("n", "next", "n"),
		Prev:      bind("N", "prev", "N"),
		Stop:      bind("s", "stop", "s"),

		SeekForward:  bind("f", "+"+seek, "f"),
		SeekBackward: bind("b", "-"+seek, "b"),

		VolumeUp:   bind("+", "vol +"+vol, "+", "="),
		VolumeDown: bind("-", "vol -"+vol, "-"),
		Mute:       bind("m", "mute", "m"),

		SpeedUp:    bind("]", "faster", "]"),
		SpeedDown:  bind("[", "slower", "["),
		SpeedReset: bind(`\`, "normal speed", `\`),

		Navigate: bind("j/k", "move", "j", "k", "up", "down"),
		TabFocus: bind("tab", "switch panel", "tab"),

		Help: bind("?", "help", "?"),
		Quit: bind("q", "quit", "q", "ctrl+c"),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PlayPause, k.Next, k.Prev, k.TabFocus, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PlayPause, k.Next, k.Prev, k.Stop},
		{k.SeekForward, k.SeekBackward, k.SpeedUp, k.SpeedDown, k.SpeedReset},
		{k.VolumeUp, k.VolumeDown, k.Mute},
		{k.Navigate, k.TabFocus, k.Help, k.Quit},
	}
}
