package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockinterview/internal/ui/theme"
)

// MicVariant selects which microphone art to display.
type MicVariant int

const (
	MicReady   MicVariant = iota // LLM configured
	MicMuted                     // no LLM key
	MicProudly                   // last interview scored well
)

const micReady = `╭───╮
│░░░│
│░░░│
╰─┬─╯
 ─┴─`

const micMuted = `╭───╮
│╲ ╱│ !
│╱ ╲│
╰─┬─╯
 ─┴─`

const micProud = `╭───╮
│★★★│
│░░░│
╰─┬─╯
 ─┴─`

// RenderMic returns the microphone art for the given variant.
func RenderMic(variant MicVariant) string {
	art := micReady
	fg := theme.Primary

	switch variant {
	case MicMuted:
		art = micMuted
		fg = theme.Accent
	case MicProudly:
		art = micProud
		fg = theme.Success
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
