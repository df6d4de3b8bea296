package console

import "github.com/gdamore/tcell/v2"

// Command is a discrete user request decoded from a key press.
type Command uint8

const (
	Close Command = iota + 1
	ShowHelp
	RandomizeLeft
	RandomizeRight
	RandomizeLeftLuma
	RandomizeRightLuma
	AccelerateDivider
	DecelerateDivider
	SpeedUp
	SpeedDown
	Swap
	Resynthesize
)

var commandNames = map[Command]string{
	Close:              "close",
	ShowHelp:           "show-help",
	RandomizeLeft:      "randomize-left",
	RandomizeRight:     "randomize-right",
	RandomizeLeftLuma:  "randomize-left-luma",
	RandomizeRightLuma: "randomize-right-luma",
	AccelerateDivider:  "accelerate-divider",
	DecelerateDivider:  "decelerate-divider",
	SpeedUp:            "speed-up",
	SpeedDown:          "speed-down",
	Swap:               "swap",
	Resynthesize:       "resynthesize",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

var runeCommands = map[rune]Command{
	'q': Close,
	'h': ShowHelp,
	'd': RandomizeLeft,
	'f': RandomizeRight,
	'e': RandomizeLeftLuma,
	'r': RandomizeRightLuma,
	's': Swap,
	'n': Resynthesize,
}

var keyCommands = map[tcell.Key]Command{
	tcell.KeyEscape: Close,
	tcell.KeyCtrlC:  Close,
	tcell.KeyRight:  AccelerateDivider,
	tcell.KeyLeft:   DecelerateDivider,
	tcell.KeyUp:     SpeedUp,
	tcell.KeyDown:   SpeedDown,
}

// Decode maps a key event to a Command. ok is false for keys without a
// binding.
func Decode(ev *tcell.EventKey) (cmd Command, ok bool) {
	if ev.Key() == tcell.KeyRune {
		cmd, ok = runeCommands[ev.Rune()]
		return cmd, ok
	}
	cmd, ok = keyCommands[ev.Key()]
	return cmd, ok
}

// Help lists the key bindings.
var Help = []string{
	"[h] help",
	"[q] quit",
	"[d] randomize left",
	"[f] randomize right",
	"[e] randomize left luma",
	"[r] randomize right luma",
	"[s] swap sides",
	"[n] new rules",
	"[→] accelerate divider right",
	"[←] accelerate divider left",
	"[↑] faster ticks",
	"[↓] slower ticks",
}
