package player

import "fmt"

const (
	DebugModeACKs = iota
	DebugModeMovement
	DebugModeFall
	DebugModeSetBack
	DebugModeTimer
	debugModeCount
)

var debugModeNames = map[string]int{
	"acks":     DebugModeACKs,
	"movement": DebugModeMovement,
	"fall":     DebugModeFall,
	"setback":  DebugModeSetBack,
	"timer":    DebugModeTimer,
}

// ParseDebugMode returns the debug mode with the name passed.
func ParseDebugMode(name string) (int, bool) {
	mode, ok := debugModeNames[name]
	return mode, ok
}

// Debugger writes debug output of a player for the modes that are enabled.
type Debugger struct {
	p     *Player
	modes [debugModeCount]bool
}

func NewDebugger(p *Player) *Debugger {
	return &Debugger{p: p}
}

// Toggle enables the debug mode if it is disabled, and disables it otherwise.
func (d *Debugger) Toggle(mode int) {
	d.modes[mode] = !d.modes[mode]
}

// Enable enables every debug mode.
func (d *Debugger) Enable() {
	for i := range d.modes {
		d.modes[i] = true
	}
}

func (d *Debugger) Enabled(mode int) bool {
	return d.modes[mode]
}

// Notify logs the message if the debug mode is enabled and the condition is true.
func (d *Debugger) Notify(mode int, cond bool, msg string, args ...any) {
	if !cond || !d.modes[mode] {
		return
	}
	d.p.log.Debugf("%s (tick %d): %s", d.p.name, d.p.tick, fmt.Sprintf(msg, args...))
}
