package symgen

import (
	"github.com/OpenTraceLab/kicad-symgen/pkg/pinout"
)

// KiCad pin electrical types
const (
	PinInput         = "input"
	PinOutput        = "output"
	PinBidirectional = "bidirectional"
	PinTriState      = "tri_state"
	PinPassive       = "passive"
	PinPowerIn       = "power_in"
	PinOpenCollector = "open_collector"
	PinOpenEmitter   = "open_emitter"
	PinNoConnect     = "no_connect"
)

// KiCadType maps a pin's electrical type and drive style to a KiCad pin type.
// An open-drain bidirectional pin becomes open_emitter, which is the nearest
// KiCad has. Three-state drivers become tri_state whether they are outputs or
// bidirectional bus pins. Unknown types become passive.
func KiCadType(p pinout.Pin) string {
	switch {
	case p.Drive == pinout.OpenDrain && p.Type == pinout.TypeOutput:
		return PinOpenCollector
	case p.Drive == pinout.OpenDrain && p.Type == pinout.TypeBidirectional:
		return PinOpenEmitter
	case p.Drive == pinout.TriState && (p.Type == pinout.TypeOutput || p.Type == pinout.TypeBidirectional):
		return PinTriState
	}

	switch p.Type {
	case pinout.TypeInput:
		return PinInput
	case pinout.TypeOutput:
		return PinOutput
	case pinout.TypeBidirectional:
		return PinBidirectional
	case pinout.TypePower:
		return PinPowerIn
	case pinout.TypeNoConnect:
		return PinNoConnect
	default:
		return PinPassive
	}
}

// DisplayName returns the rendered pin name, with an overline for active-low
// signals. Power and no-connect pins are never decorated.
func DisplayName(p pinout.Pin) string {
	if p.Polarity == pinout.ActiveLow && p.Type != pinout.TypePower && p.Type != pinout.TypeNoConnect {
		return "~{" + p.Name + "}"
	}
	return p.Name
}
