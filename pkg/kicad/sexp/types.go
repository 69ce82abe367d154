// Package sexp provides navigation helpers and shared value types for
// reading KiCad S-expression files. Symbol libraries store coordinates in
// millimetres and angles in degrees, and the helpers return them unchanged.
package sexp

// Position is a 2D coordinate in millimetres
type Position struct {
	X float64
	Y float64
}

// Angle is a rotation in degrees
type Angle float64

// PositionAngle combines position with rotation
type PositionAngle struct {
	Position
	Angle Angle
}

// Size represents dimensions in millimetres
type Size struct {
	Width  float64
	Height float64
}

// Effects represents text effects
type Effects struct {
	Font Font
	Hide bool
}

// Font represents font properties
type Font struct {
	Size   Size
	Bold   bool
	Italic bool
}

// Property is a key/value field attached to a symbol
type Property struct {
	Key      string
	Value    string
	ID       int
	Position PositionAngle
	Effects  Effects
}
