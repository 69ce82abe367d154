// Package symgen lays out a component's pins around a rectangular body and
// renders the result as a KiCad symbol library.
//
// All geometry is computed in integer mils (1/1000 inch) so spacing and
// centring stay exact; values are converted to millimetres only when the
// library text is written.
package symgen

import (
	"github.com/OpenTraceLab/kicad-symgen/pkg/pinout"
)

// Layout constants, in mils
const (
	PinSpacing    = 100  // distance between adjacent pins on a side
	GroupGap      = 100  // extra space inserted where the group changes
	PinLength     = 200  // length of each pin stub
	HeightPadding = 200  // added to the tallest of the left/right sides
	MinSideExtent = 400  // floor for the top/bottom extent
	MinWidth      = 1200 // floor for the body width
	LabelMargin   = 100  // gap between the outermost pin tip and a visible label
)

// Library header values
const (
	LibraryVersion   = 20211014
	LibraryGenerator = "kicad_symbol_generator"
	DefaultReference = "U"
)

// Text sizes, in millimetres as written
const (
	PropertyFontSize = "1.27"
	PinFontSize      = "1.016"
	PinNameOffset    = "1.016"
	BodyStrokeWidth  = "0.254"
)

// Side is one edge of the symbol body
type Side int

const (
	Left Side = iota
	Right
	Top
	Bottom
)

// Sides lists the edges in emission order
var Sides = []Side{Left, Right, Top, Bottom}

func (s Side) String() string {
	switch s {
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	case Top:
		return "TOP"
	case Bottom:
		return "BOTTOM"
	default:
		return "UNKNOWN"
	}
}

// Rotation returns the pin angle in degrees for pins on this side. The angle
// points from the connection point towards the body.
func (s Side) Rotation() int {
	switch s {
	case Right:
		return 180
	case Top:
		return 270
	case Bottom:
		return 90
	default:
		return 0
	}
}

// Component is the input to the layout engine
type Component struct {
	Name            string
	Pins            []pinout.Pin
	FootprintFilter string
	Footprint       string // empty until patched
	Datasheet       string
	Keywords        string
	Description     string // defaults to Name
	Reference       string // defaults to DefaultReference
}

// PlacedPin is a pin with its computed position and rendering attributes
type PlacedPin struct {
	Pin         pinout.Pin
	Side        Side
	X, Y        int // connection point, mils
	Rotation    int // degrees
	Length      int // mils
	Type        string
	DisplayName string
}

// Property is one symbol metadata field
type Property struct {
	Key   string
	Value string
	ID    int
	X, Y  int // mils
	Hide  bool
}

// Rect is the symbol body, centred on the origin
type Rect struct {
	Width, Height int // mils
}

// Symbol holds the discrete records that make up one library symbol
type Symbol struct {
	Name       string
	Properties []Property
	Body       Rect
	Pins       []PlacedPin
	Extents    [4]int // per-side extent in mils, indexed by Side
}
