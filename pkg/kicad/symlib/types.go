// Package symlib reads KiCad symbol library files (.kicad_sym)
package symlib

import (
	"github.com/OpenTraceLab/kicad-symgen/pkg/kicad/sexp"
)

type Position = sexp.Position
type Angle = sexp.Angle
type Effects = sexp.Effects
type Property = sexp.Property

// Library is a parsed kicad_symbol_lib document
type Library struct {
	Version   int
	Generator string
	Symbols   []LibSymbol
}

// LibSymbol is one symbol definition
type LibSymbol struct {
	Name       string
	InBom      bool
	OnBoard    bool
	Properties []Property
	Units      []SymbolUnit
	Rects      []Rect // all unit rectangles
	Pins       []Pin  // all unit pins
}

// SymbolUnit is a nested "NAME_u_s" symbol holding graphics and pins
type SymbolUnit struct {
	Name  string
	Rects []Rect
	Pins  []Pin
}

// Rect is a rectangle graphic
type Rect struct {
	Start Position
	End   Position
	Fill  string
}

// Pin is a symbol pin
type Pin struct {
	Type     string   // input, output, bidirectional, ...
	Style    string   // line, inverted, clock, ...
	Position Position // connection point
	Angle    Angle    // 0, 90, 180 or 270
	Length   float64
	Name     string
	Number   string
	Hide     bool
}

// Property returns the value of the named property and whether it exists
func (s *LibSymbol) Property(key string) (string, bool) {
	for _, p := range s.Properties {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Symbol returns the symbol with the given name, or nil
func (l *Library) Symbol(name string) *LibSymbol {
	for i := range l.Symbols {
		if l.Symbols[i].Name == name {
			return &l.Symbols[i]
		}
	}
	return nil
}

// PinsByNumber indexes the symbol's pins by number
func (s *LibSymbol) PinsByNumber() map[string]Pin {
	m := make(map[string]Pin, len(s.Pins))
	for _, p := range s.Pins {
		m[p.Number] = p
	}
	return m
}
