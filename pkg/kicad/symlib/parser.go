package symlib

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/OpenTraceLab/kicad-symgen/pkg/kicad/sexp"
	"github.com/OpenTraceLab/kicad-symgen/pkg/kicad/sexp/kicadsexp"
)

// Minimum supported library version (KiCad 6.0)
const MinSupportedVersion = 20211014

// ParseFile reads and parses a symbol library file
func ParseFile(filename string) (*Library, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// ParseString parses a symbol library held in a string
func ParseString(s string) (*Library, error) {
	return Parse(strings.NewReader(s))
}

// Parse reads a symbol library from an io.Reader
func Parse(r io.Reader) (*Library, error) {
	sexps, err := kicadsexp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse s-expression: %w", err)
	}
	if len(sexps) == 0 {
		return nil, fmt.Errorf("empty file or no valid s-expressions found")
	}

	root := sexps[0]
	rootName, err := sexp.GetNodeName(root)
	if err != nil {
		return nil, fmt.Errorf("failed to get root node name: %w", err)
	}
	if rootName != "kicad_symbol_lib" {
		return nil, fmt.Errorf("not a KiCad symbol library: expected 'kicad_symbol_lib', got '%s'", rootName)
	}

	lib := &Library{}
	if versionNode, found := sexp.FindNode(root, "version"); found {
		lib.Version, err = sexp.GetInt(versionNode, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to parse version: %w", err)
		}
	}
	if lib.Version < MinSupportedVersion {
		return nil, fmt.Errorf("unsupported library version %d (need >= %d)", lib.Version, MinSupportedVersion)
	}
	if genNode, found := sexp.FindNode(root, "generator"); found {
		lib.Generator, _ = sexp.GetString(genNode, 1)
	}

	for _, symNode := range sexp.FindAllNodes(root, "symbol") {
		lib.Symbols = append(lib.Symbols, parseLibSymbol(symNode))
	}

	return lib, nil
}

// parseLibSymbol parses a top-level symbol definition
func parseLibSymbol(node kicadsexp.Sexp) LibSymbol {
	sym := LibSymbol{
		InBom:   true,
		OnBoard: true,
	}
	sym.Name, _ = sexp.GetString(node, 1)

	for _, pn := range sexp.FindAllNodes(node, "property") {
		if prop, err := sexp.GetProperty(pn); err == nil {
			sym.Properties = append(sym.Properties, prop)
		}
	}

	if ibNode, found := sexp.FindNode(node, "in_bom"); found {
		val, _ := sexp.GetString(ibNode, 1)
		sym.InBom = val == "yes"
	}
	if obNode, found := sexp.FindNode(node, "on_board"); found {
		val, _ := sexp.GetString(obNode, 1)
		sym.OnBoard = val == "yes"
	}

	for _, unitNode := range sexp.FindAllNodes(node, "symbol") {
		unit := parseSymbolUnit(unitNode)
		sym.Units = append(sym.Units, unit)
		sym.Rects = append(sym.Rects, unit.Rects...)
		sym.Pins = append(sym.Pins, unit.Pins...)
	}

	return sym
}

// parseSymbolUnit parses a nested unit symbol
func parseSymbolUnit(node kicadsexp.Sexp) SymbolUnit {
	unit := SymbolUnit{}
	unit.Name, _ = sexp.GetString(node, 1)

	for _, rn := range sexp.FindAllNodes(node, "rectangle") {
		unit.Rects = append(unit.Rects, parseRectangle(rn))
	}
	for _, pn := range sexp.FindAllNodes(node, "pin") {
		unit.Pins = append(unit.Pins, parsePin(pn))
	}

	return unit
}

func parseRectangle(node kicadsexp.Sexp) Rect {
	rect := Rect{}
	if startNode, found := sexp.FindNode(node, "start"); found {
		rect.Start, _ = sexp.GetPositionXY(startNode)
	}
	if endNode, found := sexp.FindNode(node, "end"); found {
		rect.End, _ = sexp.GetPositionXY(endNode)
	}
	if fillNode, found := sexp.FindNode(node, "fill"); found {
		if typeNode, found := sexp.FindNode(fillNode, "type"); found {
			rect.Fill, _ = sexp.GetString(typeNode, 1)
		}
	}
	return rect
}

// parsePin parses (pin TYPE STYLE (at X Y A) (length L) (name ..) (number ..))
func parsePin(node kicadsexp.Sexp) Pin {
	pin := Pin{}
	pin.Type, _ = sexp.GetString(node, 1)
	pin.Style, _ = sexp.GetString(node, 2)

	if atNode, found := sexp.FindNode(node, "at"); found {
		if pos, err := sexp.GetPosition(atNode); err == nil {
			pin.Position = pos.Position
			pin.Angle = pos.Angle
		}
	}
	if lenNode, found := sexp.FindNode(node, "length"); found {
		pin.Length, _ = sexp.GetFloat(lenNode, 1)
	}
	if nameNode, found := sexp.FindNode(node, "name"); found {
		pin.Name, _ = sexp.GetString(nameNode, 1)
	}
	if numNode, found := sexp.FindNode(node, "number"); found {
		pin.Number, _ = sexp.GetString(numNode, 1)
	}
	pin.Hide = sexp.HasSymbol(node, "hide")

	return pin
}
