package sexp

import (
	"fmt"
	"strconv"

	"github.com/OpenTraceLab/kicad-symgen/pkg/kicad/sexp/kicadsexp"
)

// Items returns the elements of a list node, or nil for atoms
func Items(s kicadsexp.Sexp) []kicadsexp.Sexp {
	if l, ok := s.(*kicadsexp.List); ok {
		return l.Elements()
	}
	return nil
}

// GetNodeName returns the first symbol of a list (the node type/name)
func GetNodeName(s kicadsexp.Sexp) (string, error) {
	if s == nil {
		return "", fmt.Errorf("nil node")
	}
	if s.IsLeaf() {
		if sym, ok := s.(kicadsexp.Symbol); ok {
			return string(sym), nil
		}
		return "", fmt.Errorf("expected symbol leaf")
	}
	if sym, ok := s.Head().(kicadsexp.Symbol); ok {
		return string(sym), nil
	}
	return "", fmt.Errorf("expected symbol at head of list")
}

// FindNode returns the first child list whose head is key.
// Example: FindNode(pin, "at") finds (at 100 50 0)
func FindNode(s kicadsexp.Sexp, key string) (kicadsexp.Sexp, bool) {
	for _, item := range Items(s) {
		if item.IsLeaf() {
			continue
		}
		if name, err := GetNodeName(item); err == nil && name == key {
			return item, true
		}
	}
	return nil, false
}

// FindAllNodes returns every child list whose head is key
func FindAllNodes(s kicadsexp.Sexp, key string) []kicadsexp.Sexp {
	var results []kicadsexp.Sexp
	for _, item := range Items(s) {
		if item.IsLeaf() {
			continue
		}
		if name, err := GetNodeName(item); err == nil && name == key {
			results = append(results, item)
		}
	}
	return results
}

// HasSymbol reports whether a list contains the bare atom symbol
func HasSymbol(s kicadsexp.Sexp, symbol string) bool {
	for _, item := range Items(s) {
		if sym, ok := item.(kicadsexp.Symbol); ok && string(sym) == symbol {
			return true
		}
	}
	return false
}

// GetString returns the atom at index, quoted or bare. Index 0 is the key.
func GetString(s kicadsexp.Sexp, index int) (string, error) {
	items := Items(s)
	if items == nil {
		return "", fmt.Errorf("expected list, got %v", s)
	}
	if index < 0 || index >= len(items) {
		return "", fmt.Errorf("index %d out of bounds (length %d)", index, len(items))
	}

	switch v := items[index].(type) {
	case kicadsexp.Symbol:
		return string(v), nil
	case kicadsexp.String:
		return string(v), nil
	default:
		return "", fmt.Errorf("expected atom at index %d, got %T", index, items[index])
	}
}

// GetFloat extracts a float64 value at the given index
func GetFloat(s kicadsexp.Sexp, index int) (float64, error) {
	str, err := GetString(s, index)
	if err != nil {
		return 0, err
	}
	val, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse float %q: %w", str, err)
	}
	return val, nil
}

// GetInt extracts an int value at the given index
func GetInt(s kicadsexp.Sexp, index int) (int, error) {
	str, err := GetString(s, index)
	if err != nil {
		return 0, err
	}
	val, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("failed to parse int %q: %w", str, err)
	}
	return val, nil
}

// GetPosition extracts position and angle from an (at X Y [angle]) node
func GetPosition(s kicadsexp.Sexp) (PositionAngle, error) {
	key, err := GetString(s, 0)
	if err != nil {
		return PositionAngle{}, err
	}
	if key != "at" {
		return PositionAngle{}, fmt.Errorf("expected 'at', got %q", key)
	}

	pos, err := GetPositionXY(s)
	if err != nil {
		return PositionAngle{}, err
	}
	result := PositionAngle{Position: pos}

	if angle, err := GetFloat(s, 3); err == nil {
		result.Angle = Angle(angle)
	}
	return result, nil
}

// GetPositionXY extracts X,Y from (start X Y), (end X Y) and similar nodes
func GetPositionXY(s kicadsexp.Sexp) (Position, error) {
	x, err := GetFloat(s, 1)
	if err != nil {
		return Position{}, fmt.Errorf("failed to parse X: %w", err)
	}
	y, err := GetFloat(s, 2)
	if err != nil {
		return Position{}, fmt.Errorf("failed to parse Y: %w", err)
	}
	return Position{X: x, Y: y}, nil
}

// GetEffects extracts text effects from an (effects ...) node
func GetEffects(s kicadsexp.Sexp) Effects {
	effects := Effects{Hide: HasSymbol(s, "hide")}
	if fontNode, ok := FindNode(s, "font"); ok {
		effects.Font = GetFont(fontNode)
	}
	return effects
}

// GetFont extracts font properties from a (font ...) node
func GetFont(s kicadsexp.Sexp) Font {
	font := Font{
		Bold:   HasSymbol(s, "bold"),
		Italic: HasSymbol(s, "italic"),
	}
	if sizeNode, ok := FindNode(s, "size"); ok {
		w, _ := GetFloat(sizeNode, 1)
		h, _ := GetFloat(sizeNode, 2)
		font.Size = Size{Width: w, Height: h}
	}
	return font
}

// GetProperty extracts a (property "key" "value" (id N) (at X Y A) (effects ...)) node
func GetProperty(s kicadsexp.Sexp) (Property, error) {
	prop := Property{}

	key, err := GetString(s, 1)
	if err != nil {
		return prop, fmt.Errorf("failed to parse property key: %w", err)
	}
	prop.Key = key
	prop.Value, _ = GetString(s, 2)

	if idNode, ok := FindNode(s, "id"); ok {
		prop.ID, _ = GetInt(idNode, 1)
	}
	if atNode, ok := FindNode(s, "at"); ok {
		if pos, err := GetPosition(atNode); err == nil {
			prop.Position = pos
		}
	}
	if effectsNode, ok := FindNode(s, "effects"); ok {
		prop.Effects = GetEffects(effectsNode)
	}

	return prop, nil
}
