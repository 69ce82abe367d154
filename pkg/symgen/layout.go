package symgen

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/OpenTraceLab/kicad-symgen/pkg/pinout"
)

// SideGroups maps each side to the groups drawn on it. The order of the
// groups within a side is the order they are emitted in.
var SideGroups = map[Side][]pinout.Group{
	Left: {
		pinout.GroupAddress, pinout.GroupMemAddr, pinout.GroupBusCtrl, pinout.GroupInterrupt,
	},
	Right: {
		pinout.GroupData, pinout.GroupMemData, pinout.GroupDMA, pinout.GroupI2C,
		pinout.GroupUART, pinout.GroupTimer, pinout.GroupChipSel, pinout.GroupControl,
	},
	Top: {
		pinout.GroupPower, pinout.GroupClock, pinout.GroupVideoSync,
	},
	Bottom: {
		pinout.GroupGround, pinout.GroupSystem, pinout.GroupMemCtrl, pinout.GroupVideo, pinout.GroupNC,
	},
}

// busGroups are ordered by the number embedded in the signal name. Every
// other non-supply group keeps table order.
var busGroups = map[pinout.Group]bool{
	pinout.GroupAddress: true,
	pinout.GroupData:    true,
}

// supplyGroups are ordered by pin number
var supplyGroups = map[pinout.Group]bool{
	pinout.GroupPower:  true,
	pinout.GroupGround: true,
}

// noNumber sorts names without a numeric part after every numbered one
const noNumber = 9999

var digitsRe = regexp.MustCompile(`\d+`)

var sideOfGroup = func() map[pinout.Group]Side {
	m := make(map[pinout.Group]Side)
	for _, side := range Sides {
		for _, g := range SideGroups[side] {
			m[g] = side
		}
	}
	return m
}()

// SideOf returns the side a group is drawn on. Groups outside the table are
// treated as CONTROL.
func SideOf(g pinout.Group) Side {
	if side, ok := sideOfGroup[g]; ok {
		return side
	}
	return sideOfGroup[pinout.GroupControl]
}

// NameIndex returns the first number embedded in a signal name, or a large
// sentinel when there is none.
func NameIndex(name string) int {
	m := digitsRe.FindString(name)
	if m == "" {
		return noNumber
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return noNumber
	}
	return n
}

func pinIndex(number string) int {
	n, err := strconv.Atoi(number)
	if err != nil {
		return noNumber
	}
	return n
}

// AssignSides splits pins across the four sides. Each side lists its groups
// in SideGroups order; within a group, bus pins are sorted by name index,
// supply pins by pin number and everything else keeps table order.
func AssignSides(pins []pinout.Pin) [4][]pinout.Pin {
	byGroup := make(map[pinout.Group][]pinout.Pin)
	for _, p := range pins {
		if _, ok := sideOfGroup[p.Group]; !ok {
			p.Group = pinout.GroupControl
		}
		byGroup[p.Group] = append(byGroup[p.Group], p)
	}

	var sides [4][]pinout.Pin
	for _, side := range Sides {
		for _, g := range SideGroups[side] {
			members := byGroup[g]
			if len(members) == 0 {
				continue
			}
			switch {
			case busGroups[g]:
				sort.SliceStable(members, func(i, j int) bool {
					return NameIndex(members[i].Name) < NameIndex(members[j].Name)
				})
			case supplyGroups[g]:
				sort.SliceStable(members, func(i, j int) bool {
					return pinIndex(members[i].Number) < pinIndex(members[j].Number)
				})
			}
			sides[side] = append(sides[side], members...)
		}
	}
	return sides
}

// Transitions counts the places where consecutive pins belong to different groups
func Transitions(pins []pinout.Pin) int {
	n := 0
	for i := 1; i < len(pins); i++ {
		if pins[i].Group != pins[i-1].Group {
			n++
		}
	}
	return n
}

// SideExtent is the length of a side: one spacing per pin plus one gap per group change
func SideExtent(pins []pinout.Pin) int {
	return len(pins)*PinSpacing + Transitions(pins)*GroupGap
}

// BodySize computes the rectangle from the side extents
func BodySize(extents [4]int) Rect {
	height := max(extents[Left], extents[Right]) + HeightPadding
	width := max(extents[Top], extents[Bottom], MinSideExtent)
	width = max(width, MinWidth)
	return Rect{Width: width, Height: height}
}

// offsets returns the position of each pin along its side, starting at the
// positive end and stepping down, centred on zero.
func offsets(pins []pinout.Pin) []int {
	if len(pins) == 0 {
		return nil
	}
	span := (len(pins)-1)*PinSpacing + Transitions(pins)*GroupGap
	out := make([]int, len(pins))
	pos := span / 2
	for i := range pins {
		if i > 0 {
			pos -= PinSpacing
			if pins[i].Group != pins[i-1].Group {
				pos -= GroupGap
			}
		}
		out[i] = pos
	}
	return out
}

// Place computes the connection point of every pin. Pins are returned side
// by side in Sides order.
func Place(sides [4][]pinout.Pin, body Rect) []PlacedPin {
	halfW := body.Width / 2
	halfH := body.Height / 2

	var placed []PlacedPin
	for _, side := range Sides {
		pins := sides[side]
		for i, off := range offsets(pins) {
			pp := PlacedPin{
				Pin:         pins[i],
				Side:        side,
				Rotation:    side.Rotation(),
				Length:      PinLength,
				Type:        KiCadType(pins[i]),
				DisplayName: DisplayName(pins[i]),
			}
			switch side {
			case Left:
				pp.X, pp.Y = -(halfW + PinLength), off
			case Right:
				pp.X, pp.Y = halfW+PinLength, off
			case Top:
				pp.X, pp.Y = -off, halfH+PinLength
			case Bottom:
				pp.X, pp.Y = -off, -(halfH + PinLength)
			}
			placed = append(placed, pp)
		}
	}
	return placed
}

// Build runs the full layout for a component and returns the symbol records
func Build(c Component) Symbol {
	sides := AssignSides(c.Pins)

	var extents [4]int
	for _, side := range Sides {
		extents[side] = SideExtent(sides[side])
	}
	body := BodySize(extents)

	return Symbol{
		Name:       c.Name,
		Properties: properties(c, body),
		Body:       body,
		Pins:       Place(sides, body),
		Extents:    extents,
	}
}

func properties(c Component, body Rect) []Property {
	ref := c.Reference
	if ref == "" {
		ref = DefaultReference
	}
	desc := c.Description
	if desc == "" {
		desc = c.Name
	}
	labelY := body.Height/2 + PinLength + LabelMargin

	return []Property{
		{Key: "Reference", Value: ref, ID: 0, Y: labelY},
		{Key: "Value", Value: c.Name, ID: 1, Y: -labelY},
		{Key: "Footprint", Value: c.Footprint, ID: 2, Hide: true},
		{Key: "Datasheet", Value: c.Datasheet, ID: 3, Hide: true},
		{Key: "ki_keywords", Value: c.Keywords, ID: 4, Hide: true},
		{Key: "ki_description", Value: desc, ID: 5, Hide: true},
		{Key: "ki_fp_filters", Value: c.FootprintFilter, ID: 6, Hide: true},
	}
}
