package symgen

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/kicad-symgen/pkg/pinout"
)

func pin(number, name string, typ pinout.ElectricalType, group pinout.Group) pinout.Pin {
	return pinout.Pin{Number: number, Name: name, Type: typ, Group: group}
}

// uniformPins builds n pins on every side with a single group per side
func uniformPins(n int) []pinout.Pin {
	var pins []pinout.Pin
	num := 1
	add := func(prefix string, typ pinout.ElectricalType, g pinout.Group) {
		for i := 0; i < n; i++ {
			pins = append(pins, pin(fmt.Sprint(num), fmt.Sprintf("%s%d", prefix, i), typ, g))
			num++
		}
	}
	add("A", pinout.TypeOutput, pinout.GroupAddress)
	add("D", pinout.TypeBidirectional, pinout.GroupData)
	add("VDD", pinout.TypePower, pinout.GroupPower)
	add("VSS", pinout.TypePower, pinout.GroupGround)
	return pins
}

func TestSideExtentWithoutTransitions(t *testing.T) {
	for _, n := range []int{1, 4, 9} {
		t.Run(fmt.Sprintf("%d pins", n), func(t *testing.T) {
			sym := Build(Component{Name: "U", Pins: uniformPins(n)})
			for _, side := range Sides {
				assert.Equal(t, n*PinSpacing, sym.Extents[side], side.String())
			}
		})
	}
}

func TestSideExtentOneGroupBoundary(t *testing.T) {
	pins := append(uniformPins(4), pin("99", "AS", pinout.TypeOutput, pinout.GroupBusCtrl))
	sym := Build(Component{Name: "U", Pins: pins})

	assert.Equal(t, 5*PinSpacing+GroupGap, sym.Extents[Left])
	assert.Equal(t, 4*PinSpacing, sym.Extents[Right])
}

func TestTransitions(t *testing.T) {
	pins := []pinout.Pin{
		pin("1", "A0", pinout.TypeOutput, pinout.GroupAddress),
		pin("2", "A1", pinout.TypeOutput, pinout.GroupAddress),
		pin("3", "AS", pinout.TypeOutput, pinout.GroupBusCtrl),
		pin("4", "IRQ", pinout.TypeInput, pinout.GroupInterrupt),
	}
	assert.Equal(t, 0, Transitions(nil))
	assert.Equal(t, 0, Transitions(pins[:2]))
	assert.Equal(t, 2, Transitions(pins))
	assert.Equal(t, 4*PinSpacing+2*GroupGap, SideExtent(pins))
}

func TestAssignSides(t *testing.T) {
	pins := []pinout.Pin{
		pin("40", "VDD", pinout.TypePower, pinout.GroupPower),
		pin("5", "A10", pinout.TypeOutput, pinout.GroupAddress),
		pin("6", "A2", pinout.TypeOutput, pinout.GroupAddress),
		pin("7", "ADDR", pinout.TypeOutput, pinout.GroupAddress),
		pin("8", "A1", pinout.TypeOutput, pinout.GroupAddress),
		pin("9", "AS", pinout.TypeOutput, pinout.GroupBusCtrl),
		pin("3", "VDD2", pinout.TypePower, pinout.GroupPower),
		pin("12", "VCC", pinout.TypePower, pinout.GroupPower),
		pin("20", "ZZZ", pinout.TypeInput, pinout.GroupControl),
		pin("21", "YYY", pinout.TypeInput, pinout.GroupControl),
		pin("22", "SDA", pinout.TypeBidirectional, pinout.GroupI2C),
		pin("30", "VSS", pinout.TypePower, pinout.GroupGround),
		pin("31", "NC", pinout.TypeNoConnect, pinout.GroupNC),
		pin("32", "ODD", pinout.TypeInput, ""),
	}

	sides := AssignSides(pins)

	names := func(ps []pinout.Pin) []string {
		out := make([]string, len(ps))
		for i, p := range ps {
			out[i] = p.Name
		}
		return out
	}

	assert.Equal(t, []string{"A1", "A2", "A10", "ADDR", "AS"}, names(sides[Left]))
	assert.Equal(t, []string{"SDA", "ZZZ", "YYY", "ODD"}, names(sides[Right]))
	assert.Equal(t, []string{"VDD2", "VCC", "VDD"}, names(sides[Top]))
	assert.Equal(t, []string{"VSS", "NC"}, names(sides[Bottom]))

	assert.Equal(t, pinout.GroupControl, sides[Right][3].Group)
}

func TestAssignSidesKeepsTableOrderOutsideAddressAndData(t *testing.T) {
	pins := []pinout.Pin{
		pin("1", "IPA", pinout.TypeOutput, pinout.GroupVideo),
		pin("2", "V3", pinout.TypeOutput, pinout.GroupVideo),
		pin("3", "V1", pinout.TypeOutput, pinout.GroupVideo),
		pin("4", "MA7", pinout.TypeOutput, pinout.GroupMemAddr),
		pin("5", "MA2", pinout.TypeOutput, pinout.GroupMemAddr),
		pin("6", "MD1", pinout.TypeBidirectional, pinout.GroupMemData),
		pin("7", "MD0", pinout.TypeBidirectional, pinout.GroupMemData),
		pin("8", "D1", pinout.TypeBidirectional, pinout.GroupData),
		pin("9", "D0", pinout.TypeBidirectional, pinout.GroupData),
	}

	sides := AssignSides(pins)

	names := func(ps []pinout.Pin) []string {
		out := make([]string, len(ps))
		for i, p := range ps {
			out[i] = p.Name
		}
		return out
	}
	assert.Equal(t, []string{"MA7", "MA2"}, names(sides[Left]))
	assert.Equal(t, []string{"D0", "D1", "MD1", "MD0"}, names(sides[Right]))
	assert.Equal(t, []string{"IPA", "V3", "V1"}, names(sides[Bottom]))
}

func TestSideGroupsCoverEveryGroup(t *testing.T) {
	seen := make(map[pinout.Group]int)
	for _, side := range Sides {
		for _, g := range SideGroups[side] {
			seen[g]++
		}
	}
	for _, g := range pinout.Groups {
		assert.Equal(t, 1, seen[g], "group %s", g)
	}
}

func TestNameIndex(t *testing.T) {
	assert.Equal(t, 0, NameIndex("A0"))
	assert.Equal(t, 23, NameIndex("A23"))
	assert.Equal(t, 7, NameIndex("MD7"))
	assert.Equal(t, noNumber, NameIndex("IPA"))
}

func TestBodySize(t *testing.T) {
	body := BodySize([4]int{300, 500, 0, 0})
	assert.Equal(t, 500+HeightPadding, body.Height)
	assert.Equal(t, MinWidth, body.Width)

	body = BodySize([4]int{0, 0, 2000, 1500})
	assert.Equal(t, HeightPadding, body.Height)
	assert.Equal(t, 2000, body.Width)
}

func TestPlaceCentresPins(t *testing.T) {
	pins := []pinout.Pin{
		pin("1", "A0", pinout.TypeOutput, pinout.GroupAddress),
		pin("2", "A1", pinout.TypeOutput, pinout.GroupAddress),
		pin("3", "AS", pinout.TypeOutput, pinout.GroupBusCtrl),
		pin("4", "VDD", pinout.TypePower, pinout.GroupPower),
		pin("5", "CLK", pinout.TypeInput, pinout.GroupClock),
	}
	sym := Build(Component{Name: "U", Pins: pins})
	require.Len(t, sym.Pins, 5)

	halfW := sym.Body.Width / 2
	halfH := sym.Body.Height / 2

	// left: span = 2 spacings + 1 gap, centred on zero
	left := sym.Pins[:3]
	assert.Equal(t, []int{150, 50, -150}, []int{left[0].Y, left[1].Y, left[2].Y})
	for _, p := range left {
		assert.Equal(t, -(halfW + PinLength), p.X)
		assert.Equal(t, 0, p.Rotation)
		assert.Equal(t, Left, p.Side)
	}

	// top: VDD then CLK with a gap between, laid out left to right
	top := sym.Pins[3:]
	assert.Equal(t, []int{-100, 100}, []int{top[0].X, top[1].X})
	for _, p := range top {
		assert.Equal(t, halfH+PinLength, p.Y)
		assert.Equal(t, 270, p.Rotation)
		assert.Equal(t, PinLength, p.Length)
	}
}

func TestPlaceRightAndBottom(t *testing.T) {
	pins := []pinout.Pin{
		pin("1", "D0", pinout.TypeBidirectional, pinout.GroupData),
		pin("2", "VSS", pinout.TypePower, pinout.GroupGround),
	}
	sym := Build(Component{Name: "U", Pins: pins})
	require.Len(t, sym.Pins, 2)

	assert.Equal(t, Right, sym.Pins[0].Side)
	assert.Equal(t, sym.Body.Width/2+PinLength, sym.Pins[0].X)
	assert.Equal(t, 180, sym.Pins[0].Rotation)

	assert.Equal(t, Bottom, sym.Pins[1].Side)
	assert.Equal(t, -(sym.Body.Height/2 + PinLength), sym.Pins[1].Y)
	assert.Equal(t, 90, sym.Pins[1].Rotation)
}

func TestBuildProperties(t *testing.T) {
	sym := Build(Component{
		Name:            "SCC68070_PLCC84",
		FootprintFilter: "PLCC*84*",
		Keywords:        "Philips CD-i microprocessor",
	})

	require.Len(t, sym.Properties, 7)
	keys := make([]string, len(sym.Properties))
	for i, p := range sym.Properties {
		keys[i] = p.Key
		assert.Equal(t, i, p.ID)
	}
	assert.Equal(t, []string{"Reference", "Value", "Footprint", "Datasheet", "ki_keywords", "ki_description", "ki_fp_filters"}, keys)
	assert.Equal(t, "U", sym.Properties[0].Value)
	assert.Equal(t, "SCC68070_PLCC84", sym.Properties[5].Value)
	assert.Equal(t, "PLCC*84*", sym.Properties[6].Value)
	assert.False(t, sym.Properties[0].Hide)
	assert.True(t, sym.Properties[2].Hide)
}
