package symlib

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoPinLib = `(kicad_symbol_lib (version 20211014) (generator kicad_symbol_generator)
  (symbol "DEMO" (pin_names (offset 1.016)) (in_bom yes) (on_board no)
    (property "Reference" "U" (id 0) (at 0 11.43 0)
      (effects (font (size 1.27 1.27)))
    )
    (property "ki_fp_filters" "PLCC*84*" (id 6) (at 0 0 0)
      (effects (font (size 1.27 1.27)) hide)
    )
    (symbol "DEMO_0_1"
      (rectangle (start -15.24 3.81) (end 15.24 -3.81)
        (stroke (width 0.254) (type default) (color 0 0 0 0))
        (fill (type background))
      )
    )
    (symbol "DEMO_1_1"
      (pin input line (at -20.32 0 0) (length 5.08)
        (name "~{A0}" (effects (font (size 1.016 1.016))))
        (number "2" (effects (font (size 1.016 1.016))))
      )
      (pin power_in line (at 0 8.89 270) (length 5.08) hide
        (name "VDD" (effects (font (size 1.016 1.016))))
        (number "1" (effects (font (size 1.016 1.016))))
      )
    )
  )
)
`

func TestParseLibrary(t *testing.T) {
	lib, err := ParseString(twoPinLib)
	require.NoError(t, err)

	assert.Equal(t, 20211014, lib.Version)
	assert.Equal(t, "kicad_symbol_generator", lib.Generator)
	require.Len(t, lib.Symbols, 1)

	sym := lib.Symbol("DEMO")
	require.NotNil(t, sym)
	assert.True(t, sym.InBom)
	assert.False(t, sym.OnBoard)

	require.Len(t, sym.Properties, 2)
	filter, ok := sym.Property("ki_fp_filters")
	assert.True(t, ok)
	assert.Equal(t, "PLCC*84*", filter)
	assert.Equal(t, 6, sym.Properties[1].ID)
	assert.True(t, sym.Properties[1].Effects.Hide)
	assert.False(t, sym.Properties[0].Effects.Hide)

	_, ok = sym.Property("Datasheet")
	assert.False(t, ok)

	require.Len(t, sym.Units, 2)
	assert.Equal(t, "DEMO_0_1", sym.Units[0].Name)
	assert.Empty(t, sym.Units[0].Pins)

	require.Len(t, sym.Rects, 1)
	assert.Equal(t, Position{X: -15.24, Y: 3.81}, sym.Rects[0].Start)
	assert.Equal(t, Position{X: 15.24, Y: -3.81}, sym.Rects[0].End)
	assert.Equal(t, "background", sym.Rects[0].Fill)

	require.Len(t, sym.Pins, 2)
	a0 := sym.Pins[0]
	assert.Equal(t, "input", a0.Type)
	assert.Equal(t, "line", a0.Style)
	assert.Equal(t, Position{X: -20.32, Y: 0}, a0.Position)
	assert.Equal(t, Angle(0), a0.Angle)
	assert.Equal(t, 5.08, a0.Length)
	assert.Equal(t, "~{A0}", a0.Name)
	assert.Equal(t, "2", a0.Number)
	assert.False(t, a0.Hide)

	vdd := sym.PinsByNumber()["1"]
	assert.Equal(t, "power_in", vdd.Type)
	assert.Equal(t, Angle(270), vdd.Angle)
	assert.True(t, vdd.Hide)

	assert.Nil(t, lib.Symbol("MISSING"))
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"wrong root", "(kicad_sch (version 20211014))"},
		{"old version", "(kicad_symbol_lib (version 20200101))"},
		{"no version", "(kicad_symbol_lib (generator x))"},
		{"bad version", "(kicad_symbol_lib (version abc))"},
		{"malformed", "(kicad_symbol_lib (version 20211014)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.kicad_sym")
	require.NoError(t, os.WriteFile(path, []byte(twoPinLib), 0o644))

	lib, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, lib.Symbols, 1)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.kicad_sym"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
