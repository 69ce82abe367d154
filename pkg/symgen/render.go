package symgen

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Generate lays out a component and returns the complete library text
func Generate(c Component) string {
	return Render(Build(c))
}

// Render serialises a symbol as a kicad_symbol_lib document. The field order
// and nesting are fixed; KiCad rejects files that deviate from them.
func Render(sym Symbol) string {
	var b strings.Builder
	WriteLibrary(&b, sym)
	return b.String()
}

// WriteLibrary writes the library text for sym to w
func WriteLibrary(w io.Writer, sym Symbol) {
	fmt.Fprintf(w, "(kicad_symbol_lib (version %d) (generator %s)\n", LibraryVersion, LibraryGenerator)
	fmt.Fprintf(w, "  (symbol %s (pin_names (offset %s)) (in_bom yes) (on_board yes)\n", quote(sym.Name), PinNameOffset)

	for _, p := range sym.Properties {
		writeProperty(w, p)
	}

	halfW, halfH := sym.Body.Width/2, sym.Body.Height/2
	fmt.Fprintf(w, "    (symbol %s\n", quote(sym.Name+"_0_1"))
	fmt.Fprintf(w, "      (rectangle (start %s %s) (end %s %s)\n", mm(-halfW), mm(halfH), mm(halfW), mm(-halfH))
	fmt.Fprintf(w, "        (stroke (width %s) (type default) (color 0 0 0 0))\n", BodyStrokeWidth)
	fmt.Fprintf(w, "        (fill (type background))\n")
	fmt.Fprintf(w, "      )\n")
	fmt.Fprintf(w, "    )\n")

	fmt.Fprintf(w, "    (symbol %s\n", quote(sym.Name+"_1_1"))
	for _, p := range sym.Pins {
		writePin(w, p)
	}
	fmt.Fprintf(w, "    )\n")

	fmt.Fprintf(w, "  )\n")
	fmt.Fprintf(w, ")\n")
}

func writeProperty(w io.Writer, p Property) {
	hide := ""
	if p.Hide {
		hide = " hide"
	}
	fmt.Fprintf(w, "    (property %s %s (id %d) (at %s %s 0)\n", quote(p.Key), quote(p.Value), p.ID, mm(p.X), mm(p.Y))
	fmt.Fprintf(w, "      (effects (font (size %s %s))%s)\n", PropertyFontSize, PropertyFontSize, hide)
	fmt.Fprintf(w, "    )\n")
}

func writePin(w io.Writer, p PlacedPin) {
	fmt.Fprintf(w, "      (pin %s line (at %s %s %d) (length %s)\n", p.Type, mm(p.X), mm(p.Y), p.Rotation, mm(p.Length))
	fmt.Fprintf(w, "        (name %s (effects (font (size %s %s))))\n", quote(p.DisplayName), PinFontSize, PinFontSize)
	fmt.Fprintf(w, "        (number %s (effects (font (size %s %s))))\n", quote(p.Pin.Number), PinFontSize, PinFontSize)
	fmt.Fprintf(w, "      )\n")
}

// mm converts mils to a millimetre string. 1 mil is exactly 0.0254 mm, so the
// conversion is done in integer ten-thousandths of a millimetre.
func mm(mils int) string {
	v := mils * 254
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	whole, frac := v/10000, v%10000
	if frac == 0 {
		return sign + strconv.Itoa(whole)
	}
	f := strings.TrimRight(fmt.Sprintf("%04d", frac), "0")
	return sign + strconv.Itoa(whole) + "." + f
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
