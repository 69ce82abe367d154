package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/kicad-symgen/pkg/kicad/symlib"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.kicad_sym> [symbol]",
	Short: "Show symbol library information",
	Long: `Display information about a KiCad symbol library.

Without symbol argument: shows a summary of every symbol
With symbol argument: lists that symbol's properties and pins`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	filename := args[0]
	lib, err := symlib.ParseFile(filename)
	if err != nil {
		return fmt.Errorf("error parsing symbol library: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(args) >= 2 {
		sym := lib.Symbol(args[1])
		if sym == nil {
			return fmt.Errorf("symbol '%s' not found", args[1])
		}
		showSymbolDetails(out, sym)
		return nil
	}

	showLibrarySummary(out, lib, filename)
	return nil
}

func showLibrarySummary(out io.Writer, lib *symlib.Library, filename string) {
	fmt.Fprintf(out, "Library: %s\n", filename)
	fmt.Fprintf(out, "Version: %d\n", lib.Version)
	fmt.Fprintf(out, "Generator: %s\n", lib.Generator)
	fmt.Fprintf(out, "Symbols: %d\n", len(lib.Symbols))

	for i := range lib.Symbols {
		sym := &lib.Symbols[i]
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%s\n", sym.Name)
		if fp, _ := sym.Property("Footprint"); fp != "" {
			fmt.Fprintf(out, "  Footprint: %s\n", fp)
		}
		if filter, _ := sym.Property("ki_fp_filters"); filter != "" {
			fmt.Fprintf(out, "  Filters: %s\n", filter)
		}
		if len(sym.Rects) > 0 {
			r := sym.Rects[0]
			fmt.Fprintf(out, "  Body: %.2f x %.2f mm\n", r.End.X-r.Start.X, r.Start.Y-r.End.Y)
		}
		fmt.Fprintf(out, "  Pins: %d\n", len(sym.Pins))

		sides := make(map[string]int)
		types := make(map[string]int)
		for _, p := range sym.Pins {
			sides[sideName(p.Angle)]++
			types[p.Type]++
		}
		fmt.Fprintf(out, "  Sides: left %d, right %d, top %d, bottom %d\n",
			sides["left"], sides["right"], sides["top"], sides["bottom"])
		fmt.Fprintf(out, "  Types: %s\n", countList(types))
	}
}

func showSymbolDetails(out io.Writer, sym *symlib.LibSymbol) {
	fmt.Fprintf(out, "Symbol: %s\n", sym.Name)
	fmt.Fprintln(out)

	if len(sym.Properties) > 0 {
		fmt.Fprintln(out, "Properties:")
		for _, prop := range sym.Properties {
			fmt.Fprintf(out, "  %s: %s\n", prop.Key, prop.Value)
		}
		fmt.Fprintln(out)
	}

	if len(sym.Pins) > 0 {
		fmt.Fprintln(out, "Pins:")
		for _, pin := range sym.Pins {
			fmt.Fprintf(out, "  %s (%s): %s %s, %s at (%.2f, %.2f)\n",
				pin.Number, pin.Name, pin.Type, pin.Style, sideName(pin.Angle), pin.Position.X, pin.Position.Y)
		}
	}
}

// sideName maps a pin angle to the body edge the pin sits on
func sideName(a symlib.Angle) string {
	switch a {
	case 0:
		return "left"
	case 180:
		return "right"
	case 270:
		return "top"
	case 90:
		return "bottom"
	default:
		return "other"
	}
}

func countList(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s %d", k, counts[k])
	}
	return strings.Join(parts, ", ")
}
