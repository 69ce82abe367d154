package cmd

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/chewxy/sexp"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/kicad-symgen/internal/ctxlog"
	"github.com/OpenTraceLab/kicad-symgen/pkg/kicad/symlib"
)

// gridMM is the 50 mil grid every generated pin must sit on
const gridMM = 1.27

// requiredProperties are the fields of a generated symbol, by id
var requiredProperties = []string{
	"Reference", "Value", "Footprint", "Datasheet", "ki_keywords", "ki_description", "ki_fp_filters",
}

var checkCmd = &cobra.Command{
	Use:   "check <file.kicad_sym>...",
	Short: "Verify generated symbol libraries",
	Long: `Read symbol libraries back and verify them. A generic s-expression
reader must find exactly one top-level list and the KiCad reader must accept
the file. Every symbol needs the seven standard properties, pin numbers must
be unique and pins must sit on the 50 mil grid with a known orientation.

Examples:
  symgen check symbols/*.kicad_sym`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := ctxlog.FromContext(cmd.Context())
	out := cmd.OutOrStdout()

	total := 0
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		problems := checkStructure(string(data))
		logger.Debug("Generic s-expression parse", "path", path, "problems", len(problems))

		lib, err := symlib.ParseString(string(data))
		if err != nil {
			fmt.Fprintf(out, "%s: FAIL %v\n", path, err)
			printProblems(out, problems)
			total += 1 + len(problems)
			continue
		}

		problems = append(problems, checkLibrary(lib)...)
		if len(problems) == 0 {
			fmt.Fprintf(out, "%s: OK (%d symbols)\n", path, len(lib.Symbols))
			continue
		}
		fmt.Fprintf(out, "%s: %d problems\n", path, len(problems))
		printProblems(out, problems)
		total += len(problems)
	}

	if total > 0 {
		return fmt.Errorf("%d problems found", total)
	}
	return nil
}

// checkStructure parses text with a generic s-expression reader, independent
// of the KiCad reader, and requires exactly one top-level list.
func checkStructure(text string) []string {
	exprs, err := sexp.ParseString(text)
	if err != nil {
		return []string{fmt.Sprintf("generic parse failed: %v", err)}
	}
	if len(exprs) != 1 {
		return []string{fmt.Sprintf("expected one top-level expression, found %d", len(exprs))}
	}
	if exprs[0].IsLeaf() {
		return []string{"top-level expression is not a list"}
	}
	return nil
}

// checkLibrary returns a description of every defect found in lib
func checkLibrary(lib *symlib.Library) []string {
	var problems []string
	if len(lib.Symbols) == 0 {
		problems = append(problems, "library has no symbols")
	}

	for i := range lib.Symbols {
		sym := &lib.Symbols[i]
		report := func(format string, a ...any) {
			problems = append(problems, sym.Name+": "+fmt.Sprintf(format, a...))
		}

		for id, key := range requiredProperties {
			found := false
			for _, p := range sym.Properties {
				if p.Key == key {
					found = true
					if p.ID != id {
						report("property %s has id %d, want %d", key, p.ID, id)
					}
				}
			}
			if !found {
				report("missing property %s", key)
			}
		}

		if len(sym.Rects) != 1 {
			report("expected one body rectangle, found %d", len(sym.Rects))
		}

		seen := make(map[string]bool, len(sym.Pins))
		for _, p := range sym.Pins {
			if p.Number == "" {
				report("pin %q has no number", p.Name)
			} else if seen[p.Number] {
				report("duplicate pin number %s", p.Number)
			}
			seen[p.Number] = true

			if sideName(p.Angle) == "other" {
				report("pin %s has angle %v", p.Number, float64(p.Angle))
			}
			if !onGrid(p.Position.X) || !onGrid(p.Position.Y) {
				report("pin %s at (%.4f, %.4f) is off grid", p.Number, p.Position.X, p.Position.Y)
			}
		}
	}
	return problems
}

func onGrid(v float64) bool {
	n := v / gridMM
	return math.Abs(n-math.Round(n)) < 1e-6
}

func printProblems(out io.Writer, problems []string) {
	for _, p := range problems {
		fmt.Fprintf(out, "  %s\n", p)
	}
}
