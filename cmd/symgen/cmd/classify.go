package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/kicad-symgen/pkg/pinout"
	"github.com/OpenTraceLab/kicad-symgen/pkg/symgen"
)

var classifyTable string

var classifyCmd = &cobra.Command{
	Use:   "classify [signal [type]]",
	Short: "Show the functional group of a signal",
	Long: `Run the pin classifier on a signal name and electrical type (I, O, I/O,
PWR or NC; default I) and print the group, the rule that matched and the
side of the symbol the pin is drawn on.

With --table every pin of a table is listed.

Examples:
  symgen classify DTACK
  symgen classify VDD PWR
  symgen classify --table pin_extraction/SCC68070_PLCC84_complete.txt`,
	Args: cobra.MaximumNArgs(2),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringVarP(&classifyTable, "table", "t", "", "classify every pin of a table")
}

func runClassify(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if classifyTable != "" {
		table, err := pinout.ReadTableFile(classifyTable)
		if err != nil {
			return fmt.Errorf("failed to read table: %w", err)
		}

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PIN\tSIGNAL\tTYPE\tGROUP\tRULE\tSIDE")
		for _, p := range table.Pins {
			rule, group := pinout.Explain(p.Name, p.Type)
			if group != p.Group {
				rule = "table"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				p.Number, p.Name, p.TypeCode, p.Group, rule, symgen.SideOf(p.Group))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if len(table.Skipped) > 0 {
			fmt.Fprintf(out, "\n%d rows skipped\n", len(table.Skipped))
			if verbose {
				for _, row := range table.Skipped {
					fmt.Fprintf(out, "  line %d: %s\n", row.Line, row.Reason)
				}
			}
		}
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("a signal name or --table is required")
	}

	typeCode := "I"
	if len(args) == 2 {
		typeCode = strings.ToUpper(args[1])
	}
	rule, group := pinout.Explain(args[0], pinout.ParseElectricalType(typeCode))
	fmt.Fprintf(out, "%s (%s): %s [rule %s, side %s]\n", args[0], typeCode, group, rule, symgen.SideOf(group))
	return nil
}
