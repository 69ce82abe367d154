package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/kicad-symgen/internal/generate"
	"github.com/OpenTraceLab/kicad-symgen/pkg/footprint"
)

var (
	patchFootprint string
	patchFilter    string
)

var footprintCmd = &cobra.Command{
	Use:   "footprint [file.kicad_sym...]",
	Short: "Patch footprint fields into generated symbol libraries",
	Long: `Replace the Footprint (id 2) and ki_fp_filters (id 6) property values of
generated libraries. Nothing else in the files changes.

Without arguments every component of the job list is patched with its
footprint and patch_filter. With files, --footprint and --filter are
written into each of them.

Examples:
  symgen footprint
  symgen footprint --footprint Package_LCC:PLCC-84 --filter 'PLCC*84*' symbols/CPU.kicad_sym`,
	RunE: runFootprint,
}

func init() {
	rootCmd.AddCommand(footprintCmd)

	footprintCmd.Flags().StringVar(&patchFootprint, "footprint", "", "Footprint value to write")
	footprintCmd.Flags().StringVar(&patchFilter, "filter", "", "ki_fp_filters value to write")
}

func runFootprint(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		results, err := generate.PatchAll(cmd.Context(), cfg)
		for _, res := range results {
			if res.Err != nil {
				fmt.Fprintf(out, "%-20s skipped: %v\n", res.Name, res.Err)
				continue
			}
			fmt.Fprintf(out, "%-20s updated %s\n", res.Name, res.Path)
		}
		return err
	}

	if !cmd.Flags().Changed("footprint") || !cmd.Flags().Changed("filter") {
		return fmt.Errorf("--footprint and --filter are required when files are given")
	}
	for _, path := range args {
		res, err := footprint.PatchFile(path, patchFootprint, patchFilter)
		if err != nil {
			return err
		}
		if !res.Complete() {
			fmt.Fprintf(out, "%s: footprint field found=%v, filter field found=%v\n", path, res.Footprint, res.Filter)
			continue
		}
		fmt.Fprintf(out, "Updated: %s\n", path)
	}
	return nil
}
