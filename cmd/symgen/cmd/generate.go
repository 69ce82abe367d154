package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/kicad-symgen/internal/config"
	"github.com/OpenTraceLab/kicad-symgen/internal/generate"
)

var (
	tablePath       string
	componentName   string
	outputPath      string
	footprintFilter string
	footprintName   string
	keywords        string
	description     string
	patchAfter      bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [component...]",
	Short: "Generate symbol libraries from pin tables",
	Long: `Generate a .kicad_sym file for every component in the job list, or for
the named components only. Components whose pin table is missing are
skipped with a warning.

With --table a single table is converted without a job list.

Examples:
  symgen generate
  symgen generate SCC68070_PLCC84
  symgen generate -c jobs.hcl --patch
  symgen generate --table cpu.txt --name CPU -o out/CPU.kicad_sym`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&tablePath, "table", "t", "", "convert a single pin table")
	generateCmd.Flags().StringVar(&componentName, "name", "", "component name (with --table; default: table file name)")
	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (with --table; default: NAME.kicad_sym)")
	generateCmd.Flags().StringVar(&footprintFilter, "footprint-filter", "", "ki_fp_filters value (with --table)")
	generateCmd.Flags().StringVar(&footprintName, "footprint", "", "Footprint value (with --table)")
	generateCmd.Flags().StringVar(&keywords, "keywords", "", "ki_keywords value (with --table)")
	generateCmd.Flags().StringVar(&description, "description", "", "ki_description value (with --table)")
	generateCmd.Flags().BoolVar(&patchAfter, "patch", false, "patch footprints into the files after generating")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := generateConfig(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	results, err := generate.Run(cmd.Context(), cfg)
	for _, res := range results {
		switch {
		case res.Generated():
			fmt.Fprintf(out, "%-20s %4d pins", res.Name, res.Pins)
			if res.Skipped > 0 {
				fmt.Fprintf(out, " (%d rows skipped)", res.Skipped)
			}
			fmt.Fprintf(out, "  -> %s\n", res.Output)
		default:
			fmt.Fprintf(out, "%-20s skipped: %v\n", res.Name, res.Err)
		}
	}
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if patchAfter {
		if _, err := generate.PatchAll(cmd.Context(), cfg); err != nil {
			return fmt.Errorf("footprint patch failed: %w", err)
		}
	}
	return nil
}

func generateConfig(args []string) (*config.Config, error) {
	if tablePath == "" {
		cfg, err := loadConfig()
		if err != nil {
			return nil, err
		}
		if err := selectComponents(cfg, args); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if len(args) > 0 {
		return nil, fmt.Errorf("component names cannot be combined with --table")
	}
	name := componentName
	if name == "" {
		base := filepath.Base(tablePath)
		name = base[:len(base)-len(filepath.Ext(base))]
	}
	output := outputPath
	if output == "" {
		output = name + ".kicad_sym"
	}
	return &config.Config{
		Components: []*config.Component{{
			Name:            name,
			PinFile:         tablePath,
			Output:          output,
			FootprintFilter: footprintFilter,
			Footprint:       footprintName,
			PatchFilter:     footprintFilter,
			Keywords:        keywords,
			Description:     description,
		}},
	}, nil
}
