package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/kicad-symgen/internal/config"
	"github.com/OpenTraceLab/kicad-symgen/internal/ctxlog"
)

var (
	// Global flags
	verbose    bool
	logLevel   string
	logFormat  string
	configPath string
	projectDir string
)

var rootCmd = &cobra.Command{
	Use:   "symgen",
	Short: "KiCad symbol generator for pin tables",
	Long: `symgen turns pipe-delimited pin tables into KiCad 6 symbol libraries.
Pins are grouped by function, placed on the four sides of a rectangular
body and written as .kicad_sym files.

Examples:
  symgen generate                         # Built-in job list under ./pin_extraction
  symgen generate -c jobs.hcl             # Jobs from an HCL file
  symgen generate --table cpu.txt --name CPU --footprint-filter 'PLCC*84*'
  symgen groups pin_extraction/*.txt      # Add a GROUP column to tables
  symgen footprint                        # Patch footprints into generated files
  symgen classify DTACK I                 # Show which group a signal lands in
  symgen inspect symbols/CPU.kicad_sym    # Summarise a symbol library
  symgen check symbols/*.kicad_sym        # Verify generated libraries`,
	Version:           "0.9.0",
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", envOr("SYMGEN_LOG_LEVEL", "info"),
		"log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("SYMGEN_CONFIG"),
		"HCL job file (default: built-in job list)")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "dir", "C", ".",
		"project directory for the built-in job list")
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func setupLogging(cmd *cobra.Command, args []string) error {
	switch logFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (want text or json)", logFormat)
	}

	level := logLevel
	if verbose {
		level = "debug"
	}
	logger := ctxlog.New(level, logFormat, cmd.ErrOrStderr())
	cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
	return nil
}

// loadConfig returns the job file named by --config, or the built-in jobs
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(projectDir), nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// selectComponents narrows cfg to the named components, in the order given
func selectComponents(cfg *config.Config, names []string) error {
	if len(names) == 0 {
		return nil
	}
	var selected []*config.Component
	for _, name := range names {
		comp := cfg.Lookup(name)
		if comp == nil {
			return fmt.Errorf("component %q not in job list", name)
		}
		selected = append(selected, comp)
	}
	cfg.Components = selected
	return nil
}
