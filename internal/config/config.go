// Package config loads symbol generation jobs from HCL files.
//
// A job file looks like:
//
//	pin_dir    = "pin_extraction"
//	output_dir = "symbols"
//	keywords   = "Philips CD-i microprocessor"
//
//	component "SCC68070_PLCC84" {
//	  footprint_filter = "PLCC*84*"
//	  footprint        = "Package_LCC:PLCC-84"
//	}
//
// Relative directories are resolved against the directory holding the file.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is a decoded job file
type Config struct {
	PinDir     string       `hcl:"pin_dir,optional"`
	OutputDir  string       `hcl:"output_dir,optional"`
	Keywords   string       `hcl:"keywords,optional"`
	Components []*Component `hcl:"component,block"`
}

// Component describes one symbol to generate
type Component struct {
	Name            string `hcl:"name,label"`
	PinFile         string `hcl:"pin_file,optional"`
	Output          string `hcl:"output,optional"`
	FootprintFilter string `hcl:"footprint_filter,optional"`
	Footprint       string `hcl:"footprint,optional"`
	PatchFilter     string `hcl:"patch_filter,optional"`
	Keywords        string `hcl:"keywords,optional"`
	Description     string `hcl:"description,optional"`
	Datasheet       string `hcl:"datasheet,optional"`
	Reference       string `hcl:"reference,optional"`
}

const (
	DefaultPinDir    = "pin_extraction"
	DefaultOutputDir = "symbols"
	pinFileSuffix    = "_complete.txt"
	outputSuffix     = ".kicad_sym"
)

// Load parses and decodes a job file
func Load(path string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	return decode(file.Body, path, filepath.Dir(path))
}

// Parse decodes a job held in memory. Relative directories are resolved
// against baseDir.
func Parse(src []byte, filename, baseDir string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return decode(file.Body, filename, baseDir)
}

func decode(body hcl.Body, filename, baseDir string) (*Config, error) {
	var cfg Config
	if diags := gohcl.DecodeBody(body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	cfg.resolve(baseDir)
	return &cfg, nil
}

// Validate checks that every component has a unique, non-empty name
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Components))
	for _, comp := range c.Components {
		if comp.Name == "" {
			return fmt.Errorf("component with empty name")
		}
		if seen[comp.Name] {
			return fmt.Errorf("duplicate component %q", comp.Name)
		}
		seen[comp.Name] = true
	}
	return nil
}

// resolve fills per-component defaults and roots relative paths under the
// configured directories.
func (c *Config) resolve(baseDir string) {
	if c.PinDir == "" {
		c.PinDir = DefaultPinDir
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	c.PinDir = under(baseDir, c.PinDir)
	c.OutputDir = under(baseDir, c.OutputDir)

	for _, comp := range c.Components {
		if comp.PinFile == "" {
			comp.PinFile = comp.Name + pinFileSuffix
		}
		if comp.Output == "" {
			comp.Output = comp.Name + outputSuffix
		}
		comp.PinFile = under(c.PinDir, comp.PinFile)
		comp.Output = under(c.OutputDir, comp.Output)

		if comp.Keywords == "" {
			comp.Keywords = c.Keywords
		}
		if comp.PatchFilter == "" {
			comp.PatchFilter = comp.FootprintFilter
		}
	}
}

func under(dir, p string) string {
	if filepath.IsAbs(p) || dir == "" {
		return p
	}
	return filepath.Join(dir, p)
}

// Default returns the built-in job list for the Philips CD-i parts, rooted
// at baseDir.
func Default(baseDir string) *Config {
	cfg := &Config{
		Keywords: "Philips CD-i microprocessor",
		Components: []*Component{
			{
				Name:            "SCC68070_PLCC84",
				FootprintFilter: "PLCC*84*",
				Footprint:       "Package_LCC:PLCC-84",
				PatchFilter:     "PLCC*84*",
			},
			{
				Name:            "SCC68070_QFP120",
				FootprintFilter: "*QFP*120* SOT220*",
				Footprint:       "Package_QFP:LQFP-120_14x14mm_P0.5mm",
				PatchFilter:     "*QFP*120*P0.5mm* SOT220*",
			},
			{
				Name:            "SCC66470_QFP120",
				FootprintFilter: "*QFP*120* SOT220*",
				Footprint:       "Package_QFP:LQFP-120_14x14mm_P0.5mm",
				PatchFilter:     "*QFP*120*P0.5mm* SOT220*",
			},
		},
	}
	for _, comp := range cfg.Components {
		comp.Description = comp.Name + " - Philips CD-i Component"
	}
	cfg.resolve(baseDir)
	return cfg
}

// Lookup returns the named component, or nil
func (c *Config) Lookup(name string) *Component {
	for _, comp := range c.Components {
		if comp.Name == name {
			return comp
		}
	}
	return nil
}
