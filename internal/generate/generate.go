// Package generate drives batch symbol generation, footprint patching and
// GROUP column rewriting over a job list.
package generate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/OpenTraceLab/kicad-symgen/internal/config"
	"github.com/OpenTraceLab/kicad-symgen/internal/ctxlog"
	"github.com/OpenTraceLab/kicad-symgen/pkg/footprint"
	"github.com/OpenTraceLab/kicad-symgen/pkg/pinout"
	"github.com/OpenTraceLab/kicad-symgen/pkg/symgen"
)

// ErrMissingInput marks a component skipped because its file does not exist
var ErrMissingInput = errors.New("input file not found")

// Result summarises one component of a batch
type Result struct {
	Name    string
	Input   string
	Output  string
	Pins    int
	Skipped int   // table rows that were ignored
	Err     error // nil on success; wraps ErrMissingInput when skipped
}

// Generated reports whether the component's output was written
func (r Result) Generated() bool { return r.Err == nil }

// Run generates a symbol library for every component in cfg. Components
// whose pin table is missing are logged and skipped; any other failure is
// recorded on the component's Result and returned joined once the batch
// completes.
func Run(ctx context.Context, cfg *config.Config) ([]Result, error) {
	logger := ctxlog.FromContext(ctx)

	results := make([]Result, 0, len(cfg.Components))
	var errs []error
	for _, comp := range cfg.Components {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res := One(ctx, comp)
		switch {
		case errors.Is(res.Err, ErrMissingInput):
			logger.Warn("Pin file not found, skipping", "component", comp.Name, "path", comp.PinFile)
		case res.Err != nil:
			logger.Error("Failed to generate symbol", "component", comp.Name, "error", res.Err)
			errs = append(errs, res.Err)
		default:
			logger.Info("Created symbol", "component", comp.Name, "pins", res.Pins, "path", res.Output)
		}
		results = append(results, res)
	}
	return results, errors.Join(errs...)
}

// One generates the library for a single component
func One(ctx context.Context, comp *config.Component) Result {
	logger := ctxlog.FromContext(ctx)
	res := Result{Name: comp.Name, Input: comp.PinFile, Output: comp.Output}

	table, err := pinout.ReadTableFile(comp.PinFile)
	if errors.Is(err, os.ErrNotExist) {
		res.Err = fmt.Errorf("%s: %w", comp.PinFile, ErrMissingInput)
		return res
	}
	if err != nil {
		res.Err = fmt.Errorf("component %s: %w", comp.Name, err)
		return res
	}

	res.Pins = len(table.Pins)
	res.Skipped = len(table.Skipped)
	for _, row := range table.Skipped {
		logger.Debug("Skipped table row", "component", comp.Name, "line", row.Line, "reason", row.Reason, "text", row.Text)
	}
	for _, row := range table.Notes {
		logger.Debug("Table row note", "component", comp.Name, "line", row.Line, "note", row.Reason, "text", row.Text)
	}
	logger.Debug("Parsed pin table", "component", comp.Name, "pins", res.Pins, "skipped", res.Skipped)

	text := symgen.Generate(Component(comp, table.Pins))
	if err := WriteFileAtomic(comp.Output, []byte(text), 0o644); err != nil {
		res.Err = fmt.Errorf("component %s: %w", comp.Name, err)
	}
	return res
}

// Component converts a job entry and its pins into a layout input
func Component(comp *config.Component, pins []pinout.Pin) symgen.Component {
	return symgen.Component{
		Name:            comp.Name,
		Pins:            pins,
		FootprintFilter: comp.FootprintFilter,
		Footprint:       comp.Footprint,
		Datasheet:       comp.Datasheet,
		Keywords:        comp.Keywords,
		Description:     comp.Description,
		Reference:       comp.Reference,
	}
}

// PatchResult summarises a footprint patch of one generated file
type PatchResult struct {
	Name   string
	Path   string
	Fields footprint.Result
	Err    error
}

// PatchAll writes each component's footprint and patch filter into its
// generated library. Missing libraries are logged and skipped.
func PatchAll(ctx context.Context, cfg *config.Config) ([]PatchResult, error) {
	logger := ctxlog.FromContext(ctx)

	var results []PatchResult
	var errs []error
	for _, comp := range cfg.Components {
		res := PatchResult{Name: comp.Name, Path: comp.Output}

		fields, err := footprint.PatchFile(comp.Output, comp.Footprint, comp.PatchFilter)
		res.Fields = fields
		switch {
		case errors.Is(err, os.ErrNotExist):
			res.Err = fmt.Errorf("%s: %w", comp.Output, ErrMissingInput)
			logger.Warn("Symbol file not found, skipping", "component", comp.Name, "path", comp.Output)
		case err != nil:
			res.Err = err
			errs = append(errs, err)
			logger.Error("Failed to patch footprint", "component", comp.Name, "error", err)
		case !fields.Complete():
			logger.Warn("Footprint fields missing from symbol", "component", comp.Name,
				"footprint", fields.Footprint, "filter", fields.Filter)
		default:
			logger.Info("Updated footprint", "component", comp.Name, "footprint", comp.Footprint, "path", comp.Output)
		}
		results = append(results, res)
	}
	return results, errors.Join(errs...)
}

// AddGroupsAll rewrites every component's pin table in place with a GROUP
// column. Missing tables are logged and skipped.
func AddGroupsAll(ctx context.Context, cfg *config.Config) error {
	logger := ctxlog.FromContext(ctx)

	var errs []error
	for _, comp := range cfg.Components {
		changed, err := AddGroupsFile(comp.PinFile)
		switch {
		case errors.Is(err, os.ErrNotExist):
			logger.Warn("Pin file not found, skipping", "component", comp.Name, "path", comp.PinFile)
		case err != nil:
			errs = append(errs, err)
			logger.Error("Failed to add groups", "component", comp.Name, "error", err)
		default:
			logger.Info("Processed pin table", "component", comp.Name, "path", comp.PinFile, "changed", changed)
		}
	}
	return errors.Join(errs...)
}

// AddGroupsFile rewrites a single pin table, replacing it only when the
// content changes.
func AddGroupsFile(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var out bytes.Buffer
	if err := pinout.AddGroups(bytes.NewReader(data), &out); err != nil {
		return false, fmt.Errorf("failed to process %s: %w", path, err)
	}
	if bytes.Equal(out.Bytes(), data) {
		return false, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := WriteFileAtomic(path, out.Bytes(), info.Mode().Perm()); err != nil {
		return false, err
	}
	return true, nil
}

// WriteFileAtomic writes data to a temporary file beside path and renames it
// into place, creating the directory when needed.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to rename %s to %s: %w", tmpName, path, err)
	}
	return nil
}
