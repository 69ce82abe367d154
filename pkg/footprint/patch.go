// Package footprint rewrites the footprint fields of generated symbol libraries
package footprint

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	footprintRe = regexp.MustCompile(`(\(property "Footprint" )"(?:[^"\\]|\\.)*"( \(id 2\))`)
	filterRe    = regexp.MustCompile(`(\(property "ki_fp_filters" )"(?:[^"\\]|\\.)*"( \(id 6\))`)
)

// Result reports which fields a patch touched
type Result struct {
	Footprint bool // a Footprint (id 2) property was found
	Filter    bool // a ki_fp_filters (id 6) property was found
}

// Complete reports whether both fields were found
func (r Result) Complete() bool { return r.Footprint && r.Filter }

// Patch replaces the quoted values of the Footprint (id 2) and ki_fp_filters
// (id 6) properties. All other bytes of content are left as they were.
func Patch(content, footprint, filter string) (string, Result) {
	var res Result
	res.Footprint = footprintRe.MatchString(content)
	res.Filter = filterRe.MatchString(content)

	content = replaceValue(footprintRe, content, footprint)
	content = replaceValue(filterRe, content, filter)
	return content, res
}

// replaceValue swaps the quoted value captured between the two groups of re
func replaceValue(re *regexp.Regexp, content, value string) string {
	repl := "${1}" + strings.ReplaceAll(quote(value), "$", "$$") + "${2}"
	return re.ReplaceAllString(content, repl)
}

// PatchFile applies Patch to a file in place
func PatchFile(filename, footprint, filter string) (Result, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	out, res := Patch(string(data), footprint, filter)
	if out == string(data) {
		return res, nil
	}

	info, err := os.Stat(filename)
	if err != nil {
		return res, fmt.Errorf("failed to stat %s: %w", filename, err)
	}
	if err := os.WriteFile(filename, []byte(out), info.Mode().Perm()); err != nil {
		return res, fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return res, nil
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
