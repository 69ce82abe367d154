package generate

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/kicad-symgen/internal/config"
	"github.com/OpenTraceLab/kicad-symgen/internal/ctxlog"
	"github.com/OpenTraceLab/kicad-symgen/pkg/kicad/symlib"
)

const demoTable = `# demo part
PIN | SIGNAL | TYPE | POL | DRIVE | FUNCTION
----|--------|------|-----|-------|---------
1   | VDD    | PWR  | -   | -     | Supply
2   | A0     | I    | L   | -     | Address bit 0
3   | D0     | I/O  | -   | 3S    | Data bit 0
4   | SDA    | I/O  | -   | OD    | Serial data
5   | BROKEN
`

func testContext(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return ctxlog.WithLogger(context.Background(), ctxlog.New("debug", "text", &buf)), &buf
}

func testConfig(t *testing.T, names ...string) *config.Config {
	t.Helper()
	var src strings.Builder
	src.WriteString("keywords = \"demo keywords\"\n")
	for _, n := range names {
		src.WriteString(`component "` + n + `" {
  footprint_filter = "PLCC*84*"
  footprint        = "Package_LCC:PLCC-84"
}
`)
	}
	cfg, err := config.Parse([]byte(src.String()), "jobs.hcl", t.TempDir())
	require.NoError(t, err)
	return cfg
}

func writeTable(t *testing.T, cfg *config.Config, name, content string) {
	t.Helper()
	path := cfg.Lookup(name).PinFile
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRunSkipsMissingInputs(t *testing.T) {
	ctx, logs := testContext(t)
	cfg := testConfig(t, "FIRST", "MISSING", "LAST")
	writeTable(t, cfg, "FIRST", demoTable)
	writeTable(t, cfg, "LAST", demoTable)

	results, err := Run(ctx, cfg)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.True(t, results[0].Generated())
	assert.Equal(t, 4, results[0].Pins)
	assert.Equal(t, 1, results[0].Skipped)

	assert.False(t, results[1].Generated())
	assert.True(t, errors.Is(results[1].Err, ErrMissingInput))
	assert.NoFileExists(t, cfg.Lookup("MISSING").Output)

	assert.True(t, results[2].Generated())

	out := logs.String()
	assert.Contains(t, out, "Pin file not found")
	assert.Contains(t, out, "Skipped table row")
	assert.Contains(t, out, "Created symbol")
}

func TestRunWritesReadableLibrary(t *testing.T) {
	ctx, _ := testContext(t)
	cfg := testConfig(t, "DEMO")
	writeTable(t, cfg, "DEMO", demoTable)

	_, err := Run(ctx, cfg)
	require.NoError(t, err)

	lib, err := symlib.ParseFile(cfg.Lookup("DEMO").Output)
	require.NoError(t, err)
	sym := lib.Symbol("DEMO")
	require.NotNil(t, sym)
	assert.Len(t, sym.Pins, 4)

	fp, _ := sym.Property("Footprint")
	assert.Equal(t, "Package_LCC:PLCC-84", fp)
	kw, _ := sym.Property("ki_keywords")
	assert.Equal(t, "demo keywords", kw)

	entries, err := os.ReadDir(filepath.Dir(cfg.Lookup("DEMO").Output))
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
}

func TestRunReportsWriteFailure(t *testing.T) {
	ctx, _ := testContext(t)
	cfg := testConfig(t, "DEMO")
	writeTable(t, cfg, "DEMO", demoTable)

	// a regular file where the output directory should be
	require.NoError(t, os.WriteFile(cfg.OutputDir, []byte("x"), 0o644))

	results, err := Run(ctx, cfg)
	require.Error(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Generated())
	assert.False(t, errors.Is(results[0].Err, ErrMissingInput))
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, _ := testContext(t)
	ctx, cancel := context.WithCancel(ctx)
	cancel()

	results, err := Run(ctx, testConfig(t, "A"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestPatchAll(t *testing.T) {
	ctx, logs := testContext(t)
	cfg := testConfig(t, "DEMO", "GONE")
	writeTable(t, cfg, "DEMO", demoTable)
	_, err := Run(ctx, cfg)
	require.NoError(t, err)

	demo := cfg.Lookup("DEMO")
	demo.Footprint = "Package_QFP:LQFP-120_14x14mm_P0.5mm"
	demo.PatchFilter = "*QFP*120*P0.5mm* SOT220*"

	results, err := PatchAll(ctx, cfg)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Fields.Complete())
	assert.ErrorIs(t, results[1].Err, ErrMissingInput)
	assert.Contains(t, logs.String(), "Symbol file not found")

	lib, err := symlib.ParseFile(demo.Output)
	require.NoError(t, err)
	fp, _ := lib.Symbols[0].Property("Footprint")
	filter, _ := lib.Symbols[0].Property("ki_fp_filters")
	assert.Equal(t, "Package_QFP:LQFP-120_14x14mm_P0.5mm", fp)
	assert.Equal(t, "*QFP*120*P0.5mm* SOT220*", filter)
}

func TestAddGroupsAll(t *testing.T) {
	ctx, _ := testContext(t)
	cfg := testConfig(t, "DEMO", "GONE")
	writeTable(t, cfg, "DEMO", demoTable)

	require.NoError(t, AddGroupsAll(ctx, cfg))

	data, err := os.ReadFile(cfg.Lookup("DEMO").PinFile)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "| GROUP      | FUNCTION")
	assert.Contains(t, text, "2   | A0          | I    | L   | -     | ADDRESS    | Address bit 0")
	assert.Contains(t, text, "4   | SDA         | I/O  | -   | OD    | I2C        | Serial data")

	changed, err := AddGroupsFile(cfg.Lookup("DEMO").PinFile)
	require.NoError(t, err)
	assert.False(t, changed, "second pass is a no-op")
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.kicad_sym")
	require.NoError(t, WriteFileAtomic(path, []byte("one"), 0o600))
	require.NoError(t, WriteFileAtomic(path, []byte("two"), 0o600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestOneLogsFoldedGroupCell(t *testing.T) {
	ctx, logs := testContext(t)
	cfg := testConfig(t, "DEMO")
	writeTable(t, cfg, "DEMO", "PIN | SIGNAL | TYPE | POL | DRIVE | FUNCTION\n1 | A0 | O | - | - | DATA | weird\n")

	res := One(ctx, cfg.Lookup("DEMO"))
	require.NoError(t, res.Err)
	assert.Equal(t, 1, res.Pins)
	assert.Equal(t, 0, res.Skipped)
	assert.Contains(t, logs.String(), "Table row note")
}
