package pinout

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// SeparatorLine is the canonical ruler written under a header that has a GROUP column
const SeparatorLine = "----|-------------|------|-----|-------|------------|--------------------------------------------------"

// AddGroups copies a pin table from r to w, inserting a GROUP column computed
// by Classify. Comments are copied unchanged, rows that already carry a group
// are kept as written, and anything unrecognised passes through. Running it on
// its own output is a no-op.
func AddGroups(r io.Reader, w io.Writer) error {
	bw := bufio.NewWriter(w)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if _, err := bw.WriteString(addGroupToLine(line) + "\n"); err != nil {
			return fmt.Errorf("failed to write table: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read table: %w", err)
	}
	return bw.Flush()
}

func addGroupToLine(line string) string {
	switch {
	case strings.HasPrefix(line, "#"):
		return line
	case strings.HasPrefix(line, "PIN |"):
		if strings.Contains(line, "GROUP") {
			return line
		}
		return strings.Replace(line, "| FUNCTION", "| GROUP      | FUNCTION", 1)
	case strings.Contains(line, "---"):
		return SeparatorLine
	case !strings.Contains(line, "|") || strings.TrimSpace(line) == "":
		return line
	}

	row, err := defaultParser.parser.ParseString("", line)
	if err != nil {
		return line
	}
	parts := row.fields()
	if len(parts) >= groupColumns || len(parts) < baseColumns {
		return line
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	group := Classify(parts[1], ParseElectricalType(parts[2]))
	return FormatRow(parts[0], parts[1], parts[2], parts[3], parts[4], string(group), parts[5])
}

// FormatRow lays out a seven-column table row with the standard column widths
func FormatRow(number, signal, typeCode, polarity, drive, group, function string) string {
	return fmt.Sprintf("%-4s| %-12s| %-5s| %-4s| %-6s| %-11s| %s",
		number, signal, typeCode, polarity, drive, group, function)
}
