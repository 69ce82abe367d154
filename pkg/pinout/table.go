package pinout

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
)

// Minimum cell counts for a data row
const (
	baseColumns  = 6 // PIN SIGNAL TYPE POLARITY DRIVE FUNCTION
	groupColumns = 7 // PIN SIGNAL TYPE POLARITY DRIVE GROUP FUNCTION
)

// Table is the result of reading a pin table
type Table struct {
	Pins     []Pin
	Skipped  []SkippedRow
	Notes    []SkippedRow // rows kept, but read in a way worth reporting
	HasGroup bool         // header declared a GROUP column
}

// SkippedRow records a data line the reader could not turn into a pin
type SkippedRow struct {
	Line   int
	Text   string
	Reason string
}

// TableParser reads pipe-delimited pin tables
type TableParser struct {
	parser *participle.Parser[tableRow]
}

// NewTableParser creates a new pin table parser instance
func NewTableParser() (*TableParser, error) {
	parser, err := participle.Build[tableRow](
		participle.Lexer(TableLexer),
		participle.Elide("EOL"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build table parser: %w", err)
	}
	return &TableParser{parser: parser}, nil
}

var defaultParser = func() *TableParser {
	p, err := NewTableParser()
	if err != nil {
		panic(err)
	}
	return p
}()

// ReadTable reads a pin table using the shared parser
func ReadTable(r io.Reader) (*Table, error) {
	return defaultParser.Parse(r)
}

// ReadTableFile reads a pin table from a file path using the shared parser
func ReadTableFile(filename string) (*Table, error) {
	return defaultParser.ParseFile(filename)
}

// ParseFile parses a pin table from a file path
func (p *TableParser) ParseFile(filename string) (*Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.Parse(file)
}

// ParseString parses a pin table held in a string
func (p *TableParser) ParseString(input string) (*Table, error) {
	return p.Parse(strings.NewReader(input))
}

// Parse reads a pin table line by line. Comments, blank lines, the header
// and separator lines are ignored. Malformed data rows are skipped and
// listed in Table.Skipped; only read errors are returned.
func (p *TableParser) Parse(r io.Reader) (*Table, error) {
	table := &Table{}
	headerSeen := false
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "", strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(trimmed, "PIN"):
			headerSeen = true
			table.HasGroup = strings.Contains(strings.ToUpper(line), "GROUP")
			continue
		case strings.Contains(line, "---"):
			continue
		}

		skip := func(reason string) {
			table.Skipped = append(table.Skipped, SkippedRow{Line: lineNo, Text: line, Reason: reason})
		}

		if !strings.Contains(line, "|") {
			skip("no column delimiter")
			continue
		}

		row, err := p.parser.ParseString("", line)
		if err != nil {
			skip(fmt.Sprintf("parse error: %v", err))
			continue
		}

		pin, reason, note := p.buildPin(row.fields(), headerSeen, table.HasGroup)
		if reason != "" {
			skip(reason)
			continue
		}
		if seen[pin.Number] {
			skip(fmt.Sprintf("duplicate pin number %s", pin.Number))
			continue
		}
		seen[pin.Number] = true
		table.Pins = append(table.Pins, pin)
		if note != "" {
			table.Notes = append(table.Notes, SkippedRow{Line: lineNo, Text: line, Reason: note})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}

	return table, nil
}

// buildPin interprets the cells of one data row. A non-empty reason means
// the row is malformed; a non-empty note describes how an accepted row was read.
func (p *TableParser) buildPin(raw []string, headerSeen, headerHasGroup bool) (Pin, string, string) {
	cells := make([]string, len(raw))
	for i, c := range raw {
		cells[i] = strings.TrimSpace(c)
	}

	if len(cells) < baseColumns {
		return Pin{}, fmt.Sprintf("expected at least %d columns, got %d", baseColumns, len(cells)), ""
	}

	n, err := strconv.Atoi(cells[0])
	if err != nil || n <= 0 {
		return Pin{}, fmt.Sprintf("invalid pin number %q", cells[0]), ""
	}
	if cells[1] == "" {
		return Pin{}, "empty signal name", ""
	}

	// Decide whether column 6 is a GROUP cell. Without a header the cell only
	// counts as a group when it looks like one, so a pipe inside the function
	// text does not eat the start of the description.
	hasGroup := false
	if headerSeen {
		hasGroup = headerHasGroup
	} else if len(cells) >= groupColumns {
		_, known := ParseGroup(cells[5])
		hasGroup = known || cells[5] == "-" || cells[5] == ""
	}

	descStart := 5
	if hasGroup {
		if len(cells) < groupColumns {
			return Pin{}, fmt.Sprintf("expected at least %d columns, got %d", groupColumns, len(cells)), ""
		}
		descStart = 6
	}

	description := strings.TrimSpace(strings.Join(raw[descStart:], "|"))
	pin := NewPin(cells[0], cells[1], cells[2], cells[3], cells[4], description)

	note := ""
	if hasGroup {
		if g, ok := ParseGroup(cells[5]); ok {
			pin.Group = g
		}
	} else if len(cells) >= groupColumns {
		note = fmt.Sprintf("no GROUP column: cell %q kept as part of the description", cells[5])
	}

	return pin, "", note
}
