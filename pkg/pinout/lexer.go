package pinout

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// TableLexer splits one table line into pipe delimiters and the raw text between them.
// Cells keep their surrounding whitespace; the reader trims them.
var TableLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Pipe", Pattern: `\|`},
	{Name: "Cell", Pattern: `[^|\r\n]+`},
	{Name: "EOL", Pattern: `[\r\n]+`},
})

// tableRow is the grammar of a single line: an optional leading cell followed
// by any number of pipe-prefixed cells.
type tableRow struct {
	Lead  string       `parser:"@Cell?"`
	Cells []*tableCell `parser:"@@*"`
}

type tableCell struct {
	Value string `parser:"Pipe @Cell?"`
}

// fields returns every cell of the row in order, including empty ones
func (r *tableRow) fields() []string {
	out := make([]string, 0, len(r.Cells)+1)
	out = append(out, r.Lead)
	for _, c := range r.Cells {
		out = append(out, c.Value)
	}
	return out
}
