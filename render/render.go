package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shibukawa/gridsheet/sheet"
)

var (
	ErrInvalidOutputFormat = errors.New("invalid output format")
)

// Format represents the supported output formats
type Format string

const (
	FormatTable    Format = "table"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatXML      Format = "xml"
)

// Renderer writes a parsed sheet in one of the output formats
type Renderer struct {
	Format Format
	// Color highlights formula errors in table output.
	Color bool
}

// NewRenderer creates a new renderer
func NewRenderer(format Format) *Renderer {
	return &Renderer{
		Format: format,
	}
}

// Render writes s to output according to the renderer format
func (r *Renderer) Render(s *sheet.Sheet, output io.Writer) error {
	switch r.Format {
	case FormatTable:
		return r.renderTable(s, output)
	case FormatMarkdown:
		return r.renderMarkdown(s, output)
	case FormatJSON:
		return r.renderJSON(s, output)
	case FormatYAML:
		return r.renderYAML(s, output)
	case FormatXML:
		return r.renderXML(s, output)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidOutputFormat, r.Format)
	}
}

// IsValidFormat checks if the output format is valid
func IsValidFormat(format string) bool {
	f := Format(strings.ToLower(format))
	return f == FormatTable || f == FormatMarkdown || f == FormatJSON || f == FormatYAML || f == FormatXML
}

// displayValue is the text shown for a cell in grid shaped outputs.
func displayValue(cell sheet.Cell) (string, error) {
	switch cell.Kind {
	case sheet.TextCell, sheet.NumberCell:
		return cell.String(), nil
	case sheet.FormulaCell:
		if !cell.Formula.OK() {
			return "#ERROR " + cell.String(), nil
		}
		return cell.String(), nil
	default:
		return "", fmt.Errorf("%w: %s", sheet.ErrUnsupportedCellKind, cell.Kind)
	}
}

// grid lays the sheet out as height x width display values. Missing cells
// are empty strings.
func grid(s *sheet.Sheet) ([][]string, error) {
	rows := make([][]string, s.Height())
	for i := range rows {
		rows[i] = make([]string, s.Width())
	}

	for pos, cell := range s.All() {
		value, err := displayValue(cell)
		if err != nil {
			return nil, &sheet.CellError{Position: pos, Err: err}
		}
		rows[pos.Row][pos.Column] = value
	}

	return rows, nil
}
