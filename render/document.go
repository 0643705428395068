package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/beevik/etree"
	"github.com/goccy/go-yaml"

	"github.com/shibukawa/gridsheet/sheet"
)

// document is the serialized shape of a sheet in json, yaml and xml output
type document struct {
	Width  int            `json:"width" yaml:"width"`
	Height int            `json:"height" yaml:"height"`
	Cells  []cellDocument `json:"cells" yaml:"cells"`
}

type cellDocument struct {
	Position   string          `json:"position" yaml:"position"`
	Column     int             `json:"column" yaml:"column"`
	Row        int             `json:"row" yaml:"row"`
	Kind       string          `json:"kind" yaml:"kind"`
	Value      string          `json:"value" yaml:"value"`
	Tokens     []tokenDocument `json:"tokens,omitempty" yaml:"tokens,omitempty"`
	References []string        `json:"references,omitempty" yaml:"references,omitempty"`
	Error      string          `json:"error,omitempty" yaml:"error,omitempty"`
}

type tokenDocument struct {
	Type   string `json:"type" yaml:"type"`
	Value  string `json:"value" yaml:"value"`
	Offset int    `json:"offset" yaml:"offset"`
}

func newDocument(s *sheet.Sheet) (*document, error) {
	doc := &document{
		Width:  s.Width(),
		Height: s.Height(),
		Cells:  make([]cellDocument, 0, s.Len()),
	}

	for pos, cell := range s.All() {
		entry := cellDocument{
			Position: pos.String(),
			Column:   pos.Column,
			Row:      pos.Row,
			Kind:     cell.Kind.String(),
		}

		switch cell.Kind {
		case sheet.TextCell, sheet.NumberCell:
			entry.Value = cell.String()
		case sheet.FormulaCell:
			entry.Value = cell.Formula.Source
			if cell.Formula.Err != nil {
				entry.Error = cell.Formula.Err.Error()
				break
			}
			for _, token := range cell.Formula.Tokens {
				entry.Tokens = append(entry.Tokens, tokenDocument{
					Type:   token.Type.String(),
					Value:  token.Value,
					Offset: token.Offset,
				})
			}
			for _, ref := range cell.Formula.References() {
				entry.References = append(entry.References, ref.Text)
			}
		default:
			return nil, &sheet.CellError{Position: pos, Err: fmt.Errorf("%w: %s", sheet.ErrUnsupportedCellKind, cell.Kind)}
		}

		doc.Cells = append(doc.Cells, entry)
	}

	return doc, nil
}

// renderJSON writes the sheet as indented JSON
func (r *Renderer) renderJSON(s *sheet.Sheet, output io.Writer) error {
	doc, err := newDocument(s)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

// renderYAML writes the sheet as YAML
func (r *Renderer) renderYAML(s *sheet.Sheet, output io.Writer) error {
	doc, err := newDocument(s)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal sheet to YAML: %w", err)
	}
	_, err = output.Write(data)
	return err
}

// renderXML writes the sheet as an XML document
func (r *Renderer) renderXML(s *sheet.Sheet, output io.Writer) error {
	doc, err := newDocument(s)
	if err != nil {
		return err
	}

	xml := etree.NewDocument()
	xml.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := xml.CreateElement("sheet")
	root.CreateAttr("width", strconv.Itoa(doc.Width))
	root.CreateAttr("height", strconv.Itoa(doc.Height))

	for _, entry := range doc.Cells {
		elem := root.CreateElement("cell")
		elem.CreateAttr("position", entry.Position)
		elem.CreateAttr("kind", entry.Kind)
		elem.CreateElement("value").SetText(entry.Value)

		if entry.Error != "" {
			elem.CreateElement("error").SetText(entry.Error)
		}
		if len(entry.Tokens) > 0 {
			tokens := elem.CreateElement("tokens")
			for _, token := range entry.Tokens {
				t := tokens.CreateElement("token")
				t.CreateAttr("type", token.Type)
				t.CreateAttr("offset", strconv.Itoa(token.Offset))
				t.SetText(token.Value)
			}
		}
		for _, ref := range entry.References {
			elem.CreateElement("reference").SetText(ref)
		}
	}

	xml.Indent(2)
	_, err = xml.WriteTo(output)
	return err
}
