package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/shibukawa/gridsheet"
	"github.com/shibukawa/gridsheet/formula"
	"github.com/shibukawa/gridsheet/render"
	"github.com/shibukawa/gridsheet/sheet"
)

// ShowCmd represents the show command
type ShowCmd struct {
	Input  string `arg:"" help:"Sheet file to parse" type:"path"`
	Format string `short:"f" help:"Output format (table, markdown, json, yaml, xml); defaults to output.format of the config"`
	Cell   string `short:"c" help:"Print only the cell at this A1 position"`
}

// Run executes the show command
func (cmd *ShowCmd) Run(ctx *Context) error {
	config, err := ctx.loadConfig()
	if err != nil {
		return err
	}

	s, err := loadSheet(ctx, config, cmd.Input)
	if err != nil {
		return err
	}

	if cmd.Cell != "" {
		return cmd.showCell(ctx, s)
	}

	format := config.Output.Format
	if cmd.Format != "" {
		format = strings.ToLower(cmd.Format)
	}
	if !render.IsValidFormat(format) {
		return fmt.Errorf("%w: %s", render.ErrInvalidOutputFormat, format)
	}

	renderer := render.NewRenderer(render.Format(format))
	renderer.Color = !color.NoColor

	return renderer.Render(s, ctx.Stdout)
}

func (cmd *ShowCmd) showCell(ctx *Context, s *sheet.Sheet) error {
	pos, err := sheet.ParsePosition(cmd.Cell)
	if err != nil {
		return err
	}

	cell, ok := s.Cell(pos)
	if !ok {
		return fmt.Errorf("%w: %s", gridsheet.ErrCellNotFound, pos)
	}

	switch cell.Kind {
	case sheet.TextCell, sheet.NumberCell:
		_, err = fmt.Fprintf(ctx.Stdout, "%s (%s): %s\n", pos, cell.Kind, cell)
	case sheet.FormulaCell:
		if cell.Formula.Err != nil {
			_, err = fmt.Fprintf(ctx.Stdout, "%s (%s): %s\n  error: %v\n", pos, cell.Kind, cell, cell.Formula.Err)
			break
		}
		_, err = fmt.Fprintf(ctx.Stdout, "%s (%s): %s\n", pos, cell.Kind, cell)
		for _, token := range cell.Formula.Tokens {
			if _, err := fmt.Fprintf(ctx.Stdout, "  %s\n", token); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: %s", sheet.ErrUnsupportedCellKind, cell.Kind)
	}

	return err
}

// CheckCmd represents the check command
type CheckCmd struct {
	Inputs []string `arg:"" help:"Sheet files to check" type:"path"`
}

// Run executes the check command
func (cmd *CheckCmd) Run(ctx *Context) error {
	config, err := ctx.loadConfig()
	if err != nil {
		return err
	}

	failed := 0
	for _, input := range cmd.Inputs {
		s, err := loadSheet(ctx, config, input)
		if err != nil {
			failed++
			if !ctx.Quiet {
				color.Red("%s: %v", input, err)
			}
			continue
		}

		errs := s.FormulaErrors()
		if len(errs) > 0 {
			failed++
			if !ctx.Quiet {
				for _, cellErr := range errs {
					color.Red("%s: %v", input, cellErr)
				}
			}
			continue
		}

		if !ctx.Quiet {
			fmt.Fprintf(ctx.Stdout, "%s: ok (%d x %d, %d cells)\n", input, s.Width(), s.Height(), s.Len())
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d file(s) failed", gridsheet.ErrCheckFailed, failed, len(cmd.Inputs))
	}

	if ctx.Verbose {
		color.Green("All %d file(s) passed", len(cmd.Inputs))
	}

	return nil
}

// LexCmd represents the lex command
type LexCmd struct {
	Expression string `arg:"" help:"Formula text, with or without the leading formula marker"`
	Strict     bool   `help:"Report unrecognized characters as errors"`
}

// Run executes the lex command
func (cmd *LexCmd) Run(ctx *Context) error {
	config, err := ctx.loadConfig()
	if err != nil {
		return err
	}

	expression := strings.TrimPrefix(strings.TrimSpace(cmd.Expression), config.Parse.FormulaMarker)
	lexer := formula.NewLexer(expression, formula.Options{
		StrictCharacters: cmd.Strict || config.Parse.StrictFormula,
	})

	for token, err := range lexer.Tokens() {
		if err != nil {
			return err
		}
		fmt.Fprintf(ctx.Stdout, "%3d  %s\n", token.Offset, token)
	}

	if lexer.Depth() > 0 && !ctx.Quiet {
		color.Yellow("warning: %d unclosed parenthesis", lexer.Depth())
	}

	return nil
}

// RefsCmd represents the refs command
type RefsCmd struct {
	Input string `arg:"" help:"Sheet file to parse" type:"path"`
}

// Run executes the refs command
func (cmd *RefsCmd) Run(ctx *Context) error {
	config, err := ctx.loadConfig()
	if err != nil {
		return err
	}

	s, err := loadSheet(ctx, config, cmd.Input)
	if err != nil {
		return err
	}

	for pos, cell := range s.All() {
		if cell.Kind != sheet.FormulaCell {
			continue
		}

		refs := cell.Formula.References()
		if len(refs) == 0 {
			continue
		}

		targets := make([]string, 0, len(refs))
		for _, ref := range refs {
			target := sheet.Position{Column: ref.Column, Row: ref.Row}
			if _, ok := s.Cell(target); !ok {
				targets = append(targets, target.String()+"?")
				continue
			}
			targets = append(targets, target.String())
		}

		fmt.Fprintf(ctx.Stdout, "%s: %s\n", pos, strings.Join(targets, " "))
	}

	return nil
}

// loadSheet reads and parses one sheet file
func loadSheet(ctx *Context, config *gridsheet.Config, path string) (*sheet.Sheet, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", gridsheet.ErrInputFileNotExist, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if ctx.Verbose {
		color.Blue("Parsing %s", path)
	}

	s, err := sheet.Parse(string(data), config.SheetOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return s, nil
}
