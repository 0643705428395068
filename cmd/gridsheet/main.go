package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/shibukawa/gridsheet"
)

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool
	NoColor bool
	Stdout  io.Writer
}

// CLI represents the command-line interface
type CLI struct {
	Config  string     `help:"Configuration file path" default:"gridsheet.yaml"`
	Verbose bool       `help:"Enable verbose output" short:"v"`
	Quiet   bool       `help:"Suppress output" short:"q"`
	NoColor bool       `help:"Disable colored output" name:"no-color"`
	Show    ShowCmd    `cmd:"" help:"Parse a sheet file and print it"`
	Check   CheckCmd   `cmd:"" help:"Parse sheet files and report errors"`
	Lex     LexCmd     `cmd:"" help:"Print the tokens of a formula"`
	Refs    RefsCmd    `cmd:"" help:"List cell references used by formula cells"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run(ctx *Context) error {
	_, err := fmt.Fprintln(ctx.Stdout, "gridsheet v0.1.0")
	return err
}

// newContext builds the command context from parsed global flags
func newContext(cli *CLI, stdout io.Writer) *Context {
	return &Context{
		Config:  cli.Config,
		Verbose: cli.Verbose,
		Quiet:   cli.Quiet,
		NoColor: cli.NoColor,
		Stdout:  stdout,
	}
}

// loadConfig loads the configuration and applies the global color switch
func (ctx *Context) loadConfig() (*gridsheet.Config, error) {
	config, err := gridsheet.LoadConfig(ctx.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if ctx.NoColor || !config.Output.ColorEnabled() {
		color.NoColor = true
	}

	if ctx.Verbose {
		color.Blue("Using delimiter %q and formula marker %q", config.Parse.Delimiter, config.Parse.FormulaMarker)
	}

	return config, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("gridsheet"),
		kong.Description("Parse ';' separated sheets and tokenize their formulas"),
	)

	err := ctx.Run(newContext(&cli, os.Stdout))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
