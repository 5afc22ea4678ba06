package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/reoring/jsonkit/i18n"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	var code int
	switch sub {
	case "fmt":
		code = fmtCmd(os.Args[2:])
	case "validate":
		code = validateCmd(os.Args[2:])
	case "get":
		code = getCmd(os.Args[2:])
	default:
		usage()
		code = 2
	}
	os.Exit(code)
}

func usage() {
	fmt.Fprintln(os.Stderr, `jsonkit CLI

Usage:
  jsonkit fmt [-w] [-d] [-indent STR] [-compact] file...
  jsonkit validate -schema schema.json [-j N] [-lang en|ja] [-v] file...
  jsonkit get [-raw] [-compact] file /pointer/to/value

Notes:
  - Files ending in .yaml or .yml are read as YAML; "-" reads standard input.
  - Output uses the canonical form: sorted keys, ", " separators, 17-digit floats.`)
}

// commonFlags are shared by subcommands that print status lines.
type commonFlags struct {
	verbose bool
	noColor bool
	lang    string
}

func (c *commonFlags) apply() {
	i18n.SetLanguage(c.lang)
	color.NoColor = c.noColor || !isatty.IsTerminal(os.Stdout.Fd())
}

func (c *commonFlags) logf(format string, a ...any) {
	if c.verbose {
		fmt.Fprintf(os.Stderr, format+"\n", a...)
	}
}

var (
	okColor   = color.New(color.FgGreen).SprintFunc()
	failColor = color.New(color.FgRed, color.Bold).SprintFunc()
	pathColor = color.New(color.FgCyan).SprintFunc()
)

func errorf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
}
