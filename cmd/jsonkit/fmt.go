package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	gojson "github.com/goccy/go-json"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/reoring/jsonkit"
	"github.com/reoring/jsonkit/i18n"
)

type renderOpts struct {
	indent  string
	compact bool
}

// render returns the text fmt and get print for v.
func (o renderOpts) render(v jsonkit.Value) (string, error) {
	switch {
	case o.compact:
		b, err := gojson.MarshalNoEscape(v.ToAny())
		if err != nil {
			return "", err
		}
		return string(b), nil
	case o.indent != "":
		return v.Indent("", o.indent), nil
	}
	return v.Dump(), nil
}

func fmtCmd(args []string) int {
	fs := flag.NewFlagSet("fmt", flag.ExitOnError)
	var cf commonFlags
	var write, diff bool
	var ro renderOpts
	fs.BoolVar(&write, "w", false, "write result to the source file instead of stdout")
	fs.BoolVar(&diff, "d", false, "print a diff against the canonical form instead of the result")
	fs.StringVar(&ro.indent, "indent", "", "indent nested values with this string")
	fs.BoolVar(&ro.compact, "compact", false, "print without spaces (go-json encoding)")
	fs.BoolVar(&cf.verbose, "v", false, "enable verbose logs")
	fs.BoolVar(&cf.noColor, "no-color", false, "disable colored output")
	fs.StringVar(&cf.lang, "lang", "en", "message language (en, ja)")
	_ = fs.Parse(args)
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}
	cf.apply()

	code := 0
	for _, path := range fs.Args() {
		if err := fmtFile(path, write, diff, ro, cf.logf); err != nil {
			errorf("%s: %s: %v", path, failColor(i18n.T(classify(err), nil)), err)
			code = 1
		}
	}
	return code
}

func fmtFile(path string, write, diff bool, ro renderOpts, logf func(string, ...any)) error {
	raw, err := readInput(path)
	if err != nil {
		return err
	}
	v, err := decode(path, raw)
	if err != nil {
		return err
	}
	out, err := ro.render(v)
	if err != nil {
		return err
	}
	out += "\n"
	logf("fmt: %s (%d bytes in, %d bytes out)", path, len(raw), len(out))

	switch {
	case diff:
		if string(raw) == out {
			return nil
		}
		fmt.Println(i18n.T(i18n.CodeNeedsFormat, map[string]string{"file": path}))
		fmt.Print(textDiff(string(raw), out))
	case write && path != "-" && !isYAML(path):
		if string(raw) == out {
			return nil
		}
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			return err
		}
		fmt.Println(i18n.T(i18n.CodeReformatted, map[string]string{"file": path}))
	default:
		fmt.Print(out)
	}
	return nil
}

// textDiff renders a character diff from a to b: colored inline when the
// output is a terminal, unified patch text otherwise.
func textDiff(a, b string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(a, b, false))
	if !color.NoColor {
		return dmp.DiffPrettyText(diffs) + "\n"
	}
	return dmp.PatchToText(dmp.PatchMake(a, diffs))
}
