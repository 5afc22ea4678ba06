package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/reoring/jsonkit"
	"github.com/reoring/jsonkit/i18n"
	"github.com/reoring/jsonkit/schema"
)

type fileResult struct {
	path string
	err  error
}

func validateCmd(args []string) int {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var cf commonFlags
	var schemaPath string
	var jobs int
	var maxDepth int
	fs.StringVar(&schemaPath, "schema", "", "schema file (JSON or YAML)")
	fs.IntVar(&jobs, "j", runtime.GOMAXPROCS(0), "number of files validated concurrently")
	fs.IntVar(&maxDepth, "max-depth", schema.DefaultMaxDepth, "maximum nested validation depth")
	fs.BoolVar(&cf.verbose, "v", false, "enable verbose logs")
	fs.BoolVar(&cf.noColor, "no-color", false, "disable colored output")
	fs.StringVar(&cf.lang, "lang", "en", "message language (en, ja)")
	_ = fs.Parse(args)
	if schemaPath == "" || fs.NArg() == 0 {
		fs.Usage()
		return 2
	}
	cf.apply()

	sch, err := loadDocument(schemaPath)
	if err != nil {
		errorf("%s: %s: %v", schemaPath, i18n.T(classify(err), nil), err)
		return 1
	}
	cf.logf("validate: schema=%s files=%d jobs=%d", schemaPath, fs.NArg(), jobs)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	v := schema.New(schema.WithMaxDepth(maxDepth))
	results := validateFiles(ctx, v, sch, fs.Args(), jobs, cf.logf)

	failed := 0
	for _, r := range results {
		if r.err == nil {
			fmt.Printf("%s: %s\n", pathColor(r.path), okColor(i18n.T(i18n.CodeOK, nil)))
			continue
		}
		failed++
		fmt.Printf("%s: %s: %v\n", pathColor(r.path), failColor(i18n.T(classify(r.err), nil)), r.err)
		if ve, ok := schema.AsValidationError(r.err); ok && ve.Path != "" {
			cf.logf("  at %s (keyword %s)", ve.Path, ve.Keyword)
		}
	}
	if failed > 0 {
		errorf("%s", i18n.T(i18n.CodeSummary, map[string]string{
			"failed": strconv.Itoa(failed),
			"total":  strconv.Itoa(len(results)),
		}))
		return 1
	}
	return 0
}

// validateFiles checks every path against sch with at most jobs files in
// flight. Results keep the order of paths.
func validateFiles(ctx context.Context, v *schema.Validator, sch jsonkit.Value, paths []string, jobs int, logf func(string, ...any)) []fileResult {
	results := make([]fileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, p := range paths {
		g.Go(func() error {
			logf("validate: start %s", p)
			results[i] = fileResult{path: p, err: validateFile(gctx, v, sch, p)}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func validateFile(ctx context.Context, v *schema.Validator, sch jsonkit.Value, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := loadDocument(path)
	if err != nil {
		return err
	}
	return v.Validate(ctx, data, sch)
}

// classify maps an error to its i18n message code.
func classify(err error) string {
	switch {
	case errors.Is(err, jsonkit.ErrInvalidJSON):
		return i18n.CodeInvalidJSON
	case errors.Is(err, schema.ErrValidation):
		return i18n.CodeValidationError
	case errors.Is(err, schema.ErrMalformedSchema):
		return i18n.CodeMalformedSchema
	}
	return i18n.CodeIOError
}
