package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/reoring/jsonkit"
	"github.com/reoring/jsonkit/i18n"
)

func getCmd(args []string) int {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	var raw bool
	var ro renderOpts
	fs.BoolVar(&raw, "raw", false, "print strings without quotes")
	fs.BoolVar(&ro.compact, "compact", false, "print without spaces (go-json encoding)")
	fs.StringVar(&ro.indent, "indent", "", "indent nested values with this string")
	_ = fs.Parse(args)
	if fs.NArg() != 2 {
		fs.Usage()
		return 2
	}
	path, ptr := fs.Arg(0), fs.Arg(1)

	doc, err := loadDocument(path)
	if err != nil {
		errorf("%s: %s: %v", path, failColor(i18n.T(classify(err), nil)), err)
		return 1
	}
	v, ok := lookupPointer(doc, ptr)
	if !ok {
		errorf("%s: no value at %s", path, ptr)
		return 1
	}
	if raw && v.IsString() {
		fmt.Println(v.Str())
		return 0
	}
	out, err := ro.render(v)
	if err != nil {
		errorf("%s: %v", path, err)
		return 1
	}
	fmt.Println(out)
	return 0
}

// lookupPointer walks an RFC 6901 JSON Pointer of member names and array
// indices. "" addresses the document itself; "/" is the member named "".
func lookupPointer(v jsonkit.Value, ptr string) (jsonkit.Value, bool) {
	if ptr == "" {
		return v, true
	}
	if !strings.HasPrefix(ptr, "/") {
		return jsonkit.Value{}, false
	}
	for _, tok := range strings.Split(ptr[1:], "/") {
		tok = strings.ReplaceAll(tok, "~1", "/")
		tok = strings.ReplaceAll(tok, "~0", "~")
		switch {
		case v.IsObject():
			next, ok := v.Lookup(tok)
			if !ok {
				return jsonkit.Value{}, false
			}
			v = next
		case v.IsArray():
			i, err := strconv.Atoi(tok)
			if err != nil || i < 0 || i >= v.Len() {
				return jsonkit.Value{}, false
			}
			v = v.At(i)
		default:
			return jsonkit.Value{}, false
		}
	}
	return v, true
}
