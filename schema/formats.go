package schema

import (
	"context"
	"net/netip"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/idna"

	"github.com/reoring/jsonkit"
)

// Format is a semantic format activated by the "format" keyword. Type is the
// kind of data the format applies to; data of another kind fails the check.
type Format struct {
	Type  jsonkit.Kind
	Check func(ctx context.Context, data jsonkit.Value) bool
}

// StringFormat wraps a string predicate as a Format.
func StringFormat(check func(s string) bool) Format {
	return Format{Type: jsonkit.KindString, Check: func(_ context.Context, v jsonkit.Value) bool { return check(v.Str()) }}
}

func builtinFormats(res Resolver) map[string]Format {
	return map[string]Format{
		"date-time": StringFormat(IsDateTime),
		"email":     StringFormat(IsEmail),
		"hostname":  hostnameFormat(res),
		"ipv4":      StringFormat(IsIPv4),
		"ipv6":      StringFormat(IsIPv6),
		"uri":       StringFormat(IsURI),
	}
}

func (r *run) checkFormat(f, data jsonkit.Value, path string) error {
	if !f.IsString() {
		return malformed("format", "format must be a string, got %s", f.Dump())
	}
	name := f.Str()
	fm, ok := r.v.formats[name]
	if !ok {
		return malformed("format", "Unknown semantic format %q", name)
	}
	if fm.Type != data.Kind() {
		return invalid("format", path, "Invalid semantic format %s for data: %s", name, data.Dump())
	}
	if !fm.Check(r.ctx, data) {
		return invalid("format", path, "Invalid %s format for data: %s", name, data.Dump())
	}
	return nil
}

// dateTimeLayout is the leading "%Y-%m-%dT%H:%M:%S" part every date-time
// must start with; any suffix (fraction, zone) is accepted after it.
const dateTimeLayout = "2006-01-02T15:04:05"

// IsDateTime reports whether s is an RFC 3339 timestamp, or starts with a
// zone-less date and time of day.
func IsDateTime(s string) bool {
	if _, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return true
	}
	if len(s) < len(dateTimeLayout) {
		return false
	}
	_, err := time.Parse(dateTimeLayout, s[:len(dateTimeLayout)])
	return err == nil
}

// IsEmail reports whether s is an RFC 5322 addr-spec: a dot-atom or quoted
// local part, "@", and a dot-atom or bracketed domain literal. Comments and
// folding white space are not accepted.
func IsEmail(s string) bool {
	at := strings.LastIndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	return validLocalPart(s[:at]) && validDomain(s[at+1:])
}

func isAtext(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("!#$%&'*+-/=?^_`{|}~", c) >= 0
}

func isDotAtom(s string) bool {
	if s == "" {
		return false
	}
	for _, atom := range strings.Split(s, ".") {
		if atom == "" {
			return false
		}
		for i := 0; i < len(atom); i++ {
			if !isAtext(atom[i]) {
				return false
			}
		}
	}
	return true
}

func validLocalPart(s string) bool {
	if !strings.HasPrefix(s, `"`) {
		return isDotAtom(s)
	}
	if len(s) < 2 || s[len(s)-1] != '"' {
		return false
	}
	body := s[1 : len(s)-1]
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '\\':
			i++
			if i == len(body) || body[i] < 0x20 || body[i] > 0x7e {
				return false
			}
		case c == '"', c < 0x20, c > 0x7e:
			return false
		}
	}
	return true
}

func validDomain(s string) bool {
	if !strings.HasPrefix(s, "[") {
		return isDotAtom(s)
	}
	if len(s) < 2 || s[len(s)-1] != ']' {
		return false
	}
	for i := 1; i < len(s)-1; i++ {
		c := s[i]
		if c < 33 || c > 126 || c == '[' || c == ']' || c == '\\' {
			return false
		}
	}
	return true
}

// hostnameFormat accepts names that convert to ASCII under IDNA lookup rules
// and resolve through res.
func hostnameFormat(res Resolver) Format {
	return Format{Type: jsonkit.KindString, Check: func(ctx context.Context, v jsonkit.Value) bool {
		host, err := idna.Lookup.ToASCII(v.Str())
		if err != nil || host == "" || len(host) > 253 {
			return false
		}
		addrs, err := res.LookupHost(ctx, host)
		return err == nil && len(addrs) > 0
	}}
}

// IsIPv4 reports whether s is a dotted-quad IPv4 address.
func IsIPv4(s string) bool {
	a, err := netip.ParseAddr(s)
	return err == nil && a.Is4()
}

// IsIPv6 reports whether s is a textual IPv6 address without a zone.
func IsIPv6(s string) bool {
	a, err := netip.ParseAddr(s)
	return err == nil && a.Is6() && a.Zone() == ""
}

// RFC 3986 generic syntax, assembled from the ABNF rule names.
const (
	uriUnreserved   = `A-Za-z0-9\-._~`
	uriSubDelims    = `!$&'()*+,;=`
	uriPctEncoded   = `%[0-9A-Fa-f]{2}`
	uriPchar        = `(?:[` + uriUnreserved + uriSubDelims + `:@]|` + uriPctEncoded + `)`
	uriScheme       = `[A-Za-z][A-Za-z0-9+\-.]*`
	uriUserinfo     = `(?:[` + uriUnreserved + uriSubDelims + `:]|` + uriPctEncoded + `)*`
	uriIPLiteral    = `\[(?:[0-9A-Fa-f:.]+|[vV][0-9A-Fa-f]+\.[` + uriUnreserved + uriSubDelims + `:]+)\]`
	uriRegName      = `(?:[` + uriUnreserved + uriSubDelims + `]|` + uriPctEncoded + `)*`
	uriAuthority    = `(?:` + uriUserinfo + `@)?(?:` + uriIPLiteral + `|` + uriRegName + `)(?::[0-9]*)?`
	uriPathAbempty  = `(?:/` + uriPchar + `*)*`
	uriPathAbsolute = `/(?:` + uriPchar + `+(?:/` + uriPchar + `*)*)?`
	uriPathRootless = uriPchar + `+(?:/` + uriPchar + `*)*`
	uriHierPart     = `(?://` + uriAuthority + uriPathAbempty + `|` + uriPathAbsolute + `|` + uriPathRootless + `|)`
	uriQuery        = `(?:` + uriPchar + `|[/?])*`
	uriPattern      = `^` + uriScheme + `:` + uriHierPart + `(?:\?` + uriQuery + `)?(?:#` + uriQuery + `)?$`
)

var uriRegexp = regexp.MustCompile(uriPattern)

// IsURI reports whether s is an absolute URI per RFC 3986.
func IsURI(s string) bool { return uriRegexp.MatchString(s) }
