package schema

import (
	"strings"

	"github.com/reoring/jsonkit"
)

// resolveRef looks up a "$ref" path in the root schema. The path is split on
// "/"; a leading "#" names the root and every further segment is a member
// key, so "#" is the root itself and "#/definitions/node" is
// root["definitions"]["node"]. "~1" and "~0" in a segment stand for "/" and
// "~".
func (r *run) resolveRef(ref jsonkit.Value) (jsonkit.Value, error) {
	if !ref.IsString() {
		return jsonkit.Value{}, malformed("$ref", "Invalid $ref path %s", ref.Dump())
	}
	path := ref.Str()
	if v, ok := r.refs[path]; ok {
		return v, nil
	}
	cur := r.root
	for i, seg := range strings.Split(path, "/") {
		if i == 0 && seg == "#" {
			continue
		}
		seg = strings.ReplaceAll(seg, "~1", "/")
		seg = strings.ReplaceAll(seg, "~0", "~")
		next, ok := cur.Lookup(seg)
		if !ok {
			return jsonkit.Value{}, malformed("$ref", "Invalid $ref path %s", ref.Dump())
		}
		cur = next
	}
	if r.refs == nil {
		r.refs = make(map[string]jsonkit.Value)
	}
	r.refs[path] = cur
	return cur, nil
}
