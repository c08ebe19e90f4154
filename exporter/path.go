package exporter

import (
	"strconv"
	"strings"
)

// nodePath builds a readable location of a node for error messages.
// Examples:
//   - "$" for the root
//   - "$[2]" for the third item of a sequence
//   - "$[2].Next" for a record field
//   - `$[2].Next{"id"}` for a mapping entry with a scalar key
//   - "$[2].Next{#0}" for a mapping entry whose key is not a scalar
//
// Paths share their parents, so extending one is cheap; the string is only
// built when an error needs it.
type nodePath struct {
	parent *nodePath
	seg    string
}

func rootPath() *nodePath {
	return &nodePath{seg: "$"}
}

func (p *nodePath) index(i int) *nodePath {
	return &nodePath{parent: p, seg: "[" + strconv.Itoa(i) + "]"}
}

func (p *nodePath) field(name string) *nodePath {
	return &nodePath{parent: p, seg: "." + name}
}

func (p *nodePath) key(text string) *nodePath {
	return &nodePath{parent: p, seg: "{" + text + "}"}
}

func (p *nodePath) String() string {
	var segs []string
	for q := p; q != nil; q = q.parent {
		segs = append(segs, q.seg)
	}

	var b strings.Builder
	for i := len(segs) - 1; i >= 0; i-- {
		b.WriteString(segs[i])
	}

	return b.String()
}
