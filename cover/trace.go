package cover

import (
	"flag"
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/eaburns/sift/space"
)

var (
	traceDepth = flag.Int("cover.trace", 0, "max depth for coverage trace (0 = no trace; -1 = infinite)")
	traceDump  = flag.Bool("cover.dump", false, "dump full space structures in the coverage trace")
)

const traceIndent = "\t"

// Analysis runs as one synchronous pass per match,
// so plain package state suffices for trace indentation.
var trIndent string

type traceItem struct {
	indent string
}

func trEnter(f string, vs ...interface{}) *traceItem {
	tr := &traceItem{indent: trIndent}
	trIndent += traceIndent
	tr.trace(f, vs...)
	return tr
}

func (tr *traceItem) done() {
	trIndent = strings.TrimSuffix(trIndent, traceIndent)
}

func (tr *traceItem) trace(f string, vs ...interface{}) {
	if !tr.on() {
		return
	}
	s := fmt.Sprintf(f, vs...)
	s = strings.ReplaceAll(s, "\n", "\n"+tr.indent+"  ")
	fmt.Println(tr.indent + "• " + s)
}

func (tr *traceItem) traceSpace(what string, s space.Space) {
	if !tr.on() {
		return
	}
	if *traceDump {
		tr.trace("%s: %s", what, spew.Sdump(s))
		return
	}
	tr.trace("%s: %s", what, s)
}

func (tr *traceItem) on() bool {
	if *traceDepth == 0 {
		return false
	}
	depth := strings.Count(tr.indent, traceIndent) + 1
	return *traceDepth < 0 || depth <= *traceDepth
}
