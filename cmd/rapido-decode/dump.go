// README: Indented field tree of a scanned buffer.
package main

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"cabsync/internal/wire"
)

const maxDumpDepth = 8

// dump prints each field in number order. Length-delimited values that are
// not printable text and scan cleanly as a message are expanded.
func dump(w io.Writer, m *wire.Message, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, num := range m.Fields() {
		for _, v := range m.Values(num) {
			if b, ok := v.Bytes(); ok && depth < maxDumpDepth && !printable(v) {
				if nested, rep := wire.ScanReport(b); len(b) > 0 && rep.Complete() && nested.Len() > 0 {
					fmt.Fprintf(w, "%s%d: message (%d bytes)\n", indent, num, len(b))
					dump(w, nested, depth+1)
					continue
				}
			}
			fmt.Fprintf(w, "%s%d: %s %s", indent, num, v.Kind, v.String())
			if d, ok := v.Double(); ok && v.Kind == wire.KindFixed64 {
				fmt.Fprintf(w, " (double %g)", d)
			}
			fmt.Fprintln(w)
		}
	}
}

func printable(v wire.Value) bool {
	s, ok := v.Text()
	if !ok {
		return false
	}
	for _, r := range s {
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
