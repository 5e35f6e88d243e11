// Package key provides CLI helpers to display the glyph and colour legend.
package key

import (
	"context"
	"io"

	"tableflip.dev/sobok/pkg/printers"
)

// Key prints what the glyphs and calendar colours mean.
type Key struct {
	Out io.Writer
}

// Do renders the legend.
func (k *Key) Do(_ context.Context) error {
	pp := &printers.PrettyPrint{Out: k.Out}
	pp.Legend()
	return nil
}
