// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../../LICENSE.md.

package main

import (
	"io"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/chimbosonic/huffhex/huffman"
)

var statsOutput io.Writer = os.Stderr

// reportStats prints sizes with thousands separators.
func reportStats(stats huffman.Stats) {
	p := message.NewPrinter(language.English)
	p.Fprintf(statsOutput, "symbols:   %d (%d distinct, longest code %d bits)\n",
		stats.Symbols, stats.Distinct, stats.MaxCodeLength)
	p.Fprintf(statsOutput, "payload:   %d bits\n", stats.PayloadBits)
	p.Fprintf(statsOutput, "packed:    %d octets (%d hex characters)\n", stats.PackedOctets, 2*stats.PackedOctets)
	if stats.Symbols > 0 {
		p.Fprintf(statsOutput, "ratio:     %.3f\n", float64(stats.PackedOctets)/float64(stats.Symbols))
	}
}
