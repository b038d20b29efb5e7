// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

package huffman

import (
	"bytes"

	"github.com/icza/bitio"
)

// bitSink accumulates bits into a BitString.
type bitSink struct {
	buf   bytes.Buffer
	w     *bitio.Writer
	count int
}

func newBitSink() *bitSink {
	sink := &bitSink{}
	sink.w = bitio.NewWriter(&sink.buf)
	return sink
}

// writeBits appends the low n bits of r, most significant first.
func (sink *bitSink) writeBits(r uint64, n int) error {
	if n == 0 {
		return nil
	}
	if err := sink.w.WriteBits(r, uint8(n)); err != nil {
		return err
	}
	sink.count += n
	return nil
}

func (sink *bitSink) writeBitString(bs BitString) error {
	whole := bs.BitLength / 8
	for i := 0; i < whole; i++ {
		if err := sink.writeBits(uint64(bs.Packed[i]), 8); err != nil {
			return err
		}
	}

	if rest := bs.BitLength % 8; rest != 0 {
		// Conversion safety: 0 < rest <= 7.
		return sink.writeBits(uint64(bs.Packed[whole]>>uint(8-rest)), rest)
	}
	return nil
}

// bitString flushes any partial octet with zero bits and returns everything written.  The sink must not
// be written to afterward.
func (sink *bitSink) bitString() (BitString, error) {
	if err := sink.w.Close(); err != nil {
		return BitString{}, err
	}
	return BitString{sink.buf.Bytes(), sink.count}, nil
}

// bitSource reads a BitString from the front.
type bitSource struct {
	r      *bitio.Reader
	remain int
}

func newBitSource(bs BitString) *bitSource {
	return &bitSource{
		r:      bitio.NewReader(bytes.NewReader(bs.Packed)),
		remain: bs.BitLength,
	}
}

func (src *bitSource) empty() bool {
	return src.remain == 0
}

// readBits reads up to n (at most 8) bits and returns them right-aligned along with how many were read.
func (src *bitSource) readBits(n int) (bits uint8, got int, err error) {
	if n > src.remain {
		n = src.remain
	}
	if n == 0 {
		return 0, 0, nil
	}

	value, err := src.r.ReadBits(uint8(n))
	if err != nil {
		return 0, 0, err
	}
	src.remain -= n
	return uint8(value), n, nil
}

func (src *bitSource) readBit() (bool, error) {
	bit, _, err := src.readBits(1)
	return bit == 1, err
}
