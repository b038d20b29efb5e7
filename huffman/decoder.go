// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

package huffman

import (
	"fmt"
	"math/bits"
)

// Unpad reverses Pad.  The highest set bit of each octet is taken as its marker and the bits below it as
// payload.  Every octet but the last must carry a full seven payload bits.
func Unpad(packed []byte) (BitString, error) {
	sink := newBitSink()
	for i, octet := range packed {
		width := bits.Len8(octet)
		switch {
		case width == 0:
			return BitString{}, fmt.Errorf("%w: octet %d has no marker bit", ErrInvalidTransport, i)
		case width != groupPayloadBits+1 && i != len(packed)-1:
			return BitString{}, fmt.Errorf("%w: short group in octet %d of %d", ErrInvalidTransport, i, len(packed))
		}

		n := width - 1
		if err := sink.writeBits(uint64(octet)&(1<<uint(n)-1), n); err != nil {
			return BitString{}, err
		}
	}
	return sink.bitString()
}

// Decode reverses Pack for the code table that produced packed.  Errors wrap ErrInvalidMap,
// ErrInvalidTransport or ErrUndecodable; on error no partial output is returned.
func Decode(packed []byte, codes EncodingMap) ([]byte, error) {
	coding, err := NewCoding(codes)
	if err != nil {
		return nil, err
	}

	payload, err := Unpad(packed)
	if err != nil {
		return nil, err
	}

	out, err := coding.Decode(payload)
	if err != nil {
		return nil, err
	}
	log.Debugf("decoded %d octets (%d payload bits) into %d symbols", len(packed), payload.BitLength, len(out))
	return out, nil
}
