// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

/*
Package huffman implements a canonical Huffman codec over eight-bit symbols.  Encoding builds a
deterministic code tree from symbol frequencies, derives a prefix-free code table from it, and packs the
concatenated codewords into octets framed by marker bits.  Decoding needs only the packed octets and the
code table.
*/
package huffman

import (
	"errors"
	"strings"
)

// Symbol is one unit of input.
type Symbol uint8

var ErrBitStringSyntax = errors.New("huffman: bit string must consist of '0' and '1' only")

// BitString represents a packed bit string.  Within each octet, bits are addressed most significant first.
//
// Invariants:
//   - 0 <= BitLength <= len(Packed)*8
//   - if BitLength%8 != 0, the low (8 - BitLength%8) bits of Packed[BitLength/8] are zero
type BitString struct {
	Packed    []uint8
	BitLength int
}

// ParseBitString parses text over the alphabet {'0', '1'}, first character first.
func ParseBitString(text string) (BitString, error) {
	bs := BitString{Packed: make([]uint8, (len(text)+7)/8), BitLength: len(text)}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '0':
		case '1':
			bs.Packed[i/8] |= 0x80 >> uint(i%8)
		default:
			return BitString{}, ErrBitStringSyntax
		}
	}
	return bs, nil
}

// Bit returns the bit at index i, which must be within the string.
func (bs BitString) Bit(i int) uint8 {
	if !(0 <= i && i < bs.BitLength) {
		panic("huffman: bit index out of range")
	}
	return (bs.Packed[i/8] >> uint(7-i%8)) & 1
}

// plusOneBit returns a fresh BitString with tail appended; bs itself is left untouched so that sibling
// subtrees can extend the same prefix.
func (bs BitString) plusOneBit(tail uint8) BitString {
	packed := make([]uint8, (bs.BitLength+8)/8)
	copy(packed, bs.Packed)
	packed[bs.BitLength/8] |= (tail & 1) << uint(7-bs.BitLength%8)
	return BitString{packed, bs.BitLength + 1}
}

// check panics if any of the invariants are invalid for bs.
func (bs BitString) check() {
	switch {
	case !(0 <= bs.BitLength):
		panic("huffman: bit string with negative length")
	case !(bs.BitLength <= len(bs.Packed)*8):
		panic("huffman: bit string with insufficient octets to represent it")
	}

	if bs.BitLength%8 != 0 {
		// Conversion safety: 0 < bs.BitLength%8 <= 7.
		shift := uint(8 - bs.BitLength%8)
		lowBits := bs.Packed[bs.BitLength/8] & (uint8(1)<<shift - 1)
		if lowBits != 0 {
			panic("huffman: bit string with extraneous nonzero bits in representation")
		}
	}
}

// Equal reports whether bs and other hold the same bits.
func (bs BitString) Equal(other BitString) bool {
	if bs.BitLength != other.BitLength {
		return false
	}
	for i := 0; i < bs.BitLength; i++ {
		if bs.Bit(i) != other.Bit(i) {
			return false
		}
	}
	return true
}

func (bs BitString) String() string {
	var sb strings.Builder
	sb.Grow(bs.BitLength)
	for i := 0; i < bs.BitLength; i++ {
		if bs.Bit(i) == 0 {
			sb.WriteByte('0')
		} else {
			sb.WriteByte('1')
		}
	}
	return sb.String()
}

// MarshalText renders bs as '0'/'1' characters, which is also its JSON form inside a code table.
func (bs BitString) MarshalText() ([]byte, error) {
	return []byte(bs.String()), nil
}

func (bs *BitString) UnmarshalText(text []byte) error {
	parsed, err := ParseBitString(string(text))
	if err != nil {
		return err
	}
	*bs = parsed
	return nil
}
