// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

package huffman

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("huffman")

var (
	ErrInvalidTransport = errors.New("huffman: invalid transport encoding")
	ErrInvalidMap       = errors.New("huffman: invalid encoding map")
	ErrUndecodable      = errors.New("huffman: undecodable bitstream")
	ErrAbsentSymbol     = errors.New("huffman: symbol absent from encoding map")
)

// EncodingMap maps each symbol to its codeword.  Codewords produced by BuildEncodingMap are non-empty and
// prefix-free.
type EncodingMap map[Symbol]BitString

// BuildEncodingMap walks the tree from root, extending the codeword with 0 on every left edge and 1 on
// every right edge.  A tree consisting of a single leaf gets the codeword "0".
func BuildEncodingMap(root *Node) EncodingMap {
	codes := make(EncodingMap)
	if root == nil {
		return codes
	}

	if root.IsLeaf() {
		codes[root.Symbol] = BitString{}.plusOneBit(0)
		return codes
	}

	root.writeToEncodingMap(codes, BitString{})
	return codes
}

func (node *Node) writeToEncodingMap(codes EncodingMap, prefix BitString) {
	if node.IsLeaf() {
		codes[node.Symbol] = prefix
		return
	}
	node.Left.writeToEncodingMap(codes, prefix.plusOneBit(0))
	node.Right.writeToEncodingMap(codes, prefix.plusOneBit(1))
}

// Symbols returns the symbols present in codes in ascending order.
func (codes EncodingMap) Symbols() []Symbol {
	symbols := make([]Symbol, 0, len(codes))
	for sym := range codes {
		symbols = append(symbols, sym)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
	return symbols
}

func (codes EncodingMap) String() string {
	var parts []string
	for _, sym := range codes.Symbols() {
		parts = append(parts, fmt.Sprintf("%02x:%v", uint8(sym), codes[sym]))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// Coding is the inverse of an EncodingMap: a binary tree whose leaves carry symbols, walked one bit at a
// time during decoding.  A Coding can only be constructed from a consistent code table.
type Coding struct {
	root *Node
}

// NewCoding inverts codes.  It returns an error wrapping ErrInvalidMap if any codeword is empty, two
// symbols share a codeword, or one codeword is a prefix of another.  An empty table gives a Coding that
// decodes only the empty bitstream.
func NewCoding(codes EncodingMap) (*Coding, error) {
	if len(codes) == 0 {
		return &Coding{}, nil
	}

	root := &Node{}
	for _, sym := range codes.Symbols() {
		code := codes[sym]
		code.check()
		if code.BitLength == 0 {
			return nil, fmt.Errorf("%w: empty code for symbol %d", ErrInvalidMap, sym)
		}

		// Leaves carry Freq 1 and internal nodes Freq 0, so a half-built path is never taken for a leaf.
		node := root
		for i := 0; i < code.BitLength; i++ {
			last := i == code.BitLength-1
			child := &node.Left
			if code.Bit(i) == 1 {
				child = &node.Right
			}

			switch {
			case *child == nil && last:
				*child = &Node{Symbol: sym, Freq: 1}
			case *child == nil:
				*child = &Node{}
			case (*child).Freq == 1:
				return nil, fmt.Errorf("%w: code %v for symbol %d collides with code for symbol %d",
					ErrInvalidMap, code, sym, (*child).Symbol)
			case last:
				return nil, fmt.Errorf("%w: code %v for symbol %d is a prefix of another code",
					ErrInvalidMap, code, sym)
			}
			node = *child
		}
	}

	return &Coding{root}, nil
}

// Decode scans payload from the front, emitting a symbol each time the bits read so far match a
// codeword.  Bits that lead to no codeword, or that run out partway through one, yield an error wrapping
// ErrUndecodable and no output.
func (coding *Coding) Decode(payload BitString) ([]byte, error) {
	if payload.BitLength == 0 {
		return []byte{}, nil
	}
	if coding.root == nil {
		return nil, fmt.Errorf("%w: %d bits against an empty code table", ErrUndecodable, payload.BitLength)
	}

	out := make([]byte, 0, payload.BitLength)
	src := newBitSource(payload)
	node := coding.root
	for pos := 0; !src.empty(); pos++ {
		bit, err := src.readBit()
		if err != nil {
			return nil, err
		}

		if bit {
			node = node.Right
		} else {
			node = node.Left
		}
		if node == nil {
			return nil, fmt.Errorf("%w: no code matches at bit %d", ErrUndecodable, pos)
		}
		if node.IsLeaf() {
			out = append(out, byte(node.Symbol))
			node = coding.root
		}
	}

	if node != coding.root {
		return nil, fmt.Errorf("%w: trailing bits match no code", ErrUndecodable)
	}
	return out, nil
}
