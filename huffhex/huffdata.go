// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

/*
Package huffhex is the text boundary of the huffman codec.  Encode turns a string into a Huffdata pair: the
packed bitstream as lowercase hex, and the code table as a JSON object keyed by decimal octet value, e.g.
{"101":"00","115":"01","116":"1"}.  Decode needs both halves of the pair and nothing else.

Empty text encodes to empty data and the map "{}", which decode back to empty text.
*/
package huffhex

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/op/go-logging"

	"github.com/chimbosonic/huffhex/huffman"
)

var log = logging.MustGetLogger("huffhex")

// Huffdata carries one encoding across a process boundary.
type Huffdata struct {
	Data string `json:"data"`
	Map  string `json:"map"`
}

// ParseMap parses a code table payload.  Errors wrap huffman.ErrInvalidMap.
func ParseMap(payload string) (huffman.EncodingMap, error) {
	var codes huffman.EncodingMap
	if err := json.Unmarshal([]byte(payload), &codes); err != nil {
		return nil, fmt.Errorf("%w: %v", huffman.ErrInvalidMap, err)
	}
	if codes == nil {
		return nil, fmt.Errorf("%w: not an object", huffman.ErrInvalidMap)
	}
	return codes, nil
}

// FormatMap renders codes with keys in sorted order, so equal tables give equal payloads.
func FormatMap(codes huffman.EncodingMap) (string, error) {
	if codes == nil {
		codes = huffman.EncodingMap{}
	}
	payload, err := json.Marshal(codes)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

// ParseData parses the hex half of a Huffdata.  Errors wrap huffman.ErrInvalidTransport.
func ParseData(data string) ([]byte, error) {
	packed, err := hex.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", huffman.ErrInvalidTransport, err)
	}
	return packed, nil
}

// Encode builds a code table from text and packs text with it.
func Encode(text string) (Huffdata, error) {
	data, _, err := EncodeWithStats(text)
	return data, err
}

// EncodeWithStats is Encode, also returning figures about the encoding.
func EncodeWithStats(text string) (Huffdata, huffman.Stats, error) {
	enc, err := huffman.Encode([]byte(text))
	if err != nil {
		return Huffdata{}, huffman.Stats{}, err
	}

	mapPayload, err := FormatMap(enc.Codes)
	if err != nil {
		return Huffdata{}, huffman.Stats{}, err
	}

	log.Debugf("encode: %d octets -> %d packed octets, %d codes", len(text), len(enc.Packed), len(enc.Codes))
	return Huffdata{hex.EncodeToString(enc.Packed), mapPayload}, enc.Stats, nil
}

// EncodeWithMap packs text with an externally supplied code table, which must be one Decode accepts.
// Symbols missing from the table are handled according to opts.Absent.  opts may be nil.
func EncodeWithMap(text string, mapPayload string, opts *Options) (Huffdata, error) {
	if opts == nil {
		opts = &defOptions
	}

	codes, err := ParseMap(mapPayload)
	if err != nil {
		return Huffdata{}, err
	}
	if _, err := huffman.NewCoding(codes); err != nil {
		return Huffdata{}, err
	}

	packed, err := huffman.Pack([]byte(text), codes, opts.Absent)
	if err != nil {
		return Huffdata{}, err
	}

	return Huffdata{hex.EncodeToString(packed), mapPayload}, nil
}

// Decode reconstructs the text from which data was encoded.  The map is parsed before any bits are
// looked at.
func Decode(data Huffdata) (string, error) {
	codes, err := ParseMap(data.Map)
	if err != nil {
		log.Noticef("decode: %v", err)
		return "", err
	}

	packed, err := ParseData(data.Data)
	if err != nil {
		log.Noticef("decode: %v", err)
		return "", err
	}

	out, err := huffman.Decode(packed, codes)
	if err != nil {
		log.Noticef("decode: %v", err)
		return "", err
	}
	return string(out), nil
}
