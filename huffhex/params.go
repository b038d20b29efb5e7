// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

package huffhex

import (
	"sort"
	"strings"

	"github.com/chimbosonic/huffhex/huffman"
)

const (
	paramAbsent = "absent"

	suffixOptional = "?"
)

// Options controls encoding.  The zero value skips input symbols that have no codeword.
type Options struct {
	Absent huffman.AbsentPolicy
}

var defOptions = Options{
	Absent: huffman.SkipAbsent,
}

// CheckUnackedParams ensures that all parameters in params are either acknowledged by being associated
// with a true value in ackedParams or are optional due to being suffixed with a question mark.  If any
// unacknowledged requisite parameters are present, it returns an appropriate error.
func CheckUnackedParams(params map[string]string, ackedParams map[string]bool) error {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !ackedParams[key] && !strings.HasSuffix(key, suffixOptional) {
			return &ParameterError{ParameterUnexpected, "parameter", key}
		}
	}

	return nil
}

func (opts *Options) ParseFrom(unparsed map[string]string, acked map[string]bool) error {
	if val, present := unparsed[paramAbsent]; present {
		switch val {
		case huffman.SkipAbsent.String():
			opts.Absent = huffman.SkipAbsent
		case huffman.FailAbsent.String():
			opts.Absent = huffman.FailAbsent
		default:
			return &ParameterError{ParameterInvalid, "absent-symbol policy", val}
		}
		acked[paramAbsent] = true
	}

	return nil
}

// UnparseInto writes the options that differ from the defaults back into KEY=VALUE form.
func (opts *Options) UnparseInto(unparsed map[string]string) {
	if opts.Absent != defOptions.Absent {
		unparsed[paramAbsent] = opts.Absent.String()
	}
}

// ParseOptions builds Options from KEY=VALUE parameters.  Recognized keys: absent=skip|fail.
func ParseOptions(unparsed map[string]string) (*Options, error) {
	// Must explicitly copy here.
	opts := defOptions
	acked := make(map[string]bool)
	if err := opts.ParseFrom(unparsed, acked); err != nil {
		return nil, err
	}

	if err := CheckUnackedParams(unparsed, acked); err != nil {
		return nil, err
	}

	return &opts, nil
}

// ParseParamArgs splits arguments of the form KEY=VALUE.
func ParseParamArgs(args []string) (map[string]string, error) {
	unparsed := make(map[string]string)
	for _, arg := range args {
		equals := strings.IndexRune(arg, '=')
		if equals < 0 {
			return nil, &ParameterError{ParameterInvalid, "parameter syntax", arg}
		}

		key, val := arg[:equals], arg[equals+1:]
		unparsed[key] = val
	}
	return unparsed, nil
}
