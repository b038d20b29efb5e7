// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../../LICENSE.md.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"

	"github.com/chimbosonic/huffhex/huffhex"
	"github.com/chimbosonic/huffhex/huffman"
	"github.com/chimbosonic/huffhex/server"
)

var log = logging.MustGetLogger("HuffTool")

const progName = "HuffTool"
const usageMessageRaw = `
Usage: HuffTool [--debug] SUBCOMMAND...

Subcommands:
  encode [-t TEXT] [-m MAP] [-v] PARAMS...
    Huffman-encode TEXT, or standard input if -t is not given.  Write
    the hex data on the first line of standard output and the code
    table on the second.  With -m, pack with the code table MAP instead
    of building one.  With -v, report sizes on standard error.

  decode DATA MAP
    Decode hex DATA with code table MAP and write the text to standard
    output.

  serve [-l HOST:PORT]
    Serve encode and decode over HTTP (default address :8080).

Parameters (PARAMS, each of the form KEY=VALUE):
  absent=skip|fail
    What to do with input symbols missing from the code table given
    by -m.  Default: skip.

Options:
  --debug, -d
	Spew enormous quantities of garbage to standard error.
`

type nullWriter struct{}

func (n *nullWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

var ourFlags *flag.FlagSet

func usageMessage() string {
	return strings.TrimLeft(usageMessageRaw, "\n")
}

func usageErrorf(detailFmt string, detailArgs ...interface{}) {
	detail := fmt.Sprintf(detailFmt, detailArgs...)
	fmt.Fprintf(os.Stderr, "%s: %s\n%s", progName, detail, usageMessage())
	os.Exit(64)
}

func exitError(err error) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", progName, err.Error())
	os.Exit(1)
}

var argI int = 0

func nextArg(expected string) string {
	if !(argI < ourFlags.NArg()) {
		usageErrorf("not enough arguments; expected %s", expected)
	}
	arg := ourFlags.Arg(argI)
	argI++
	return arg
}

func remainingArgs() []string {
	slice := ourFlags.Args()[argI:]
	argI = ourFlags.NArg()
	return slice
}

func endOfArgs() {
	if argI < ourFlags.NArg() {
		usageErrorf("too many arguments at %d (\"%s\")", argI, ourFlags.Arg(argI))
	}
}

// parseSubFlags parses the remaining arguments with subFlags and makes it the current flag set.
func parseSubFlags(subFlags *flag.FlagSet) {
	subFlags.Usage = func() {}
	subFlags.SetOutput(&nullWriter{})

	argErr := subFlags.Parse(remainingArgs())
	if argErr == flag.ErrHelp {
		io.WriteString(os.Stdout, usageMessage())
		os.Exit(0)
	} else if argErr != nil {
		usageErrorf("%s", argErr.Error())
	}

	ourFlags = subFlags
	argI = 0
}

func encodeText(text string, mapPayload string, opts *huffhex.Options, verbose bool) error {
	var data huffhex.Huffdata
	var err error
	if mapPayload != "" {
		data, err = huffhex.EncodeWithMap(text, mapPayload, opts)
	} else {
		var stats huffman.Stats
		data, stats, err = huffhex.EncodeWithStats(text)
		if err == nil && verbose {
			reportStats(stats)
		}
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "%s\n%s\n", data.Data, data.Map)
	return nil
}

func encodeFromArgs() (func() error, error) {
	subFlags := flag.NewFlagSet(progName, flag.ContinueOnError)
	textPtr := subFlags.String("t", "", "")
	mapPtr := subFlags.String("m", "", "")
	verbosePtr := subFlags.Bool("v", false, "")
	parseSubFlags(subFlags)

	unparsed, err := huffhex.ParseParamArgs(remainingArgs())
	if err != nil {
		usageErrorf("%s", err.Error())
	}
	opts, err := huffhex.ParseOptions(unparsed)
	if err != nil {
		return nil, err
	}

	textGiven := false
	subFlags.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			textGiven = true
		}
	})

	return func() error {
		text := *textPtr
		if !textGiven {
			input, err := io.ReadAll(os.Stdin)
			if err != nil {
				return err
			}
			text = string(input)
		}
		return encodeText(text, *mapPtr, opts, *verbosePtr)
	}, nil
}

func decodeFromArgs() (func() error, error) {
	parseSubFlags(flag.NewFlagSet(progName, flag.ContinueOnError))
	data := nextArg("DATA")
	mapPayload := nextArg("MAP")
	endOfArgs()

	return func() error {
		text, err := huffhex.Decode(huffhex.Huffdata{Data: data, Map: mapPayload})
		if err != nil {
			return err
		}
		_, err = io.WriteString(os.Stdout, text)
		return err
	}, nil
}

func serveFromArgs() (func() error, error) {
	subFlags := flag.NewFlagSet(progName, flag.ContinueOnError)
	listenPtr := subFlags.String("l", ":8080", "")
	parseSubFlags(subFlags)
	endOfArgs()

	return func() error {
		gin.SetMode(gin.ReleaseMode)
		log.Noticef("listening on %s", *listenPtr)
		return server.New().Run(*listenPtr)
	}, nil
}

var leveledLogBackend logging.LeveledBackend

func startLogging() {
	backend := logging.NewLogBackend(os.Stderr, progName+": ", 0)
	formatSpec := "%{level:8s} %{module:-20s} | %{message}"
	formatter := logging.MustStringFormatter(formatSpec)
	formatted := logging.NewBackendFormatter(backend, formatter)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.INFO, "")
	logging.SetBackend(leveled)
	leveledLogBackend = leveled
}

func main() {
	startLogging()

	var err error
	ourFlags = flag.NewFlagSet(progName, flag.ContinueOnError)
	ourFlags.Usage = func() {}
	ourFlags.SetOutput(&nullWriter{})

	var debugLogging bool
	ourFlags.BoolVar(&debugLogging, "debug", false, "")
	ourFlags.BoolVar(&debugLogging, "d", false, "")

	argErr := ourFlags.Parse(os.Args[1:])
	if argErr == flag.ErrHelp {
		io.WriteString(os.Stdout, usageMessage())
		os.Exit(0)
	} else if argErr != nil {
		usageErrorf("%s", argErr.Error())
	}

	if debugLogging {
		leveledLogBackend.SetLevel(logging.DEBUG, "")
	}

	var requestedCommand func() error
	subcommandArg := nextArg("SUBCOMMAND")
	switch subcommandArg {
	default:
		usageErrorf("unrecognized subcommand \"%s\"", subcommandArg)
	case "encode":
		requestedCommand, err = encodeFromArgs()
	case "decode":
		requestedCommand, err = decodeFromArgs()
	case "serve":
		requestedCommand, err = serveFromArgs()
	}

	if err != nil {
		exitError(err)
	}

	err = requestedCommand()
	if err != nil {
		exitError(err)
	}
}
