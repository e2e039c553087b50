// Command dcbor-dump decodes a canonical CBOR blob and prints its
// diagnostic notation and annotated hex dump.
package main

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"

	"github.com/schjonhaug/dcbor-envelope/dcbor"
	"github.com/spf13/pflag"
)

func main() {
	var (
		hexInput = pflag.StringP("hex", "x", "", "hex-encoded CBOR blob to decode")
		file     = pflag.StringP("file", "f", "", "path to a file containing raw CBOR bytes")
		pretty   = pflag.BoolP("pretty", "p", false, "use pretty (multi-line) diagnostic notation")
		debug    = pflag.BoolP("debug", "d", false, "enable debug logging")
	)
	pflag.Parse()

	if *debug {
		enableDebugLogging()
	}

	buf, err := loadInput(*hexInput, *file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	v, err := dcbor.Decode(buf)
	if err != nil {
		fmt.Fprintln(os.Stderr, "decode:", err)
		os.Exit(1)
	}
	slog.Debug("decoded value", "bytes", len(buf))

	mode := dcbor.PrintFlat
	if *pretty {
		mode = dcbor.PrintPretty
	}
	fmt.Println(dcbor.Diagnostic(v, mode, dcbor.DefaultTagRegistry))

	dump, err := dcbor.HexDump(buf, dcbor.DefaultTagRegistry)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hexdump:", err)
		os.Exit(1)
	}
	fmt.Println(dump)
}

func loadInput(hexInput, file string) ([]byte, error) {
	switch {
	case hexInput != "":
		return hex.DecodeString(hexInput)
	case file != "":
		return os.ReadFile(file)
	default:
		return nil, fmt.Errorf("dcbor-dump: one of --hex or --file is required")
	}
}

func enableDebugLogging() {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	slog.SetDefault(slog.New(handler))
}
