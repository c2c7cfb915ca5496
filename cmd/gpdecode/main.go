// Package main provides gpdecode, which decodes one speech record to a
// mono 16-bit WAV file.
//
// Usage:
//
//	gpdecode [flags] <locator> [out.wav|-]
//
// It is the "decode" command of gpspeech as a standalone binary and shares
// its configuration in ~/.gpspeech/gpspeech/.
package main

import (
	"os"

	"github.com/gpspeech/gpspeech/cmd/gpspeech/commands"
	"github.com/gpspeech/gpspeech/pkg/cli"
)

func main() {
	if err := commands.ExecuteDecoder(); err != nil {
		cli.PrintError("%v", err)
		os.Exit(1)
	}
}
