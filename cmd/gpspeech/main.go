// Package main provides the gpspeech CLI tool.
//
// Usage:
//
//	gpspeech [flags] <command> [args]
//
// Commands:
//
//	info     - Identify a speech record or list a ROM container
//	ls       - List the groups and files of a ROM container
//	extract  - Write the raw bytes of a record
//	dump     - Write every record of a container to a directory or bucket
//	decode   - Decode a record to WAV
//	play     - Decode a record and play it
//	scan     - Index containers into the catalog
//	catalog  - Query the catalog
//	batch    - Run extract/decode jobs from a manifest
//	config   - Configuration management
//
// Records are named by locators: "path" for a standalone record or
// "path:group,index" for an entry of a ROM container.
//
// Configuration:
//
//	The CLI stores configuration in ~/.gpspeech/gpspeech/
//	Use 'gpspeech config' commands to manage profiles.
//
// Playback links oto, which needs cgo and ALSA on Linux. Build with
// -tags noaudio to leave the play command out of the binary's backend.
package main

import (
	"os"

	"github.com/gpspeech/gpspeech/cmd/gpspeech/commands"
	"github.com/gpspeech/gpspeech/pkg/cli"
)

func main() {
	if err := commands.Execute(); err != nil {
		cli.PrintError("%v", err)
		os.Exit(1)
	}
}
