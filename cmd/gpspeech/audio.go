//go:build !noaudio

package main

import (
	"github.com/gpspeech/gpspeech/cmd/gpspeech/commands"
	"github.com/gpspeech/gpspeech/pkg/audio/player"
)

func init() {
	commands.SetPlayer(player.Play)
}
