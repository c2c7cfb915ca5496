// Package cli provides the shared pieces of the gpspeech command-line
// tools.
//
// This package includes:
//   - Configuration management (named profiles)
//   - Output formatting (YAML, JSON, raw, lipgloss tables)
//   - Batch manifest loading (YAML/JSON)
//
// Configuration is stored in ~/.gpspeech/<app>/, with multiple profiles
// similar to kubectl contexts.
//
// Example usage:
//
//	cfg, err := cli.LoadConfig("gpspeech")
//	profile, err := cfg.ResolveProfile(name)
//
//	cli.Output(result, cli.OutputOptions{
//	    Format: cli.FormatJSON,
//	    File:   outputPath,
//	})
package cli
