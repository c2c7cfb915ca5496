package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gpspeech/gpspeech/pkg/cli"
)

const appName = "gpspeech"

var (
	// Global flags
	cfgFile      string
	profileName  string
	outputFile   string
	outputJSON   bool
	outputFormat string
	baseOffset   int64
	verbose      bool

	// Global configuration
	globalConfig *cli.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gpspeech",
	Short: "Sunplus/GeneralPlus speech record tool",
	Long: `gpspeech - inspect and extract speech records from Sunplus and
GeneralPlus firmware images.

A record is named by a locator:
  path                 a standalone record (or a raw compact record)
  path:group,index     entry <index> of group <group> of a ROM container

Configuration is stored in ~/.gpspeech/gpspeech/ and supports multiple
profiles, similar to kubectl's context management.

Examples:
  # Identify a record
  gpspeech info voice.bin
  gpspeech info firmware.bin:0,3

  # List a container that starts 0x2000 bytes into a flash dump
  gpspeech ls --base 0x2000 flash.bin

  # Decode a record to WAV
  gpspeech decode firmware.bin:0,3 intro.wav

  # Dump every record to a bucket
  gpspeech dump firmware.bin --dest s3://roms/firmware`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteDecoder runs the decode command as the root of a standalone tool.
func ExecuteDecoder() error {
	cmd := newDecodeCmd("gpdecode <locator> [out.wav|-]")
	cmd.Short = "Decode a Sunplus/GeneralPlus speech record to WAV"
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.PersistentPreRunE = initApp
	addGlobalFlags(cmd)
	return cmd.Execute()
}

func init() {
	addGlobalFlags(rootCmd)

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(newDecodeCmd("decode <locator> [out.wav|-]"))
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func addGlobalFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ~/.gpspeech/gpspeech/config.yaml)")
	pf.StringVarP(&profileName, "profile", "p", "", "profile name to use")
	pf.StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	pf.BoolVar(&outputJSON, "json", false, "output as JSON (for piping)")
	pf.StringVar(&outputFormat, "format", "", "output format: yaml, json, table")
	pf.Int64Var(&baseOffset, "base", 0, "offset of the record or container within the file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initApp(cmd *cobra.Command, _ []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if baseOffset < 0 {
		return fmt.Errorf("--base must not be negative")
	}

	cfg, err := cli.LoadConfigWithPath(appName, cfgFile)
	if err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	globalConfig = cfg
	return nil
}

// getConfig returns the global configuration
func getConfig() *cli.Config {
	return globalConfig
}

// getProfile returns the profile selected by -p, the current profile, or
// an empty one.
func getProfile() (*cli.Profile, error) {
	cfg := getConfig()
	if cfg == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}
	return cfg.ResolveProfile(profileName)
}

// resultFormat picks the output format: --json, then --format, then def.
func resultFormat(def cli.OutputFormat) cli.OutputFormat {
	switch {
	case outputJSON:
		return cli.FormatJSON
	case outputFormat != "":
		return cli.OutputFormat(outputFormat)
	default:
		return def
	}
}

// outputResult outputs the result using cli package
func outputResult(result any, def cli.OutputFormat) error {
	format := resultFormat(def)
	// Tables are for terminals; a file gets YAML unless asked otherwise.
	if format == cli.FormatTable && outputFile != "" && outputFormat == "" {
		format = cli.FormatYAML
	}
	return cli.Output(result, cli.OutputOptions{
		Format: format,
		File:   outputFile,
	})
}

// printVerbose prints verbose output if enabled
func printVerbose(format string, args ...any) {
	cli.PrintVerbose(verbose, format, args...)
}
