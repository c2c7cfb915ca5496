package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gpspeech/gpspeech/pkg/cli"
	"github.com/gpspeech/gpspeech/pkg/storage"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long: `Manage CLI configuration and profiles.

A profile holds defaults: the catalog directory, the output directory, a
decode rate override and the dump storage. Profiles work like kubectl
contexts.

Configuration is stored in ~/.gpspeech/gpspeech/config.yaml`,
}

var profileFlags struct {
	catalogDir  string
	outputDir   string
	defaultRate int
	storage     storage.Config
	dest        string
}

var configAddProfileCmd = &cobra.Command{
	Use:   "add-profile <name>",
	Short: "Add or replace a profile",
	Long: `Add or replace a profile.

Example:
  gpspeech config add-profile lab --catalog-dir /srv/gpspeech --dest s3://roms/lab --region eu-west-1
  gpspeech config add-profile local --output-dir ./out --default-rate 16000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		f := profileFlags
		if f.defaultRate < 0 {
			return fmt.Errorf("--default-rate must not be negative")
		}
		scfg := f.storage
		if f.dest != "" {
			var err error
			if scfg, err = storage.ParseDest(f.dest, f.storage); err != nil {
				return err
			}
		}
		p := &cli.Profile{
			CatalogDir:  f.catalogDir,
			OutputDir:   f.outputDir,
			DefaultRate: f.defaultRate,
			Storage:     scfg,
		}
		cfg := getConfig()
		if err := cfg.AddProfile(name, p); err != nil {
			return err
		}
		if cfg.CurrentProfile == "" {
			if err := cfg.UseProfile(name); err != nil {
				return err
			}
		}
		cli.PrintSuccess("Profile %q added", name)
		return nil
	},
}

var configDeleteProfileCmd = &cobra.Command{
	Use:   "delete-profile <name>",
	Short: "Delete a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := getConfig().DeleteProfile(args[0]); err != nil {
			return err
		}
		cli.PrintSuccess("Profile %q deleted", args[0])
		return nil
	},
}

var configUseProfileCmd = &cobra.Command{
	Use:   "use-profile <name>",
	Short: "Set the current profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := getConfig().UseProfile(args[0]); err != nil {
			return err
		}
		cli.PrintSuccess("Switched to profile %q", args[0])
		return nil
	},
}

var configGetProfileCmd = &cobra.Command{
	Use:   "get-profile [name]",
	Short: "Show a profile (default: current)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		name := cfg.CurrentProfile
		if len(args) > 0 {
			name = args[0]
		}
		if name == "" {
			return fmt.Errorf("no current profile set. Use 'gpspeech config use-profile'")
		}
		p, err := cfg.GetProfile(name)
		if err != nil {
			return err
		}
		return outputResult(p.Masked(), cli.FormatYAML)
	},
}

type profileList struct {
	Current  string   `json:"current" yaml:"current"`
	Profiles []string `json:"profiles" yaml:"profiles"`
	config   *cli.Config `json:"-" yaml:"-"`
}

func (l profileList) Table() *cli.Table {
	t := cli.NewTable("profiles", "", "name", "catalog", "output", "storage")
	for _, name := range l.Profiles {
		p := l.config.Profiles[name]
		mark := ""
		if name == l.Current {
			mark = "*"
		}
		t.Append(mark, name, p.CatalogDir, p.OutputDir, describeStorage(p.Storage))
	}
	return t
}

func describeStorage(c storage.Config) string {
	switch {
	case c.Kind == storage.KindS3:
		return "s3://" + c.Bucket + "/" + c.Prefix
	case c.Dir != "":
		return c.Dir
	}
	return ""
}

var configListProfilesCmd = &cobra.Command{
	Use:   "list-profiles",
	Short: "List all profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		return outputResult(profileList{
			Current:  cfg.CurrentProfile,
			Profiles: cfg.ListProfiles(),
			config:   cfg,
		}, cli.FormatTable)
	},
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Show the configuration with secrets masked",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		view := struct {
			Path           string                  `json:"path" yaml:"path"`
			CurrentProfile string                  `json:"current_profile" yaml:"current_profile"`
			Profiles       map[string]*cli.Profile `json:"profiles" yaml:"profiles"`
		}{
			Path:           cfg.Path(),
			CurrentProfile: cfg.CurrentProfile,
			Profiles:       make(map[string]*cli.Profile, len(cfg.Profiles)),
		}
		for name, p := range cfg.Profiles {
			view.Profiles[name] = p.Masked()
		}
		return outputResult(view, cli.FormatYAML)
	},
}

func init() {
	f := configAddProfileCmd.Flags()
	f.StringVar(&profileFlags.catalogDir, "catalog-dir", "", "catalog directory")
	f.StringVar(&profileFlags.outputDir, "output-dir", "", "default output directory")
	f.IntVar(&profileFlags.defaultRate, "default-rate", 0, "decode rate override")
	f.StringVar(&profileFlags.dest, "dest", "", "dump destination: directory or s3://bucket/prefix")
	f.StringVar(&profileFlags.storage.Region, "region", "", "S3 region")
	f.StringVar(&profileFlags.storage.Endpoint, "endpoint", "", "S3-compatible endpoint URL")
	f.StringVar(&profileFlags.storage.AccessKey, "access-key", "", "S3 access key")
	f.StringVar(&profileFlags.storage.SecretKey, "secret-key", "", "S3 secret key")

	configCmd.AddCommand(configAddProfileCmd)
	configCmd.AddCommand(configDeleteProfileCmd)
	configCmd.AddCommand(configUseProfileCmd)
	configCmd.AddCommand(configGetProfileCmd)
	configCmd.AddCommand(configListProfilesCmd)
	configCmd.AddCommand(configViewCmd)
}
