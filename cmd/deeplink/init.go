package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yral-dev/deeplink/internal/config"
	"github.com/yral-dev/deeplink/internal/errors"
)

func initCmd(c *cli) *cobra.Command {
	var (
		format string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file",
		Long: `Write a configuration file with default values and any --scheme and
--host overrides.

The file is --config when given, otherwise an existing deeplink.json or
deeplink.yaml in the current directory, otherwise deeplink.<format>. An
existing file is only replaced with --force, keeping the values it already
holds.

Examples:
  deeplink init
  deeplink init --format json --scheme yralm
  deeplink init --force --host yral.com`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.writeConfig(cmd, format, force)
			if err != nil {
				return err
			}
			if c.jsonOut {
				return writeJSON(cmd, map[string]string{"path": path})
			}
			outf(cmd, "Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "File format when creating a new file: yaml or json")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration file")

	return cmd
}

// writeConfig writes the configuration file and returns its path.
func (c *cli) writeConfig(cmd *cobra.Command, format string, force bool) (string, error) {
	path := c.configPath
	if path == "" {
		if found, ok := config.Find("."); ok {
			path = found
		} else {
			switch format {
			case "yaml":
				path = config.YAMLFileName
			case "json":
				path = config.JSONFileName
			default:
				return "", errors.New("E205").WithDetail(format)
			}
		}
	}

	cfg := config.New()
	if _, err := os.Stat(path); err == nil {
		if !force {
			return "", errors.New("E306").WithDetail(path)
		}
		// A file that no longer loads is replaced with defaults.
		if loaded, err := config.LoadFile(path); err == nil {
			cfg = loaded
		}
	}

	c.applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	if cfg.Path() != "" {
		return path, cfg.Save()
	}
	return path, cfg.SaveTo(path)
}
