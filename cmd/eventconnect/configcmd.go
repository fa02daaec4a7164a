package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/eventconnect/internal/config"
)

func (c *cli) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or show eventconnect.json",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default eventconnect.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if config.Exists(c.configDir) && !force {
				warn(out, "%s already exists in %s (use --force to overwrite)", config.ConfigFileName, c.configDir)
				return nil
			}
			path := filepath.Join(c.configDir, config.ConfigFileName)
			if err := config.New().SaveTo(path); err != nil {
				return err
			}
			success(out, "Created %s", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after defaults, the .env file and
EVENTCONNECT_* environment overrides are applied.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Resolve(c.configDir)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if p := cfg.Path(); p != "" {
				info(out, "Loaded from %s", p)
			} else {
				info(out, "No %s found; showing defaults", config.ConfigFileName)
			}
			fmt.Fprintln(out, string(data))
			return nil
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}
