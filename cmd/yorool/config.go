// ABOUTME: The config subcommands: print where the config file lives and write a starter one.
// ABOUTME: They skip config loading so they work before any file exists or when the file is broken.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/2389-research/yorool/config"
)

// errConfigExists is returned by config init when it would overwrite a file.
var errConfigExists = errors.New("config file already exists")

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the yorool config file",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			a.prepare()
			return nil
		},
	}
	cmd.AddCommand(newConfigPathCmd(a), newConfigInitCmd(a))
	return cmd
}

// configTarget resolves the file the config commands act on, in the same
// order config.Load reads it.
func (a *app) configTarget() (string, error) {
	if a.configPath != "" {
		return a.configPath, nil
	}
	if p := os.Getenv(config.EnvPrefix + "_CONFIG"); p != "" {
		return p, nil
	}
	if p := config.DefaultPath(); p != "" {
		return p, nil
	}
	return "", errors.New("no config directory; pass --config")
}

func newConfigPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			path, err := a.configTarget()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, path)
			return nil
		},
	}
}

func newConfigInitCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file holding the defaults",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			path, err := a.configTarget()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%w: %s (use --force to overwrite)", errConfigExists, path)
			}
			if err := config.Save(path, config.Defaults()); err != nil {
				return err
			}
			log.Printf("component=cli action=config_written path=%s", path)
			fmt.Fprintf(a.stdout, "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}
