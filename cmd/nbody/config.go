package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/nbody/internal/config"
)

const defaultConfigPath = "nbody.yaml"

var configForce bool

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "write or check run configuration files",
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective configuration as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  configInit,
	}
	initCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing file")

	checkCmd := &cobra.Command{
		Use:   "check [path]",
		Short: "load and validate a configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  configCheck,
	}

	cmd.AddCommand(initCmd, checkCmd)
	return cmd
}

func configPath(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return defaultConfigPath
}

func configInit(cmd *cobra.Command, args []string) error {
	path := configPath(args)
	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	log.Info().Str("file", path).Msg("wrote config")
	return nil
}

func configCheck(cmd *cobra.Command, args []string) error {
	path := configPath(args)
	c, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	fmt.Printf("%s: ok (system=%s numeric=%s integrator=%s dt=%g steps=%d)\n",
		path, c.System, c.Numeric, c.Integrator, c.Dt, c.Steps)
	return nil
}
