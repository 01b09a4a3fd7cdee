package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nethesap/nethesap/internal/config"
)

func newConfigCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
		Args:  cobra.NoArgs,
		Annotations: map[string]string{
			toleratesBadConfigKey: "true",
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				_, err := os.Stat(rt.path)
				if err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", rt.path)
				}
				if !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("stat config: %w", err)
				}
			}
			if err := config.DefaultConfig().Save(rt.path); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			rt.logger.Info("config written", zap.String("path", rt.path))
			fmt.Fprintln(cmd.OutOrStdout(), rt.path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file path in use",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), rt.path)
		},
	}

	cmd.AddCommand(initCmd, pathCmd)
	return cmd
}
