package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"recap/internal/config"
	"recap/internal/logging"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Writes the default configuration to .recap/config.yaml in the current
directory (or to --config) so it can be edited. Refuses to overwrite an
existing file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgPath
		if path == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			path = filepath.Join(cwd, ".recap", "config.yaml")
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}

		if err := config.DefaultConfig().Save(path); err != nil {
			return err
		}
		logging.Get(logging.CategoryConfig).Info("starter config written to %s", path)
		fmt.Printf("wrote %s\n", path)
		fmt.Println("edit it to taste, then run `recap doctor` to check the setup")
		return nil
	},
}
