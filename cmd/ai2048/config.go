package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/ai2048/internal/config"
)

var flagConfigForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig("")
		exitOnErr("loading config", err)

		data, err := yaml.Marshal(cfg)
		exitOnErr("encoding config", err)
		fmt.Print(string(data))
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration",
	Long: `Write the default configuration to path, or to ~/.ai2048/config.yaml.
Existing files are kept unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := config.UserConfigPath()
		if len(args) > 0 {
			path = args[0]
		}
		if path == "" {
			exitOnErr("resolving config path", fmt.Errorf("no home directory"))
		}
		if _, err := os.Stat(path); err == nil && !flagConfigForce {
			exitOnErr("writing config", fmt.Errorf("%s exists (use --force)", path))
		}

		exitOnErr("writing config", config.Save(path, config.DefaultConfig()))
		fmt.Printf("Wrote %s\n", path)
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configShowCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}
