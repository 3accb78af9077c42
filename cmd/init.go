package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gnolang/hlin/lint"
)

// initCmd: hlin init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new linter configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfigurationFile(cfgFile); err != nil {
			exitWithError("Error initializing config file", err)
		}
		fmt.Printf("Configuration file created/updated: %s\n", cfgFile)
	},
}

func initConfigurationFile(configurationPath string) error {
	if configurationPath == "" {
		configurationPath = defaultConfigFile
	}

	d, err := yaml.Marshal(lint.DefaultConfig())
	if err != nil {
		return err
	}

	return os.WriteFile(configurationPath, d, 0o644)
}
