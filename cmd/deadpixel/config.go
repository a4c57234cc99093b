package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/deadpixel/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after flag overrides, as YAML.

The output can be saved to ~/.deadpixel/config.yaml and edited.

Examples:
  deadpixel config
  deadpixel config --difficulty hard > ~/.deadpixel/config.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, _ []string) error {
	data, err := config.Marshal(appConfig)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# source: %s\n", appConfigSource)
	_, err = out.Write(data)
	return err
}
