package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/hubconf/pkg/render"
)

// configurationShowCmd represents the configuration show command
var configurationShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show hub configuration attributes and their sources",
	Long: `Show every setting the assembler assigns, its value and where the value
came from (literal, environment or default).

Settings the assembler leaves unset are omitted; the hub applies its own
defaults for them.

Example:
  hubconf configuration show
  hubconf configuration show --variant compose --output yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		src, err := sourceFromFlags(cmd)
		if err == nil {
			err = showConfiguration(os.Stdout, src, output)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to show configuration: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	configurationCmd.AddCommand(configurationShowCmd)
	configurationShowCmd.Flags().StringP("output", "o", "text", "Output format (text, json, yaml or python)")
}

func showConfiguration(w io.Writer, src source, output string) error {
	format, err := render.Parse(output)
	if err != nil {
		return err
	}

	cfg, err := src.assemble()
	if err != nil {
		return fmt.Errorf("failed to assemble configuration: %w", err)
	}

	return render.Render(w, cfg, format)
}
