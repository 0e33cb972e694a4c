package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// configurationApplyCmd represents the configuration apply command
var configurationApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Validate the hub configuration",
	Long: `Assemble the configuration and check it the way the hub and its
collaborators would at startup. Use this in a compose healthcheck or CI job
before the hub container is (re)created.

Only --test is supported: the hub reads its configuration once at startup,
so applying changes means recreating the hub container.

Example:
  hubconf configuration apply --test
  hubconf configuration apply --test --env-file .env`,
	Run: func(cmd *cobra.Command, args []string) {
		testMode, _ := cmd.Flags().GetBool("test")

		src, err := sourceFromFlags(cmd)
		if err == nil {
			err = applyConfiguration(os.Stdout, src, testMode)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to apply configuration: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	configurationCmd.AddCommand(configurationApplyCmd)
	configurationApplyCmd.Flags().Bool("test", false, "Validate configuration without applying it")
}

func applyConfiguration(w io.Writer, src source, testMode bool) error {
	if !testMode {
		return fmt.Errorf("recreate the hub container to apply configuration; use --test to validate")
	}

	fmt.Fprintln(w, "Validating configuration...")

	cfg, err := src.assemble()
	if err != nil {
		return fmt.Errorf("failed to assemble configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	fmt.Fprintf(w, "Configuration for variant %s is valid (%d settings).\n", cfg.Variant, len(cfg.Attributes()))
	return nil
}
