package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/condense-db/condense/internal/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a filter configuration file",
	Long: `Validate runs the schema validator against a configuration file and reports
the offending path on failure. Exit code 1 indicates an invalid configuration.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringP("file", "f", "", "configuration JSON file (required)")
	validateCmd.MarkFlagRequired("file")
}

func runValidate(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")

	raw, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read configuration: %w", err)
	}

	if _, err := schema.Parse(raw); err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) && verr.Path != "" {
			return fmt.Errorf("invalid configuration at %s: %w", verr.Path, verr.Err)
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "configuration is valid")
	return nil
}
