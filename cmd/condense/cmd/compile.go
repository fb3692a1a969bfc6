package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/condense-db/condense/internal/filter"
	"github.com/condense-db/condense/internal/schema"
	"github.com/condense-db/condense/internal/types"
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile a filter configuration into a filter document",
	Long: `Compile reads a filter configuration (from a file or the store), resolves
references against a data bag, and prints the resulting filter document as JSON.`,
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringP("file", "f", "", "configuration JSON file")
	compileCmd.Flags().String("name", "", "stored configuration name (requires --db-url or config)")
	compileCmd.Flags().StringP("data", "d", "", "data bag JSON file (default empty bag)")
}

func runCompile(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	name, _ := cmd.Flags().GetString("name")
	dataFile, _ := cmd.Flags().GetString("data")

	if (file == "") == (name == "") {
		return fmt.Errorf("exactly one of --file or --name required")
	}

	cfg, err := loadConfiguration(file, name)
	if err != nil {
		return err
	}

	data := types.DataBag{}
	if dataFile != "" {
		raw, err := os.ReadFile(dataFile)
		if err != nil {
			return fmt.Errorf("failed to read data bag: %w", err)
		}
		if err := json.Unmarshal(raw, &data); err != nil {
			return fmt.Errorf("invalid data bag JSON: %w", err)
		}
	}

	doc := filter.Compile(cfg, data)

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode filter document: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

// loadConfiguration reads a configuration from a file or from the store.
func loadConfiguration(file, name string) (*types.Configuration, error) {
	if file != "" {
		raw, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration: %w", err)
		}
		cfg, err := schema.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		return cfg, nil
	}

	st, database, err := openStore()
	if err != nil {
		return nil, err
	}
	defer database.Close()

	return st.Get(context.Background(), name)
}
