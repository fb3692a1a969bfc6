package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/condense-db/condense/internal/core/config"
	"github.com/condense-db/condense/internal/core/store"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage stored filter configurations",
}

var storePutCmd = &cobra.Command{
	Use:   "put <name> <file>",
	Short: "Validate and store a configuration under a name",
	Args:  cobra.ExactArgs(2),
	RunE:  runStorePut,
}

var storeGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Print the stored configuration document",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreGet,
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored configurations",
	Args:  cobra.NoArgs,
	RunE:  runStoreList,
}

var storeRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Delete a stored configuration",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreRm,
}

func init() {
	rootCmd.AddCommand(storeCmd)
	storeCmd.AddCommand(storePutCmd, storeGetCmd, storeListCmd, storeRmCmd)
}

// openStore loads config, opens the database, and builds a Store honoring
// the configured cache settings. --db-url overrides the configured URL.
func openStore() (*store.Store, *sqlx.DB, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	url := cfg.DatabaseURL
	if dbURL != "" {
		url = dbURL
	}

	database, err := store.Open(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	options := []store.Option{
		store.WithCacheTTL(cfg.CacheTTL),
		store.WithMaxListSize(cfg.MaxListSize),
	}
	if !cfg.CacheEnabled {
		options = append(options, store.WithCacheDisabled())
	}

	st, err := store.New(database, options...)
	if err != nil {
		database.Close()
		return nil, nil, err
	}
	return st, database, nil
}

func runStorePut(cmd *cobra.Command, args []string) error {
	name, file := args[0], args[1]

	raw, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read configuration: %w", err)
	}

	st, database, err := openStore()
	if err != nil {
		return err
	}
	defer database.Close()

	stored, err := st.Save(context.Background(), name, raw)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "stored %s (%s)\n", stored.Name, stored.ID)
	return nil
}

func runStoreGet(cmd *cobra.Command, args []string) error {
	st, database, err := openStore()
	if err != nil {
		return err
	}
	defer database.Close()

	// Print the stored document verbatim rather than the parsed form.
	row, err := st.Describe(context.Background(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), row.Document)
	return nil
}

func runStoreList(cmd *cobra.Command, args []string) error {
	st, database, err := openStore()
	if err != nil {
		return err
	}
	defer database.Close()

	rows, err := st.List(context.Background())
	if err != nil {
		return err
	}
	for _, row := range rows {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", row.Name, row.ID, row.UpdatedAt)
	}
	return nil
}

func runStoreRm(cmd *cobra.Command, args []string) error {
	st, database, err := openStore()
	if err != nil {
		return err
	}
	defer database.Close()

	if err := st.Delete(context.Background(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
	return nil
}
