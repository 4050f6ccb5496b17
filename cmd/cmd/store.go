package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tubescout/internal/config"
	"tubescout/internal/store"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Inspect or clear the durable research store",
}

var storeStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show store statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()

		db, err := store.NewStore(cfg.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer func() { _ = db.Close() }()

		stats, err := db.GetStats()
		if err != nil {
			return fmt.Errorf("failed to read store stats: %w", err)
		}

		fmt.Printf("Summaries stored: %d\n", stats.SummaryCount)
		fmt.Printf("Reports stored:   %d\n", stats.ReportCount)
		fmt.Printf("Store size:       %d bytes\n", stats.StoreSize)
		if !stats.LastUpdated.IsZero() {
			fmt.Printf("Last updated:     %s\n", stats.LastUpdated.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all stored summaries and reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()

		db, err := store.NewStore(cfg.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer func() { _ = db.Close() }()

		if err := db.Clear(); err != nil {
			return fmt.Errorf("failed to clear store: %w", err)
		}

		fmt.Println("✓ Store cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(storeCmd)
	storeCmd.AddCommand(storeStatsCmd)
	storeCmd.AddCommand(storeClearCmd)
}
