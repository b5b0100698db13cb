package main

import (
	"fmt"
	"os"

	"github.com/goran-ethernal/HeaderIndexor/internal/config"
	"github.com/spf13/cobra"
)

const (
	version = "1.0.0"
	banner  = `
╔═══════════════════════════════════════════╗
║         HeaderIndexor v%s              ║
║     Fork-Aware Block Header Indexing      ║
╚═══════════════════════════════════════════╝
`
)

var (
	configPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "headerindexor",
	Short: "HeaderIndexor - fork-aware block header index",
	Long: `HeaderIndexor stores block headers in a fork-aware index. It tracks every
chain tip, detects forks, and prunes fork chains and orphan headers that fall
behind, on top of a sqlite, leveldb or badger key-value store.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("HeaderIndexor v%s\n", version)
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := config.SchemaJSON()
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to configuration file (.yaml, .yml, .json, .toml)")

	importCmd.Flags().IntVar(&importBatchSize, "batch-size", 0, "headers stored per transaction (0 selects the default)")
	pruneCmd.Flags().BoolVar(&pruneRemoveTxs, "remove-txs", false, "also remove the transactions of pruned blocks")

	rootCmd.AddCommand(runCmd, importCmd, tipsCmd, pruneCmd, schemaCmd, versionCmd)
}
