package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goran-ethernal/HeaderIndexor/internal/common"
	"github.com/goran-ethernal/HeaderIndexor/internal/importer"
	"github.com/spf13/cobra"
)

var (
	importBatchSize int
	pruneRemoveTxs  bool
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a file of concatenated 80 byte block headers",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var tipsCmd = &cobra.Command{
	Use:   "tips",
	Short: "List the chain tips with their height and cumulative work",
	Args:  cobra.NoArgs,
	RunE:  runTips,
}

var pruneCmd = &cobra.Command{
	Use:   "prune <tip-hash>",
	Short: "Remove the chain ending at a tip back to its fork point",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrune,
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	n, err := openNode()
	if err != nil {
		return err
	}
	defer n.close()

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open header file: %w", err)
	}
	defer file.Close()

	imp := importer.New(n.index, importBatchSize, n.componentLogger(common.ComponentImporter))

	count, err := imp.Import(ctx, file, filepath.Base(args[0]))
	if err != nil {
		return fmt.Errorf("import stopped after %d headers: %w", count, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported %d headers\n", count)

	return nil
}

func runTips(cmd *cobra.Command, args []string) error {
	n, err := openNode()
	if err != nil {
		return err
	}
	defer n.close()

	state, err := n.index.State()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0) //nolint:mnd
	fmt.Fprintln(w, "HASH\tHEIGHT\tWORK\tSIZE")
	for _, tip := range state.Tips {
		fmt.Fprintf(w, "%s\t%d\t%s\t%d\n", tip.Header.Hash, tip.Height, tip.Work, tip.SizeBytes)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d tips, %d blocks, %d transactions\n",
		len(state.Tips), state.BlockCount, state.TransactionCount)

	return nil
}

func runPrune(cmd *cobra.Command, args []string) error {
	tip, err := chainhash.NewHashFromStr(args[0])
	if err != nil {
		return fmt.Errorf("invalid tip hash: %w", err)
	}

	n, err := openNode()
	if err != nil {
		return err
	}
	defer n.close()

	pruned, err := n.pruner.PruneChain(*tip, pruneRemoveTxs)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "pruned %d blocks from %s back to %s\n",
		pruned.BlocksRemoved, pruned.TipHash, pruned.BoundaryHash)

	return nil
}
