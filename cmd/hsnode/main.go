package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"hsring/node"
)

var (
	n        int
	index    int
	basePort int
	orchPort int
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "hsnode",
		Short: "One participant in a Hirschberg-Sinclair ring election",
		Long: `Hsnode runs a single node of a Hirschberg-Sinclair bidirectional-doubling
leader election ring. It listens on basePort+index, exchanges probe/ack/
announce messages with its two ring neighbors, and reports its outcome to
the orchestrator listening on orchPort.`,
		RunE: runNode,
	}

	rootCmd.Flags().IntVar(&n, "n", 0, "Number of nodes in the ring")
	rootCmd.Flags().IntVar(&index, "index", 0, "This node's index in the ring, 0..n-1")
	rootCmd.Flags().IntVar(&basePort, "basePort", 0, "Base port; this node listens on basePort+index")
	rootCmd.Flags().IntVar(&orchPort, "orchPort", 0, "Port the orchestrator listens on for reports")
	rootCmd.MarkFlagRequired("n")
	rootCmd.MarkFlagRequired("index")
	rootCmd.MarkFlagRequired("basePort")
	rootCmd.MarkFlagRequired("orchPort")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "usage: hsnode --n <int> --index <int> --basePort <int> --orchPort <int>")
		os.Exit(1)
	}
}

func runNode(cmd *cobra.Command, args []string) error {
	var ctx, cancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	var rt = node.New(node.Config{
		N:        n,
		Index:    index,
		BasePort: basePort,
		OrchPort: orchPort,
	}, node.WithLogger(logger))

	logger.Info("starting node", "n", n, "index", index, "uid", rt.UID())

	if err := rt.Run(ctx); err != nil {
		return fmt.Errorf("node %d: %w", index, err)
	}
	return nil
}
