package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/eiannone/keyboard"
	"github.com/spf13/cobra"

	"hsring/orchestrator"
)

var (
	n        int
	basePort int
	orchPort int
	verbose  bool
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "hsorch",
		Short: "Launches and validates Hirschberg-Sinclair election scenarios",
		Long: `Hsorch spawns the N node processes of one ring-election scenario,
collects their terminal reports, and prints a pass/fail self-check. Invoked
with --n 0 (or with no --n at all, answering 0 at the prompt) it instead
runs the full default scenario sweep, one ring size after another.`,
		RunE: runOrchestrator,
	}

	rootCmd.Flags().IntVar(&n, "n", -1, "Number of nodes for a single scenario; 0 runs the default sweep")
	rootCmd.Flags().IntVar(&basePort, "basePort", 50000, "Base port nodes listen on")
	rootCmd.Flags().IntVar(&orchPort, "orchPort", 40000, "Port this orchestrator listens on for reports")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug-level logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runOrchestrator(cmd *cobra.Command, args []string) error {
	var ctx = context.Background()

	var level = slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if !cmd.Flags().Changed("n") {
		var err error
		n, err = promptForN(os.Stdin, os.Stdout)
		if err != nil {
			return fmt.Errorf("orchestrator: failed to read N: %w", err)
		}
	}

	var spawner = orchestrator.ProcessSpawner{}

	if n == 0 {
		return runSweep(ctx, spawner, logger)
	}

	var result, err = orchestrator.RunScenario(ctx, orchestrator.Scenario{
		N:        n,
		BasePort: basePort,
		OrchPort: orchPort,
	}, spawner, orchestrator.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("orchestrator: %w", err)
	}

	orchestrator.PrintResult(os.Stdout, result)
	orchestrator.PrintOverall(os.Stdout, result.Passed())
	if !result.Passed() {
		os.Exit(1)
	}
	return nil
}

// promptForN reads a single integer line from r, matching the interactive
// prompt an orchestrator invoked without --n shows.
func promptForN(r *os.File, w *os.File) (int, error) {
	fmt.Fprint(w, "Number of nodes (0 for the default scenario sweep): ")
	var reader = bufio.NewReader(r)
	var line, err = reader.ReadString('\n')
	if err != nil {
		return 0, err
	}
	var parsed, convErr = strconv.Atoi(strings.TrimSpace(line))
	if convErr != nil {
		return 0, fmt.Errorf("invalid integer %q: %w", line, convErr)
	}
	return parsed, nil
}

// runSweep runs the default scenario sweep, wiring the keyboard so the
// operator can press 'q' to stop after the scenario in progress finishes.
func runSweep(ctx context.Context, spawner orchestrator.Spawner, logger *slog.Logger) error {
	if err := keyboard.Open(); err != nil {
		return fmt.Errorf("orchestrator: failed to initialize keyboard: %w", err)
	}
	defer keyboard.Close()

	var abort = make(chan struct{})
	go func() {
		for {
			char, key, err := keyboard.GetKey()
			if err != nil {
				return
			}
			if char == 'q' || char == 'Q' || key == keyboard.KeyCtrlC {
				close(abort)
				return
			}
		}
	}()

	fmt.Fprintln(os.Stdout, "running default scenario sweep; press q to stop after the current scenario")

	var passed = orchestrator.Sweep(ctx, orchestrator.DefaultScenarios(), spawner, os.Stdout, abort, orchestrator.WithLogger(logger))
	if !passed {
		os.Exit(1)
	}
	return nil
}
