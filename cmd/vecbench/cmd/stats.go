package cmd

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	vectorengine "github.com/Aman-CERP/vectorengine"
	"github.com/Aman-CERP/vectorengine/internal/vecerrors"
)

func newStatsCmd() *cobra.Command {
	var dim int
	var in string
	var queries int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Load a blob, run a few warm-up searches, and print cache stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(dim, in, queries)
		},
	}

	cmd.Flags().IntVar(&dim, "dim", 128, "Vector dimension the blob was saved with")
	cmd.Flags().StringVar(&in, "in", "engine.blob", "Input blob path")
	cmd.Flags().IntVar(&queries, "queries", 10, "Number of repeated searches to run")

	return cmd
}

func runStats(dim int, in string, queries int) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("read blob: %w", err)
	}

	e, err := vectorengine.LoadFromBytes(data, dim)
	if err != nil {
		fmt.Fprint(os.Stderr, vecerrors.FormatForCLI(err))
		return err
	}

	r := rand.New(rand.NewSource(1))
	query := make([]float32, dim)
	for i := range query {
		query[i] = r.Float32()
	}

	for i := 0; i < queries; i++ {
		if _, err := e.Search(query, 10); err != nil {
			fmt.Fprint(os.Stderr, vecerrors.FormatForCLI(err))
			return err
		}
	}

	stats := e.QueryCacheStats()
	fmt.Printf("documents:   %d\n", e.DocumentCount())
	fmt.Printf("cache len:   %d\n", e.QueryCacheLen())
	fmt.Printf("cache hits:  %d\n", stats.Hits)
	fmt.Printf("cache miss:  %d\n", stats.Misses)
	fmt.Printf("hit rate:    %.1f%%\n", stats.HitRate())
	return nil
}
