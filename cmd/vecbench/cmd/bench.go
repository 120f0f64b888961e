package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	vectorengine "github.com/Aman-CERP/vectorengine"
)

func newBenchCmd() *cobra.Command {
	var dim int
	var docs int
	var queries int

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run an ad hoc add/search timing pass and print a labeled report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(dim, docs, queries)
		},
	}

	cmd.Flags().IntVar(&dim, "dim", 128, "Vector dimension")
	cmd.Flags().IntVar(&docs, "docs", 5000, "Number of documents to add")
	cmd.Flags().IntVar(&queries, "queries", 200, "Number of searches to run")

	return cmd
}

func runBench(dim, docs, queries int) error {
	runID := uuid.New()
	r := rand.New(rand.NewSource(1))
	e := vectorengine.New(dim)

	addStart := time.Now()
	for i := 0; i < docs; i++ {
		vec := make([]float32, dim)
		for j := range vec {
			vec[j] = r.Float32()
		}
		if err := e.Add(uint64(i), vec); err != nil {
			return err
		}
	}
	addElapsed := time.Since(addStart)

	searchStart := time.Now()
	for i := 0; i < queries; i++ {
		vec := make([]float32, dim)
		for j := range vec {
			vec[j] = r.Float32()
		}
		if _, err := e.Search(vec, 10); err != nil {
			return err
		}
	}
	searchElapsed := time.Since(searchStart)

	fmt.Printf("run:            %s\n", runID)
	fmt.Printf("documents:      %d\n", docs)
	fmt.Printf("add total:      %s (%s/doc)\n", addElapsed, addElapsed/time.Duration(docs))
	fmt.Printf("search total:   %s (%s/query)\n", searchElapsed, searchElapsed/time.Duration(queries))
	fmt.Printf("cache hit rate: %.1f%%\n", e.QueryCacheStats().HitRate())

	return nil
}
