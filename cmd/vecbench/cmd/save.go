package cmd

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	vectorengine "github.com/Aman-CERP/vectorengine"
	"github.com/Aman-CERP/vectorengine/internal/vecerrors"
)

func newSaveCmd() *cobra.Command {
	var dim int
	var count int
	var out string
	var seed int64

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Generate random documents and save them to a blob file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(dim, count, out, seed)
		},
	}

	cmd.Flags().IntVar(&dim, "dim", 128, "Vector dimension")
	cmd.Flags().IntVar(&count, "docs", 1000, "Number of random documents to generate")
	cmd.Flags().StringVar(&out, "out", "engine.blob", "Output blob path")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Random seed, for reproducible runs")

	return cmd
}

func runSave(dim, count int, out string, seed int64) error {
	e := vectorengine.New(dim)
	r := rand.New(rand.NewSource(seed))

	for i := 0; i < count; i++ {
		vec := make([]float32, dim)
		for j := range vec {
			vec[j] = r.Float32()
		}
		if err := e.Add(uint64(i), vec); err != nil {
			fmt.Fprint(os.Stderr, vecerrors.FormatForCLI(err))
			return err
		}
	}

	data, err := e.SaveToBytes()
	if err != nil {
		fmt.Fprint(os.Stderr, vecerrors.FormatForCLI(err))
		return err
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write blob: %w", err)
	}

	fmt.Printf("wrote %d documents (%d bytes) to %s\n", e.DocumentCount(), len(data), out)
	return nil
}
