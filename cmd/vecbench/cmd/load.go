package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	vectorengine "github.com/Aman-CERP/vectorengine"
	"github.com/Aman-CERP/vectorengine/internal/vecerrors"
)

func newLoadCmd() *cobra.Command {
	var dim int
	var in string

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load a blob file and print its document count",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(dim, in)
		},
	}

	cmd.Flags().IntVar(&dim, "dim", 128, "Vector dimension the blob was saved with")
	cmd.Flags().StringVar(&in, "in", "engine.blob", "Input blob path")

	return cmd
}

func runLoad(dim int, in string) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("read blob: %w", err)
	}

	e, err := vectorengine.LoadFromBytes(data, dim)
	if err != nil {
		fmt.Fprint(os.Stderr, vecerrors.FormatForCLI(err))
		return err
	}

	fmt.Printf("loaded %d documents, dimension %d\n", e.DocumentCount(), e.Dimension())
	return nil
}
