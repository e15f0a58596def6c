package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barrycohen/ttws/pkg/puzzle"
	"github.com/barrycohen/ttws/pkg/rng"
)

// randomCmd represents the random command
var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "generate and solve a random board",
	Long: `Generate a random board of the given size, attempt to solve it, and
render the outcome. The same seed always produces the same board and the
same solve.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if widthVal < 2 || heightVal < 2 {
			return fmt.Errorf("board must be at least 2x2, got %dx%d", widthVal, heightVal)
		}

		settings, err := loadSettings(cfgVal)
		if err != nil {
			return err
		}
		applySolveFlags(cmd, &settings)

		p, err := puzzle.New(widthVal, heightVal)
		if err != nil {
			return err
		}
		p.Randomize(rng.New(settings.Seed, "randomise"))

		return solveAndReport(p, settings)
	},
}

var widthVal, heightVal int

func init() {
	RootCmd.AddCommand(randomCmd)

	randomCmd.Flags().IntVar(&widthVal, "width", 4, "board width in cells")
	randomCmd.Flags().IntVar(&heightVal, "height", 4, "board height in cells")
	randomCmd.Flags().StringVar(&cfgVal, "config", "", "YAML solve settings")
	randomCmd.Flags().StringVar(&svgVal, "svg", "", "write the board as SVG to this path")
	randomCmd.Flags().StringVar(&jsonVal, "json", "", "write the solve result as JSON to this path")
	randomCmd.Flags().Uint64Var(&seedVal, "seed", 0, "board and solve seed")
	randomCmd.Flags().BoolVar(&randomizeVal, "randomize", false, "randomize start node and direction order")
	randomCmd.Flags().BoolVarP(&verboseVal, "verbose", "v", false, "print progress while solving")
}
