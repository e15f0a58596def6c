package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/barrycohen/ttws/pkg/decode"
	"github.com/barrycohen/ttws/pkg/export"
	"github.com/barrycohen/ttws/pkg/puzzle"
	"github.com/barrycohen/ttws/pkg/solver"
)

// solveCmd represents the solve command
var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "solve one or more puzzle codes",
	Long: `Decode and solve windmill puzzle codes. Provide a single code with
--puzzle or a file of codes (one per line) with --file. Solutions can be
rendered to SVG and JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		codes, err := gatherCodes()
		if err != nil {
			return err
		}
		if len(codes) == 0 {
			return fmt.Errorf("provide --puzzle or --file")
		}

		settings, err := loadSettings(cfgVal)
		if err != nil {
			return err
		}
		applySolveFlags(cmd, &settings)

		for i, code := range codes {
			if len(codes) > 1 {
				fmt.Printf("Puzzle %d of %d\n", i+1, len(codes))
			}
			if err := solveOne(code, settings); err != nil {
				return err
			}
		}
		return nil
	},
}

var (
	puzzleVal    string
	fileVal      string
	cfgVal       string
	svgVal       string
	jsonVal      string
	seedVal      uint64
	randomizeVal bool
	verboseVal   bool
)

func init() {
	RootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringVarP(&puzzleVal, "puzzle", "p", "", "a single puzzle code")
	solveCmd.Flags().StringVarP(&fileVal, "file", "f", "", "file containing a list of puzzle codes")
	solveCmd.Flags().StringVar(&cfgVal, "config", "", "YAML solve settings")
	solveCmd.Flags().StringVar(&svgVal, "svg", "", "write the solved board as SVG to this path")
	solveCmd.Flags().StringVar(&jsonVal, "json", "", "write the solve result as JSON to this path")
	solveCmd.Flags().Uint64Var(&seedVal, "seed", 0, "seed for randomized solve order")
	solveCmd.Flags().BoolVar(&randomizeVal, "randomize", false, "randomize start node and direction order")
	solveCmd.Flags().BoolVarP(&verboseVal, "verbose", "v", false, "print progress while solving")
}

// applySolveFlags lets explicitly-set flags override the settings file.
func applySolveFlags(cmd *cobra.Command, s *Settings) {
	if cmd.Flags().Changed("seed") {
		s.Seed = seedVal
	}
	if cmd.Flags().Changed("randomize") {
		s.Randomize = randomizeVal
	}
	if cmd.Flags().Changed("svg") {
		s.SVGOut = svgVal
	}
	if cmd.Flags().Changed("json") {
		s.JSONOut = jsonVal
	}
}

func gatherCodes() ([]string, error) {
	if puzzleVal != "" {
		return []string{puzzleVal}, nil
	}
	if fileVal == "" {
		return nil, nil
	}

	f, err := os.Open(fileVal)
	if err != nil {
		return nil, fmt.Errorf("opening code list: %w", err)
	}
	defer f.Close()

	var codes []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			codes = append(codes, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading code list: %w", err)
	}
	return codes, nil
}

func solveOne(code string, settings Settings) error {
	p, err := decode.Decode(code)
	if err != nil {
		return err
	}
	return solveAndReport(p, settings)
}

// solveAndReport runs the solver over a built board and writes any
// requested exports. Shared with the random command.
func solveAndReport(p *puzzle.Puzzle, settings Settings) error {
	yield := time.Duration(settings.YieldInterval)
	s, err := solver.New(p, solver.Options{
		Randomize:     settings.Randomize,
		Seed:          settings.Seed,
		YieldInterval: yield,
	})
	if err != nil {
		return err
	}

	if verboseVal {
		s.RegisterObserver(func(prog solver.Progress) {
			fmt.Printf("\r%s attempts=%d elapsed=%s", prog.Message, prog.Attempts, prog.Elapsed.Round(yield))
		})
	}

	ctx := context.Background()
	if settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(settings.Timeout))
		defer cancel()
	}

	res, err := s.Solve(ctx)
	if verboseVal {
		fmt.Println()
	}
	if err != nil {
		fmt.Printf("Solve stopped: %v\n", err)
	}

	fmt.Printf("%s (%d attempts in %s)\n", res.Message, res.Attempts, res.Elapsed.Round(yield))
	if res.Solved {
		fmt.Printf("Path: %v\n", res.Path)
	}

	if settings.SVGOut != "" {
		svgData, err := export.ExportSVG(p, res, export.DefaultSVGOptions())
		if err != nil {
			return err
		}
		if err := os.WriteFile(settings.SVGOut, svgData, 0o644); err != nil {
			return fmt.Errorf("writing SVG: %w", err)
		}
		fmt.Printf("Wrote %s\n", settings.SVGOut)
	}
	if settings.JSONOut != "" {
		jsonData, err := export.ExportJSON(p, res)
		if err != nil {
			return err
		}
		if err := os.WriteFile(settings.JSONOut, jsonData, 0o644); err != nil {
			return fmt.Errorf("writing JSON: %w", err)
		}
		fmt.Printf("Wrote %s\n", settings.JSONOut)
	}
	return nil
}
