package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/barrycohen/ttws/pkg/fetch"
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "download the windmill puzzle catalogue",
	Long: `Fetch every puzzle entry from The Windmill, following the paginated
API, and store the aggregate as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := &fetch.Client{BaseURL: baseURLVal}

		things, err := client.All(context.Background())
		if err != nil {
			return err
		}

		data, err := json.Marshal(things)
		if err != nil {
			return fmt.Errorf("marshaling catalogue: %w", err)
		}
		if err := os.WriteFile(outVal, data, 0o644); err != nil {
			return fmt.Errorf("writing catalogue: %w", err)
		}

		fmt.Printf("Wrote %d entries to %s\n", len(things), outVal)
		return nil
	},
}

var (
	outVal     string
	baseURLVal string
)

func init() {
	RootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVar(&outVal, "out", "all_puzzles.json", "output file")
	fetchCmd.Flags().StringVar(&baseURLVal, "url", fetch.DefaultBaseURL, "windmill base URL")
}
