package cmd

import (
	"encoding/json"
	"strings"

	"github.com/closetscout/backend/internal/domain"
	"github.com/spf13/cobra"
)

var (
	searchStores   []string
	searchCategory string
	searchJSON     bool
	titleWidth     int
)

func init() {
	searchCmd.Flags().StringSliceVarP(&searchStores, "stores", "s", nil, "store ids to query (default: every store)")
	searchCmd.Flags().StringVar(&searchCategory, "category", "", "category echoed in the response")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print the raw response envelope")
	searchCmd.Flags().IntVar(&titleWidth, "width", 48, "maximum title column width")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Searches the selected stores and prints the results grouped by store.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stores := searchStores
		if len(stores) == 0 {
			for _, s := range stack.Directory.All() {
				stores = append(stores, string(s.ID))
			}
		}

		resp, err := stack.Search.Search(cmd.Context(), &domain.SearchRequest{
			Query:    strings.Join(args, " "),
			Stores:   stores,
			Category: searchCategory,
		})
		if err != nil {
			return err
		}

		if searchJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		}

		renderResults(cmd.OutOrStdout(), resp, titleWidth)
		return nil
	},
}
