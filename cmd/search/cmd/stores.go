package cmd

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(storesCmd)
}

var storesCmd = &cobra.Command{
	Use:   "stores",
	Short: "Lists the stores a search may name.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		renderStores(cmd.OutOrStdout(), stack.Directory.All())
	},
}
