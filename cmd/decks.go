package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/recall/internal/output"
	"github.com/abhisek/recall/internal/study"
)

var listDecksCmd = &cobra.Command{
	Use:   "list-decks",
	Short: "List decks with their due counts",
	Args:  exactArgs(0, "arguments"),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, _ := cmd.Flags().GetInt64Slice("deck-id")
		names, _ := cmd.Flags().GetStringSlice("deck-name")

		ctl, err := openController()
		if err != nil {
			return err
		}
		decks, err := ctl.ListDecks(cmd.Context(), study.ListDecksRequest{IDs: ids, Names: names})
		if err != nil {
			return err
		}
		return newWriter().Write(&output.Decks{Decks: decks})
	},
}

func init() {
	listDecksCmd.Flags().Int64Slice("deck-id", nil, "Only show decks with these ids (comma separated, repeatable)")
	listDecksCmd.Flags().StringSlice("deck-name", nil, "Only show decks with these names (comma separated, repeatable)")
}
