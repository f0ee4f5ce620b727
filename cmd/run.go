package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/recall/internal/app"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review cards interactively",
	Args:  exactArgs(0, "arguments"),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, deckIDFlag(cmd))
	},
}

func init() {
	reviewCmd.Flags().Int64("deck-id", 0, "Start reviewing this deck instead of opening the deck browser")
}

// runApp opens the collection and launches the TUI.
func runApp(cmd *cobra.Command, deckID *int64) error {
	ctl, err := openController()
	if err != nil {
		return err
	}
	return app.Run(app.Options{
		Catalog: ctl,
		DeckID:  deckID,
		Profile: cfg.Profile,
	})
}
