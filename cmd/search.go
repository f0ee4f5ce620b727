package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/recall/internal/output"
	"github.com/abhisek/recall/internal/study"
)

var searchCmd = &cobra.Command{
	Use:   "search TEXT",
	Short: "Render every card whose note contains TEXT",
	Args:  exactArgs(1, "text"),
	RunE: func(cmd *cobra.Command, args []string) error {
		side, _ := cmd.Flags().GetString("side")

		ctl, err := openController()
		if err != nil {
			return err
		}
		views, err := ctl.Search(cmd.Context(), study.SearchRequest{Text: args[0], Side: side})
		if err != nil {
			return err
		}
		return newWriter().Write(&output.Cards{Cards: views})
	},
}

func init() {
	searchCmd.Flags().String("side", "both", "Side to show: front, back, both, question or answer")
}
