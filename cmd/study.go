package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/recall/internal/output"
	"github.com/abhisek/recall/internal/study"
)

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Show the next due card",
	Long: `Show the next due card of the active deck.

--deck-id makes that deck active first. --side selects what is shown:
"front" or "answer" keep the front, "back" or "question" keep the back and
"both" keeps everything. --show-state adds the card's scheduling state
token, which answer --expect-state accepts.`,
	Args: exactArgs(0, "arguments"),
	RunE: func(cmd *cobra.Command, args []string) error {
		side, _ := cmd.Flags().GetString("side")
		showState, _ := cmd.Flags().GetBool("show-state")

		ctl, err := openController()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		view, err := ctl.Study(ctx, study.StudyRequest{DeckID: deckIDFlag(cmd), Side: side})
		if err != nil {
			return err
		}

		resp := &output.Card{Card: view}
		if showState {
			st, err := ctl.CurrentState(ctx, view.ID)
			if err != nil {
				return err
			}
			resp.State = st.Token()
		}
		return newWriter().Write(resp)
	},
}

func init() {
	studyCmd.Flags().Int64("deck-id", 0, "Deck to study; becomes the active deck")
	studyCmd.Flags().String("side", "both", "Side to show: front, back, both, question or answer")
	studyCmd.Flags().Bool("show-state", false, "Include the card's scheduling state token")
}
