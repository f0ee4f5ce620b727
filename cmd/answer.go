package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/recall/internal/output"
	"github.com/abhisek/recall/internal/study"
)

var answerCmd = &cobra.Command{
	Use:   "answer",
	Short: "Record a rating for a card",
	Long: `Record a rating for a card and reschedule it.

--answer accepts again, hard, good or easy, or 1 to 4. --time-taken is in
milliseconds. With --expect-state the answer is rejected if the card was
answered or rescheduled since that state was shown.`,
	Args: exactArgs(0, "arguments"),
	RunE: func(cmd *cobra.Command, args []string) error {
		cardID, _ := cmd.Flags().GetInt64("card-id")
		rating, _ := cmd.Flags().GetString("answer")
		taken, _ := cmd.Flags().GetInt64("time-taken")
		expect, _ := cmd.Flags().GetString("expect-state")

		ctl, err := openController()
		if err != nil {
			return err
		}
		rec, err := ctl.Answer(cmd.Context(), study.AnswerRequest{
			CardID:        cardID,
			Rating:        rating,
			TimeTakenMs:   taken,
			ExpectedState: expect,
		})
		if err != nil {
			return err
		}
		return newWriter().Write(&output.Answer{
			CardID: rec.CardID(),
			Rating: rec.Rating().String(),
			State:  rec.New().Token(),
		})
	},
}

func init() {
	answerCmd.Flags().Int64("card-id", 0, "Card being answered")
	answerCmd.Flags().String("answer", "", "Rating: again|1, hard|2, good|3 or easy|4")
	answerCmd.Flags().Int64("time-taken", 0, "Milliseconds spent on the card")
	answerCmd.Flags().String("expect-state", "", "State token the card was shown under")
}
