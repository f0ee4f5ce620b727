package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/recall/internal/collection"
	"github.com/abhisek/recall/internal/output"
	"github.com/abhisek/recall/internal/studyerr"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import decks, note types and notes from a bundle",
	Long: `Import a JSON collection bundle. The bundle lists decks, note types
with their card templates, and notes. Existing decks and note types with the
same name are reused; every note is added with one new card per template.`,
	Args: exactArgs(1, "file"),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return studyerr.Invalid("file", args[0], err.Error())
		}
		defer f.Close()

		svc, err := openCollection(newLogger())
		if err != nil {
			return err
		}
		res, err := svc.Import(cmd.Context(), f)
		var ie *collection.ImportError
		if errors.As(err, &ie) {
			return &studyerr.ValidationError{Field: "bundle", Value: args[0], Reason: ie.Error(), Err: err}
		}
		if err != nil {
			return studyerr.Collection("import", err)
		}
		return newWriter().Write(&output.Imported{Imported: res})
	},
}
