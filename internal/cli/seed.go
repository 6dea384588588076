package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pageza/recipeshare/backend/internal/seed"
)

func (a *app) seedCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert missing categories and ingredients",
		Long: `Loads categories and ingredients from a YAML file (or the built-in
defaults) and inserts the ones that do not exist yet. Running it twice is safe.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := seed.LoadFile(file)
			if err != nil {
				return err
			}
			db, closeDB, err := a.openDB()
			if err != nil {
				return err
			}
			defer closeDB()

			res, err := seed.Apply(cmd.Context(), db, doc)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %d categories and %d ingredients\n",
				res.CategoriesCreated, res.IngredientsCreated)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "seed YAML file (defaults to the built-in data)")
	return cmd
}
