package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"recipebot/internal/recipes"
)

func newRecipesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{Use: "recipes", Short: "Inspect the local recipe collection"}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List dishes and their match keywords",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			dishes, err := recipes.NewStore(cfg.RecipesDir, zerolog.Nop()).Dishes()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tKEYWORDS")
			for _, d := range dishes {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", d.ID, d.Name(), strings.Join(d.Keywords, ","))
			}
			return tw.Flush()
		},
	})
	return cmd
}
