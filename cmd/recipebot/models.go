package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"recipebot/internal/registry"
)

func newModelsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{Use: "models", Short: "List or download local GGUF models"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List models found in the models directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			models, err := registry.LoadDir(cfg.ModelsDir)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSIZE(MB)\tPATH")
			for _, m := range models {
				fmt.Fprintf(tw, "%s\t%d\t%s\n", m.ID, m.SizeBytes>>20, m.Path)
			}
			return tw.Flush()
		},
	}

	download := &cobra.Command{
		Use:     "download [name...]",
		Short:   "Download model files, skipping ones already present",
		Example: "  recipebot models download\n  recipebot models download orca-mini-3b-gguf2-q4_0.gguf",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			log, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			names := args
			if len(names) == 0 {
				names = cfg.Download.Models
			}
			d := &registry.Downloader{BaseURL: cfg.Download.BaseURL, Logger: log}
			results, err := d.Download(cmd.Context(), cfg.ModelsDir, names)
			for _, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", r.Status, r.Name)
			}
			return err
		},
	}

	cmd.AddCommand(list, download)
	return cmd
}
