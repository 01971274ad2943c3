package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"recipebot/internal/eval"
	"recipebot/internal/llm"
)

func newEvalCmd(opts *rootOptions) *cobra.Command {
	var (
		dataset    string
		file       string
		model      string
		seed       uint64
		sampleSize int
		failures   int
		asJSON     bool
	)
	cmd := &cobra.Command{
		Use:     "eval",
		Short:   "Score the local model on a BoolQ or PIQA JSON Lines file",
		Example: "  recipebot eval --dataset google/boolq --file boolq.jsonl --seed 123",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := eval.LookupDataset(dataset)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("seed") {
				return errors.New("--seed is required")
			}
			items, err := eval.LoadJSONL(file)
			if err != nil {
				return err
			}
			_, log, a, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			params := a.Assistant.Defaults()
			params.Model = model
			ans := eval.AnswerFunc(func(ctx context.Context, prompt string) (string, error) {
				return a.Assistant.CompleteBare(ctx, prompt, params)
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			log.Info().Str("model", model).Str("dataset", ds.Name).Int("items", len(items)).Msg("evaluating")
			rep, runErr := eval.New(ds, ans, eval.Config{
				Seed:         seed,
				SampleSize:   sampleSize,
				KeepFailures: failures,
				Logger:       log,
			}).Run(ctx, items)
			if runErr != nil && rep.Total == 0 {
				return runErr
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(rep); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(out, "results:\nModel: %s\nDataset: %s\nAccuracy: %.2f%% (%d/%d)\n",
					model, rep.Dataset, rep.Accuracy*100, rep.Correct, rep.Total)
				for _, f := range rep.Failures {
					fmt.Fprintf(out, "- #%d gold=%s got=%q\n", f.Index, f.Gold, f.Response)
				}
			}
			return runErr
		},
	}
	cmd.Flags().StringVar(&dataset, "dataset", "google/boolq", "Dataset: "+strings.Join(eval.DatasetNames(), "|"))
	cmd.Flags().StringVar(&file, "file", "", "JSON Lines file holding the dataset split")
	cmd.Flags().StringVar(&model, "model", llm.KnownModels[1], "Model to evaluate")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Sampling seed (required)")
	cmd.Flags().IntVar(&sampleSize, "sample-size", 500, "Number of items to evaluate")
	cmd.Flags().IntVar(&failures, "failures", 0, "Number of wrong answers to print")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
