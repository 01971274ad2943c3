package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"recipebot/internal/dispatch"
	"recipebot/internal/tui"
)

func newChatCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, a, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			t := tui.New(tui.Options{
				In:       cmd.InOrStdin(),
				Out:      cmd.OutOrStdout(),
				Replier:  a,
				Defaults: a.Assistant.Defaults(),
				Logger:   log,
			})
			if err := t.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

func newAskCmd(opts *rootOptions) *cobra.Command {
	var (
		mode  string
		image string
		model string
	)
	cmd := &cobra.Command{
		Use:     "ask <text>",
		Short:   "Answer a single message and exit",
		Example: "  recipebot ask --mode themealdb how to make laksa",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, a, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			m := dispatch.ParseMode(mode)
			if !m.Known() {
				return fmt.Errorf("unknown mode %q", mode)
			}
			var sel dispatch.Selection
			sel.Select(m)
			if mi, _ := m.Info(); mi.NeedsParams {
				p := a.Assistant.Defaults()
				if model != "" {
					p.Model = model
				}
				sel.SetParams(p)
			}
			reply := a.Reply(cmd.Context(), sel, strings.Join(args, " "), image)
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", string(dispatch.ExistingRecipe), "Reply backend: "+modeTokens())
	cmd.Flags().StringVar(&image, "image", "", "Image path for mllm_interface")
	cmd.Flags().StringVar(&model, "model", "", "Model for llm_interface and mllm_interface")
	return cmd
}

func modeTokens() string {
	out := make([]string, 0, len(dispatch.Modes))
	for _, m := range dispatch.Modes {
		out = append(out, string(m.Mode))
	}
	return strings.Join(out, "|")
}
