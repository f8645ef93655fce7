package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-obesense/pkg/formstate"
	"github.com/goliatone/go-obesense/pkg/renderers/tui"
	"github.com/goliatone/go-obesense/pkg/session"
)

func newAskCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ask",
		Short: "Answer the form in the terminal and print the prediction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			s, err := a.schema(ctx)
			if err != nil {
				return err
			}
			client, err := a.predictor()
			if err != nil {
				return err
			}
			decorators, err := a.decorators()
			if err != nil {
				return err
			}
			prompts := tui.New(tui.WithPromptDriver(a.prompts))
			sess, err := session.New(s,
				session.WithPredictor(client),
				session.WithDecorators(decorators...),
				session.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}
			form, err := sess.Form()
			if err != nil {
				return err
			}

			// Ask every field once, then only the ones that failed validation.
			var retry []string
			for {
				err := sess.Edit(func(state *formstate.State) error {
					return prompts.Fill(ctx, form, state, retry...)
				})
				if errors.Is(err, tui.ErrAborted) {
					return nil
				}
				if err != nil {
					return err
				}

				presentation, err := sess.Submit(ctx)
				var invalid *formstate.ValidationError
				if errors.As(err, &invalid) {
					retry = retry[:0]
					for name := range invalid.Fields {
						retry = append(retry, name)
					}
					sort.Strings(retry)
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), prompts.Card(presentation))
				return nil
			}
		},
	}
}
