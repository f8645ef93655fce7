package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-obesense/pkg/render"
	"github.com/goliatone/go-obesense/pkg/renderers/tui"
	"github.com/goliatone/go-obesense/pkg/renderers/vanilla"
	"github.com/goliatone/go-obesense/pkg/session"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		renderer  string
		output    string
		values    []string
		styles    bool
		templates string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the form with optional prefilled values",
		Example: `  obesense render --set gender=Female --set age=31 -o form.html
  obesense render --templates ./theme -o form.html
  obesense render --renderer tui`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			s, err := a.schema(ctx)
			if err != nil {
				return err
			}
			selector, err := a.themeSelector()
			if err != nil {
				return err
			}

			htmlOptions := []vanilla.Option{vanilla.WithTemplatesDir(templates)}
			if styles {
				htmlOptions = append(htmlOptions, vanilla.WithDefaultStyles())
			}
			html, err := vanilla.New(htmlOptions...)
			if err != nil {
				return err
			}
			registry := render.NewRegistry()
			if err := registry.Register(html); err != nil {
				return err
			}
			if err := registry.Register(tui.New()); err != nil {
				return err
			}

			decorators, err := a.decorators()
			if err != nil {
				return err
			}

			sess, err := session.New(s,
				session.WithRegistry(registry),
				session.WithDecorators(decorators...),
				session.WithThemeSelector(selector, "", ""),
				session.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}
			for _, pair := range values {
				name, raw, ok := strings.Cut(pair, "=")
				if !ok {
					return fmt.Errorf("render: --set expects name=value, got %q", pair)
				}
				if err := sess.SetInput(strings.TrimSpace(name), raw); err != nil {
					return err
				}
			}

			out, _, err := sess.Render(ctx, renderer)
			if err != nil {
				return err
			}
			if output == "" {
				_, err := cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return fmt.Errorf("render: write output: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Form written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&renderer, "renderer", "r", vanilla.Name, "Renderer to use (vanilla or tui)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout if empty)")
	cmd.Flags().StringArrayVar(&values, "set", nil, "Prefill a field as name=value")
	cmd.Flags().BoolVar(&styles, "inline-styles", true, "Inline the default stylesheet")
	cmd.Flags().StringVar(&templates, "templates", "", "Directory of template overrides (templates/form.tmpl, templates/partials/*.tmpl)")
	return cmd
}
