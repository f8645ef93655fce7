package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-obesense/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTML form",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = a.cfg.Server.Addr
			}

			s, err := a.schema(ctx)
			if err != nil {
				return err
			}
			client, err := a.predictor()
			if err != nil {
				return err
			}
			doc, err := a.contract(ctx, "")
			if err != nil {
				return err
			}
			if err := doc.Check(s); err != nil {
				a.logger.Warn("schema diverges from prediction contract", zap.Error(err))
			}
			selector, err := a.themeSelector()
			if err != nil {
				return err
			}
			decorators, err := a.decorators()
			if err != nil {
				return err
			}

			srv, err := server.New(server.Config{
				Schema:        s,
				Predictor:     client,
				CallTimeout:   a.cfg.API.Timeout,
				Contract:      doc,
				Decorators:    decorators,
				ThemeSelector: selector,
				Logger:        a.logger.Named("http"),
			})
			if err != nil {
				return err
			}
			a.logger.Info("starting server",
				zap.String("addr", addr),
				zap.String("predict_endpoint", client.Endpoint()),
			)
			return srv.Run(ctx, addr, a.cfg.Server.ShutdownTimeout)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}
