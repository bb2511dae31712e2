package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/smartagro/smartagro/config"
	"github.com/smartagro/smartagro/internal/api"
	"github.com/smartagro/smartagro/internal/app"
	"github.com/smartagro/smartagro/internal/catalog"
	"github.com/smartagro/smartagro/internal/router"
	"github.com/smartagro/smartagro/internal/webserver"
)

var cfgFile string

func main() {
	root := &cobra.Command{
		Use:          "smartagro",
		Short:        "SmartAgro catalog and dashboard service",
		SilenceUsage: true,
		RunE:         runServe,
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")

	root.AddCommand(
		&cobra.Command{Use: "serve", Short: "Start the web server", RunE: runServe},
		&cobra.Command{Use: "routes", Short: "Print the route table", RunE: runRoutes},
		&cobra.Command{Use: "check", Short: "Validate the sample data set", RunE: runCheck},
		&cobra.Command{Use: "initdb", Short: "Drop, recreate and seed the database", RunE: runInitDb},
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadApp() (*app.Application, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := app.InitLogger(cfg); err != nil {
		return nil, err
	}
	application := app.NewApplication(cfg)
	if err := application.Init(); err != nil {
		return nil, err
	}
	return application, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	application, err := loadApp()
	if err != nil {
		return err
	}
	defer application.Release()

	srv, err := webserver.NewServer(application.Config())
	if err != nil {
		return err
	}
	api.Register(srv, application)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		application.StartBackgroundJobs(gctx)
		<-gctx.Done()
		return nil
	})
	g.Go(func() error {
		return srv.Start(gctx)
	})
	if err := g.Wait(); err != nil {
		zap.L().Error("server exited", zap.Error(err))
		return err
	}
	return nil
}

func runRoutes(cmd *cobra.Command, _ []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPATH\tLAYOUT\tVIEW")
	for _, e := range router.Default().Routes() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Name, e.Pattern, e.Layout, e.Component)
	}
	return w.Flush()
}

func runCheck(cmd *cobra.Command, _ []string) error {
	if err := catalog.Validate(catalog.Fixtures()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "sample data OK")
	return nil
}

func runInitDb(cmd *cobra.Command, _ []string) error {
	application, err := loadApp()
	if err != nil {
		return err
	}
	defer application.Release()
	if err := application.InitDb(context.Background()); err != nil {
		return err
	}
	zap.L().Info("database initialized")
	return nil
}
