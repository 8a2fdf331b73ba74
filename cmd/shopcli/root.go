package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/angelmondragon/scentshop/internal/catalog"
	"github.com/angelmondragon/scentshop/internal/notify"
	"github.com/angelmondragon/scentshop/internal/storefront"
	"github.com/angelmondragon/scentshop/pkg/config"
	"github.com/angelmondragon/scentshop/pkg/logger"
)

type cliOptions struct {
	catalogPath string
	logLevel    string

	cfg  *config.Config
	logg *logger.Logger
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	root := &cobra.Command{
		Use:           "shopcli",
		Short:         "Browse the perfume catalog and manage a cart from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}
	root.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "path to a JSON catalog (defaults to the embedded one)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "emit structured logs to stderr at this level")

	root.AddCommand(
		newCatalogCmd(opts),
		newSearchCmd(opts),
		newShellCmd(opts),
	)
	return root
}

func (o *cliOptions) load() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if o.catalogPath != "" {
		cfg.Catalog.Path = o.catalogPath
	}
	o.cfg = cfg

	o.logg = logger.Nop()
	if o.logLevel != "" {
		o.logg = logger.New(logger.Options{
			ServiceName: "shopcli",
			Level:       logger.ParseLevel(o.logLevel),
			WarnStack:   cfg.App.LogWarnStack,
			Output:      os.Stderr,
		})
	}
	return nil
}

func (o *cliOptions) catalog() (*catalog.Catalog, error) {
	return catalog.Load(o.cfg.Catalog.Path)
}

func (o *cliOptions) session() (*storefront.Session, error) {
	cat, err := o.catalog()
	if err != nil {
		return nil, err
	}
	return storefront.NewSession(storefront.Params{
		Catalog: cat,
		Center: notify.NewCenter(notify.Options{
			TTL:      o.cfg.Notify.TTL,
			Capacity: o.cfg.Notify.Capacity,
			Logger:   o.logg,
		}),
		Logger: o.logg,
	})
}
