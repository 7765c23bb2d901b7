// Package cli wires configuration, the engine and the front ends into the
// ls-astromap command.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-astromap/internal/astrocarto"
	"github.com/litescript/ls-astromap/internal/config"
	"github.com/litescript/ls-astromap/internal/ephem"
	"github.com/litescript/ls-astromap/internal/gazetteer"
	"github.com/litescript/ls-astromap/internal/logging"
	"github.com/litescript/ls-astromap/internal/version"
)

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
	ephemeris  string
	gazetteer  string
}

// app is the state built once the configuration is loaded.
type app struct {
	cfg config.Config
	log *logging.Logger
}

func newRootCmd() *cobra.Command {
	var (
		flags globalFlags
		a     = &app{}
	)

	cmd := &cobra.Command{
		Use:          "ls-astromap",
		Short:        "Astrocartography lines and relocation recommendations",
		Version:      version.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			cfg, err := loadConfig(c, flags)
			if err != nil {
				return err
			}
			format, err := logging.ParseFormat(cfg.LogFormat)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logging.NewWithFormat(logging.ParseLevel(cfg.LogLevel), format, c.ErrOrStderr())
			return nil
		},
		RunE: func(c *cobra.Command, _ []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
				return c.Help()
			}
			return a.runTUI(c.Context(), tuiOptions{})
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "config file (default ./"+config.DefaultFile+" if present)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&flags.logFormat, "log-format", "", "log format (text, json)")
	pf.StringVar(&flags.ephemeris, "ephem", "", "ephemeris model (linear, meeus)")
	pf.StringVar(&flags.gazetteer, "gazetteer", "", "city source: embedded, file:PATH, URL, postgres://DSN, sqlite:PATH or s3://BUCKET/KEY")

	cmd.AddCommand(
		chartCmd(a),
		citiesCmd(a),
		serveCmd(a),
		tuiCmd(a),
	)
	return cmd
}

// loadConfig reads the config file and environment, then applies any
// persistent flags the user set explicitly.
func loadConfig(c *cobra.Command, flags globalFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return cfg, err
	}

	pf := c.Flags()
	if pf.Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if pf.Changed("log-format") {
		cfg.LogFormat = flags.logFormat
	}
	if pf.Changed("ephem") {
		cfg.Ephemeris = flags.ephemeris
	}
	if pf.Changed("gazetteer") {
		cfg.Gazetteer.Spec = flags.gazetteer
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// catalog loads the configured gazetteer.
func (a *app) catalog(ctx context.Context) (*gazetteer.Catalog, error) {
	src, closeFn, err := a.cfg.Gazetteer.Source()
	if err != nil {
		return nil, err
	}
	defer func() { _ = closeFn() }()

	cat, err := astrocarto.LoadGazetteer(ctx, src)
	if err != nil {
		a.log.Error("gazetteer.load_failed", "source", src.Name(), "err", err)
		return nil, err
	}
	a.log.Debug("gazetteer.loaded", "source", cat.Source(), "cities", cat.Len())
	return cat, nil
}

// engine builds the calculation engine over cat.
func (a *app) engine(cat *gazetteer.Catalog) (*astrocarto.Engine, error) {
	mode, err := ephem.ParseMode(a.cfg.Ephemeris)
	if err != nil {
		return nil, err
	}
	return &astrocarto.Engine{
		Provider:  ephem.NewProvider(mode),
		Gazetteer: cat,
		Match:     a.cfg.Match,
		Logger:    a.log,
	}, nil
}

// setup loads the gazetteer and builds the engine.
func (a *app) setup(ctx context.Context) (*gazetteer.Catalog, *astrocarto.Engine, error) {
	cat, err := a.catalog(contextOrBackground(ctx))
	if err != nil {
		return nil, nil, fmt.Errorf("load gazetteer: %w", err)
	}
	eng, err := a.engine(cat)
	if err != nil {
		return nil, nil, err
	}
	return cat, eng, nil
}
