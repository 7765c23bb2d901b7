package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-astromap/internal/astrocarto"
	"github.com/litescript/ls-astromap/internal/state"
	"github.com/litescript/ls-astromap/internal/ui"
)

// tuiOptions prefill the form. When all three are set the first chart is
// computed before the interface opens.
type tuiOptions struct {
	date  string
	clock string
	place string
}

func (o tuiOptions) complete() bool {
	return o.date != "" && o.clock != "" && o.place != ""
}

func tuiCmd(a *app) *cobra.Command {
	var opts tuiOptions

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive map",
		RunE: func(c *cobra.Command, _ []string) error {
			return a.runTUI(c.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.date, "date", "d", "", "birth date, YYYY-MM-DD")
	cmd.Flags().StringVarP(&opts.clock, "time", "t", "", "birth time, HH:MM")
	cmd.Flags().StringVarP(&opts.place, "place", "p", "", "birth place")
	return cmd
}

func (a *app) runTUI(ctx context.Context, opts tuiOptions) error {
	m, err := a.newTUIModel(ctx, opts)
	if err != nil {
		return err
	}
	return ui.Run(m)
}

// newTUIModel builds the root model, computing the first chart when the
// options name a known place.
func (a *app) newTUIModel(ctx context.Context, opts tuiOptions) (ui.Model, error) {
	cat, eng, err := a.setup(ctx)
	if err != nil {
		return ui.Model{}, err
	}

	mgr := state.NewManager(state.DefaultConfig())
	if opts.complete() {
		if city, ok := cat.Lookup(opts.place); ok {
			start := time.Now()
			res, err := eng.Calculate(astrocarto.BirthData{
				Date: opts.date,
				Time: opts.clock,
				Location: astrocarto.Location{
					Name: city.Name, Lat: city.Lat, Lon: city.Lon, Timezone: city.TZ,
				},
			})
			mgr.Update(res, time.Since(start), err)
		}
	}

	return ui.New(mgr, eng, cat).Prefill(opts.date, opts.clock, opts.place), nil
}
