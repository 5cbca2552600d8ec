package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/sanquote/internal/configstore"
	"github.com/Simplici0/sanquote/internal/pricing"
	"github.com/Simplici0/sanquote/internal/services"
)

type computeFlags struct {
	quantities map[string]string
	frequency  string
	region     string
	tier       string
	months     int
	install    bool
	dirty      bool
	trip       bool
	parking    bool
	bundle     bool
	exactArea  bool
	stored     bool
	asJSON     bool
}

func newComputeCmd(a *app) *cobra.Command {
	f := &computeFlags{}

	cmd := &cobra.Command{
		Use:   "compute <service>",
		Short: "Price one service",
		Long: `Price one service from the compiled-in defaults, or from the config stored
in the database with --stored.

Examples:
  quotectl compute restroom --qty fixtures=6 --frequency biweekly --install --dirty
  quotectl compute carpet --qty area=1300 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, ok := services.Lookup(services.ID(args[0]))
			if !ok {
				return fmt.Errorf("unknown service %q", args[0])
			}
			in, err := f.inputs()
			if err != nil {
				return err
			}

			cfg := def.Defaults()
			if f.stored {
				cfg, err = a.storedConfig(cmd.Context(), def.ID)
				if err != nil {
					a.log.Warn("using fallback config", zap.String("service", string(def.ID)), zap.Error(err))
				}
			}

			out := def.Compute(in, cfg)
			if f.asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			printOutputs(cmd.OutOrStdout(), def, cfg.Version, out)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringToStringVarP(&f.quantities, "qty", "q", nil, "quantities as item=value (repeatable)")
	fl.StringVarP(&f.frequency, "frequency", "f", "", "visit frequency")
	fl.StringVar(&f.region, "region", "", "service region (inside, outside)")
	fl.StringVar(&f.tier, "tier", "", "pricing tier (standard, premium)")
	fl.IntVar(&f.months, "months", 0, "contract months")
	fl.BoolVar(&f.install, "install", false, "include installation")
	fl.BoolVar(&f.dirty, "dirty", false, "site needs an elevated install")
	fl.BoolVar(&f.trip, "trip", false, "add the trip charge")
	fl.BoolVar(&f.parking, "parking", false, "add the parking fee")
	fl.BoolVar(&f.bundle, "bundle", false, "bundle twice-monthly visits")
	fl.BoolVar(&f.exactArea, "exact-area", false, "price area proportionally instead of by block")
	fl.BoolVar(&f.stored, "stored", false, "price with the config stored in the database")
	fl.BoolVar(&f.asJSON, "json", false, "print outputs as JSON")
	return cmd
}

func (f *computeFlags) inputs() (services.Inputs, error) {
	in := services.Inputs{
		Quantities:     make(map[string]float64, len(f.quantities)),
		Frequency:      pricing.Frequency(f.frequency),
		Install:        f.install,
		Dirty:          f.dirty,
		TripCharge:     f.trip,
		Parking:        f.parking,
		Bundle:         f.bundle,
		ExactArea:      f.exactArea,
		Region:         pricing.Region(f.region),
		Tier:           pricing.Tier(f.tier),
		ContractMonths: f.months,
	}
	for name, raw := range f.quantities {
		v, err := cast.ToFloat64E(strings.TrimSpace(raw))
		if err != nil {
			return services.Inputs{}, fmt.Errorf("quantity %s: %q is not a number", name, raw)
		}
		in.Quantities[name] = pricing.Sanitize(v)
	}
	return in, nil
}

func (a *app) storedConfig(ctx context.Context, id services.ID) (pricing.Config, error) {
	database, err := a.open()
	if err != nil {
		def, _ := services.Lookup(id)
		return def.Defaults(), err
	}
	defer database.Close()

	provider := configstore.NewProvider(configstore.NewSQLSource(database), configstore.Options{Logger: a.log})
	return provider.Load(ctx, id)
}

func printOutputs(w io.Writer, def *services.Definition, version string, out services.Outputs) {
	fmt.Fprintf(w, "%s (%s, %s, %d months, config %s)\n", def.Name, out.Frequency, out.Region, out.ContractMonths, version)
	for _, li := range out.Lines {
		mark := ""
		if li.MinimumApplied {
			mark = "  minimum"
		}
		fmt.Fprintf(w, "  %-16s %8s  $%10s%s\n", li.Name, humanize.Ftoa(li.Quantity), money(li.Applied), mark)
	}
	rows := []struct {
		label string
		v     float64
	}{
		{"per visit", out.PerVisit},
		{"first visit", out.FirstVisit},
		{"monthly", out.MonthlyTotal},
		{"installation", out.InstallFee},
		{"first period", out.FirstPeriod},
		{"contract", out.ContractTotal},
		{"annual", out.AnnualTotal},
		{"avg visit", pricing.PerVisitFromAnnual(out.AnnualTotal, out.VisitsPerYear)},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%-14s $%s\n", r.label, money(r.v))
	}
	fmt.Fprintf(w, "%-14s %s\n", "visits", humanize.Ftoa(out.TotalVisits))
}

func money(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}
