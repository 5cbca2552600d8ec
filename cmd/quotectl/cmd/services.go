package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Simplici0/sanquote/internal/services"
)

func newServicesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "List the service catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, def := range services.All() {
				cfg := def.Defaults()
				freqs := make([]string, 0, len(cfg.AllowedFrequencies))
				for _, f := range cfg.AllowedFrequencies {
					freqs = append(freqs, string(f))
				}
				annual := "monthly"
				if def.Annual() == services.AnnualFromContract {
					annual = "contract"
				}
				fmt.Fprintf(out, "%-14s %s\n", def.ID, def.Name)
				fmt.Fprintf(out, "  items:       %s\n", strings.Join(def.Items, ", "))
				fmt.Fprintf(out, "  frequencies: %s (default %s)\n", strings.Join(freqs, ", "), cfg.DefaultFrequency)
				fmt.Fprintf(out, "  annual:      %s\n", annual)
			}
			return nil
		},
	}
}
