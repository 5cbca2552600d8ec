package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Simplici0/sanquote/internal/configstore"
	"github.com/Simplici0/sanquote/internal/services"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect service configs",
	}

	var defaults bool
	show := &cobra.Command{
		Use:   "show <service>",
		Short: "Print the effective config of a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, ok := services.Lookup(services.ID(args[0]))
			if !ok {
				return fmt.Errorf("unknown service %q", args[0])
			}
			if defaults {
				doc, err := configstore.DefaultDocument(def)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", doc)
				return err
			}

			cfg, err := a.storedConfig(cmd.Context(), def.ID)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		},
	}
	show.Flags().BoolVar(&defaults, "default", false, "print the compiled-in defaults")

	cmd.AddCommand(show)
	return cmd
}
