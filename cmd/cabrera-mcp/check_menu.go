package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lacabrera/cabrera-mcp/internal/menu"
)

// newCheckMenuCmd evaluates the menu rules offline, without starting a server.
func newCheckMenuCmd() *cobra.Command {
	var (
		menuType string
		date     string
		hhmm     string
		resident bool
	)

	cmd := &cobra.Command{
		Use:   "check-menu",
		Short: "Evaluate the ejecutivo or manso menu rules for a date and time",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := menu.NewEngine(menu.DefaultRules())
			v := engine.ForKind(menu.Classify(menuType), date, hhmm, resident)

			out, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&menuType, "menu", "", "menu type, e.g. ejecutivo or manso")
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD")
	cmd.Flags().StringVar(&hhmm, "time", "", "time as HH:MM")
	cmd.Flags().BoolVar(&resident, "resident", false, "customer is an Argentine resident")
	_ = cmd.MarkFlagRequired("menu")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")
	return cmd
}
