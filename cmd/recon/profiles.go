package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/recon/internal/core"
)

func newProfilesCommand(c *cli) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List the built-in reconciliation profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profiles := core.Profiles()
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(profiles)
			}

			for _, p := range profiles {
				marker := " "
				if p.Key == c.cfg.Reconcile.Profile {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-22s %s\n", marker, p.Key, p.Label)
				if p.Description != "" {
					fmt.Fprintf(out, "  %-22s %s\n", "", p.Description)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print profiles with their settings as JSON")
	return cmd
}
