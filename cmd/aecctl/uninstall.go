package main

import (
	"fmt"

	"github.com/admin-edit-comment/internal/service"
	"github.com/spf13/cobra"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the comment box settings from every site",
	Long: `Remove the enabled content types option from every site.

Comments already stored are left in place.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		services := service.NewServices(repos, cfg, log)

		removed, err := services.Settings.Uninstall(cmd.Context())
		if err != nil {
			return fmt.Errorf("uninstall incomplete after %d sites: %w", removed, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Removed settings from %d site(s)\n", removed)
		return nil
	},
}
