package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/extend/pkg/extend"
)

const modulePath = "github.com/mesh-intelligence/extend"

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the extend version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "extend v%s\nmodule: %s\n", extend.Version, modulePath)
			return nil
		},
	}
}
