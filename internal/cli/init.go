package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/extend/internal/workspace"
	"github.com/mesh-intelligence/extend/pkg/plugin"
)

func (a *app) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the workspace",
		Long:  "Create the configuration and data directories, write config.yaml if missing,\nthen create the catalog database.",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ws.Init(); err != nil {
				return err
			}
			layout, _ := plugin.Get[workspace.Layout](a.ws)
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), layout)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Workspace initialized\nconfig: %s\ndata:   %s\n", layout.ConfigDir, layout.DataDir)
			return nil
		},
	}
}
