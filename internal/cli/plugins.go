package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (a *app) pluginsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "Show which workspace plugins can be built",
		Long:  "Probe every workspace plugin without caching it and report whether it\ncan be built from the current workspace state.",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, err := a.ws.Probe()
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), statuses)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PLUGIN\tAVAILABLE\tCACHED")
			for _, s := range statuses {
				fmt.Fprintf(tw, "%s\t%t\t%t\n", s.Plugin, s.Available, s.Cached)
			}
			return tw.Flush()
		},
	}
}

func (a *app) idCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "id",
		Short: "Print the workspace session identity",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := useIdentity(a.ws)
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), id)
			}
			fmt.Fprintln(cmd.OutOrStdout(), id.ID)
			return nil
		},
	}
}
