package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/extend/internal/workspace"
)

var (
	useIdentity = workspace.Use[workspace.Identity]
	useCatalog  = workspace.Use[*workspace.Catalog]
)

func (a *app) putCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "put <key> <value>",
		Short: "Create or update a catalog entry",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := useCatalog(a.ws)
			if err != nil {
				return err
			}
			id, err := catalog.Put(args[0], args[1])
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]string{"entry_id": id, "key": args[0]})
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

func (a *app) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print a catalog entry",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := useCatalog(a.ws)
			if err != nil {
				return err
			}
			e, err := catalog.Get(args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), e)
			}
			fmt.Fprintln(cmd.OutOrStdout(), e.Value)
			return nil
		},
	}
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>",
		Short: "Delete a catalog entry",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := useCatalog(a.ws)
			if err != nil {
				return err
			}
			if err := catalog.Delete(args[0]); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			return nil
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog entries",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := useCatalog(a.ws)
			if err != nil {
				return err
			}
			entries, err := catalog.List()
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				if entries == nil {
					entries = []workspace.Entry{}
				}
				return printJSON(cmd.OutOrStdout(), entries)
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", e.Key, e.Value)
			}
			return nil
		},
	}
}
