package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/visualencer/pkg/graph"
	"github.com/matzehuels/visualencer/pkg/storage"
)

// graphsCommand creates the graph store command. The store is MongoDB
// when [mongo] uri is configured, otherwise a local directory.
func (c *CLI) graphsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graphs",
		Short: "Manage stored graphs",
	}

	cmd.AddCommand(c.graphsListCommand())
	cmd.AddCommand(c.graphsGetCommand())
	cmd.AddCommand(c.graphsPutCommand())
	cmd.AddCommand(c.graphsDeleteCommand())

	return cmd
}

// withStore opens the configured store for the duration of fn.
func (c *CLI) withStore(cmd *cobra.Command, fn func(storage.Store) error) error {
	store, err := c.newStore(cmd.Context())
	if err != nil {
		return fmt.Errorf("open graph store: %w", err)
	}
	defer store.Close()
	return fn(store)
}

// graphsListCommand creates the "graphs list" subcommand.
func (c *CLI) graphsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored graphs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(store storage.Store) error {
				infos, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(infos) == 0 {
					printInfo("No stored graphs")
					return nil
				}
				for _, info := range infos {
					fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n",
						StyleHighlight.Render(fmt.Sprintf("%-24s", info.Name)),
						StyleDim.Render(fmt.Sprintf("%d nodes · %s", info.Nodes, info.UpdatedAt.Format("Jan 2 15:04"))))
				}
				return nil
			})
		},
	}
}

// graphsGetCommand creates the "graphs get" subcommand.
func (c *CLI) graphsGetCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get [name]",
		Short: "Print or export a stored graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(store storage.Store) error {
				doc, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if output == "" {
					return graph.Write(doc, cmd.OutOrStdout(), graph.FormatJSON)
				}
				if err := graph.WriteFile(doc, output); err != nil {
					return err
				}
				printSuccess("Exported %s", args[0])
				printFile(output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file; format from extension (default stdout JSON)")
	return cmd
}

// graphsPutCommand creates the "graphs put" subcommand.
func (c *CLI) graphsPutCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "put [graph-file]",
		Short: "Store a graph file under a name",
		Long: `Store a graph file under a name. The name defaults to the file's base
name without extension. An existing graph with the same name is replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := graph.ReadFile(args[0])
			if err != nil {
				return err
			}
			if name == "" {
				base := filepath.Base(args[0])
				name = strings.TrimSuffix(base, filepath.Ext(base))
			}
			return c.withStore(cmd, func(store storage.Store) error {
				if err := store.Put(cmd.Context(), name, doc); err != nil {
					return err
				}
				printSuccess("Stored %s", StyleHighlight.Render(name))
				printDetail("%d nodes", len(doc.Nodes))
				printNextStep("Export it", appName+" graphs get "+name+" -o "+name+".yaml")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "graph name (default file base name)")
	return cmd
}

// graphsDeleteCommand creates the "graphs delete" subcommand.
func (c *CLI) graphsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete [name]",
		Aliases: []string{"rm"},
		Short:   "Delete a stored graph",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(store storage.Store) error {
				if err := store.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				printSuccess("Deleted %s", args[0])
				return nil
			})
		},
	}
}
