package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/visualencer/pkg/buildinfo"
	"github.com/matzehuels/visualencer/pkg/compiler/nodes"
)

// versionCommand prints build information and the node catalog size.
func (c *CLI) versionCommand() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(w, buildinfo.Version)
				return nil
			}
			reg := nodes.NewRegistry()
			fmt.Fprintln(w, buildinfo.String())
			fmt.Fprintf(w, "node types: %d (%d families)\n", reg.Len(), len(reg.Families()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print only the version number")
	return cmd
}
