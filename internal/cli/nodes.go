package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/visualencer/pkg/compiler"
	"github.com/matzehuels/visualencer/pkg/compiler/nodes"
)

// nodesCommand creates the node catalog command.
func (c *CLI) nodesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nodes",
		Short: "Inspect the node type catalog",
	}

	cmd.AddCommand(c.nodesListCommand())
	cmd.AddCommand(c.nodesShowCommand())
	cmd.AddCommand(c.nodesBrowseCommand())

	return cmd
}

// catalogFilter selects descriptors by role, family and category.
type catalogFilter struct {
	role     string
	family   string
	category string
}

func (f catalogFilter) match(d compiler.Descriptor) bool {
	if f.role != "" && string(d.Role) != f.role {
		return false
	}
	if f.category != "" && d.Category != f.category {
		return false
	}
	if f.family != "" && d.Family != f.family && !d.Accepts(f.family) {
		return false
	}
	return true
}

func (f catalogFilter) apply(reg *compiler.Registry) []compiler.Descriptor {
	var out []compiler.Descriptor
	for _, d := range reg.Descriptors() {
		if f.match(d) {
			out = append(out, d)
		}
	}
	return out
}

// nodesListCommand creates the "nodes list" subcommand.
func (c *CLI) nodesListCommand() *cobra.Command {
	var filter catalogFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List node types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds := filter.apply(nodes.NewRegistry())
			if len(ds) == 0 {
				printInfo("No node types match")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderCatalogTable(ds))
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.role, "role", "", "filter by role: root, child, utility")
	cmd.Flags().StringVar(&filter.family, "family", "", "filter by family (roots anchoring it, children valid under it)")
	cmd.Flags().StringVar(&filter.category, "category", "", "filter by category")

	return cmd
}

// renderCatalogTable renders descriptors as a bordered table.
func renderCatalogTable(ds []compiler.Descriptor) string {
	rows := make([][]string, len(ds))
	for i, d := range ds {
		rows[i] = []string{d.Type, d.Label, string(d.Role), familyColumn(d), d.Category}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Type", "Label", "Role", "Family", "Category").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			switch col {
			case 0:
				return lipgloss.NewStyle().Foreground(colorCyan)
			case 2:
				if ds[row].Role == compiler.RoleRoot {
					return lipgloss.NewStyle().Foreground(colorGreen)
				}
				return lipgloss.NewStyle().Foreground(colorGray)
			default:
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
		})
	return t.Render()
}

// familyColumn is the family a root anchors, or the families a child
// accepts.
func familyColumn(d compiler.Descriptor) string {
	switch d.Role {
	case compiler.RoleRoot:
		return d.Family
	case compiler.RoleChild:
		return strings.Join(d.Families, ", ")
	default:
		return "—"
	}
}

// nodesShowCommand creates the "nodes show" subcommand.
func (c *CLI) nodesShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [type]",
		Short: "Show a node type's fields and defaults",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return nodes.NewRegistry().Types(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := nodes.NewRegistry().Lookup(args[0])
			if err != nil {
				return err
			}
			writeDescriptor(cmd.OutOrStdout(), d)
			return nil
		},
	}
}

// writeDescriptor prints a descriptor's summary and fields.
func writeDescriptor(w io.Writer, d compiler.Descriptor) {
	fmt.Fprintln(w, StyleTitle.Render(d.Label)+" "+StyleDim.Render("("+d.Type+")"))
	if d.Description != "" {
		fmt.Fprintln(w, StyleDim.Render(d.Description))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, keyValue("role", string(d.Role)))
	fmt.Fprintln(w, keyValue("category", d.Category))
	if fam := familyColumn(d); fam != "—" {
		fmt.Fprintln(w, keyValue("family", fam))
	}
	if len(d.Fields) == 0 {
		return
	}

	fmt.Fprintln(w)
	defaults := d.DefaultConfig()
	for _, f := range d.Fields {
		line := StyleHighlight.Render(fmt.Sprintf("%-18s", f.Name)) + " " + StyleDim.Render(fmt.Sprintf("%-7s", f.Kind))
		if v, ok := defaults[f.Name]; ok {
			line += " " + StyleValue.Render(fmt.Sprintf("%v", v))
		}
		if len(f.Options) > 0 {
			line += " " + StyleDim.Render("["+strings.Join(f.Options, "|")+"]")
		}
		fmt.Fprintln(w, "  "+line)
	}
}

// nodesBrowseCommand creates the interactive "nodes browse" subcommand.
func (c *CLI) nodesBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Interactively browse the node catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds := nodes.NewRegistry().Descriptors()
			sort.SliceStable(ds, func(i, j int) bool { return roleRank(ds[i].Role) < roleRank(ds[j].Role) })

			p := tea.NewProgram(NewCatalogModel(ds), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return err
			}
			if m, ok := final.(CatalogModel); ok && m.Selected != nil {
				writeDescriptor(cmd.OutOrStdout(), *m.Selected)
			}
			return nil
		},
	}
}

func roleRank(r compiler.Role) int {
	switch r {
	case compiler.RoleRoot:
		return 0
	case compiler.RoleChild:
		return 1
	default:
		return 2
	}
}
