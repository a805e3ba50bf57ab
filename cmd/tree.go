package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vcrobe/vtree/appcomponents"
	"github.com/vcrobe/vtree/console"
	"github.com/vcrobe/vtree/ssr"
	"github.com/vcrobe/vtree/vdom"
)

func newTreeCommand(opts *rootOptions) *cobra.Command {
	var blueprint bool
	cmd := &cobra.Command{
		Use:   "tree [path]",
		Short: "Print the node tree of a route.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/"
			if len(args) == 1 {
				path = args[0]
			}
			app := appcomponents.New(nil)
			node, err := app.Routes().Resolve(path)
			if err != nil {
				return fmt.Errorf("tree %s: %w", path, err)
			}
			out := vdom.Dump(node)
			if blueprint {
				r := ssr.NewRenderer(console.Logger())
				out = ssr.DumpBlueprint(r.CreateBlueprint(node, app.Context(), nil))
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().BoolVar(&blueprint, "blueprint", false, "print the rendered blueprint, with components expanded")
	return cmd
}
