package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lattice-ui/lattice/internal/demo"
	"github.com/lattice-ui/lattice/pkg/render"
	"github.com/lattice-ui/lattice/pkg/vdom"
)

func renderCmd() *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "render [path]",
		Short: "Render a demo page to stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/"
			if len(args) == 1 {
				path = args[0]
			}

			pages := demo.StaticPages()
			root, ok := pages[path]
			if !ok {
				return fmt.Errorf("lattice: no page at %q", path)
			}

			node, err := render.Render(root, render.Options{
				Target:            vdom.TargetServer,
				IgnoreStateChange: true,
			})
			if err != nil {
				return err
			}
			html, err := render.NewRenderer(render.Config{Pretty: pretty}).RenderToString(node)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), html)
			return nil
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", true, "indent output")

	return cmd
}
