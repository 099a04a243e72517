// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/rootbox/problems"
)

func newProblemsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "problems",
		Short: "List the registered benchmark problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tDIM\tROOTS\tDESCRIPTION")
			for _, p := range problems.All() {
				roots := "?"
				if p.Roots != nil {
					roots = fmt.Sprint(len(p.Roots))
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", p.Name, p.System.Dim, roots, p.Description)
			}

			return tw.Flush()
		},
	}
}
