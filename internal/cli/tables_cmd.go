package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTablesCmd(a *app) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:     "tables",
		Aliases: []string{"jadvallar"},
		Short:   "List tables",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.start(cmd.Context(), nil); err != nil {
				return err
			}
			return a.printTables(verbose)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show column definitions")
	return cmd
}

func (a *app) printTables(verbose bool) error {
	names, err := a.eng.ListTables()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(a.out, mutedStyle.Render("   (no tables)"))
		return nil
	}
	for _, name := range names {
		if !verbose {
			fmt.Fprintf(a.out, "   • %s\n", name)
			continue
		}
		schema, err := a.eng.TableSchema(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "   • %s\n", describeSchema(schema))
	}
	return nil
}
