package cli

import (
	"time"

	"github.com/spf13/cobra"
)

func newExecCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "exec <query>...",
		Aliases: []string{"bajar"},
		Short:   "Run one or more queries and exit",
		Example: `  uzdb exec "TANLASH * JADVALDAN users"
  uzdb --memory exec "CREATE TABLE t (id INTEGER)" "INSERT INTO t (id) VALUES (1)" "SELECT * FROM t"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.start(cmd.Context(), nil); err != nil {
				return err
			}
			for _, q := range args {
				if err := a.runQuery(q); err != nil {
					return &shownError{err: err}
				}
			}
			return nil
		},
	}
}

// runQuery executes one query and prints the result or the error.
func (a *app) runQuery(query string) error {
	start := time.Now()
	res, err := a.eng.Execute(query)
	if err != nil {
		a.printError(err)
		return err
	}
	a.printResult(res, time.Since(start))
	return nil
}
