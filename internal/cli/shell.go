package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const banner = `
╔═══════════════════════════════════════════════════════════╗
║      UZDB - O'ZBEKCHA DATABASE ENGINE                     ║
║      .yordam - help  |  .chiqish - quit                   ║
╚═══════════════════════════════════════════════════════════╝
`

const helpText = `QUERIES:
  TANLASH * JADVALDAN jadval
  TANLASH ustun1, ustun2 JADVALDAN jadval QAYERDA shart TARTIBLA ustun KAMAYISH CHEGARA n
  QO'SH ICHIGA jadval (ustunlar) QIYMATLAR (qiymatlar)
  YANGILASH jadval BELGILASH ustun = qiymat QAYERDA shart
  O'CHIR jadval QAYERDA shart
  JADVAL_YARAT jadval (ustun TUR CHEKLOV, ...)

  English keywords work too: SELECT, FROM, WHERE, ORDER BY, LIMIT,
  INSERT INTO, VALUES, UPDATE, SET, DELETE, CREATE TABLE.

SHELL:
  .tables  .jadvallar  .j    list tables
  .help    .yordam     .y    show this help
  .quit    .chiqish    .q    leave the shell`

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "shell",
		Aliases: []string{"qobiq"},
		Short:   "Start the interactive shell",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runShell(cmd.Context())
		},
	}
}

// runShell reads one statement per line until EOF or a quit command.
// The banner and prompt are only printed when stdin is a terminal.
func (a *app) runShell(ctx context.Context) error {
	if err := a.start(ctx, nil); err != nil {
		return err
	}

	interactive := isTerminal(a.in)
	if interactive {
		fmt.Fprint(a.out, banner+"\n")
	}

	sc := bufio.NewScanner(a.in)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for {
		if interactive {
			fmt.Fprint(a.out, promptStyle.Render("uzdb")+"> ")
		}
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		if strings.HasPrefix(line, ".") {
			if quit := a.dotCommand(line); quit {
				break
			}
			continue
		}
		// Errors are printed and the session goes on.
		_ = a.runQuery(line)
	}

	if interactive {
		fmt.Fprintln(a.out, "\nXayr!")
	}
	return sc.Err()
}

// dotCommand handles a shell command and reports whether to quit.
func (a *app) dotCommand(cmd string) bool {
	switch strings.Fields(cmd)[0] {
	case ".quit", ".chiqish", ".q":
		return true
	case ".help", ".yordam", ".y":
		fmt.Fprintln(a.out, helpText)
	case ".tables", ".jadvallar", ".j":
		if err := a.printTables(false); err != nil {
			a.printError(err)
		}
	default:
		fmt.Fprintf(a.out, "   unknown command: %s (try .help)\n", cmd)
	}
	return false
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
