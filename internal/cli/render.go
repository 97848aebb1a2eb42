package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/engine"
	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/sql"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
)

// renderRows draws rows as a bordered table with one column per name.
func renderRows(cols []string, rows []sql.Row) string {
	if len(rows) == 0 {
		return mutedStyle.Render("   (empty)")
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(cols...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, r := range rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			if v, ok := r[c]; ok {
				cells[i] = v.String()
			}
		}
		t.Row(cells...)
	}
	return t.String()
}

func (a *app) printResult(res *engine.Result, elapsed time.Duration) {
	if res.Kind == engine.ResultRows {
		fmt.Fprintln(a.out, renderRows(res.Columns, res.Rows))
		status := fmt.Sprintf("   %d row(s) (%.3fs)", len(res.Rows), elapsed.Seconds())
		if res.Stats.Skipped > 0 {
			status += fmt.Sprintf(", %d unreadable row(s) skipped", res.Stats.Skipped)
		}
		fmt.Fprintln(a.out, okStyle.Render(status))
		return
	}
	fmt.Fprintln(a.out, okStyle.Render(fmt.Sprintf("   %s (%.3fs)", res.Message, elapsed.Seconds())))
}

func (a *app) printError(err error) {
	fmt.Fprintln(a.out, errorStyle.Render("   Xato: "+err.Error()))
}

// describeSchema formats a schema the way CREATE TABLE spells it.
func describeSchema(s *sql.TableSchema) string {
	parts := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		p := c.Name + " " + c.Type.String()
		if c.PrimaryKey {
			p += " PRIMARY KEY"
		}
		if c.NotNull {
			p += " NOT NULL"
		}
		if c.Unique {
			p += " UNIQUE"
		}
		parts[i] = p
	}
	return s.Name + " (" + strings.Join(parts, ", ") + ")"
}
