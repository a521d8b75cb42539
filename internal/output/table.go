package output

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

// Check states shown by [ChecksTable].
const (
	CheckEnabled  = "enabled"
	CheckDisabled = "disabled"
	CheckInvalid  = "invalid"
)

// CheckRow is one configured check in a listing.
type CheckRow struct {
	Hook    string
	Check   string
	State   string // CheckEnabled, CheckDisabled or CheckInvalid
	Command string // for invalid checks, the configuration error
	Include []string
}

var checkHeaders = []string{"HOOK", "CHECK", "STATE", "COMMAND", "INCLUDE"}

const stateCol = 2

// ChecksTable renders configured checks as a borderless, column-aligned
// table. Disabled checks are dimmed and the state column is coloured.
// Returns "" for no rows.
func ChecksTable(rows []CheckRow) string {
	if len(rows) == 0 {
		return ""
	}

	cells := make([][]string, len(rows))
	for i, r := range rows {
		include := "*"
		if len(r.Include) > 0 {
			include = strings.Join(r.Include, ", ")
		}
		cells[i] = []string{r.Hook, r.Check, r.State, r.Command, include}
	}

	cell := lipgloss.NewStyle().PaddingRight(2)
	t := table.New().
		Headers(checkHeaders...).
		Rows(cells...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return boldStyle.PaddingRight(2)
			}
			switch state := rows[row].State; {
			case col == stateCol && state == CheckEnabled:
				return cell.Foreground(colorSuccess)
			case col == stateCol && state == CheckInvalid:
				return cell.Foreground(colorError)
			case state == CheckDisabled:
				return cell.Foreground(colorMuted)
			}
			return cell
		})

	return t.String() + "\n"
}
