package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/focustasks/internal/model"
)

// ProgressBar renders a bar with the done percentage.
func ProgressBar(s model.Summary, width int) string {
	t := Current()
	if width < 5 {
		width = 5
	}
	total := s.Total()
	filled := 0
	if total > 0 {
		filled = s.Done * width / total
	}
	bar := strings.Repeat(t.BarFull, filled) + strings.Repeat(t.BarEmpty, width-filled)
	return fmt.Sprintf("%s %s%%", t.Success.Render(bar), s.Pct)
}

// PanelString frames inner in the current theme's border.
func PanelString(inner string) string {
	t := Current()
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(inner)
}

// Panel writes lines inside a framed box.
func Panel(w io.Writer, lines []string) {
	fmt.Fprintln(w, PanelString(strings.Join(lines, "\n")))
}

// TaskLine renders one task with its checkbox.
func TaskLine(task model.Task) string {
	t := Current()
	title := Sanitize(task.Title)
	if task.Done {
		return t.Success.Render(t.BoxChecked) + " " + t.DoneText.Render(title)
	}
	return t.Muted.Render(t.BoxUnchecked) + " " + title
}

// Board returns the Active and Done sections followed by the summary.
// Positions are 1-based over the active-then-done order, the same order
// PositionID resolves.
func Board(tasks []model.Task) []string { return board(tasks, "", false) }

// BoardCursor is Board with a cursor column; the row of selectedID is
// marked.
func BoardCursor(tasks []model.Task, selectedID string) []string {
	return board(tasks, selectedID, true)
}

func board(tasks []model.Task, selectedID string, cursor bool) []string {
	t := Current()
	active, done := model.Partition(tasks)
	s := model.Summarize(tasks)

	lines := make([]string, 0, len(tasks)+6)
	pos := 1
	section := func(name string, style lipgloss.Style, group []model.Task) {
		lines = append(lines, style.Render(fmt.Sprintf("%s (%d)", name, len(group))))
		if len(group) == 0 {
			lines = append(lines, t.Muted.Render("  nothing here"))
		}
		for _, task := range group {
			row := fmt.Sprintf("%s %s  %s",
				t.Muted.Render(fmt.Sprintf("%2d.", pos)), TaskLine(task), t.Muted.Render(task.ID))
			if cursor {
				mark := "  "
				if task.ID == selectedID {
					mark = t.Selected.Render(">") + " "
				}
				row = mark + row
			}
			lines = append(lines, row)
			pos++
		}
	}
	section("Active", t.Pending, active)
	lines = append(lines, "")
	section("Done", t.Success, done)
	lines = append(lines, "", ProgressBar(s, 20), t.Accent.Render(s.String()))
	return lines
}

// RenderBoard writes Board inside a panel.
func RenderBoard(w io.Writer, tasks []model.Task) {
	Panel(w, append([]string{Current().Title.Render("FocusTasks")}, Board(tasks)...))
}

// DisplayOrder returns tasks in the order Board numbers them.
func DisplayOrder(tasks []model.Task) []model.Task {
	active, done := model.Partition(tasks)
	return append(active, done...)
}

// PositionID maps a 1-based board position to a task id.
func PositionID(tasks []model.Task, pos int) (string, bool) {
	ordered := DisplayOrder(tasks)
	if pos < 1 || pos > len(ordered) {
		return "", false
	}
	return ordered[pos-1].ID, true
}
