// Package export writes the task board in portable formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/idilsaglam/focustasks/internal/model"
)

// Formats lists the supported format names.
var Formats = []string{"json", "csv", "md", "pdf"}

type document struct {
	Active  []model.Task `json:"active"`
	Done    []model.Task `json:"done"`
	Summary summaryDoc   `json:"summary"`
}

type summaryDoc struct {
	Active int    `json:"active"`
	Done   int    `json:"done"`
	Pct    string `json:"pct"`
}

// Write renders tasks to w in format.
func Write(w io.Writer, tasks []model.Task, format string) error {
	active, done := model.Partition(tasks)
	s := model.Summarize(tasks)

	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(document{
			Active:  active,
			Done:    done,
			Summary: summaryDoc{Active: s.Active, Done: s.Done, Pct: s.Pct},
		})
	case "csv":
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"id", "title", "done"})
		for _, t := range append(active, done...) {
			_ = cw.Write([]string{t.ID, t.Title, strconv.FormatBool(t.Done)})
		}
		cw.Flush()
		return cw.Error()
	case "md":
		return writeMarkdown(w, active, done, s)
	case "pdf":
		return writePDF(w, active, done, s)
	default:
		return fmt.Errorf("unknown format %s (want %s)", format, strings.Join(Formats, ", "))
	}
}

func writeMarkdown(w io.Writer, active, done []model.Task, s model.Summary) error {
	var b strings.Builder
	b.WriteString("# FocusTasks\n\n")
	section := func(name, box string, group []model.Task) {
		fmt.Fprintf(&b, "## %s (%d)\n\n", name, len(group))
		for _, t := range group {
			fmt.Fprintf(&b, "- [%s] %s\n", box, escapeMarkdown(t.Title))
		}
		b.WriteString("\n")
	}
	section("Active", " ", active)
	section("Done", "x", done)
	b.WriteString(s.String() + "\n")
	_, err := io.WriteString(w, b.String())
	return err
}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "[", `\[`, "]", `\]`,
	"<", "&lt;", ">", "&gt;", "\n", " ", "\r", " ",
)

func escapeMarkdown(s string) string { return mdEscaper.Replace(s) }

func writePDF(w io.Writer, active, done []model.Task, s model.Summary) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "FocusTasks")
	pdf.Ln(12)

	section := func(name, box string, group []model.Task) {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(40, 8, fmt.Sprintf("%s (%d)", name, len(group)))
		pdf.Ln(9)
		pdf.SetFont("Arial", "", 10)
		for _, t := range group {
			pdf.MultiCell(0, 6, tr(box+" "+t.Title), "0", "L", false)
		}
		pdf.Ln(4)
	}
	section("Active", "[ ]", active)
	section("Done", "[x]", done)

	pdf.SetFont("Arial", "I", 10)
	line := fmt.Sprintf("Active: %d - Done: %d - Done %%: %s%%", s.Active, s.Done, s.Pct)
	pdf.Cell(0, 6, line)
	return pdf.Output(w)
}
