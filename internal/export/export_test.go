package export_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/focustasks/internal/export"
	"github.com/idilsaglam/focustasks/internal/model"
)

var sample = []model.Task{
	{ID: "1", Title: "Write report", Done: true},
	{ID: "2", Title: "Review *PR*"},
	{ID: "3", Title: "Plan, sprint"},
}

func Test_Write_JSON_Has_Partitions_And_Summary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, sample, "json"))

	var doc struct {
		Active  []model.Task `json:"active"`
		Done    []model.Task `json:"done"`
		Summary struct {
			Active int    `json:"active"`
			Done   int    `json:"done"`
			Pct    string `json:"pct"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Len(t, doc.Active, 2)
	assert.Len(t, doc.Done, 1)
	assert.Equal(t, 2, doc.Summary.Active)
	assert.Equal(t, 1, doc.Summary.Done)
	assert.Equal(t, "33.3", doc.Summary.Pct)
}

func Test_Write_CSV_Lists_Active_First(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, sample, "CSV"))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"id", "title", "done"},
		{"2", "Review *PR*", "false"},
		{"3", "Plan, sprint", "false"},
		{"1", "Write report", "true"},
	}, rows)
}

func Test_Write_Markdown_Escapes_Titles(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, sample, "md"))

	out := buf.String()
	assert.Contains(t, out, "## Active (2)")
	assert.Contains(t, out, `- [ ] Review \*PR\*`)
	assert.Contains(t, out, "- [x] Write report")
	assert.Contains(t, out, "Active: 2 · Done: 1 · Done %: 33.3%")
}

func Test_Write_PDF_Produces_Document(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, sample, "pdf"))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func Test_Write_Rejects_Unknown_Format(t *testing.T) {
	t.Parallel()

	err := export.Write(&bytes.Buffer{}, sample, "xml")
	require.ErrorContains(t, err, "unknown format")
}
