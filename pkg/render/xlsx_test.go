package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rosterbot/rosterbot/pkg/export"
)

func TestWorkbookBytes_HeaderAndRows(t *testing.T) {
	rows := []export.ParticipantRecord{
		{ExportDate: "2024-01-01T00:00:00Z", Username: "alice99", FirstName: "Alice", LastName: "Smith", Bio: "N/A"},
		{ExportDate: "2024-01-01T00:00:00Z", FirstName: "Bob", Bio: "N/A"},
	}

	data, err := WorkbookBytes(rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("users")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, []string{"export_date", "username", "first_name", "last_name", "bio"}, got[0])
	assert.Equal(t, []string{"2024-01-01T00:00:00Z", "alice99", "Alice", "Smith", "N/A"}, got[1])
	assert.Equal(t, "Bob", got[2][2])
}

func TestPresent_SixtyAuthorsWithoutUsernames(t *testing.T) {
	plan, err := Present(aggregateOf(60))
	require.NoError(t, err)
	require.Equal(t, ModeSpreadsheet, plan.Mode)

	f, err := excelize.OpenReader(bytes.NewReader(plan.Workbook))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("users")
	require.NoError(t, err)
	require.Len(t, rows, 61, "header plus 60 data rows")

	for i, row := range rows[1:] {
		require.Len(t, row, 5, "data row %d", i+1)
		assert.Empty(t, row[1], "username cell must be empty in row %d", i+1)
		assert.Equal(t, "N/A", row[4], "bio cell in row %d", i+1)
	}
}
