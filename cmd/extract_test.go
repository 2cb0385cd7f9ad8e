package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeExport(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runExtractCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ROSTER_CONFIG_DIR", t.TempDir())
	extractOutput = ""
	cmd := NewExtractCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNewExtractCommand(t *testing.T) {
	cmd := NewExtractCommand()
	require.NotNil(t, cmd)
	assert.True(t, strings.HasPrefix(cmd.Use, "extract"))
	assert.NotNil(t, cmd.Flags().Lookup("output"))
}

func TestExtract_InlineRoster(t *testing.T) {
	dir := t.TempDir()
	path := writeExport(t, dir, "chat.json", `{
		"export_date": "2024-01-01T00:00:00Z",
		"messages": [
			{"from": "Alice Smith", "from_id": 1, "username": "alice_s", "text": "hi @bobby"},
			{"username": "bobby", "text": "hello"}
		]
	}`)

	out, err := runExtractCommand(t, path)
	require.NoError(t, err)
	assert.Contains(t, out, "Processed 1 file(s), 0 failed: 2 participant(s), 1 mention(s).")
	assert.Contains(t, out, "@alice_s")
	assert.Contains(t, out, "@bobby")
}

func TestExtract_EmptyRoster(t *testing.T) {
	dir := t.TempDir()
	path := writeExport(t, dir, "empty.json", `{"messages": []}`)

	out, err := runExtractCommand(t, path)
	require.NoError(t, err)
	assert.Contains(t, out, "No participants found in the export.")
}

func TestExtract_SpreadsheetRoster(t *testing.T) {
	dir := t.TempDir()

	var msgs []string
	for i := 0; i < 60; i++ {
		msgs = append(msgs, fmt.Sprintf(`{"from": "User%03d Test", "text": ""}`, i))
	}
	path := writeExport(t, dir, "big.json", `{"messages": [`+strings.Join(msgs, ",")+`]}`)
	output := filepath.Join(dir, "roster.xlsx")

	out, err := runExtractCommand(t, path, "--output", output)
	require.NoError(t, err)
	assert.Contains(t, out, "Found 60 participants")
	assert.Contains(t, out, output)

	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}

func TestExtract_UnsupportedSuffix(t *testing.T) {
	dir := t.TempDir()
	path := writeExport(t, dir, "notes.txt", "plain text")

	_, err := runExtractCommand(t, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notes.txt")
}

func TestExtract_MissingFile(t *testing.T) {
	_, err := runExtractCommand(t, filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}
