package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `[
  {"title":"dropper","observable_composition":{"title":"","operator":"OR","observables":[
    {"title":"a","object":{"definition":{"name":"domain"},"attributes":[{"value":"evil.test","ioc":1}],"related_objects":[]}},
    {"title":"b","object":{"definition":{"name":"domain"},"attributes":[{"value":"bad.test"},{"value":"worse.test","shared":"1"}],"related_objects":[]}}
  ]}},
  {"title":"lonely","object":{"definition":{"name":"file"},"attributes":[],"related_objects":[]}}
]`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTableCmd_Table(t *testing.T) {
	out, err := run(t, sample, "table", "-")
	require.NoError(t, err)

	assert.Contains(t, out, "dropper (OR)")
	assert.Contains(t, out, "worse.test")
	assert.Contains(t, out, "No attributes were defined")
	assert.Contains(t, strings.ToLower(out), "page 1/1")
	assert.Equal(t, 1, strings.Count(out, "dropper (OR)"), "group label printed once per group")
}

func TestTableCmd_JSONPaging(t *testing.T) {
	out, err := run(t, sample, "table", "-", "--format", "json", "--page", "2", "--per-page", "2")
	require.NoError(t, err)

	var page jsonPage
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.Pages)
	assert.Equal(t, 4, page.Total)
	require.Len(t, page.Rows, 2)

	assert.Equal(t, "worse.test", page.Rows[0].Value)
	assert.True(t, page.Rows[0].GroupCell, "a group continuing from the previous page restarts its cell")
	assert.Equal(t, "lonely", page.Rows[1].GroupTitle)
	assert.True(t, page.Rows[1].GroupCell)
}

func TestTableCmd_Errors(t *testing.T) {
	_, err := run(t, sample, "table", "-", "--page", "0")
	assert.Equal(t, exitUsage, exitCode(err))

	_, err = run(t, sample, "table", "-", "--format", "csv")
	assert.Equal(t, exitUsage, exitCode(err))

	_, err = run(t, "{not json", "table", "-")
	assert.Equal(t, exitInput, exitCode(err))

	_, err = run(t, "", "table", filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, exitIO, exitCode(err))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestXLSXCmd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "observables.json")
	output := filepath.Join(dir, "flat.xlsx")
	require.NoError(t, os.WriteFile(input, []byte(sample), 0o600))

	out, err := run(t, "", "xlsx", input, "--output", output)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 4 rows")

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("PK")), "xlsx is a zip archive")
}

func TestXLSXCmd_RequiresOutput(t *testing.T) {
	_, err := run(t, sample, "xlsx", "-")
	require.Error(t, err)
}
