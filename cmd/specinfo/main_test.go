package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

const mapCSV = `map_x,map_y,class,1000,1004,1008,1012
0,0,a,1,2,3,4
1,0,b,1,2,3,4
0,1,a,1,2,3,4
`

func TestRunSummary(t *testing.T) {
	dpt := writeFile(t, "s.dpt", "1000,1,2\n1010,3,4\n1020,5,6\n")
	csv := writeFile(t, "m.csv", mapCSV)

	var stdout, stderr bytes.Buffer
	code := run([]string{dpt, csv}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	out := stdout.String()
	assert.Contains(t, out, "File")
	assert.Regexp(t, `s\.dpt\s+dpt\s+2\s+3\s+1000\.\.1020\s+-`, out)
	assert.Regexp(t, `m\.csv\s+csv\s+3\s+4\s+1000\.\.1012\s+class\[a,b\]`, out)
}

func TestRunTransformsAndMap(t *testing.T) {
	csv := writeFile(t, "m.csv", mapCSV)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-cut", "1003:1013", "-map", "map_x,map_y", csv}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Regexp(t, `m\.csv\s+csv\s+3\s+3\s+1004\.\.1012\s+class\[a,b\]\s+2x2 \(3 filled\)`, stdout.String())

	stdout.Reset()
	code = run([]string{"-interp", "1000:1012:2", csv}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Regexp(t, `m\.csv\s+csv\s+3\s+7\s+1000\.\.1012`, stdout.String())
}

func TestRunList(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-list"}, &stdout, &stderr))
	assert.Equal(t, "csv\ndpt\ngsf\nnea\n", stdout.String())
}

func TestRunErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 2, run(nil, &stdout, &stderr))
	assert.Equal(t, 2, run([]string{"-cut", "1000", "x.dpt"}, &stdout, &stderr))
	assert.Equal(t, 2, run([]string{"-interp", "1:0:1", "x.dpt"}, &stdout, &stderr))
	assert.Equal(t, 2, run([]string{"-map", "map_x", "x.dpt"}, &stdout, &stderr))

	stderr.Reset()
	assert.Equal(t, 1, run([]string{filepath.Join(t.TempDir(), "missing.dpt"), "file.xyz"}, &stdout, &stderr))
	assert.True(t, strings.Contains(stderr.String(), "summarize"))
}

func TestRunVerboseLogsReads(t *testing.T) {
	dpt := writeFile(t, "s.dpt", "1000,1\n1010,3\n")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-v", dpt}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "read spectra")
}
