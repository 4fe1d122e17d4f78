package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-json-experiment/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes wscanctl with args and returns stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := rootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestTokensFromStdin(t *testing.T) {
	out, _, err := run(t, "12 abc\r\n 中文", "tokens")
	require.NoError(t, err)
	assert.Equal(t, "-:0\t12\n-:3\tabc\n-:9\t中文\n", out)
}

func TestTokensJSON(t *testing.T) {
	out, _, err := run(t, "-7 x7", "tokens", "--json")
	require.NoError(t, err)

	var got []tokenRecord
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var rec tokenRecord
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		got = append(got, rec)
	}
	assert.Equal(t, []tokenRecord{
		{File: "-", Offset: 0, Token: "-7", Kind: "integer"},
		{File: "-", Offset: 3, Token: "x7", Kind: "word"},
	}, got)
}

func TestTokenKind(t *testing.T) {
	tests := []struct {
		tok  string
		want string
	}{
		{"0", "integer"},
		{"+12", "integer"},
		{"-", "word"},
		{"1.5", "word"},
		{"abc", "word"},
	}
	for i, tt := range tests {
		assert.Equal(t, tt.want, tokenKind(tt.tok), "tests[%d]", i)
	}
}

func TestLinesKeepsPathOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.txt", "b.txt", "c.txt", "d.txt"} {
		paths = append(paths, writeFile(t, dir, name, []byte(name+"\r\nend")))
	}

	for _, concurrent := range []string{"--concurrent=false", "--concurrent"} {
		out, _, err := run(t, "", append([]string{"lines", concurrent}, paths...)...)
		require.NoError(t, err)

		var want strings.Builder
		for _, p := range paths {
			want.WriteString(p + ":1: " + filepath.Base(p) + "\n")
			want.WriteString(p + ":2: end\n")
		}
		assert.Equal(t, want.String(), out, concurrent)
	}
}

func TestLinesJSON(t *testing.T) {
	out, _, err := run(t, "a\n\nb", "lines", "--json")
	require.NoError(t, err)

	var got []lineRecord
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var rec lineRecord
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		got = append(got, rec)
	}
	assert.Equal(t, []lineRecord{
		{File: "-", Line: 1, Offset: 0, Text: "a"},
		{File: "-", Line: 2, Offset: 2, Text: ""},
		{File: "-", Line: 3, Offset: 3, Text: "b"},
	}, got)
}

func TestSum(t *testing.T) {
	out, stderr, err := run(t, "1 2.5 x -0.5\n10", "sum")
	require.NoError(t, err)
	assert.Equal(t, "-: 13 (1 skipped)\n", out)
	assert.Contains(t, stderr, `not a number: "x"`)
}

func TestSumSkipsMalformedBytes(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.txt", []byte("4 \xff 5"))

	out, stderr, err := run(t, "", "sum", path)
	require.NoError(t, err)
	assert.Equal(t, path+": 9 (1 skipped)\n", out)
	assert.Contains(t, stderr, "invalid UTF-8")

	// Byte scanners pass the byte through as part of a token.
	out, stderr, err = run(t, "", "sum", "--ascii", path)
	require.NoError(t, err)
	assert.Equal(t, path+": 9 (1 skipped)\n", out)
	assert.Contains(t, stderr, "not a number")
}

func TestSumMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")
	_, _, err := run(t, "", "sum", missing)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSplit(t *testing.T) {
	dir := t.TempDir()
	outDir := t.TempDir()
	path := writeFile(t, dir, "text.txt", []byte("one\ntwo\n\n\nthree\r\n\r\nfour"))

	out, _, err := run(t, "", "split", "--out", outDir, path)
	require.NoError(t, err)
	assert.Contains(t, out, "3 files written")

	for name, want := range map[string]string{
		"1.txt": "one\ntwo",
		"2.txt": "three",
		"3.txt": "four",
	} {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		require.NoError(t, err)
		assert.Equal(t, want, string(data), name)
	}
	_, err = os.Stat(filepath.Join(outDir, "4.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSplitRequiresDirectory(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "text.txt", []byte("x"))

	_, _, err := run(t, "", "split", "--out", path, path)
	require.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "wscan.yaml", []byte("encoding: latin1\nbuffer_size: 8\nlog_level: warn\n"))
	input := writeFile(t, dir, "in.txt", []byte{'c', 'a', 'f', 0xe9, ' ', '1'})

	out, _, err := run(t, "", "tokens", "--config", cfgPath, input)
	require.NoError(t, err)
	assert.Equal(t, input+":0\tcafé\n"+input+":6\t1\n", out)

	// Flags win over the file.
	out, _, err = run(t, "", "tokens", "--config", cfgPath, "--encoding", "utf-8", "--ascii", input)
	require.NoError(t, err)
	assert.Equal(t, input+":0\tcaf\xe9\n"+input+":5\t1\n", out)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := loadConfig(writeFile(t, dir, "empty.yaml", nil))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	cfg, err = loadConfig(writeFile(t, dir, "full.yaml", []byte("ascii: true\nstrict_ascii: true\nconcurrent: true\n")))
	require.NoError(t, err)
	assert.True(t, cfg.ASCII)
	assert.True(t, cfg.StrictASCII)
	assert.True(t, cfg.Concurrent)
	assert.Equal(t, "utf-8", cfg.Encoding)

	_, err = loadConfig(writeFile(t, dir, "unknown.yaml", []byte("bufer_size: 3\n")))
	require.Error(t, err)
}

func TestInvalidSettings(t *testing.T) {
	_, _, err := run(t, "", "tokens", "--encoding", "no-such-encoding")
	require.Error(t, err)

	_, _, err = run(t, "", "tokens", "--log.level", "loud")
	require.Error(t, err)

	_, _, err = run(t, "", "tokens", "--buffer-size", "0")
	require.Error(t, err)
}

func TestLookupEncoding(t *testing.T) {
	enc, err := lookupEncoding("UTF-8")
	require.NoError(t, err)
	assert.Nil(t, enc)

	enc, err = lookupEncoding("UTF-16")
	require.NoError(t, err)
	assert.NotNil(t, enc)

	enc, err = lookupEncoding("windows-1252")
	require.NoError(t, err)
	assert.NotNil(t, enc)
}
