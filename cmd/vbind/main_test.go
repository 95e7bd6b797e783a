package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/vbind/internal/errors"
)

const testTemplate = `<html><head></head><body>` +
	`<div id="app"><p>Hi {{ name }}</p><b v-text="n"></b><input v-model="name"></div>` +
	`</body></html>`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// execute runs the CLI with args and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestCompileCommand(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeFile(t, dir, "index.html", testTemplate)
	data := writeFile(t, dir, "data.json", `{"name": "Ada", "n": 2}`)

	out, _, err := execute(t, "", "compile", tmpl, "--data", data, "--config", dir)
	require.NoError(t, err)
	assert.Contains(t, out, `<div id="app"><p>Hi Ada</p><b v-text="n">2</b><input v-model="name" value="Ada"></div>`)
}

func TestCompileStrip(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeFile(t, dir, "index.html", testTemplate)
	data := writeFile(t, dir, "data.yaml", "name: Ada\nn: 2\n")

	out, _, err := execute(t, "", "compile", tmpl, "--data", data, "--strip", "--config", dir)
	require.NoError(t, err)
	assert.Contains(t, out, `<div id="app"><p>Hi Ada</p><b>2</b><input value="Ada"></div>`)
	assert.NotContains(t, out, "v-")
}

func TestCompileFromStdin(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "data.json", `{"name": "Bo", "n": 1}`)

	out, _, err := execute(t, testTemplate, "compile", "-", "--data", data, "--config", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "<p>Hi Bo</p>")
}

func TestCompileMissingKey(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeFile(t, dir, "index.html", testTemplate)
	data := writeFile(t, dir, "data.json", `{"name": "Ada"}`)

	_, _, err := execute(t, "", "compile", tmpl, "--data", data, "--config", dir)
	require.Error(t, err)
	assert.Equal(t, "E001", errors.CodeOf(err))

	out, _, err := execute(t, "", "compile", tmpl, "--data", data, "--missingkey", "zero", "--config", dir)
	require.NoError(t, err)
	assert.Contains(t, out, `<b v-text="n"></b>`)
}

func TestCompileInvalidMissingKey(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeFile(t, dir, "index.html", testTemplate)

	_, _, err := execute(t, "", "compile", tmpl, "--missingkey", "maybe", "--config", dir)
	require.Error(t, err)
	assert.Equal(t, "E031", errors.CodeOf(err))
}

func TestCompileSelectorNotFound(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeFile(t, dir, "index.html", testTemplate)

	out, stderr, err := execute(t, "", "compile", tmpl, "--selector", "#nope", "--config", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "{{ name }}")
	assert.Contains(t, stderr, "mount target not found")
}

func TestCompileWholeDocument(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeFile(t, dir, "index.html", `<html><head><title>{{ title }}</title></head><body></body></html>`)
	data := writeFile(t, dir, "data.json", `{"title": "Home"}`)

	out, _, err := execute(t, "", "compile", tmpl, "--data", data, "--selector", "", "--config", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "<title>Home</title>")
}

func TestCompileOutFile(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeFile(t, dir, "index.html", testTemplate)
	data := writeFile(t, dir, "data.json", `{"name": "Ada", "n": 2}`)
	dst := filepath.Join(dir, "out.html")

	out, stderr, err := execute(t, "", "compile", tmpl, "--data", data, "--out", dst, "--config", dir)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "Wrote "+dst)

	written, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(written), "<p>Hi Ada</p>")
}

func TestCompileUsesConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "vbind.yaml", "compiler:\n  stripDirectives: true\n  missingKey: zero\n")
	tmpl := writeFile(t, dir, "index.html", testTemplate)

	out, _, err := execute(t, "", "compile", tmpl, "--config", dir)
	require.NoError(t, err)
	assert.Contains(t, out, `<div id="app"><p>Hi </p><b></b><input value=""></div>`)
}

func TestCompileMissingTemplate(t *testing.T) {
	dir := t.TempDir()
	_, _, err := execute(t, "", "compile", filepath.Join(dir, "nope.html"), "--config", dir)
	require.Error(t, err)
	assert.Equal(t, "E040", errors.CodeOf(err))
}

func TestServeRejectsBadAddr(t *testing.T) {
	dir := t.TempDir()
	_, _, err := execute(t, "", "serve", "index.html", "--addr", "nocolon", "--config", dir)
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "", "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)

	out, _, err = execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "vbind dev")
	assert.Contains(t, out, "Go version:")
}
