package main

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlui/studio/internal/export"
	"github.com/nlui/studio/internal/uidoc"
)

const sampleDoc = `{
  "version": "1.0",
  "title": "Mileage Expense",
  "tree": {"kind": "Page", "children": [
    {"kind": "Header", "props": {"title": "Mileage"}},
    {"kind": "Button", "props": {"variant": "primary", "text": "Submit"}},
    {"kind": "Sparkline", "props": {}}
  ]}
}`

// isolate points data and provider settings at test-owned values.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("NLUI_DATA", filepath.Join(dir, "data"))
	t.Setenv("NLUI_TEMPLATES", "")
	t.Setenv("NLUI_SESSION_BACKEND", "sqlite")
	t.Setenv("OPENAI_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_API_BASE", "")
	return dir
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "nlui dev\n", out)
}

func TestValidate(t *testing.T) {
	dir := isolate(t)
	good := writeFile(t, dir, "good.json", sampleDoc)

	out, _, err := run(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, `ok: "Mileage Expense", 4 nodes`)
	assert.Contains(t, out, "warning:")
	assert.Contains(t, out, "Sparkline")

	bad := writeFile(t, dir, "bad.json", `{"version":"2.0","title":"T","tree":{"kind":"Page"}}`)
	out, _, err = run(t, "validate", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema violation")
	assert.Contains(t, out, "version")
}

func TestRender(t *testing.T) {
	dir := isolate(t)
	in := writeFile(t, dir, "doc.json", sampleDoc)

	out, _, err := run(t, "render", in, "--backend", "plain", "--fragment")
	require.NoError(t, err)
	assert.NotContains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, `data-action="submit"`)

	target := filepath.Join(dir, "site", "index.html")
	_, _, err = run(t, "render", in, "--editable", "-o", target)
	require.NoError(t, err)
	page, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(page), "<!DOCTYPE html>"))
	assert.Contains(t, string(page), "wd-draggable")

	_, _, err = run(t, "render", in, "--backend", "svelte")
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	dir := isolate(t)
	in := writeFile(t, dir, "doc.json", sampleDoc)
	target := filepath.Join(dir, "bundle.zip")

	out, _, err := run(t, "export", in, "-o", target)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+target)

	zr, err := zip.OpenReader(target)
	require.NoError(t, err)
	defer zr.Close()
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, export.ManifestFile)
	assert.Contains(t, names, export.DocumentFile)
	assert.Contains(t, names, export.PreviewFile("plain"))
	assert.Contains(t, names, export.PreviewFile("canvas"))
}

func TestGenerate(t *testing.T) {
	dir := isolate(t)
	var gotAuth string
	llm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		content, _ := json.Marshal(sampleDoc)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"model":"gpt-4o-mini","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":` +
			string(content) + `}}],"usage":{"prompt_tokens":10,"completion_tokens":20,"total_tokens":30}}`))
	}))
	defer llm.Close()
	t.Setenv("OPENAI_API_BASE", llm.URL)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	target := filepath.Join(dir, "out.json")
	_, stderr, err := run(t, "generate", "mileage", "expense", "form", "-o", target)
	require.NoError(t, err)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Contains(t, stderr, "Sparkline")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	doc, err := uidoc.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "Mileage Expense", doc.Title)
	assert.NotEmpty(t, doc.Tree.ID)
}

func TestGenerate_NeedsCredentials(t *testing.T) {
	isolate(t)
	_, _, err := run(t, "generate", "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestTemplates(t *testing.T) {
	dir := isolate(t)

	out, _, err := run(t, "templates", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "shift-swap-bid")
	assert.Contains(t, out, "timesheet-assistant")

	catalog := filepath.Join(dir, "catalog")
	require.NoError(t, os.MkdirAll(catalog, 0o755))
	writeFile(t, catalog, "leave.yaml", `
id: leave-request
title: Leave Request
prompt: Create a leave request form with dates and a reason field.
tags: [Time, Absence]
`)
	out, _, err = run(t, "templates", "import", catalog)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 1 template(s)")

	out, _, err = run(t, "templates", "list", "--query", "leave")
	require.NoError(t, err)
	assert.Contains(t, out, "leave-request")
	assert.NotContains(t, out, "shift-swap-bid")
}

func TestStatus(t *testing.T) {
	isolate(t)
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		w.Write([]byte(`{"status":"ok","provider":"azure","model":"ui-gen","configured":true}`))
	}))
	defer up.Close()

	out, _, err := run(t, "status", "--url", up.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "provider azure, model ui-gen, configured true")

	down := httptest.NewServer(http.NotFoundHandler())
	url := down.URL
	down.Close()
	_, _, err = run(t, "status", "--url", url)
	assert.Error(t, err)
}
