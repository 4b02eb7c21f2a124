package export

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlui/studio/internal/uidoc"
)

func sampleDoc() *uidoc.Document {
	return uidoc.AssignIDs(&uidoc.Document{
		Version: uidoc.Version,
		Title:   "Expense Report",
		Tree: &uidoc.Node{Kind: uidoc.KindPage, Children: []*uidoc.Node{
			{Kind: uidoc.KindHeader, Props: map[string]any{"title": "Expenses"}},
			{Kind: uidoc.KindCard, Children: []*uidoc.Node{
				{Kind: uidoc.KindButton, Props: map[string]any{"text": "Submit", "variant": "primary"}},
			}},
		}},
	})
}

func readZip(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	files := map[string][]byte{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		files[f.Name] = body
	}
	return files
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	m, err := Write(&buf, sampleDoc(), Options{Version: "0.1.7", Now: at})
	require.NoError(t, err)

	assert.Equal(t, DefaultAppName, m.AppName)
	assert.Equal(t, 4, m.ComponentCount)
	assert.Equal(t, []string{"Button", "Card", "Header", "Page"}, m.ComponentsUsed)
	assert.Equal(t, 3, m.Depth)
	assert.Len(t, m.BundleID, 36)

	files := readZip(t, buf.Bytes())
	assert.ElementsMatch(t, m.Files, keys(files))
	assert.Contains(t, files, "preview-plain.html")
	assert.Contains(t, files, "preview-canvas.html")

	var manifest map[string]any
	require.NoError(t, json.Unmarshal(files[ManifestFile], &manifest))
	assert.Equal(t, "0.1.7", manifest["version"])
	assert.Equal(t, "2026-03-01T09:30:00Z", manifest["generatedAt"])
	preview := manifest["previewState"].(map[string]any)
	assert.Equal(t, "Expense Report", preview["title"])

	doc, err := uidoc.Parse(files[DocumentFile])
	require.NoError(t, err)
	assert.Equal(t, sampleDoc(), doc)

	assert.Contains(t, string(files["preview-canvas.html"]), "<!DOCTYPE html>")
	assert.Contains(t, string(files["preview-canvas.html"]), "Submit")
	assert.Contains(t, string(files["preview-plain.html"]), `data-backend="plain"`)
}

func TestWrite_NoDocument(t *testing.T) {
	_, err := Write(io.Discard, nil, Options{})
	assert.ErrorIs(t, err, ErrNoDocument)
	_, err = Write(io.Discard, &uidoc.Document{Version: "1.0"}, Options{})
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestFilename(t *testing.T) {
	at := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "expense-report-20260301.zip", Filename(sampleDoc(), at))
	assert.Equal(t, "nlui-export-20260301.zip", Filename(&uidoc.Document{Title: "!!!"}, at))
	assert.Equal(t, "nlui-export-20260301.zip", Filename(nil, at))
}

func keys(m map[string][]byte) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
