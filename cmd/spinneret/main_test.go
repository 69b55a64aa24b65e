package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	main "github.com/fwojciec/spinneret/cmd/spinneret"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	for _, cmd := range []string{"crawl", "docs", "export"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
	assert.Contains(t, helpOutput, "Usage:")
}

func TestMain_Run_NoArgsReturnsError(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), nil, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMain_Run_CrawlEndToEnd(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			_, _ = w.Write([]byte(`<html><head><title>Home</title></head><body><article>
				<h1>Home</h1>
				<p>Welcome to the test site with enough text to extract.</p>
				<a href="/about">About</a>
			</article></body></html>`))
		case "/about":
			_, _ = w.Write([]byte(`<html><head><title>About</title></head><body><article>
				<h1>About</h1>
				<p>This page describes the test site in some detail.</p>
			</article></body></html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "crawl.db")
	outPath := filepath.Join(dir, "out.jsonl")

	m := main.NewMain()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{
		"crawl", server.URL,
		"--db", dbPath,
		"--output", outPath,
		"--max-pages", "10",
	}, stdout, stderr)
	require.NoError(t, err, "stderr: %s", stderr.String())

	assert.Contains(t, stdout.String(), "Saved 2 pages")

	// Documents land in both the database and the JSONL file.
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], server.URL+"/")
	assert.Contains(t, lines[1], server.URL+"/about")

	_, err = os.Stat(dbPath)
	require.NoError(t, err)
}

func TestMain_Run_DocsListsCrawledDocuments(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Only Page</title></head><body><article>
			<h1>Only Page</h1>
			<p>A single page crawl for the docs listing test.</p>
		</article></body></html>`))
	}))
	defer server.Close()

	dbPath := filepath.Join(t.TempDir(), "crawl.db")

	m := main.NewMain()
	m.DBPath = dbPath

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := m.Run(context.Background(), []string{"crawl", server.URL, "--max-pages", "1"}, stdout, stderr)
	require.NoError(t, err, "stderr: %s", stderr.String())

	m2 := main.NewMain()
	m2.DBPath = dbPath
	stdout.Reset()
	stderr.Reset()

	err = m2.Run(context.Background(), []string{"docs"}, stdout, stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Documents (1 total)")
	assert.Contains(t, stdout.String(), server.URL+"/")
}

func TestMain_Run_ExportWritesJSONArray(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Page</title></head><body><article>
			<h1>Page</h1>
			<p>Content for the export test page.</p>
		</article></body></html>`))
	}))
	defer server.Close()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "crawl.db")
	exportPath := filepath.Join(dir, "export.json")

	m := main.NewMain()
	m.DBPath = dbPath
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := m.Run(context.Background(), []string{"crawl", server.URL, "--max-pages", "1"}, stdout, stderr)
	require.NoError(t, err, "stderr: %s", stderr.String())

	m2 := main.NewMain()
	m2.DBPath = dbPath
	stdout.Reset()

	err = m2.Run(context.Background(), []string{"export", exportPath}, stdout, stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Exported 1 documents")

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(string(data)), "["))
}
