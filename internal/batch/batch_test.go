package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pdfoutline"
	"github.com/tsawler/pdfoutline/internal/pdftest"
	"github.com/tsawler/pdfoutline/model"
)

const bodyText = "Lorem ipsum dolor sit amet consectetur adipiscing elit sed do eiusmod"

// reportPage is a page with a title, one H1 heading and body text
func reportPage(title, heading string) pdftest.Page {
	lines := []pdftest.Line{
		pdftest.Bold(title, 60, 28),
		pdftest.Bold(heading, 150, 24),
	}
	for i := 0; i < 10; i++ {
		lines = append(lines, pdftest.Text(bodyText, 200+float64(i)*14, 10))
	}
	return pdftest.Page{Lines: lines}
}

func testLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newTestRunner(t *testing.T, input, output string) (*Runner, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	r := New(Options{
		Input:           input,
		Output:          output,
		Workers:         2,
		DocumentTimeout: 10 * time.Second,
		ValidateOutput:  true,
		Analysis:        pdfoutline.DefaultConfig(),
		Logger:          testLogger(&logs),
	})
	return r, &logs
}

func readResult(t *testing.T, path string) model.DocumentResult {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var result model.DocumentResult
	require.NoError(t, json.Unmarshal(data, &result))
	return result
}

func TestRun(t *testing.T) {
	input := t.TempDir()
	output := filepath.Join(t.TempDir(), "out")

	require.NoError(t, pdftest.WriteFile(filepath.Join(input, "report.pdf"), reportPage("Annual Report", "Introduction")))
	require.NoError(t, pdftest.WriteFile(filepath.Join(input, "GUIDE.PDF"), reportPage("Field Guide", "Getting Started")))
	require.NoError(t, os.WriteFile(filepath.Join(input, "broken.pdf"), []byte("not a pdf"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(input, "notes.txt"), []byte("ignored"), 0o644))

	r, logs := newTestRunner(t, input, output)
	summary, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, 3, summary.Processed)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Empty)

	report := readResult(t, filepath.Join(output, "report.json"))
	assert.Equal(t, "Annual Report", report.Title)
	require.Len(t, report.Outline, 1)
	assert.Equal(t, model.OutlineEntry{Level: model.LevelH1, Text: "Introduction", Page: 1}, report.Outline[0])

	guide := readResult(t, filepath.Join(output, "GUIDE.json"))
	assert.Equal(t, "Field Guide", guide.Title)

	broken, err := os.ReadFile(filepath.Join(output, "broken.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"","outline":[]}`, string(broken))

	_, err = os.Stat(filepath.Join(output, "notes.json"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	assert.Contains(t, logs.String(), `"msg":"batch complete"`)
	assert.Contains(t, logs.String(), summary.RunID)
}

func TestRunErrors(t *testing.T) {
	t.Run("missing input", func(t *testing.T) {
		r, _ := newTestRunner(t, filepath.Join(t.TempDir(), "missing"), t.TempDir())
		_, err := r.Run(context.Background())
		assert.Error(t, err)
	})

	t.Run("no documents", func(t *testing.T) {
		r, _ := newTestRunner(t, t.TempDir(), t.TempDir())
		_, err := r.Run(context.Background())
		assert.ErrorIs(t, err, ErrNoInput)
	})

	t.Run("canceled", func(t *testing.T) {
		input := t.TempDir()
		require.NoError(t, pdftest.WriteFile(filepath.Join(input, "a.pdf"), reportPage("A", "B")))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		r, _ := newTestRunner(t, input, t.TempDir())
		summary, err := r.Run(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, summary.Processed)
	})
}

func TestProcessFileTimeout(t *testing.T) {
	output := t.TempDir()
	r, _ := newTestRunner(t, t.TempDir(), output)
	r.opts.DocumentTimeout = 20 * time.Millisecond

	block := make(chan struct{})
	t.Cleanup(func() { close(block) })
	r.extract = func(ctx context.Context, path string) extraction {
		<-block
		return extraction{}
	}

	outcome := r.ProcessFile(context.Background(), "/in/slow.pdf")
	require.Error(t, outcome.Err)
	assert.ErrorIs(t, outcome.Err, context.DeadlineExceeded)
	assert.True(t, outcome.Empty)
	assert.NoError(t, outcome.WriteErr)

	data, err := os.ReadFile(filepath.Join(output, "slow.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"","outline":[]}`, string(data))
}

func TestProcessFileRecoversPanic(t *testing.T) {
	output := t.TempDir()
	r, logs := newTestRunner(t, t.TempDir(), output)
	r.extract = func(ctx context.Context, path string) extraction {
		panic("malformed xref")
	}

	outcome := r.ProcessFile(context.Background(), "/in/crash.pdf")
	require.Error(t, outcome.Err)
	assert.Contains(t, outcome.Err.Error(), "malformed xref")
	assert.FileExists(t, filepath.Join(output, "crash.json"))
	assert.Contains(t, logs.String(), "failed to extract outline")
}

func TestProcessFileRejectsInvalidResult(t *testing.T) {
	output := t.TempDir()
	r, _ := newTestRunner(t, t.TempDir(), output)
	r.extract = func(ctx context.Context, path string) extraction {
		result := model.EmptyResult()
		result.Outline = append(result.Outline, model.OutlineEntry{Level: model.LevelH1, Text: "Scope", Page: 0})
		return extraction{result: result, pages: 1}
	}

	outcome := r.ProcessFile(context.Background(), "/in/invalid.pdf")
	require.Error(t, outcome.Err)
	assert.True(t, outcome.Empty)
	assert.Equal(t, model.EmptyResult(), readResult(t, filepath.Join(output, "invalid.json")))
}

func TestProcessFileWriteError(t *testing.T) {
	r, _ := newTestRunner(t, t.TempDir(), filepath.Join(t.TempDir(), "missing"))
	r.extract = func(ctx context.Context, path string) extraction {
		return extraction{result: model.EmptyResult()}
	}

	outcome := r.ProcessFile(context.Background(), "/in/doc.pdf")
	assert.Error(t, outcome.WriteErr)
	assert.True(t, outcome.Failed())
}

func TestEncode(t *testing.T) {
	data, err := Encode(model.DocumentResult{
		Title: "Café <Menu> & Wine",
		Outline: []model.OutlineEntry{
			{Level: model.LevelH1, Text: "Entrées", Page: 2},
		},
	})
	require.NoError(t, err)

	want := `{
  "title": "Café <Menu> & Wine",
  "outline": [
    {
      "level": "H1",
      "text": "Entrées",
      "page": 2
    }
  ]
}
`
	assert.Equal(t, want, string(data))

	empty, err := Encode(model.DocumentResult{})
	require.NoError(t, err)
	assert.Contains(t, string(empty), `"outline": []`)
}

func TestWriteResultLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, writeResult(path, model.EmptyResult()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.EmptyResult(), readResult(t, path))
}

func TestListPDFs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.pdf", "A.Pdf", "c.txt", ".hidden.pdf", "pdf"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.pdf"), 0o755))

	files, err := ListPDFs(dir)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	assert.Equal(t, []string{"A.Pdf", "b.pdf"}, names)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/out", "report.json"), OutputPath("/out", "/in/report.pdf"))
	assert.Equal(t, filepath.Join("/out", "REPORT.json"), OutputPath("/out", "/in/REPORT.PDF"))
	assert.Equal(t, filepath.Join("/out", "v1.2 notes.json"), OutputPath("/out", "v1.2 notes.pdf"))
}

func TestOutputPaths(t *testing.T) {
	files := []string{"/in/a.PDF", "/in/a.pdf", "/in/b.pdf"}
	got := OutputPaths("/out", files)

	assert.Equal(t, map[string]string{
		"/in/a.PDF": filepath.Join("/out", "a.PDF.json"),
		"/in/a.pdf": filepath.Join("/out", "a.pdf.json"),
		"/in/b.pdf": filepath.Join("/out", "b.json"),
	}, got)
}

func TestRunKeepsCaseVariantsApart(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()
	require.NoError(t, pdftest.WriteFile(filepath.Join(input, "a.pdf"), reportPage("Lower Report", "Scope")))
	require.NoError(t, pdftest.WriteFile(filepath.Join(input, "a.PDF"), reportPage("Upper Report", "Scope")))

	r, _ := newTestRunner(t, input, output)
	summary, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Processed)

	entries, err := os.ReadDir(output)
	require.NoError(t, err)
	require.Len(t, entries, 2, "one output per input")
	assert.Equal(t, "Lower Report", readResult(t, filepath.Join(output, "a.pdf.json")).Title)
	assert.Equal(t, "Upper Report", readResult(t, filepath.Join(output, "a.PDF.json")).Title)

	outcome := r.ProcessFile(context.Background(), filepath.Join(input, "a.pdf"))
	assert.Equal(t, filepath.Join(output, "a.pdf.json"), outcome.Output)
}

func TestOptionsDefaults(t *testing.T) {
	r := New(Options{Input: "in", Output: "out"})
	assert.GreaterOrEqual(t, r.opts.Workers, 1)
	assert.Equal(t, 60*time.Second, r.opts.DocumentTimeout)
	assert.NotNil(t, r.logger)
}
