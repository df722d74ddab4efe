package batch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pdfoutline/internal/pdftest"
	"github.com/tsawler/pdfoutline/model"
)

// lockedBuffer collects log output written from several goroutines
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatch(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()
	require.NoError(t, pdftest.WriteFile(filepath.Join(input, "existing.pdf"), reportPage("Existing Report", "Summary")))

	r, _ := newTestRunner(t, input, output)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Watch(ctx, 50*time.Millisecond) }()

	existing := filepath.Join(output, "existing.json")
	require.Eventually(t, func() bool {
		_, err := os.Stat(existing)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond, "existing documents are processed on start")

	// Give the watch loop time to start after the initial scan.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, pdftest.WriteFile(filepath.Join(input, "dropped.pdf"), reportPage("Dropped Report", "Findings")))
	require.NoError(t, os.WriteFile(filepath.Join(input, "ignored.txt"), []byte("x"), 0o644))

	dropped := filepath.Join(output, "dropped.json")
	require.Eventually(t, func() bool {
		_, err := os.Stat(dropped)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond, "new documents are processed")
	assert.Equal(t, "Dropped Report", readResult(t, dropped).Title)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
	assert.NoFileExists(t, filepath.Join(output, "ignored.json"))
}

func TestWatchQueuesWhileWorkersBusy(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()

	var logs lockedBuffer
	r, _ := newTestRunner(t, input, output)
	r.logger = testLogger(&logs)
	r.opts.Workers = 1

	release := make(chan struct{})
	var mu sync.Mutex
	var seen []string
	r.extract = func(ctx context.Context, path string) extraction {
		mu.Lock()
		seen = append(seen, filepath.Base(path))
		first := len(seen) == 1
		mu.Unlock()
		if first {
			<-release
		}
		result := model.EmptyResult()
		result.Title = filepath.Base(path)
		return extraction{result: result, pages: 1}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- r.Watch(ctx, 20*time.Millisecond) }()

	require.Eventually(t, func() bool {
		return strings.Contains(logs.String(), "watching for documents")
	}, 5*time.Second, 10*time.Millisecond)

	write := func(name string) {
		require.NoError(t, os.WriteFile(filepath.Join(input, name), []byte("%PDF-1.4"), 0o644))
	}
	write("a.pdf")
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 1
	}, 5*time.Second, 10*time.Millisecond, "the only worker picks up the first document")

	write("b.pdf")
	write("c.pdf")
	require.Eventually(t, func() bool {
		out := logs.String()
		return strings.Contains(out, "b.pdf") && strings.Contains(out, "c.pdf") &&
			strings.Count(out, "document queued") >= 3
	}, 5*time.Second, 10*time.Millisecond, "documents are queued while the worker is busy")

	close(release)
	for _, name := range []string{"a.json", "b.json", "c.json"} {
		path := filepath.Join(output, name)
		require.Eventually(t, func() bool {
			_, err := os.Stat(path)
			return err == nil
		}, 5*time.Second, 10*time.Millisecond, name)
	}
	assert.Equal(t, "c.pdf", readResult(t, filepath.Join(output, "c.json")).Title)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatchMissingInput(t *testing.T) {
	r, _ := newTestRunner(t, filepath.Join(t.TempDir(), "missing"), t.TempDir())
	assert.Error(t, r.Watch(context.Background(), time.Millisecond))
}

func TestDebouncer(t *testing.T) {
	var mu sync.Mutex
	fired := map[string]int{}
	d := newDebouncer(40*time.Millisecond, func(path string) {
		mu.Lock()
		fired[path]++
		mu.Unlock()
	})
	defer d.stop()

	for i := 0; i < 5; i++ {
		d.touch("a.pdf")
		time.Sleep(5 * time.Millisecond)
	}
	d.touch("b.pdf")
	d.cancel("b.pdf")

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return fired["a.pdf"] == 1
	}, 2*time.Second, 10*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, fired["a.pdf"], "touches within the delay fire once")
	assert.Zero(t, fired["b.pdf"], "canceled paths never fire")
}
