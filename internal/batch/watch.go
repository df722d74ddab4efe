package batch

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Watch processes the PDFs already in the input directory, then every PDF
// created or rewritten there until ctx is canceled. A file is processed
// once it has not changed for debounce.
//
// Watch returns nil when ctx is canceled.
func (r *Runner) Watch(ctx context.Context, debounce time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Subscribe before the initial scan so files arriving during it are not
	// missed.
	if err := watcher.Add(r.opts.Input); err != nil {
		return fmt.Errorf("failed to watch %s: %w", r.opts.Input, err)
	}

	if _, err := r.Run(ctx); err != nil && !errors.Is(err, ErrNoInput) {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	logger := r.logger.With("run_id", uuid.New().String())
	logger.Info("watching for documents", "input", r.opts.Input, "debounce", debounce)

	ready := make(chan string)
	d := newDebouncer(debounce, func(path string) {
		select {
		case ready <- path:
		case <-ctx.Done():
		}
	})
	defer d.stop()

	// Workers pull from jobs while the loop keeps draining watcher events;
	// paths that are ready while every worker is busy wait in pending.
	jobs := make(chan string)
	var g errgroup.Group
	for range r.opts.Workers {
		g.Go(func() error {
			for path := range jobs {
				r.process(ctx, logger, path, r.outputFor(path))
			}
			return nil
		})
	}
	defer func() {
		close(jobs)
		_ = g.Wait()
	}()

	var pending []string
	for {
		var send chan<- string
		var next string
		if len(pending) > 0 {
			send, next = jobs, pending[0]
		}

		select {
		case <-ctx.Done():
			logger.Info("watch stopped", "pending", len(pending))
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !IsPDF(event.Name) {
				continue
			}
			switch {
			case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
				logger.Debug("document changed", "file", event.Name, "op", event.Op.String())
				d.touch(event.Name)
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				d.cancel(event.Name)
				pending = slices.DeleteFunc(pending, func(p string) bool { return p == event.Name })
			}

		case path := <-ready:
			if !slices.Contains(pending, path) {
				pending = append(pending, path)
				logger.Debug("document queued", "file", path, "pending", len(pending))
			}

		case send <- next:
			pending = pending[1:]

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}

// debouncer fires once per path after the path has been quiet for delay
type debouncer struct {
	delay  time.Duration
	fire   func(path string)
	mu     sync.Mutex
	timers map[string]*time.Timer
}

func newDebouncer(delay time.Duration, fire func(string)) *debouncer {
	return &debouncer{
		delay:  delay,
		fire:   fire,
		timers: make(map[string]*time.Timer),
	}
}

func (d *debouncer) touch(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[path]; ok {
		t.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A newer touch replaced this timer.
		if d.timers[path] != t {
			d.mu.Unlock()
			return
		}
		delete(d.timers, path)
		d.mu.Unlock()
		d.fire(path)
	})
	d.timers[path] = t
}

func (d *debouncer) cancel(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.timers[path]; ok {
		t.Stop()
		delete(d.timers, path)
	}
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for path, t := range d.timers {
		t.Stop()
		delete(d.timers, path)
	}
}
